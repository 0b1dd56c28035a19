package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appbilling "github.com/rental/backend/internal/application/billing"
	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/interfaces/http/middleware"
)

// DraftHandler handles draft bill requests
type DraftHandler struct {
	BaseHandler
	draftService *appbilling.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *appbilling.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// RegisterRoutes registers draft routes. Transitions stay on the
// authenticated group: residents confirm or reject their own drafts,
// and the service enforces who may do what.
func (h *DraftHandler) RegisterRoutes(authed, managed *gin.RouterGroup) {
	authed.GET("/drafts/:id", h.Get)
	authed.GET("/rooms/:id/drafts", h.ListForRoom)
	authed.POST("/drafts/:id/transition", h.Transition)
	managed.GET("/drafts", h.ListForMonth)
	managed.POST("/drafts/services", h.AddService)
	managed.DELETE("/drafts/:id/services/:serviceId", h.RemoveService)
}

// AddServiceRequest is the add-service request body
type AddServiceRequest struct {
	RoomID    string    `json:"room_id" binding:"required"`
	Month     string    `json:"month" binding:"required,month"`
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
}

// TransitionDraftRequest is the draft transition request body
type TransitionDraftRequest struct {
	Target string `json:"target" binding:"required,oneof=DRAFT SENT CONFIRMED REJECTED"`
}

// DraftResponse describes a draft bill with its typed details
type DraftResponse struct {
	ID            uuid.UUID                     `json:"id"`
	RoomID        string                        `json:"room_id"`
	Month         string                        `json:"month"`
	Type          string                        `json:"type"`
	Status        string                        `json:"status"`
	TotalAmount   decimal.Decimal               `json:"total_amount"`
	ElectricWater *billing.ElectricWaterDetails `json:"electric_water,omitempty"`
	Services      *billing.ServicesDetails      `json:"services,omitempty"`
	ConfirmedAt   *time.Time                    `json:"confirmed_at,omitempty"`
}

func toDraftResponse(info appbilling.DraftInfo) DraftResponse {
	return DraftResponse{
		ID:            info.ID,
		RoomID:        info.RoomID,
		Month:         info.Month.Format(monthLayout),
		Type:          string(info.Type),
		Status:        string(info.Status),
		TotalAmount:   info.TotalAmount,
		ElectricWater: info.ElectricWater,
		Services:      info.Services,
		ConfirmedAt:   info.ConfirmedAt,
	}
}

// Get returns one draft
func (h *DraftHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid draft ID")
		return
	}

	info, err := h.draftService.GetDraft(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toDraftResponse(*info))
}

// ListForRoom returns both drafts of a room's month
func (h *DraftHandler) ListForRoom(c *gin.Context) {
	month, err := parseMonth(c.Query("month"))
	if err != nil {
		h.BadRequest(c, "Query parameter month must be in YYYY-MM format")
		return
	}

	drafts, err := h.draftService.ListByRoomAndMonth(c.Request.Context(), c.Param("id"), month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toDraftResponses(drafts))
}

// ListForMonth returns all drafts of a month, optionally filtered by type
func (h *DraftHandler) ListForMonth(c *gin.Context) {
	month, err := parseMonth(c.Query("month"))
	if err != nil {
		h.BadRequest(c, "Query parameter month must be in YYYY-MM format")
		return
	}

	var draftType *billing.DraftType
	if t := c.Query("type"); t != "" {
		dt := billing.DraftType(t)
		if !dt.IsValid() {
			h.BadRequest(c, "Unknown draft type")
			return
		}
		draftType = &dt
	}

	drafts, err := h.draftService.ListByMonth(c.Request.Context(), month, draftType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toDraftResponses(drafts))
}

// AddService puts a catalog service on a room's monthly services draft
func (h *DraftHandler) AddService(c *gin.Context) {
	var req AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	month, err := parseMonth(req.Month)
	if err != nil {
		h.BadRequest(c, "Month must be in YYYY-MM format")
		return
	}

	info, err := h.draftService.AddService(c.Request.Context(), appbilling.AddServiceToDraftInput{
		RoomID:    req.RoomID,
		Month:     month,
		ServiceID: req.ServiceID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toDraftResponse(*info))
}

// RemoveService drops a service line from a services draft
func (h *DraftHandler) RemoveService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid draft ID")
		return
	}

	info, err := h.draftService.RemoveService(c.Request.Context(), appbilling.RemoveServiceFromDraftInput{
		DraftID:   id,
		ServiceID: c.Param("serviceId"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toDraftResponse(*info))
}

// Transition moves a draft through its confirmation workflow
func (h *DraftHandler) Transition(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid draft ID")
		return
	}

	var req TransitionDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.draftService.Transition(c.Request.Context(), appbilling.TransitionDraftInput{
		DraftID:        id,
		Target:         billing.DraftStatus(req.Target),
		ActorUserID:    middleware.GetUserID(c),
		ActorIsManager: middleware.GetRole(c).CanManage(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toDraftResponse(*info))
}

func toDraftResponses(drafts []appbilling.DraftInfo) []DraftResponse {
	out := make([]DraftResponse, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, toDraftResponse(d))
	}
	return out
}
