package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appbilling "github.com/rental/backend/internal/application/billing"
	"github.com/rental/backend/internal/domain/billing"
)

// ServiceItemHandler handles service catalog requests
type ServiceItemHandler struct {
	BaseHandler
	itemService *appbilling.ServiceItemService
}

// NewServiceItemHandler creates a new service item handler
func NewServiceItemHandler(itemService *appbilling.ServiceItemService) *ServiceItemHandler {
	return &ServiceItemHandler{itemService: itemService}
}

// RegisterRoutes registers catalog routes. Reads are open to all
// authenticated users; writes require a manager.
func (h *ServiceItemHandler) RegisterRoutes(authed, managed *gin.RouterGroup) {
	authed.GET("/services", h.List)
	authed.GET("/services/:id", h.Get)
	managed.POST("/services", h.Create)
	managed.PUT("/services/:id", h.Update)
	managed.DELETE("/services/:id", h.Deactivate)
}

// ServiceItemRequest is the catalog create/update request body
type ServiceItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	PricingType string          `json:"pricing_type" binding:"required,oneof=PER_ROOM PER_PERSON"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// ServiceItemResponse describes a catalog entry
type ServiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	PricingType string          `json:"pricing_type"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toServiceItemResponse(item *billing.ServiceItem) ServiceItemResponse {
	return ServiceItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		PricingType: string(item.PricingType),
		UnitPrice:   item.UnitPrice,
		Active:      item.Active,
		CreatedAt:   item.CreatedAt,
	}
}

// Create adds a catalog entry
func (h *ServiceItemHandler) Create(c *gin.Context) {
	var req ServiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), appbilling.ServiceItemInput{
		Name:        req.Name,
		Description: req.Description,
		PricingType: billing.PricingType(req.PricingType),
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toServiceItemResponse(item))
}

// List returns catalog entries, active ones only unless all=true
func (h *ServiceItemHandler) List(c *gin.Context) {
	activeOnly := c.Query("all") != "true"

	items, err := h.itemService.ListItems(c.Request.Context(), activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]ServiceItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toServiceItemResponse(&items[i]))
	}
	h.Success(c, out)
}

// Get returns one catalog entry
func (h *ServiceItemHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toServiceItemResponse(item))
}

// Update changes a catalog entry. Drafts that already carry the service
// keep their priced lines.
func (h *ServiceItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	var req ServiceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), id, appbilling.ServiceItemInput{
		Name:        req.Name,
		Description: req.Description,
		PricingType: billing.PricingType(req.PricingType),
		UnitPrice:   req.UnitPrice,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toServiceItemResponse(item))
}

// Deactivate retires a catalog entry from new drafts
func (h *ServiceItemHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.itemService.DeactivateItem(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
