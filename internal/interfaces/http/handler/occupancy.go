package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appproperty "github.com/rental/backend/internal/application/property"
	"github.com/rental/backend/internal/interfaces/http/middleware"
)

// OccupancyHandler handles move-in and move-out requests
type OccupancyHandler struct {
	BaseHandler
	occupancyService *appproperty.OccupancyService
}

// NewOccupancyHandler creates a new occupancy handler
func NewOccupancyHandler(occupancyService *appproperty.OccupancyService) *OccupancyHandler {
	return &OccupancyHandler{occupancyService: occupancyService}
}

// RegisterRoutes registers occupancy routes
func (h *OccupancyHandler) RegisterRoutes(authed, managed *gin.RouterGroup) {
	managed.POST("/rooms/:id/residents", h.MoveIn)
	managed.GET("/rooms/:id/residents", h.ListResidents)
	managed.POST("/residents/:userId/move-out", h.MoveOut)
	managed.GET("/residents/:userId/stays", h.StayHistory)
	authed.GET("/me/stay", h.CurrentStay)
	authed.GET("/me/stays", h.MyStays)
}

// MoveInRequest is the move-in request body
type MoveInRequest struct {
	UserID     uuid.UUID `json:"user_id" binding:"required"`
	MoveInDate time.Time `json:"move_in_date" binding:"required"`
}

// MoveOutRequest is the move-out request body
type MoveOutRequest struct {
	MoveOutDate time.Time `json:"move_out_date" binding:"required"`
}

// StayResponse describes one stay of a resident in a room
type StayResponse struct {
	ID          uuid.UUID  `json:"id"`
	RoomID      string     `json:"room_id"`
	UserID      uuid.UUID  `json:"user_id"`
	MoveInDate  time.Time  `json:"move_in_date"`
	MoveOutDate *time.Time `json:"move_out_date,omitempty"`
}

func toStayResponse(info appproperty.StayInfo) StayResponse {
	return StayResponse{
		ID:          info.ID,
		RoomID:      info.RoomID,
		UserID:      info.UserID,
		MoveInDate:  info.MoveInDate,
		MoveOutDate: info.MoveOutDate,
	}
}

// MoveIn assigns a resident to a room
func (h *OccupancyHandler) MoveIn(c *gin.Context) {
	var req MoveInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.occupancyService.AssignResident(c.Request.Context(), appproperty.AssignResidentInput{
		RoomID:     c.Param("id"),
		UserID:     req.UserID,
		MoveInDate: req.MoveInDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toStayResponse(*info))
}

// MoveOut closes a resident's open stay
func (h *OccupancyHandler) MoveOut(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req MoveOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.occupancyService.LeaveRoom(c.Request.Context(), appproperty.LeaveRoomInput{
		UserID:      userID,
		MoveOutDate: req.MoveOutDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toStayResponse(*info))
}

// ListResidents returns the current residents of a room
func (h *OccupancyHandler) ListResidents(c *gin.Context) {
	stays, err := h.occupancyService.ListRoomResidents(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]StayResponse, 0, len(stays))
	for _, s := range stays {
		out = append(out, toStayResponse(s))
	}
	h.Success(c, out)
}

// StayHistory returns all stays of a user
func (h *OccupancyHandler) StayHistory(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}
	h.stayHistory(c, userID)
}

// CurrentStay returns the authenticated user's open stay, if any
func (h *OccupancyHandler) CurrentStay(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.occupancyService.GetCurrentStay(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if info == nil {
		h.Success(c, nil)
		return
	}
	h.Success(c, toStayResponse(*info))
}

// MyStays returns the authenticated user's stay history
func (h *OccupancyHandler) MyStays(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	h.stayHistory(c, userID)
}

func (h *OccupancyHandler) stayHistory(c *gin.Context, userID uuid.UUID) {
	stays, err := h.occupancyService.GetUserStayHistory(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]StayResponse, 0, len(stays))
	for _, s := range stays {
		out = append(out, toStayResponse(s))
	}
	h.Success(c, out)
}
