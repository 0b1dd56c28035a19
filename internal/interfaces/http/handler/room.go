package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appproperty "github.com/rental/backend/internal/application/property"
	"github.com/rental/backend/internal/domain/property"
	"github.com/rental/backend/internal/interfaces/http/dto"
)

// RoomHandler handles room management requests
type RoomHandler struct {
	BaseHandler
	roomService *appproperty.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *appproperty.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// RegisterRoutes registers room routes. Reads are open to all authenticated
// users; writes require a manager.
func (h *RoomHandler) RegisterRoutes(authed, managed *gin.RouterGroup) {
	authed.GET("/rooms", h.List)
	authed.GET("/rooms/:id", h.Get)
	managed.POST("/rooms", h.Create)
	managed.PUT("/rooms/:id", h.Update)
	managed.DELETE("/rooms/:id", h.Delete)
}

// CreateRoomRequest is the room creation request body
type CreateRoomRequest struct {
	ID           string          `json:"id" binding:"required"`
	Area         decimal.Decimal `json:"area" binding:"required"`
	Description  string          `json:"description"`
	MaxOccupants int             `json:"max_occupants" binding:"required,min=1"`
}

// UpdateRoomRequest is the room update request body
type UpdateRoomRequest struct {
	Area         decimal.Decimal `json:"area" binding:"required"`
	Description  string          `json:"description"`
	MaxOccupants int             `json:"max_occupants" binding:"required,min=1"`
	Status       string          `json:"status" binding:"omitempty,oneof=available occupied maintenance unavailable"`
}

// RoomResponse describes a room in API responses
type RoomResponse struct {
	ID            string           `json:"id"`
	Area          decimal.Decimal  `json:"area"`
	Description   string           `json:"description,omitempty"`
	Status        string           `json:"status"`
	MaxOccupants  int              `json:"max_occupants"`
	OccupantCount int64            `json:"occupant_count"`
	CurrentPrice  *decimal.Decimal `json:"current_price,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func toRoomResponse(info appproperty.RoomInfo) RoomResponse {
	return RoomResponse{
		ID:            info.ID,
		Area:          info.Area,
		Description:   info.Description,
		Status:        info.Status.String(),
		MaxOccupants:  info.MaxOccupants,
		OccupantCount: info.OccupantCount,
		CurrentPrice:  info.CurrentPrice,
		CreatedAt:     info.CreatedAt,
		UpdatedAt:     info.UpdatedAt,
	}
}

// Create registers a new room
func (h *RoomHandler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.roomService.CreateRoom(c.Request.Context(), appproperty.CreateRoomInput{
		ID:           req.ID,
		Area:         req.Area,
		Description:  req.Description,
		MaxOccupants: req.MaxOccupants,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toRoomResponse(*info))
}

// List returns a page of rooms
func (h *RoomHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	filter := property.RoomFilter{
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if status := c.Query("status"); status != "" {
		s := property.RoomStatus(status)
		if !s.IsValid() {
			h.BadRequest(c, "Unknown room status")
			return
		}
		filter.Status = &s
	}

	result, err := h.roomService.ListRooms(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	rooms := make([]RoomResponse, 0, len(result.Rooms))
	for _, r := range result.Rooms {
		rooms = append(rooms, toRoomResponse(r))
	}
	h.SuccessWithMeta(c, rooms, result.Total, result.Page, result.PageSize)
}

// Get returns one room
func (h *RoomHandler) Get(c *gin.Context) {
	info, err := h.roomService.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toRoomResponse(*info))
}

// Update changes a room's fields
func (h *RoomHandler) Update(c *gin.Context) {
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.roomService.UpdateRoom(c.Request.Context(), appproperty.UpdateRoomInput{
		ID:           c.Param("id"),
		Area:         req.Area,
		Description:  req.Description,
		MaxOccupants: req.MaxOccupants,
		Status:       property.RoomStatus(req.Status),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toRoomResponse(*info))
}

// Delete removes an empty room
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.roomService.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
