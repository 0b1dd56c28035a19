package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appbilling "github.com/rental/backend/internal/application/billing"
)

// MeterReadingHandler handles monthly meter reading requests
type MeterReadingHandler struct {
	BaseHandler
	readingService *appbilling.MeterReadingService
}

// NewMeterReadingHandler creates a new meter reading handler
func NewMeterReadingHandler(readingService *appbilling.MeterReadingService) *MeterReadingHandler {
	return &MeterReadingHandler{readingService: readingService}
}

// RegisterRoutes registers meter reading routes on a manager-only group
func (h *MeterReadingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/readings", h.Record)
	rg.GET("/readings", h.List)
	rg.GET("/rooms/:id/readings", h.GetForRoom)
}

// RecordReadingRequest is the meter reading request body
type RecordReadingRequest struct {
	RoomID           string          `json:"room_id" binding:"required"`
	Month            string          `json:"month" binding:"required,month"`
	ElectricityIndex decimal.Decimal `json:"electricity_index" binding:"required"`
	WaterIndex       decimal.Decimal `json:"water_index" binding:"required"`
}

// ReadingResponse describes a recorded meter reading
type ReadingResponse struct {
	ID               uuid.UUID       `json:"id"`
	RoomID           string          `json:"room_id"`
	Month            string          `json:"month"`
	ElectricityIndex decimal.Decimal `json:"electricity_index"`
	WaterIndex       decimal.Decimal `json:"water_index"`
	Status           string          `json:"status"`
}

func toReadingResponse(info appbilling.ReadingInfo) ReadingResponse {
	return ReadingResponse{
		ID:               info.ID,
		RoomID:           info.RoomID,
		Month:            info.Month.Format(monthLayout),
		ElectricityIndex: info.ElectricityIndex,
		WaterIndex:       info.WaterIndex,
		Status:           string(info.Status),
	}
}

// Record stores a room's meter indexes for a month and reprices the
// electric-water draft
func (h *MeterReadingHandler) Record(c *gin.Context) {
	var req RecordReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	month, err := parseMonth(req.Month)
	if err != nil {
		h.BadRequest(c, "Month must be in YYYY-MM format")
		return
	}

	info, err := h.readingService.RecordReading(c.Request.Context(), appbilling.RecordReadingInput{
		RoomID:           req.RoomID,
		Month:            month,
		ElectricityIndex: req.ElectricityIndex,
		WaterIndex:       req.WaterIndex,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toReadingResponse(*info))
}

// List returns all readings of a month
func (h *MeterReadingHandler) List(c *gin.Context) {
	month, err := h.monthQuery(c)
	if err != nil {
		return
	}

	readings, err := h.readingService.ListReadings(c.Request.Context(), month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]ReadingResponse, 0, len(readings))
	for _, r := range readings {
		out = append(out, toReadingResponse(r))
	}
	h.Success(c, out)
}

// GetForRoom returns one room's reading for a month
func (h *MeterReadingHandler) GetForRoom(c *gin.Context) {
	month, err := h.monthQuery(c)
	if err != nil {
		return
	}

	info, err := h.readingService.GetReading(c.Request.Context(), c.Param("id"), month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toReadingResponse(*info))
}

func (h *MeterReadingHandler) monthQuery(c *gin.Context) (time.Time, error) {
	month, err := parseMonth(c.Query("month"))
	if err != nil {
		h.BadRequest(c, "Query parameter month must be in YYYY-MM format")
		return time.Time{}, err
	}
	return month, nil
}
