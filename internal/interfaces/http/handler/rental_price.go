package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appproperty "github.com/rental/backend/internal/application/property"
)

// RentalPriceHandler handles price history requests
type RentalPriceHandler struct {
	BaseHandler
	priceService *appproperty.RentalPriceService
}

// NewRentalPriceHandler creates a new rental price handler
func NewRentalPriceHandler(priceService *appproperty.RentalPriceService) *RentalPriceHandler {
	return &RentalPriceHandler{priceService: priceService}
}

// RegisterRoutes registers rental price routes on a manager-only group
func (h *RentalPriceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/rooms/:id/prices", h.Set)
	rg.GET("/rooms/:id/prices", h.History)
	rg.PUT("/prices/:id", h.Update)
	rg.DELETE("/prices/:id", h.Delete)
}

// SetPriceRequest is the price entry request body
type SetPriceRequest struct {
	Price         decimal.Decimal `json:"price" binding:"required"`
	EffectiveDate time.Time       `json:"effective_date" binding:"required"`
}

// PriceResponse describes one price history entry
type PriceResponse struct {
	ID            uuid.UUID       `json:"id"`
	RoomID        string          `json:"room_id"`
	Price         decimal.Decimal `json:"price"`
	EffectiveDate time.Time       `json:"effective_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toPriceResponse(info appproperty.RentalPriceInfo) PriceResponse {
	return PriceResponse{
		ID:            info.ID,
		RoomID:        info.RoomID,
		Price:         info.Price,
		EffectiveDate: info.EffectiveDate,
		CreatedAt:     info.CreatedAt,
	}
}

// Set adds a new price history entry for a room
func (h *RentalPriceHandler) Set(c *gin.Context) {
	var req SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.priceService.SetPrice(c.Request.Context(), appproperty.SetRentalPriceInput{
		RoomID:        c.Param("id"),
		Price:         req.Price,
		EffectiveDate: req.EffectiveDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPriceResponse(*info))
}

// History returns a room's full price history
func (h *RentalPriceHandler) History(c *gin.Context) {
	prices, err := h.priceService.GetPriceHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]PriceResponse, 0, len(prices))
	for _, p := range prices {
		out = append(out, toPriceResponse(p))
	}
	h.Success(c, out)
}

// Update changes an existing price entry
func (h *RentalPriceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid price ID")
		return
	}

	var req SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.priceService.UpdatePrice(c.Request.Context(), id, appproperty.SetRentalPriceInput{
		Price:         req.Price,
		EffectiveDate: req.EffectiveDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPriceResponse(*info))
}

// Delete removes a price entry
func (h *RentalPriceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid price ID")
		return
	}

	if err := h.priceService.DeletePrice(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
