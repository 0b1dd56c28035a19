package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appbilling "github.com/rental/backend/internal/application/billing"
	"github.com/rental/backend/internal/domain/billing"
)

// UtilityTotalHandler handles building-wide utility total requests
type UtilityTotalHandler struct {
	BaseHandler
	totalService *appbilling.UtilityTotalService
}

// NewUtilityTotalHandler creates a new utility total handler
func NewUtilityTotalHandler(totalService *appbilling.UtilityTotalService) *UtilityTotalHandler {
	return &UtilityTotalHandler{totalService: totalService}
}

// RegisterRoutes registers utility total routes on a manager-only group
func (h *UtilityTotalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/utility-totals", h.Upsert)
	rg.GET("/utility-totals", h.List)
}

// UpsertUtilityTotalRequest is the monthly building totals request body
type UpsertUtilityTotalRequest struct {
	Month            string          `json:"month" binding:"required,month"`
	TotalElectricity decimal.Decimal `json:"total_electricity" binding:"required"`
	TotalWater       decimal.Decimal `json:"total_water" binding:"required"`
	ElectricityCost  decimal.Decimal `json:"electricity_cost"`
	WaterCost        decimal.Decimal `json:"water_cost"`
}

// UtilityTotalResponse describes a month's building totals
type UtilityTotalResponse struct {
	Month            string          `json:"month"`
	TotalElectricity decimal.Decimal `json:"total_electricity"`
	TotalWater       decimal.Decimal `json:"total_water"`
	ElectricityCost  decimal.Decimal `json:"electricity_cost"`
	WaterCost        decimal.Decimal `json:"water_cost"`
}

func toUtilityTotalResponse(t *billing.UtilityTotal) UtilityTotalResponse {
	return UtilityTotalResponse{
		Month:            t.Month.Format(monthLayout),
		TotalElectricity: t.TotalElectricity,
		TotalWater:       t.TotalWater,
		ElectricityCost:  t.ElectricityCost,
		WaterCost:        t.WaterCost,
	}
}

// Upsert creates or replaces the building totals of a month
func (h *UtilityTotalHandler) Upsert(c *gin.Context) {
	var req UpsertUtilityTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	month, err := parseMonth(req.Month)
	if err != nil {
		h.BadRequest(c, "Month must be in YYYY-MM format")
		return
	}

	total, err := h.totalService.Upsert(c.Request.Context(), appbilling.UpsertUtilityTotalInput{
		Month:            month,
		TotalElectricity: req.TotalElectricity,
		TotalWater:       req.TotalWater,
		ElectricityCost:  req.ElectricityCost,
		WaterCost:        req.WaterCost,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUtilityTotalResponse(total))
}

// List returns the totals of all recorded months, or a single month when
// the month query parameter is set
func (h *UtilityTotalHandler) List(c *gin.Context) {
	if monthStr := c.Query("month"); monthStr != "" {
		month, err := parseMonth(monthStr)
		if err != nil {
			h.BadRequest(c, "Query parameter month must be in YYYY-MM format")
			return
		}
		total, err := h.totalService.GetByMonth(c.Request.Context(), month)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, toUtilityTotalResponse(total))
		return
	}

	totals, err := h.totalService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]UtilityTotalResponse, 0, len(totals))
	for i := range totals {
		out = append(out, toUtilityTotalResponse(&totals[i]))
	}
	h.Success(c, out)
}
