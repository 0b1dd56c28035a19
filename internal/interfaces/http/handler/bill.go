package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appbilling "github.com/rental/backend/internal/application/billing"
	"github.com/rental/backend/internal/domain/billing"
	"github.com/rental/backend/internal/interfaces/http/dto"
)

// BillHandler handles final bill requests
type BillHandler struct {
	BaseHandler
	billService *appbilling.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *appbilling.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// RegisterRoutes registers bill routes
func (h *BillHandler) RegisterRoutes(authed, managed *gin.RouterGroup) {
	authed.GET("/bills/:id", h.Get)
	managed.GET("/bills", h.List)
	managed.POST("/bills/generate", h.Generate)
	managed.POST("/bills/generate-month", h.GenerateMonth)
	managed.DELETE("/bills/:id", h.Delete)
}

// GenerateBillRequest is the single-room generation request body
type GenerateBillRequest struct {
	RoomID string `json:"room_id" binding:"required"`
	Month  string `json:"month" binding:"required,month"`
}

// GenerateMonthRequest is the batch generation request body
type GenerateMonthRequest struct {
	Month string `json:"month" binding:"required,month"`
}

// BillServiceLineResponse describes one service charge on a bill
type BillServiceLineResponse struct {
	ServiceID    string          `json:"service_id"`
	Name         string          `json:"name"`
	PricingType  string          `json:"pricing_type"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	NumResidents int             `json:"num_residents,omitempty"`
	Cost         decimal.Decimal `json:"cost"`
}

// BillResponse describes a final bill
type BillResponse struct {
	ID                uuid.UUID                 `json:"id"`
	RoomID            string                    `json:"room_id"`
	Month             string                    `json:"month"`
	RentAmount        decimal.Decimal           `json:"rent_amount"`
	ElectricityAmount decimal.Decimal           `json:"electricity_amount"`
	WaterAmount       decimal.Decimal           `json:"water_amount"`
	SharedAmount      decimal.Decimal           `json:"shared_amount"`
	ServiceAmount     decimal.Decimal           `json:"service_amount"`
	TotalAmount       decimal.Decimal           `json:"total_amount"`
	Status            string                    `json:"status"`
	DueDate           time.Time                 `json:"due_date"`
	PaidAt            *time.Time                `json:"paid_at,omitempty"`
	ServiceLines      []BillServiceLineResponse `json:"service_lines"`
}

// GenerateMonthResponse reports a batch generation run
type GenerateMonthResponse struct {
	Month        string   `json:"month"`
	Generated    int      `json:"generated"`
	SkippedRooms []string `json:"skipped_rooms"`
}

func toBillResponse(info appbilling.BillInfo) BillResponse {
	lines := make([]BillServiceLineResponse, 0, len(info.ServiceLines))
	for _, l := range info.ServiceLines {
		lines = append(lines, BillServiceLineResponse{
			ServiceID:    l.ServiceID,
			Name:         l.Name,
			PricingType:  string(l.PricingType),
			UnitPrice:    l.UnitPrice,
			NumResidents: l.NumResidents,
			Cost:         l.Cost,
		})
	}
	return BillResponse{
		ID:                info.ID,
		RoomID:            info.RoomID,
		Month:             info.Month.Format(monthLayout),
		RentAmount:        info.RentAmount,
		ElectricityAmount: info.ElectricityAmount,
		WaterAmount:       info.WaterAmount,
		SharedAmount:      info.SharedAmount,
		ServiceAmount:     info.ServiceAmount,
		TotalAmount:       info.TotalAmount,
		Status:            string(info.Status),
		DueDate:           info.DueDate,
		PaidAt:            info.PaidAt,
		ServiceLines:      lines,
	}
}

// Generate builds or rebuilds one room's bill for a month
func (h *BillHandler) Generate(c *gin.Context) {
	var req GenerateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	month, err := parseMonth(req.Month)
	if err != nil {
		h.BadRequest(c, "Month must be in YYYY-MM format")
		return
	}

	info, err := h.billService.GenerateBill(c.Request.Context(), appbilling.GenerateBillInput{
		RoomID: req.RoomID,
		Month:  month,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toBillResponse(*info))
}

// GenerateMonth builds bills for every room whose drafts are confirmed
func (h *BillHandler) GenerateMonth(c *gin.Context) {
	var req GenerateMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	month, err := parseMonth(req.Month)
	if err != nil {
		h.BadRequest(c, "Month must be in YYYY-MM format")
		return
	}

	result, err := h.billService.GenerateMonth(c.Request.Context(), month)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, GenerateMonthResponse{
		Month:        result.Month.Format(monthLayout),
		Generated:    result.Generated,
		SkippedRooms: result.SkippedRooms,
	})
}

// Get returns one bill
func (h *BillHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	info, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBillResponse(*info))
}

// List returns a page of bills
func (h *BillHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	filter := billing.BillFilter{
		RoomID:   c.Query("room_id"),
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if monthStr := c.Query("month"); monthStr != "" {
		month, err := parseMonth(monthStr)
		if err != nil {
			h.BadRequest(c, "Query parameter month must be in YYYY-MM format")
			return
		}
		filter.Month = &month
	}
	if status := c.Query("status"); status != "" {
		s := billing.BillStatus(status)
		if !s.IsValid() {
			h.BadRequest(c, "Unknown bill status")
			return
		}
		filter.Status = &s
	}

	result, err := h.billService.ListBills(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	bills := make([]BillResponse, 0, len(result.Bills))
	for _, b := range result.Bills {
		bills = append(bills, toBillResponse(b))
	}
	h.SuccessWithMeta(c, bills, result.Total, result.Page, result.PageSize)
}

// Delete removes a bill together with its payments and service lines
func (h *BillHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
