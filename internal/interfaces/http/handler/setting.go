package handler

import (
	"github.com/gin-gonic/gin"

	appbilling "github.com/rental/backend/internal/application/billing"
	"github.com/rental/backend/internal/domain/billing"
)

// SettingHandler handles billing settings requests
type SettingHandler struct {
	BaseHandler
	settingService *appbilling.SettingService
}

// NewSettingHandler creates a new setting handler
func NewSettingHandler(settingService *appbilling.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// RegisterRoutes registers settings routes on a manager-only group
func (h *SettingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.List)
	rg.GET("/settings/:key", h.Get)
	rg.PUT("/settings/:key", h.Upsert)
}

// UpdateSettingRequest is the settings change request body
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// SettingResponse describes one billing setting
type SettingResponse struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

func toSettingResponse(s *billing.Setting) SettingResponse {
	return SettingResponse{
		Key:         s.Key,
		Value:       s.Value,
		Description: s.Description,
	}
}

// List returns all billing settings
func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.settingService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]SettingResponse, 0, len(settings))
	for i := range settings {
		out = append(out, toSettingResponse(&settings[i]))
	}
	h.Success(c, out)
}

// Get returns one setting by key
func (h *SettingHandler) Get(c *gin.Context) {
	setting, err := h.settingService.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSettingResponse(setting))
}

// Upsert creates or replaces a setting's value
func (h *SettingHandler) Upsert(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	setting, err := h.settingService.Upsert(c.Request.Context(), appbilling.UpdateSettingInput{
		Key:   c.Param("key"),
		Value: req.Value,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSettingResponse(setting))
}
