package router

import (
	"github.com/gin-gonic/gin"

	"github.com/rental/backend/internal/infrastructure/auth"
	"github.com/rental/backend/internal/interfaces/http/handler"
	"github.com/rental/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the API mounts
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Room         *handler.RoomHandler
	RentalPrice  *handler.RentalPriceHandler
	Occupancy    *handler.OccupancyHandler
	MeterReading *handler.MeterReadingHandler
	UtilityTotal *handler.UtilityTotalHandler
	Draft        *handler.DraftHandler
	Bill         *handler.BillHandler
	Payment      *handler.PaymentHandler
	ServiceItem  *handler.ServiceItemHandler
	Setting      *handler.SettingHandler
	Notification *handler.NotificationHandler
}

// Setup mounts the API under /api/v1. Access tiers: public (login,
// refresh, payment webhook), authenticated, manager, and admin.
func Setup(engine *gin.Engine, jwtService *auth.JWTService, h Handlers) {
	api := engine.Group("/api/v1")

	authed := api.Group("", middleware.JWTAuth(jwtService))
	managed := authed.Group("", middleware.RequireManager())
	admin := authed.Group("", middleware.RequireAdmin())

	h.Auth.RegisterRoutes(api, authed)
	h.User.RegisterRoutes(managed, admin)
	h.Room.RegisterRoutes(authed, managed)
	h.RentalPrice.RegisterRoutes(managed)
	h.Occupancy.RegisterRoutes(authed, managed)
	h.MeterReading.RegisterRoutes(managed)
	h.UtilityTotal.RegisterRoutes(managed)
	h.Draft.RegisterRoutes(authed, managed)
	h.Bill.RegisterRoutes(authed, managed)
	h.Payment.RegisterRoutes(api, authed, managed)
	h.ServiceItem.RegisterRoutes(authed, managed)
	h.Setting.RegisterRoutes(managed)
	h.Notification.RegisterRoutes(authed, managed)
}
