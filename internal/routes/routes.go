package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/propspace/propspace-backend/internal/config"
	"github.com/propspace/propspace-backend/internal/handlers"
	"github.com/propspace/propspace-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	healthHandler *handlers.HealthHandler,
	propertyHandler *handlers.PropertyHandler,
	adminHandler *handlers.AdminHandler,
	requestHandler *handlers.RequestHandler,
	moderationHandler *handlers.ModerationHandler,
	notificationHandler *handlers.NotificationHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health
	api.Get("/health", healthHandler.Check)

	// Public browse
	api.Get("/properties", propertyHandler.List)
	api.Get("/properties/:id", propertyHandler.Get)

	jwt := middleware.JWTProtected(cfg)

	// Listings — owner surface
	api.Post("/properties", jwt, propertyHandler.Create)
	api.Get("/owner/properties", jwt, propertyHandler.ListOwn)
	api.Put("/owner/properties/:id", jwt, propertyHandler.UpdateOwn)
	api.Delete("/owner/properties/:id", jwt, propertyHandler.DeleteOwn)
	api.Get("/owner/property-requests", jwt, requestHandler.ListIncoming)

	// Favorites and reports
	api.Post("/properties/:id/favorite", jwt, propertyHandler.Favorite)
	api.Delete("/properties/:id/favorite", jwt, propertyHandler.Unfavorite)
	api.Post("/properties/:id/report", jwt, moderationHandler.ReportProperty)

	// Transaction requests
	api.Post("/property-requests", jwt, requestHandler.Create)
	api.Get("/property-requests", jwt, requestHandler.ListMine)
	api.Put("/property-requests/:id/status", jwt, requestHandler.Respond)
	api.Put("/property-requests/:id/cancel", jwt, requestHandler.Cancel)

	// Notifications
	api.Get("/notifications", jwt, notificationHandler.List)

	// Admin panel
	admin := api.Group("/admin", jwt, middleware.AdminRequired(db, cfg))
	admin.Get("/properties", adminHandler.ListProperties)
	admin.Put("/properties/:id/approve", adminHandler.DecideProperty)
	admin.Get("/requests", adminHandler.ListUpdateRequests)
	admin.Put("/requests/:id/handle-property-update", adminHandler.DecideUpdateRequest)
	admin.Get("/reports", moderationHandler.ListReports)
	admin.Put("/reports/:id", moderationHandler.ActionReport)
}
