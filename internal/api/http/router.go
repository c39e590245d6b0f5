package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agrolink/marketplace-service/internal/api/http/handlers"
	"github.com/agrolink/marketplace-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Profile        *handlers.ProfileHandler
	Matches        *handlers.MatchesHandler
	Chat           *handlers.ChatHandler
	Assistant      *handlers.AssistantHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/session", cfg.Users.Session)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	api.Post("/logout", cfg.Users.Logout)
	api.Put("/session/language", cfg.Users.SetLanguage)

	api.Get("/profile", cfg.Profile.Get)
	api.Put("/profile", cfg.Profile.Update)
	api.Post("/profile/items", cfg.Profile.AddItem)
	api.Delete("/profile/items/:index", cfg.Profile.RemoveItem)
	api.Post("/users/:id/ratings", cfg.Profile.Rate)

	api.Get("/matches", cfg.Matches.List)

	api.Get("/conversations", cfg.Chat.Conversations)
	api.Get("/conversations/:counterpartId/messages", cfg.Chat.Thread)
	api.Post("/messages", cfg.Chat.Send)

	api.Post("/assistant", cfg.Assistant.Ask)
}
