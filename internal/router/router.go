package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ankitkushwaha90/techforge/internal/config"
	"github.com/Ankitkushwaha90/techforge/internal/handler"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ActivityHandler  *handler.ActivityHandler
	AuthHandler      *handler.AuthHandler
	CatalogHandler   *handler.CatalogHandler
	ForumHandler     *handler.ForumHandler
	ResourceHandler  *handler.ResourceHandler
	ContactHandler   *handler.ContactHandler
	DashboardHandler *handler.DashboardHandler
	JWTMiddleware    fiber.Handler
	OptionalJWT      fiber.Handler
	ActivityTracker  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided middleware, or no-ops if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	optionalJWT := deps.OptionalJWT
	if optionalJWT == nil {
		optionalJWT = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Page-view tracking sits behind the optional JWT so anonymous
	// requests pass through untracked.
	if deps.ActivityTracker != nil {
		app.Use(optionalJWT, deps.ActivityTracker)
	}

	// Accounts & sessions
	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)

		profile := api.Group("/profile", jwtMiddleware)
		deps.AuthHandler.RegisterProfile(profile)
	}

	// Activity feed (owner-scoped, auth required)
	if deps.ActivityHandler != nil {
		activities := api.Group("/activities", jwtMiddleware)
		deps.ActivityHandler.Register(activities)
	}

	// Course catalog
	if deps.CatalogHandler != nil {
		courses := api.Group("/courses", optionalJWT)
		deps.CatalogHandler.Register(courses)
	}

	// Discussion board
	if deps.ForumHandler != nil {
		forumPublic := api.Group("/forum")
		forumProtected := api.Group("/forum", jwtMiddleware)
		deps.ForumHandler.Register(forumPublic, forumProtected)
	}

	// Downloadable resources
	if deps.ResourceHandler != nil {
		resourcesPublic := api.Group("/resources")
		resourcesProtected := api.Group("/resources", jwtMiddleware)
		deps.ResourceHandler.Register(resourcesPublic, resourcesProtected)
	}

	// Contact form and message management
	if deps.ContactHandler != nil {
		contactPublic := api.Group("/contact")
		contactProtected := api.Group("/contact", jwtMiddleware)
		deps.ContactHandler.Register(contactPublic, contactProtected)
	}

	// Aggregated dashboard & search
	if deps.DashboardHandler != nil {
		public := api.Group("")
		protected := api.Group("", jwtMiddleware)
		deps.DashboardHandler.Register(public, protected)
	}
}
