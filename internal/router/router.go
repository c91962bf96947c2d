package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/kcnotes/kcnotes/internal/handler"    // import the handlers that implement business logic
	"github.com/kcnotes/kcnotes/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The /healthz endpoint lets load balancers and monitoring systems
	// verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Signup and signin live directly under /auth and
// need no token; the remaining endpoints require a valid bearer token and
// run JWTAuth before the handler.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/auth")
	// Credential exchange endpoints; both return a freshly signed token.
	g.POST("/signup", a.Signup)
	g.POST("/signin", a.Signin)

	// Protected account endpoints.  JWTAuth rejects missing or invalid
	// tokens with 401 before any handler logic executes, so the handlers
	// can assume c.Get("user_id") carries a verified identity.
	auth := e.Group("/auth")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.PUT("/update", a.UpdatePassword)
	auth.DELETE("/delete", a.DeleteAccount)
	auth.GET("/signout", a.Signout)
}

// RegisterNotes registers the note CRUD routes.  Listing is public by
// design; every other operation requires authentication and is scoped to
// the owner inside the repository.
func RegisterNotes(e *echo.Echo, n *handler.NoteHandler, jwtSecret string) {
	// Public, unscoped listing of all notes.
	e.GET("/notes", n.List)

	g := e.Group("/notes")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", n.Create)
	g.GET("/:id", n.Get)
	g.PATCH("/:id", n.Update)
	g.DELETE("/:id", n.Delete)
}
