package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records-api/internal/handler"
	"github.com/iliyamo/academic-records-api/internal/middleware"
)

// RegisterRoutes registers routes that do not depend on any handler
// state. Currently it exposes only a health check used by load balancers
// to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the authentication endpoints. Register and login
// are open; /profile sits behind the JWT access guard, which attaches
// the verified identity to the request context before the handler runs.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	e.GET("/profile", a.Profile, middleware.JWTAuth(jwtSecret))
}

// RegisterStudents wires the student CRUD endpoints under /v1/students.
// The optional cache middleware (may be nil) is applied to the read
// endpoints only; writes always reach the database.
func RegisterStudents(e *echo.Echo, s *handler.StudentHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/students")
	if cache != nil {
		g.GET("", s.List, cache)
		g.GET("/:id", s.Get, cache)
	} else {
		g.GET("", s.List)
		g.GET("/:id", s.Get)
	}
	g.POST("", s.Create)
	g.PUT("/:id", s.Update)
	g.DELETE("/:id", s.Delete)
}

// RegisterItems wires the paginated item listing under /v1/items.
func RegisterItems(e *echo.Echo, i *handler.ItemHandler, cache echo.MiddlewareFunc) {
	if cache != nil {
		e.GET("/v1/items", i.List, cache)
		return
	}
	e.GET("/v1/items", i.List)
}
