package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/livehouse/internal/handler"    // handlers that implement the endpoints
	"github.com/iliyamo/livehouse/internal/middleware" // JWT authentication and role enforcement
	"github.com/iliyamo/livehouse/internal/utils"
	"github.com/iliyamo/livehouse/internal/venue"
)

// RegisterRoutes registers the health check used by load balancers.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// AdminOnly returns the middleware chain guarding admin routes: a valid,
// unrevoked admin token with the ADMIN role.
func AdminOnly(secret string, revoked middleware.RevocationChecker) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.JWTAuth(secret, revoked),
		middleware.RequireRole(utils.AdminRole),
	}
}

// RegisterPublic registers the unauthenticated read endpoints.  cache wraps
// the schedule reads and may be nil.
func RegisterPublic(e *echo.Echo, h *handler.EventHandler, info *venue.Info, cache echo.MiddlewareFunc) {
	mw := optional(cache)
	e.GET("/api/events", h.List, mw...)
	e.GET("/api/events/next", h.Next, mw...)
	e.GET("/api/events/:id", h.Get, mw...)
	e.GET("/api/schedule", h.Schedule, mw...)
	e.GET("/api/venue", handler.Venue(info))
}

// RegisterUploads serves stored flyer images from dir under /uploads.
func RegisterUploads(e *echo.Echo, dir string) {
	e.Static("/uploads", dir)
}

// RegisterAuth registers the admin session endpoints.  limiter throttles
// login attempts and may be nil.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, admin []echo.MiddlewareFunc, limiter echo.MiddlewareFunc) {
	e.POST("/api/admin/login", a.Login, optional(limiter)...)
	e.GET("/api/admin/session", a.Session, admin...)
	e.POST("/api/admin/logout", a.Logout, admin...)
}

func optional(mw ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	out := make([]echo.MiddlewareFunc, 0, len(mw))
	for _, m := range mw {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}
