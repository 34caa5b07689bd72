package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/livehouse/internal/handler"
)

// RegisterAdmin registers the schedule mutations.  Every route requires the
// admin chain.  cache, when set, runs after authentication so that only
// accepted mutations purge cached reads.
func RegisterAdmin(e *echo.Echo, h *handler.EventHandler, u *handler.UploadHandler, admin []echo.MiddlewareFunc, cache echo.MiddlewareFunc) {
	mw := append(append([]echo.MiddlewareFunc{}, admin...), optional(cache)...)

	// ---- Events ----
	e.POST("/api/events", h.Create, mw...)
	e.PUT("/api/events/:id", h.Update, mw...)
	e.DELETE("/api/events/:id", h.Delete, mw...)

	// ---- Flyers ----
	e.POST(uploadPath, u.Upload, admin...)
}
