package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/livehouse/internal/venue"
)

// Venue: GET /api/venue returns the static venue content.
func Venue(info *venue.Info) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, info)
	}
}
