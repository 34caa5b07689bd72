package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/livehouse/internal/utils"
)

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer admin token
// and injects its claims into the request context under CtxUserID, CtxRole,
// CtxTokenID and CtxExpires.  revoked may be nil.  A revocation lookup that
// fails is treated as not revoked; the token signature and expiry still
// apply.
func JWTAuth(secret string, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Admin login required"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

			claims, err := utils.ParseAdminToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}
			if revoked != nil {
				gone, err := revoked.IsRevoked(c.Request().Context(), claims.ID)
				if err == nil && gone {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Session has ended"})
				}
			}

			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxTokenID, claims.ID)
			c.Set(CtxExpires, claims.ExpiresAt.Time)
			return next(c)
		}
	}
}
