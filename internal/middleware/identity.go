package middleware

import "github.com/labstack/echo/v4"

// Context keys set by JWTAuth.
const (
	CtxUserID  = "user_id"
	CtxRole    = "role"
	CtxTokenID = "jti"
	CtxExpires = "exp"
)

// currentUserID returns the authenticated subject, or "anon" for requests
// that carry no admin token.
func currentUserID(c echo.Context) string {
	if s, ok := c.Get(CtxUserID).(string); ok && s != "" {
		return s
	}
	return "anon"
}
