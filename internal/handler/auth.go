package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/livehouse/internal/config"
	"github.com/iliyamo/livehouse/internal/middleware"
	"github.com/iliyamo/livehouse/internal/utils"
)

// SessionStore records revoked admin tokens.  *repository.SessionRepo
// implements it.
type SessionStore interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
}

// AuthHandler bundles dependencies for the admin session endpoints.
type AuthHandler struct {
	Secret       string
	TTLMin       int
	PasswordHash string
	Sessions     SessionStore // optional
	Log          *zap.Logger
}

// NewAuthHandler hashes the configured admin password unless a hash is
// given directly.  The plaintext is not retained.
func NewAuthHandler(cfg config.Config, sessions SessionStore, log *zap.Logger) (*AuthHandler, error) {
	hash, err := utils.AdminPasswordHash(cfg.AdminPassword, cfg.AdminPasswordHash, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{
		Secret:       cfg.JWTSecret,
		TTLMin:       cfg.AdminTTLMin,
		PasswordHash: hash,
		Sessions:     sessions,
		Log:          log,
	}, nil
}

// ----- DTOs -----

type loginReq struct {
	Password string `json:"password"`
}

type tokenResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type sessionResp struct {
	Admin   bool      `json:"admin"`
	Expires time.Time `json:"expires"`
}

// Login: POST /api/admin/login exchanges the shared password for a token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !utils.VerifyPassword(h.PasswordHash, req.Password) {
		h.Log.Warn("admin login failed", zap.String("ip", c.RealIP()))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Incorrect password"})
	}
	tok, err := utils.NewAdminToken(h.Secret, h.TTLMin)
	if err != nil {
		h.Log.Error("issue admin token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token issue failed"})
	}
	return c.JSON(http.StatusOK, tokenResp{Token: tok.Token, Expires: tok.Exp})
}

// Session: GET /api/admin/session (admin) confirms the token is valid.
func (h *AuthHandler) Session(c echo.Context) error {
	exp, _ := c.Get(middleware.CtxExpires).(time.Time)
	return c.JSON(http.StatusOK, sessionResp{Admin: true, Expires: exp})
}

// Logout: POST /api/admin/logout (admin) revokes the presented token.
// Without a revocation store (no Redis) it still answers 204, but the token
// stays valid until it expires; a warning is logged.
func (h *AuthHandler) Logout(c echo.Context) error {
	if !h.revocable() {
		h.Log.Warn("logout without revocation store; token valid until expiry",
			zap.String("jti", tokenID(c)))
		return c.NoContent(http.StatusNoContent)
	}
	exp, _ := c.Get(middleware.CtxExpires).(time.Time)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Sessions.Revoke(ctx, tokenID(c), exp); err != nil {
		h.Log.Error("revoke admin token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to end session"})
	}
	return c.NoContent(http.StatusNoContent)
}

// revocable reports whether logout can end a token before its expiry.
func (h *AuthHandler) revocable() bool {
	if h.Sessions == nil {
		return false
	}
	if s, ok := h.Sessions.(interface{ Enabled() bool }); ok {
		return s.Enabled()
	}
	return true
}

func tokenID(c echo.Context) string {
	jti, _ := c.Get(middleware.CtxTokenID).(string)
	return jti
}
