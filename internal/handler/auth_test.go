package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/livehouse/internal/config"
	"github.com/iliyamo/livehouse/internal/middleware"
	"github.com/iliyamo/livehouse/internal/utils"
)

type mockSessions struct {
	revokeFn func(ctx context.Context, jti string, until time.Time) error
}

func (m *mockSessions) Revoke(ctx context.Context, jti string, until time.Time) error {
	return m.revokeFn(ctx, jti, until)
}

func newAuth(t *testing.T, sessions SessionStore) *AuthHandler {
	t.Helper()
	h, err := NewAuthHandler(config.Config{
		JWTSecret: "s3cret", AdminPassword: "admin", AdminTTLMin: 60, BcryptCost: bcrypt.MinCost,
	}, sessions, nil)
	require.NoError(t, err)
	return h
}

func TestLogin(t *testing.T) {
	h := newAuth(t, nil)

	c, rec := newCtx(http.MethodPost, "/api/admin/login", `{"password":"wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Incorrect password"}`, rec.Body.String())

	c, rec = newCtx(http.MethodPost, "/api/admin/login", `{"password":"admin"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp tokenResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	claims, err := utils.ParseAdminToken("s3cret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, utils.AdminRole, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.Expires, 10*time.Second)
}

func TestLogin_PrecomputedHash(t *testing.T) {
	hash, err := utils.HashPassword("door", bcrypt.MinCost)
	require.NoError(t, err)
	h, err := NewAuthHandler(config.Config{JWTSecret: "x", AdminPassword: "admin", AdminPasswordHash: hash, AdminTTLMin: 5}, nil, nil)
	require.NoError(t, err)

	c, rec := newCtx(http.MethodPost, "/api/admin/login", `{"password":"admin"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, rec = newCtx(http.MethodPost, "/api/admin/login", `{"password":"door"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	var revoked string
	h := newAuth(t, &mockSessions{revokeFn: func(_ context.Context, jti string, until time.Time) error {
		revoked = jti
		assert.Equal(t, exp, until)
		return nil
	}})
	c, rec := newCtx(http.MethodPost, "/api/admin/logout", "")
	c.Set(middleware.CtxTokenID, "abc123")
	c.Set(middleware.CtxExpires, exp)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "abc123", revoked)
}

func TestLogoutStoreFailure(t *testing.T) {
	h := newAuth(t, &mockSessions{revokeFn: func(context.Context, string, time.Time) error {
		return errors.New("redis down")
	}})
	c, rec := newCtx(http.MethodPost, "/api/admin/logout", "")

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

type disabledSessions struct{ mockSessions }

func (disabledSessions) Enabled() bool { return false }

func TestLogoutWithoutRevocationStoreWarns(t *testing.T) {
	for name, sessions := range map[string]SessionStore{
		"nil store":      nil,
		"disabled store": &disabledSessions{},
	} {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			h := newAuth(t, sessions)
			h.Log = zap.New(core)
			c, rec := newCtx(http.MethodPost, "/api/admin/logout", "")
			c.Set(middleware.CtxTokenID, "abc123")

			require.NoError(t, h.Logout(c))
			assert.Equal(t, http.StatusNoContent, rec.Code)
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, "abc123", logs.All()[0].ContextMap()["jti"])
		})
	}
}

func TestSession(t *testing.T) {
	h := newAuth(t, nil)
	exp := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	c, rec := newCtx(http.MethodGet, "/api/admin/session", "")
	c.Set(middleware.CtxExpires, exp)

	require.NoError(t, h.Session(c))
	assert.JSONEq(t, `{"admin":true,"expires":"2026-10-14T12:00:00Z"}`, rec.Body.String())
}
