package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/livehouse/internal/config"
	"github.com/iliyamo/livehouse/internal/utils"
)

const secret = "test-secret"

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(_ context.Context, jti string) (bool, error) { return r[jti], nil }

func protected(revoked RevocationChecker) *echo.Echo {
	e := echo.New()
	e.POST("/api/events", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"user": c.Get(CtxUserID), "jti": c.Get(CtxTokenID)})
	}, JWTAuth(secret, revoked), RequireRole(utils.AdminRole))
	return e
}

func do(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuth(t *testing.T) {
	tok, err := utils.NewAdminToken(secret, 10)
	require.NoError(t, err)
	other, err := utils.NewAdminToken("another-secret", 10)
	require.NoError(t, err)

	e := protected(revokedSet{})
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodPost, "/api/events", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodPost, "/api/events", other.Token).Code)

	rec := do(e, http.MethodPost, "/api/events", tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), tok.JTI)
}

func TestJWTAuthRejectsRevokedToken(t *testing.T) {
	tok, err := utils.NewAdminToken(secret, 10)
	require.NoError(t, err)

	e := protected(revokedSet{tok.JTI: true})
	rec := do(e, http.MethodPost, "/api/events", tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Session has ended"}`, rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set(CtxRole, "GUEST")
				return next(c)
			}
		}, RequireRole(utils.AdminRole))

	assert.Equal(t, http.StatusForbidden, do(e, http.MethodGet, "/x", "").Code)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCacheServesHitsAndPurgesOnMutation(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{
		Enabled: true, Methods: map[string]bool{http.MethodGet: true},
		TTL: time.Minute, Prefix: "test:cache", MaxBodyBytes: 1 << 20,
	}
	calls := 0
	e := echo.New()
	e.Use(NewRedisCache(cfg, rdb, zap.NewNop()))
	e.GET("/api/events", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, []int{calls})
	})
	e.DELETE("/api/events/:id", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})

	first := do(e, http.MethodGet, "/api/events", "")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := do(e, http.MethodGet, "/api/events", "")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	do(e, http.MethodDelete, "/api/events/1", "")
	third := do(e, http.MethodGet, "/api/events", "")
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}

func TestCacheKeysOnRequestPath(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.CacheConfig{
		Enabled: true, Methods: map[string]bool{http.MethodGet: true},
		TTL: time.Minute, Prefix: "test:cache", MaxBodyBytes: 1 << 20,
	}
	e := echo.New()
	e.GET("/api/events/:id", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id")})
	}, NewRedisCache(cfg, rdb, zap.NewNop()))

	one := do(e, http.MethodGet, "/api/events/1", "")
	assert.Equal(t, "MISS", one.Header().Get("X-Cache"))
	two := do(e, http.MethodGet, "/api/events/2", "")
	assert.Equal(t, "MISS", two.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"id":"2"}`, two.Body.String())

	again := do(e, http.MethodGet, "/api/events/1", "")
	assert.Equal(t, "HIT", again.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"id":"1"}`, again.Body.String())
}

func TestCacheDisabledWithoutRedis(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{http.MethodGet: true}}
	e := echo.New()
	e.Use(NewRedisCache(cfg, nil, nil))
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	rec := do(e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestTokenBucketBlocksAfterCapacity(t *testing.T) {
	_, rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Minute,
		TTL: 10 * time.Minute, KeyStrategy: "ip_route", Prefix: "test:rl",
	}
	e := echo.New()
	e.POST("/api/admin/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		NewTokenBucket(cfg, rdb, zap.NewNop()))

	assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/api/admin/login", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/api/admin/login", "").Code)
	rec := do(e, http.MethodPost, "/api/admin/login", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestErrorHandlerShape(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zap.NewNop())
	e.GET("/boom", func(c echo.Context) error { return errors.New("db password leaked") })

	rec := do(e, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, rec.Body.String())
}
