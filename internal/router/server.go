package router

import (
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/livehouse/internal/config"
	"github.com/iliyamo/livehouse/internal/handler"
	"github.com/iliyamo/livehouse/internal/middleware"
	"github.com/iliyamo/livehouse/internal/venue"
)

// JSONBodyLimit caps request bodies on every route except the upload,
// whose handler enforces MAX_UPLOAD_BYTES itself and answers 400.
const JSONBodyLimit = "1M"

const uploadPath = "/api/upload"

// Stack is everything the HTTP server is assembled from.  Redis, Sessions,
// DB, Frontend may be nil.
type Stack struct {
	Log       *zap.Logger
	DB        handler.Pinger
	Events    *handler.EventHandler
	Uploads   *handler.UploadHandler
	Auth      *handler.AuthHandler
	Venue     *venue.Info
	UploadDir string

	JWTSecret string
	Sessions  middleware.RevocationChecker

	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig

	Frontend echo.MiddlewareFunc
}

// New builds the echo server: global middleware, the front-end shell and
// every API route.
func New(s Stack) *echo.Echo {
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler(log)
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMw.Recover())
	e.Use(echoMw.BodyLimitWithConfig(echoMw.BodyLimitConfig{
		Skipper: func(c echo.Context) bool { return c.Request().URL.Path == uploadPath },
		Limit:   JSONBodyLimit,
	}))
	if s.Frontend != nil {
		e.Use(s.Frontend)
	}

	cache := middleware.NewRedisCache(s.Cache, s.Redis, log)
	limiter := middleware.NewTokenBucket(s.RateLimit, s.Redis, log)
	admin := AdminOnly(s.JWTSecret, s.Sessions)

	RegisterRoutes(e, s.DB)
	RegisterPublic(e, s.Events, s.Venue, cache)
	RegisterUploads(e, s.UploadDir)
	RegisterAuth(e, s.Auth, admin, limiter)
	RegisterAdmin(e, s.Events, s.Uploads, admin, cache)
	return e
}
