package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/livehouse/internal/config"
	"github.com/iliyamo/livehouse/internal/database"
	"github.com/iliyamo/livehouse/internal/handler"
	"github.com/iliyamo/livehouse/internal/holiday"
	"github.com/iliyamo/livehouse/internal/logger"
	"github.com/iliyamo/livehouse/internal/repository"
	"github.com/iliyamo/livehouse/internal/router"
	"github.com/iliyamo/livehouse/internal/service"
	"github.com/iliyamo/livehouse/internal/venue"
	"github.com/iliyamo/livehouse/internal/web"
)

func main() {
	cfg := config.Load() // Load environment config

	zl, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return err
	}
	defer db.Close()

	setupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := database.Migrate(setupCtx, db); err != nil {
		return err
	}
	events := repository.NewEventRepo(db)
	if cfg.SeedDemo {
		n, err := events.SeedIfEmpty(setupCtx, time.Now().In(loc))
		if err != nil {
			return err
		}
		if n > 0 {
			zl.Info("seeded demo events", zap.Int("count", n))
		}
	}

	// Redis is optional; without it caching, rate limiting and token
	// revocation are off.
	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	} else {
		zl.Info("redis not configured; cache, rate limit and logout revocation disabled")
	}
	sessions := repository.NewSessionRepo(rdb, "")

	cal := holiday.NewCalendar(cfg.HolidayICS, loc, zl)
	if cfg.HolidayICS != "" {
		_ = cal.Refresh(setupCtx)
		sched, err := cal.Schedule(cfg.HolidayRefreshCron)
		if err != nil {
			return err
		}
		defer sched.Stop()
	}

	info, err := venue.Load(cfg.VenueFile)
	if err != nil {
		return err
	}

	var pub handler.ChangePublisher
	if p := service.NewPublisher(cfg.AMQPURL, zl); p != nil {
		pub = p
	}

	eventHandler := handler.NewEventHandler(events, pub, cal, loc, zl)
	uploadHandler := handler.NewUploadHandler(cfg.UploadDir, cfg.MaxUploadBytes, zl)
	authHandler, err := handler.NewAuthHandler(cfg, sessions, zl)
	if err != nil {
		return err
	}

	frontend, err := web.Frontend(cfg.IsProduction(), cfg.StaticDir, cfg.DevServerURL)
	if err != nil {
		return err
	}

	e := router.New(router.Stack{
		Log:       zl,
		DB:        db,
		Events:    eventHandler,
		Uploads:   uploadHandler,
		Auth:      authHandler,
		Venue:     info,
		UploadDir: cfg.UploadDir,
		JWTSecret: cfg.JWTSecret,
		Sessions:  sessions,
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Frontend:  frontend,
	})

	addr := ":" + cfg.Port
	zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))

	errCh := make(chan error, 1)
	go func() { errCh <- e.Start(addr) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	zl.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}
