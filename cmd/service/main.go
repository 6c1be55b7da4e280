// File: cmd/service/main.go
// @title        CARDZEN API
// @version      1.0
// @description  卡片市集的後端 API：註冊登入、卡片 CRUD、購買與交易紀錄
// @host         localhost:3000
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式為 "Bearer {token}"
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardzen/internal/cache"
	"cardzen/internal/config"
	"cardzen/internal/database"
	"cardzen/internal/logging"
	appmw "cardzen/internal/middleware"
	"cardzen/internal/router"
	"cardzen/internal/service"
	"cardzen/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "cardzen/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	openDB          = database.Open
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	waitForShutdown = func(ctx context.Context) error {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		return nil
	}
	exitFunc = os.Exit
)

func newCache(cfg *config.Config) (cache.Cache, error) {
	if cfg.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR not set, using in-process cache")
		return cache.NewMemory(), nil
	}
	return newRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}

	logger := logging.New(cfg.Env, cfg.LogLevel)
	log.Logger = logger

	if err := runMigrationsFn(cfg.DatabaseDriver, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	sqlDB, err := openDB(context.Background(), cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	// 單一 writer 佇列，所有寫入依序執行
	db := database.NewHandle(sqlDB, newWorkerPool(1))
	defer db.Close()

	cch, err := newCache(cfg)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer cch.Close()

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Debug = cfg.IsDevelopment()
	e.Use(middleware.RequestID())
	e.Use(appmw.RequestLogger(logger))
	e.Use(middleware.Recover())

	router.Setup(e, db, cch, tokens, appmw.NewAuthRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Str("driver", cfg.DatabaseDriver).Msg("server starting")
		serveErr <- startServer(e, cfg.Addr())
	}()

	sigCtx, cancelWait := context.WithCancel(context.Background())
	defer cancelWait()
	shutdown := make(chan error, 1)
	go func() { shutdown <- waitForShutdown(sigCtx) }()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("伺服器啟動失敗: %w", err)
		}
		return nil
	case <-shutdown:
	}

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("伺服器關閉失敗: %w", err)
	}
	return nil
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if err := run(); err != nil {
		log.Error().Err(err).Msg("service exited")
		exitFunc(1)
	}
}
