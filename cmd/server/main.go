package main

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "github.com/opolyo01/etl-classes/docs"

	"github.com/opolyo01/etl-classes/internal/config"
	"github.com/opolyo01/etl-classes/internal/handler"
	"github.com/opolyo01/etl-classes/internal/ingest"
	"github.com/opolyo01/etl-classes/internal/logger"
	"github.com/opolyo01/etl-classes/internal/ratings"
	"github.com/opolyo01/etl-classes/internal/repository"
	"github.com/opolyo01/etl-classes/internal/repository/postgres"
	"github.com/opolyo01/etl-classes/internal/repository/sqlite"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (customValidator *CustomValidator) Validate(i interface{}) error {
	if err := customValidator.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// @title Class Schedule API
// @version 1.0
// @description Section catalog search, conflict-free schedule composition and instructor ratings

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api
// @schemes https http

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	store, err := openStore(context.Background(), cfg)
	if err != nil {
		log.Fatal("failed to open store", zap.Error(err))
	}
	defer store.Close()

	rc := ratings.NewClient(ratings.Config{
		BaseURL:  cfg.RMPBaseURL,
		SchoolID: cfg.RMPSchoolID,
		Timeout:  cfg.RMPTimeout,
		CacheTTL: cfg.RatingsTTL,
	})

	e := echo.New()

	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	handler.SetupSectionRoutes(e, store, rc)
	handler.SetupScheduleRoutes(e, store, rc)

	if cfg.RefreshCron != "" {
		startRefresh(cfg, store, log)
	}

	log.Info("starting server", zap.String("port", cfg.Port))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func openStore(ctx context.Context, cfg config.Config) (repository.SectionStore, error) {
	if cfg.DatabaseURL != "" {
		return postgres.NewConnection(ctx, cfg.DatabaseURL)
	}
	return sqlite.NewStore(cfg.SQLitePath)
}

// startRefresh re-ingests the configured term on the REFRESH_CRON
// schedule so the catalog tracks the live site without restarts.
func startRefresh(cfg config.Config, store repository.SectionStore, log *zap.Logger) {
	runner := &ingest.Runner{
		Extractor: ingest.NewExtractor(cfg.BaseURL, cfg.UserAgent, cfg.RequestTimeout),
		Store:     store,
		Log:       log,
	}

	c := cron.New()
	_, err := c.AddFunc(cfg.RefreshCron, func() {
		if _, err := runner.Run(context.Background(), cfg.Term, cfg.Dept); err != nil {
			log.Error("scheduled refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		log.Fatal("invalid REFRESH_CRON", zap.String("spec", cfg.RefreshCron), zap.Error(err))
	}
	c.Start()
	log.Info("scheduled catalog refresh", zap.String("spec", cfg.RefreshCron))
}
