package main

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/opolyo01/etl-classes/internal/config"
	"github.com/opolyo01/etl-classes/internal/logger"
	"github.com/opolyo01/etl-classes/internal/mcptools"
	"github.com/opolyo01/etl-classes/internal/ratings"
	"github.com/opolyo01/etl-classes/internal/repository"
	"github.com/opolyo01/etl-classes/internal/repository/postgres"
	"github.com/opolyo01/etl-classes/internal/repository/sqlite"
)

var version = "dev"

func main() {
	cfg := config.Load()

	// Logs go to stderr; stdout carries the MCP protocol.
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

	s := server.NewMCPServer(
		"etl-classes",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	suggest := mcptools.NewSuggestTool(store, rc)
	s.AddTool(suggest.Definition(), suggest.Handle)

	compose := mcptools.NewComposeTool(store, rc)
	s.AddTool(compose.Definition(), compose.Handle)

	lookup := mcptools.NewRatingsTool(rc)
	s.AddTool(lookup.Definition(), lookup.Handle)

	export := mcptools.NewExportTool(store)
	s.AddTool(export.Definition(), export.Handle)

	log.Info("serving MCP over stdio")
	if err := server.ServeStdio(s); err != nil {
		log.Fatal("mcp server exited", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.Config) (repository.SectionStore, error) {
	if cfg.DatabaseURL != "" {
		return postgres.NewConnection(ctx, cfg.DatabaseURL)
	}
	return sqlite.NewStore(cfg.SQLitePath)
}
