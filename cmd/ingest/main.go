package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/opolyo01/etl-classes/internal/config"
	"github.com/opolyo01/etl-classes/internal/ingest"
	"github.com/opolyo01/etl-classes/internal/logger"
	"github.com/opolyo01/etl-classes/internal/repository"
	"github.com/opolyo01/etl-classes/internal/repository/postgres"
	"github.com/opolyo01/etl-classes/internal/repository/sqlite"
)

func main() {
	cfg := config.Load()

	term := flag.String("term", cfg.Term, "term to ingest, e.g. 2026W")
	dept := flag.String("dept", cfg.Dept, `department code, or "every" for all departments`)
	importCSV := flag.String("import-csv", "", "load sections from a CSV snapshot instead of the live site")
	exportCSV := flag.String("export-csv", "", "after loading, write the term's sections to this CSV file")
	flag.Parse()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open store", zap.Error(err))
	}
	defer store.Close()

	if *importCSV != "" {
		if err := loadSnapshot(ctx, store, *importCSV); err != nil {
			log.Fatal("csv import failed", zap.String("path", *importCSV), zap.Error(err))
		}
		log.Info("csv import complete", zap.String("path", *importCSV))
	} else {
		runner := &ingest.Runner{
			Extractor: ingest.NewExtractor(cfg.BaseURL, cfg.UserAgent, cfg.RequestTimeout),
			Store:     store,
			Log:       log,
		}
		if _, err := runner.Run(ctx, *term, *dept); err != nil {
			log.Fatal("ingest failed", zap.Error(err))
		}
	}

	if *exportCSV != "" {
		if err := writeSnapshot(ctx, store, *term, *exportCSV); err != nil {
			log.Fatal("csv export failed", zap.String("path", *exportCSV), zap.Error(err))
		}
		log.Info("csv export complete", zap.String("path", *exportCSV))
	}
}

func openStore(ctx context.Context, cfg config.Config) (repository.SectionStore, error) {
	if cfg.DatabaseURL != "" {
		return postgres.NewConnection(ctx, cfg.DatabaseURL)
	}
	return sqlite.NewStore(cfg.SQLitePath)
}

func loadSnapshot(ctx context.Context, store repository.SectionStore, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sections, err := ingest.ReadCSV(f)
	if err != nil {
		return err
	}
	for i := range sections {
		if err := store.UpsertSection(ctx, &sections[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshot(ctx context.Context, store repository.SectionStore, term, path string) error {
	sections, err := store.SectionsByTerm(ctx, term)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return ingest.WriteCSV(f, sections)
}
