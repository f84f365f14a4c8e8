// cmd/tools/export-applications/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"dygs-jobs/internal/common/config"
	"dygs-jobs/internal/common/database"
	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/storage"
)

// export-applications dumps every stored application into an xlsx workbook,
// whichever backend holds them.
func main() {
	var (
		configPath string
		outPath    string
		sheet      string
		timeout    time.Duration
	)
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file (defaults to configs/config.yaml lookup)")
	pflag.StringVarP(&outPath, "out", "o", "applications-export.xlsx", "Output workbook path")
	pflag.StringVar(&sheet, "sheet", "Applications", "Sheet name in the output workbook")
	pflag.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall export timeout")
	pflag.Parse()

	if err := run(configPath, outPath, sheet, timeout); err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, outPath, sheet string, timeout time.Duration) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, "stderr")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var deps storage.Dependencies
	switch cfg.Storage.Backend {
	case config.BackendMongo:
		client, err := database.NewMongo(ctx, cfg.Database.Mongo)
		if err != nil {
			return err
		}
		defer client.Close(context.Background())
		deps.Mongo = client.DB
	case config.BackendPostgres:
		client, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		defer client.Close()
		deps.Postgres = client.DB
	}

	store, err := storage.New(ctx, cfg, deps, log)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	apps, err := store.List(ctx)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := storage.WriteWorkbook(f, sheet, apps); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Info("Export complete", map[string]interface{}{
		"backend":      store.Backend(),
		"applications": len(apps),
		"out":          outPath,
	})
	return nil
}
