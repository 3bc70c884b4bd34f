package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/danielhkuo/activity-star/auth"
	"github.com/danielhkuo/activity-star/cliparse"
	"github.com/danielhkuo/activity-star/db"
	"github.com/danielhkuo/activity-star/loader"
	"github.com/danielhkuo/activity-star/middleware"
	"github.com/danielhkuo/activity-star/router"
	"github.com/danielhkuo/activity-star/star"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.PrintAdminKey {
		fmt.Println(auth.GenerateAdminKey(auth.ScopeStarSchema, cfg.AdminKeySalt))
		return
	}
	if cfg.AdminKeySalt == "" {
		slog.Warn("ADMIN_KEY_SALT not set; load and reset endpoints are open")
	}

	model := star.New()

	// Initial data, if configured
	if err := loadStartupData(context.Background(), model, cfg); err != nil {
		slog.Error("startup load failed", "error", err)
		os.Exit(1)
	}

	// Create router
	mux := router.NewRouter(model, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// loadStartupData loads the configured data file or source database into
// model. With neither configured the model starts empty.
func loadStartupData(ctx context.Context, model *star.Model, cfg cliparse.Config) error {
	src, closeSrc, err := openSource(cfg)
	if err != nil {
		return err
	}
	if src == nil {
		slog.Info("No startup data configured; starting empty")
		return nil
	}
	defer closeSrc()

	report, err := loader.Load(ctx, model, src, loader.Options{})
	if err != nil {
		return err
	}
	for _, rowErr := range report.Errors {
		slog.Warn("row skipped", "table", rowErr.Table, "row", rowErr.Row, "message", rowErr.Message)
	}
	return nil
}

func openSource(cfg cliparse.Config) (loader.Source, func() error, error) {
	switch {
	case cfg.DataFile != "":
		info, err := os.Stat(cfg.DataFile)
		if err != nil {
			return nil, nil, fmt.Errorf("data file: %w", err)
		}
		if info.IsDir() {
			return loader.NewCSVDir(cfg.DataFile), func() error { return nil }, nil
		}
		if !strings.HasSuffix(strings.ToLower(cfg.DataFile), ".xlsx") {
			return nil, nil, fmt.Errorf("data file %s: expected an .xlsx workbook or a CSV directory", cfg.DataFile)
		}
		wb, err := loader.OpenWorkbook(cfg.DataFile)
		if err != nil {
			return nil, nil, err
		}
		return wb, wb.Close, nil

	case cfg.DatabaseURL != "":
		conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return db.NewSource(conn, cfg.DatabaseType), conn.Close, nil
	}
	return nil, nil, nil
}
