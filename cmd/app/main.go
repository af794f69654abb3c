package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := newLogger(configs.LogLevel)

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	if err = run(app, configs.HTTPPort, logger); err != nil {
		log.Fatal(err)
	}
}

func run(app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}

	e := app.CreateRouter()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server started", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := e.Shutdown(shutdownCtx)
		jobManager.StopAll()
		logger.Info("Shutdown complete")
		return errors.Join(err, app.Close())
	})

	return g.Wait()
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	if !configs.UsePostgres() {
		return nil, nil
	}

	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err = postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
