package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claudioasousa/Espetaria-PRO/internal/config"
	"github.com/claudioasousa/Espetaria-PRO/internal/infra"
	"github.com/claudioasousa/Espetaria-PRO/internal/model"
	"github.com/claudioasousa/Espetaria-PRO/internal/router"
	"github.com/claudioasousa/Espetaria-PRO/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Tables are fixed floor furniture: ensure 1..TABLE_COUNT exist.
	if err := ensureTables(db, cfg.TableCount); err != nil {
		log.Fatal().Err(err).Msg("failed to seed tables")
	}

	// Start goroutine worker pool for async tasks (receipt PDFs, cash reports).
	// Worker handlers are wired here (composition root) so that the pool has
	// full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	mailerCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	workerHandlers := &worker.Handlers{
		Receipt: worker.NewReceiptWorker(cfg.PDFStoragePath),
		Report:  worker.NewReportWorker(mailer, mailerCB, cfg.ReportEmail),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	r := router.New(cfg, db, rdb, mailerCB)

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: /api/events holds SSE streams open indefinitely.
		IdleTimeout: 60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Espetaria PRO backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// ensureTables inserts missing table rows without touching the status of
// tables that already exist (a restart must not free an occupied table).
func ensureTables(db *gorm.DB, count int) error {
	for number := 1; number <= count; number++ {
		t := model.Table{Number: number, Status: model.TableAvailable}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&t).Error; err != nil {
			return err
		}
	}
	return nil
}
