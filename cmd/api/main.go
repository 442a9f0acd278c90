package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/snappy-loop/studio/internal/app"
	"github.com/snappy-loop/studio/internal/auth"
	"github.com/snappy-loop/studio/internal/config"
	"github.com/snappy-loop/studio/internal/handlers"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().Msg("Starting Studio API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	studio, err := app.NewStudio(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize studio")
	}

	authService, err := auth.NewService(cfg.AccessKeyHash)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid ACCESS_KEY_HASH")
	}
	if !authService.GateEnabled() {
		log.Warn().Msg("ACCESS_KEY_HASH not set; API is open to any client")
	}

	h := handlers.NewHandler(studio, cfg.MaxImageBytes)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handlers.NewRouter(h, authService.Middleware),
		ReadHeaderTimeout: 15 * time.Second,
		// Generation with retries can take minutes.
		WriteTimeout: cfg.HTTPTimeout + 5*time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down API...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
	log.Info().Msg("API exited")
}
