package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rowjay/scissors/internal/client"
	"github.com/rowjay/scissors/internal/config"
	"github.com/rowjay/scissors/internal/constants"
	"github.com/rowjay/scissors/internal/handlers"
	"github.com/rowjay/scissors/internal/qrcode"
	"github.com/rowjay/scissors/internal/repository"
	"github.com/rowjay/scissors/internal/services"
	"github.com/rowjay/scissors/internal/session"
	"github.com/rowjay/scissors/internal/templates"
	"github.com/rowjay/scissors/internal/view"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}

	cfg := config.Load()
	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().Str("link_service_url", cfg.LinkServiceURL).Msg("Starting Scissors web front-end")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	linkClient := client.Initialize(ctx, cfg.LinkServiceURL, cfg.RequestTimeout)
	linkService := services.NewLinkService(repository.NewLinkRepository(linkClient))
	resolver := qrcode.NewResolver(linkClient.HTTPClient, cfg.MaxQRCodeBytes)

	store := session.NewStore(cfg.SessionTTL, func(id string, clipboard view.Clipboard) *view.Controller {
		logger := log.With().Str("session_id", id).Logger()
		return view.NewController(linkService, resolver, clipboard, view.Options{
			RecentCount:        cfg.RecentCount,
			CopyConfirmDelay:   cfg.CopyConfirmDelay,
			DownloadToastDelay: cfg.DownloadToastDelay,
			ErrorToastDelay:    cfg.ErrorToastDelay,
			Logger:             &logger,
		})
	})
	go store.Run(ctx, constants.SessionSweepEvery)

	tmpl, err := templates.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	viewHandler := handlers.NewViewHandler(store, cfg.SecureCookies, int(cfg.SessionTTL.Seconds()))
	r := handlers.NewRouter(viewHandler, tmpl)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}
