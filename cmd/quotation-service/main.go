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

	"github.com/getsentry/sentry-go"

	"github.com/nurpe/quotation-service/internal/auth"
	"github.com/nurpe/quotation-service/internal/card"
	"github.com/nurpe/quotation-service/internal/config"
	"github.com/nurpe/quotation-service/internal/excel"
	httphandler "github.com/nurpe/quotation-service/internal/http"
	"github.com/nurpe/quotation-service/internal/http/middleware"
	"github.com/nurpe/quotation-service/internal/locale"
	"github.com/nurpe/quotation-service/internal/logger"
	"github.com/nurpe/quotation-service/internal/model"
	"github.com/nurpe/quotation-service/internal/pdf"
	"github.com/nurpe/quotation-service/internal/repository"
	"github.com/nurpe/quotation-service/internal/service"
	"github.com/nurpe/quotation-service/internal/session"
	"github.com/nurpe/quotation-service/internal/submission"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	sentryEnabled := false
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
		}); err != nil {
			log.Warn().Err(err).Msg("sentry initialization failed")
		} else {
			sentryEnabled = true
		}
	}

	registry, err := locale.NewRegistry(cfg.Quotation.DefaultLocale,
		locale.French(variantFrom(locale.DefaultFrenchVariant(), cfg.Quotation.French)),
		locale.English(variantFrom(locale.DefaultEnglishVariant(), cfg.Quotation.English)),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure locales")
	}

	reference, err := repository.NewReferenceRepository(cfg.Quotation.ReferenceDataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load reference data")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := session.NewMemoryStore(cfg.Session.TTL)
	go store.Run(ctx, cfg.Session.SweepInterval)

	webhook := submission.NewWebhookClient(submission.WebhookConfig{
		URL:          cfg.Webhook.URL,
		Secret:       cfg.Webhook.Secret,
		SecretHeader: cfg.Webhook.SecretHeader,
		Timeout:      cfg.Webhook.Timeout,
	})
	pipeline := submission.NewPipeline(submission.NewEncoder(cfg.Webhook.EncodeLimit), webhook, log)

	quotations := service.NewQuotationService(
		store,
		registry,
		reference.Reference(),
		pipeline,
		pdf.NewGenerator(),
		excel.NewGenerator(),
		log,
	)

	tokenParser := auth.NewParser(cfg.Session.Secret)
	handler := httphandler.NewHandler(quotations, reference, card.NewRenderer(), tokenParser, httphandler.HandlerOptions{
		SessionTTL:     cfg.Session.TTL,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
	}, log)
	router, err := httphandler.NewRouter(handler, middleware.Session(tokenParser), httphandler.RouterConfig{
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
		RateLimitRPS:   cfg.HTTP.RateLimitRPS,
		RateLimitBurst: cfg.HTTP.RateLimitBurst,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Strs("locales", registry.Codes()).Msg("starting quotation service")
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info().Msg("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
	log.Info().Msg("shutdown complete")
}

func variantFrom(preset model.Variant, cfg config.VariantConfig) model.Variant {
	if cfg.PhoneCode != "" {
		preset.DefaultPhoneCode = cfg.PhoneCode
	}
	preset.Consent = cfg.Consent
	if cfg.CityInput != "" {
		preset.CityInput = model.CityInput(cfg.CityInput)
	}
	return preset
}
