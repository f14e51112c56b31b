package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/inventory-pro/dashboard/internal/app"
	"github.com/inventory-pro/dashboard/internal/auth"
	"github.com/inventory-pro/dashboard/internal/dashboard"
	"github.com/inventory-pro/dashboard/internal/invoices"
	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/masterdata/products"
	"github.com/inventory-pro/dashboard/internal/observability"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/platform/cache"
	"github.com/inventory-pro/dashboard/internal/reports"
	"github.com/inventory-pro/dashboard/internal/settings"
	"github.com/inventory-pro/dashboard/internal/shared"
	"github.com/inventory-pro/dashboard/internal/view"
	"github.com/inventory-pro/dashboard/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis unavailable, sessions will fail until it answers", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "inventory_pro_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine(view.Options{PhoneRegion: cfg.PhoneRegion})
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}
	responder := view.NewResponder(logger, templates, csrfManager)

	metrics := observability.NewMetrics()
	metrics.Registerer().MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	api := apiclient.New(apiclient.Options{
		BaseURL:  cfg.APIURL,
		Timeout:  cfg.APITimeout,
		Logger:   logger,
		Observer: metrics,
	})

	authService := auth.NewService(api)
	source := reports.NewSource(cache.NewJSON(redisClient, "dashboard", cfg.DashboardCacheTTL))
	pdf := report.NewClient(cfg.GotenbergURL)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Responder:        responder,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		Metrics:          metrics,
		Guard:            auth.NewGuard(logger, authService),
		AuthHandler:      auth.NewHandler(logger, authService, responder, sessionManager),
		AccountHandler:   settings.NewAccountHandler(logger, responder, authService),
		DashboardHandler: dashboard.NewHandler(logger, responder, source, api, cfg.LowStockThreshold),
		ReportsHandler:   reports.NewHandler(logger, responder, source, api, reports.Options{LowStockThreshold: cfg.LowStockThreshold}),
		DocumentHandler:  invoices.NewDocumentHandler(logger, responder, templates, api, pdf),
		LookupHandler:    products.NewLookupHandler(logger, api),
		PDFHealth:        report.NewPingHandler(pdf, logger),
		ListEditor: listeditor.Deps{
			Logger:    logger,
			Responder: responder,
			Store:     listeditor.NewStore(redisClient, cfg.PageStateTTL),
			API:       api,
			Validate:  listeditor.NewValidator(),
			Changed: func(ctx context.Context, session string) {
				if err := source.Invalidate(ctx, session); err != nil {
					logger.Warn("invalidate dashboard cache", slog.Any("error", err))
				}
			},
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("api", cfg.APIURL))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
