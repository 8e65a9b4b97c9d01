package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DukeRupert/savant/internal"
	"github.com/DukeRupert/savant/internal/calculator"
	"github.com/DukeRupert/savant/internal/email"
	"github.com/DukeRupert/savant/internal/enquiry"
	"github.com/DukeRupert/savant/internal/handler"
	"github.com/DukeRupert/savant/internal/metrics"
	"github.com/DukeRupert/savant/internal/middleware"
	"github.com/DukeRupert/savant/web"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func run() error {
	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	formatter, err := calculator.NewFormatter(cfg.Locale)
	if err != nil {
		return fmt.Errorf("formatter initialization failed: %w", err)
	}

	// Initialize template renderer
	rendererCfg := handler.RendererConfig{
		FS:     web.Templates(),
		Funcs:  handler.TemplateFuncs(formatter),
		Logger: logger,
		IsDev:  cfg.IsDevelopment(),
	}
	if cfg.IsDevelopment() {
		if _, err := os.Stat("web/templates"); err == nil {
			rendererCfg.TemplatesDir = "web/templates"
		}
	}
	renderer, err := handler.NewRenderer(rendererCfg)
	if err != nil {
		return fmt.Errorf("renderer initialization failed: %w", err)
	}
	logger.Info("Templates loaded", "count", len(renderer.ListTemplates()))

	// Initialize services
	sender := newSender(cfg, logger)
	enquiries := enquiry.NewService(sender, enquiry.Addresses{
		FromName:        cfg.MailFromName,
		From:            cfg.MailFrom,
		To:              cfg.MailTo,
		FallbackReplyTo: cfg.MailReplyToFallback,
	}, logger)

	// Initialize middleware
	isSecure := !cfg.IsDevelopment()
	requestIDMw := middleware.NewRequestIDMiddleware()
	loggingMw := middleware.NewRequestLoggingMiddleware(logger)
	securityMw := middleware.NewSecurityHeadersMiddleware(isSecure)
	metricsAuth := middleware.NewMetricsAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword, logger)
	if !metricsAuth.Enabled() {
		logger.Warn("Metrics endpoint is unprotected; set METRICS_USERNAME and METRICS_PASSWORD")
	}

	// Initialize handlers
	siteHandler := handler.NewSiteHandler(renderer, formatter, logger)
	calculatorHandler := handler.NewCalculatorHandler(formatter, logger)
	contactHandler := handler.NewContactHandler(enquiries, logger)

	// ==========================================================================
	// Create router and register routes
	// ==========================================================================

	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(web.Static())))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", metricsAuth.Handler(promhttp.Handler()))

	calculatorHandler.RegisterRoutes(mux)
	contactHandler.RegisterRoutes(mux)
	// Registered last: owns "/" and answers 404 for unmatched paths
	siteHandler.RegisterRoutes(mux)

	stack := middleware.Stack(
		requestIDMw.Handler,
		loggingMw.Handler,
		securityMw.Handler,
		metrics.Middleware,
	)

	// ==========================================================================
	// Start server
	// ==========================================================================

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           stack(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Covers a full SMTP exchange on /api/contact
		WriteTimeout: cfg.SMTPTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server started", "address", server.Addr, "env", cfg.Env, "mail_provider", cfg.MailProvider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-sigChan:
	}
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Graceful shutdown complete")
	return nil
}

// newSender picks the mail transport named by MAIL_PROVIDER.
func newSender(cfg *internal.Config, logger *slog.Logger) email.Sender {
	if cfg.MailProvider == "log" {
		logger.Info("Enquiry emails will be logged, not sent")
		return email.NewLogSender(logger)
	}
	if cfg.SMTPHost == "" {
		logger.Warn("SMTP_HOST is not set; enquiries will fail until it is configured")
	}
	return email.NewSMTPSender(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	}, cfg.SMTPTimeout, logger)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
