// Package main is the entry point for the mail relay HTTP service.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shineum/mail-relay-lite/internal/api"
	"github.com/shineum/mail-relay-lite/internal/config"
	"github.com/shineum/mail-relay-lite/internal/mailer"
	"github.com/shineum/mail-relay-lite/internal/provider"
	"github.com/shineum/mail-relay-lite/internal/provider/ses"
	"github.com/shineum/mail-relay-lite/internal/provider/smtp"
	"github.com/shineum/mail-relay-lite/internal/provider/stdout"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file (optional)")
	flag.Parse()

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	setupLogger(cfg.Logging.Level)

	// Select email delivery provider
	prov := selectProvider(cfg)

	// Missing credentials are reported per request, not at startup
	if cfg.Sender.Address == "" {
		slog.Warn("GMAIL_ADDRESS is not set, every send will fail")
	}

	sender := mailer.New(prov, cfg.Sender.Address)

	server := api.NewServer(api.ServerConfig{
		ListenAddr: cfg.ListenAddr(),
		Handler:    api.NewRouter(api.NewHandler(sender, cfg.DefaultRecipient)),
	})

	slog.Info("starting mail-relay-lite",
		"listen", cfg.ListenAddr(),
		"provider", prov.Name(),
		"sender", cfg.Sender.Address,
		"default_recipient", cfg.DefaultRecipient != "",
	)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Start the server (blocks until context is cancelled)
	if err := server.ListenAndServe(ctx); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("mail-relay-lite stopped")
}

// loadConfig loads configuration from the specified path (YAML + env override)
// or from environment variables only if no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// setupLogger configures the global slog logger with JSON output and the
// specified log level.
func setupLogger(level string) {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// selectProvider chooses the email delivery backend based on configuration.
func selectProvider(cfg *config.Config) provider.Provider {
	switch cfg.Provider {
	case "smtp", "":
		slog.Info("using SMTP provider",
			"host", cfg.SMTP.Host,
			"port", cfg.SMTP.Port,
			"credentials", cfg.CredentialsConfigured(),
		)
		return smtp.New(smtp.SMTPProviderConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.Sender.Address,
			Password: cfg.Sender.Password,
		})

	case "ses":
		slog.Info("using AWS SES provider", "region", cfg.SES.Region)
		p, err := ses.New(context.Background(), ses.SESProviderConfig{
			Region:          cfg.SES.Region,
			AccessKeyID:     cfg.SES.AccessKeyID,
			SecretAccessKey: cfg.SES.SecretAccessKey,
		})
		if err != nil {
			slog.Error("failed to create SES provider", "error", err)
			os.Exit(1)
		}
		return p

	case "stdout":
		slog.Info("using stdout provider")
		return stdout.New()

	default:
		slog.Error("unknown provider", "provider", cfg.Provider)
		os.Exit(1)
		return nil
	}
}
