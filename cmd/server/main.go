package main

import (
	"context"
	"os"
	"sort"

	"github.com/crownweb/contact-relay/internal/config"
	"github.com/crownweb/contact-relay/internal/logging"
	"github.com/crownweb/contact-relay/internal/server"
	"github.com/crownweb/contact-relay/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logConfig := &logging.Config{
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}
	if err := logging.InitLogger(logConfig); err != nil {
		panic(err)
	}
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting server in %s mode", cfg.Environment)

	// Log a set/missing line for each credential variable so a broken
	// deployment is obvious before the first submission arrives
	logger.Info("Environment variables check:")
	required := cfg.RequiredVars()
	names := make([]string, 0, len(required))
	for name := range required {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if required[name] == "" {
			logger.Warn("%s: ✗ Missing", name)
		} else {
			logger.Info("%s: ✓ Set", name)
		}
	}

	creds := service.NewCredentials(cfg)

	var sender service.Sender
	switch cfg.MailStrategy {
	case config.StrategySMTP:
		sender = service.NewSMTPSender(cfg, creds)
	default:
		sender = service.NewGmailSender(cfg, creds)
	}
	logger.Info("Mail dispatch strategy: %s", cfg.MailStrategy)

	// Credential self-test: non-fatal, but an operator needs to know when
	// the refresh token has to be renewed. Verify bounds its own network calls.
	if v, ok := sender.(service.Verifier); ok {
		if err := v.Verify(context.Background()); err != nil {
			logger.Error("Mail credential test failed: %v", err)
			logger.Error("Please ensure your OAuth2 credentials are valid and refresh token is up to date")
		}
	}

	srv := server.NewServer(cfg, sender)
	if err := srv.Start(); err != nil {
		logger.Error("Failed to start server: %v", err)
		os.Exit(1)
	}
}
