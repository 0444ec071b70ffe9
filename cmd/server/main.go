package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/willimpizza/backend/internal/config"
	"github.com/willimpizza/backend/internal/email"
	"github.com/willimpizza/backend/internal/logging"
	"github.com/willimpizza/backend/internal/payments"
	"github.com/willimpizza/backend/internal/recordstore"
	"github.com/willimpizza/backend/internal/server"
)

func main() {
	dotenvErr := godotenv.Load()

	cfg, cfgErr := config.Load()
	log := logging.New(cfg.LogLevel)
	ctx := context.Background()

	if dotenvErr != nil {
		log.Info(ctx, "no .env file found; relying on existing environment")
	}
	if cfgErr != nil {
		log.Error(ctx, "load config", "error", cfgErr)
		os.Exit(1)
	}

	store := recordstore.New(cfg.DataDir)
	charger := payments.NewStripeClient(cfg.StripeToken)
	mailer := email.NewMailgunClient(cfg.MailgunToken, cfg.MailgunDomain)

	srv := server.New(cfg, log, store, charger, mailer)

	go func() {
		log.Info(ctx, "pizza backend listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Warn(ctx, "graceful shutdown error", "error", err)
	}
}
