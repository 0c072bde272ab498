package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rerafy/rerafybot/internal/bot"
	"github.com/rerafy/rerafybot/internal/config"
	"github.com/rerafy/rerafybot/internal/leads"
	"github.com/rerafy/rerafybot/internal/metrics"
	"github.com/rerafy/rerafybot/internal/session"
	"github.com/rerafy/rerafybot/internal/store"
	"github.com/rerafy/rerafybot/internal/whatsapp"
	"github.com/rerafy/rerafybot/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.LogLevel)

	var st store.Store
	if cfg.DataDir != "" {
		st, err = store.NewBoltStore(filepath.Join(cfg.DataDir, "rerafybot.db"))
		if err != nil {
			log.Fatalf("store: %v", err)
		}
	} else {
		st = store.NewMemoryStore()
	}
	defer st.Close()

	m := metrics.New(nil)
	waClient := whatsapp.NewClient(cfg.WAPhoneNumberID, cfg.WAAccessToken)
	recorder := leads.NewClient(cfg.LeadCollectorURL)

	engine := bot.NewEngine(st, recorder, logger, m)
	engine.ResendFAQMenu = cfg.ResendFAQMenu

	locks := session.NewManager()

	// Periodic cleanup of stale per-sender locks to prevent memory leaks
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			locks.Cleanup(1 * time.Hour)
		}
	}()

	botHandler := bot.NewHandler(engine, waClient, locks, logger, m)
	webhookHandler := whatsapp.NewWebhookHandler(cfg.WAVerifyToken, logger, botHandler.HandleWebhook)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/webhook", webhookHandler.HandleVerify)
	r.Post("/webhook", webhookHandler.HandleIncoming)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("rerafybot: listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("rerafybot: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	logger.Info("rerafybot: stopped")
}
