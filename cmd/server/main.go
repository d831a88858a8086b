package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rvc-001/planning-sub000/config"
	"github.com/rvc-001/planning-sub000/internal/delivery/httpapi"
	"github.com/rvc-001/planning-sub000/internal/domain/repository"
	"github.com/rvc-001/planning-sub000/internal/infrastructure/gemini"
	"github.com/rvc-001/planning-sub000/internal/infrastructure/gviz"
	"github.com/rvc-001/planning-sub000/internal/infrastructure/notify"
	"github.com/rvc-001/planning-sub000/internal/infrastructure/script"
	"github.com/rvc-001/planning-sub000/internal/infrastructure/storage"
	"github.com/rvc-001/planning-sub000/internal/usecase"
)

func main() {
	log.Println("Starting planning service...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration not loaded: %v", err)
	}

	// Read and write paths to the shared spreadsheet.
	reader := gviz.NewClient(cfg.GvizBaseURL, cfg.SpreadsheetID, cfg.HeaderRows)
	writer := script.NewWriter(cfg.ScriptURL)

	// Sessions: Postgres when configured, in-memory otherwise.
	sessions := storage.NewSessionStoreFromEnv()

	// Optional stage notifications.
	var notifier repository.Notifier
	if cfg.TelegramToken != "" && cfg.NotifyChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.NotifyChatID, cfg.NotifyThreadID)
		if err != nil {
			log.Printf("telegram notifier disabled: %v", err)
		} else {
			notifier = tg
			log.Println("Telegram stage notifications enabled")
		}
	}

	// Optional dashboard insight.
	var insight repository.InsightRepository
	if cfg.GeminiAPIKey != "" {
		ai, err := gemini.NewInsightClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("dashboard insight disabled: %v", err)
		} else {
			insight = ai
			log.Println("Dashboard insight enabled")
		}
	}

	workflowUC := usecase.NewWorkflowUseCase(reader, writer, notifier)
	orderUC := usecase.NewOrderUseCase(reader, writer)
	dashboardUC := usecase.NewDashboardUseCase(reader, insight)
	authUC := usecase.NewAuthUseCase(reader, writer, sessions)

	server := httpapi.NewServer(workflowUC, orderUC, dashboardUC, authUC)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.Router(cfg.AllowedOrigins),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go expireSessions(ctx, sessions)

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// expireSessions drops stale sessions periodically so the store does not
// grow without bound.
func expireSessions(ctx context.Context, sessions repository.SessionStore) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sessions.DeleteExpired(ctx)
			if err != nil {
				log.Printf("session cleanup: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("session cleanup: removed %d expired sessions", removed)
			}
		}
	}
}
