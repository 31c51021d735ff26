package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/config"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/handlers"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/service"
	"github.com/ConorDaut/cs445-project-development-Task2-Step3/internal/store"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load(".env", os.Args[1:])
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.Logger(os.Stdout))

	// 2. Init DB
	db, err := store.NewStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	seeder := service.NewSeeder(db, nil)
	if cfg.SeedOnStart {
		if err := seeder.Seed(ctx); err != nil {
			slog.Error("Failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// 3. Session Setup
	sessionStore := handlers.NewCookieStore(cfg.SessionKey, cfg.CookieSecure, cfg.CookieDomain)

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load(nil, ""); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	limiter := handlers.NewRateLimiter(cfg.LoginRatePerMinute)
	defer limiter.Close()

	// 5. Setup Handlers
	router := handlers.NewRouter(&handlers.Handler{
		Accounts:     service.NewAccounts(db),
		Orders:       service.NewOrders(db, nil),
		Parts:        service.NewParts(db),
		Seeder:       seeder,
		DB:           db,
		SessionStore: sessionStore,
		Templates:    templates,
		Limiter:      limiter,
	})

	// 6. Middleware Setup
	protect := handlers.Protect(
		cfg.CSRFKey,
		cfg.CookieSecure,
		[]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port},
	)
	handler := protect(router)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
