package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mscaglia/finbook/internal/infra/postgres"
	"github.com/mscaglia/finbook/internal/platform/category"
	"github.com/mscaglia/finbook/internal/platform/report"
	"github.com/mscaglia/finbook/internal/platform/transaction"
	"github.com/mscaglia/finbook/internal/platform/user"
	"github.com/mscaglia/finbook/internal/transport/httpapi"
	"github.com/mscaglia/finbook/internal/transport/httpapi/handler"
	"github.com/mscaglia/finbook/internal/transport/httpapi/middleware"
	"github.com/mscaglia/finbook/pkg/config"
	"github.com/mscaglia/finbook/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewDefault(cfg.Env)
	log.Info("Starting Finbook API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	db, err := postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Repositories
	userRepo := postgres.NewUserRepository(db.Pool)
	categoryRepo := postgres.NewCategoryRepository(db.Pool)
	transactionRepo := postgres.NewTransactionRepository(db.Pool)

	// Services
	userSvc := user.NewService(userRepo)
	categorySvc := category.NewService(categoryRepo)
	transactionSvc := transaction.NewService(transactionRepo, categoryRepo)
	reportSvc := report.NewService(transactionRepo)
	tokenSvc := middleware.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	router := httpapi.NewRouter(httpapi.Config{
		Logger:          log,
		AllowedOrigins:  cfg.AllowedOrigins,
		AuthHandler:     handler.NewAuthHandler(userSvc, tokenSvc),
		CategoryHandler: handler.NewCategoryHandler(categorySvc),
		IncomeHandler:   handler.NewTransactionHandler(transactionSvc, category.KindIncome),
		ExpenseHandler:  handler.NewTransactionHandler(transactionSvc, category.KindExpense),
		ReportHandler:   handler.NewReportHandler(reportSvc),
		HealthHandler:   handler.NewHealthHandler(db),
		Principal:       middleware.Principal(tokenSvc, userSvc, log),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped")
}
