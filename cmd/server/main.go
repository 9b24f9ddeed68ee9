package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/foodrepublic/pos-backend/internal/config"
	"github.com/foodrepublic/pos-backend/internal/repository/mongodb"
	"github.com/foodrepublic/pos-backend/internal/repository/sheets"
	"github.com/foodrepublic/pos-backend/internal/scheduler"
	"github.com/foodrepublic/pos-backend/internal/server/handlers"
	"github.com/foodrepublic/pos-backend/internal/server/router"
	analyticssvc "github.com/foodrepublic/pos-backend/internal/service/analytics"
	catalogsvc "github.com/foodrepublic/pos-backend/internal/service/catalog"
	expensesvc "github.com/foodrepublic/pos-backend/internal/service/expenses"
	invoicingsvc "github.com/foodrepublic/pos-backend/internal/service/invoicing"
	membersvc "github.com/foodrepublic/pos-backend/internal/service/members"
	reportingsvc "github.com/foodrepublic/pos-backend/internal/service/reporting"
	"github.com/foodrepublic/pos-backend/pkg/clients/notify"
	"github.com/foodrepublic/pos-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := store.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	memberSvc := membersvc.NewService(store, store, baseLogger.Named("svc.members"))
	invoiceSvc := invoicingsvc.NewService(store, store, memberSvc, baseLogger.Named("svc.invoicing"))
	expenseSvc := expensesvc.NewService(store, baseLogger.Named("svc.expenses"))
	catalogSvc := catalogsvc.NewService(store, store, baseLogger.Named("svc.catalog"))
	analyticsSvc := analyticssvc.NewService(store, baseLogger.Named("svc.analytics"))

	var exporter reportingsvc.Exporter
	if cfg.Sheets.SpreadsheetID != "" {
		sheetExporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetExporter
		baseLogger.Info("sheet export enabled")
	} else {
		baseLogger.Warn("sheet report id missing, sheet export disabled")
	}

	var notifier reportingsvc.Notifier
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookClient(cfg.Notify)
		baseLogger.Info("report webhook enabled")
	} else {
		baseLogger.Warn("report webhook url missing, notifications disabled")
	}

	reportingSvc := reportingsvc.NewService(analyticsSvc, store, exporter, notifier, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Invoice: handlers.NewInvoiceHandler(invoiceSvc, analyticsSvc, baseLogger.Named("handlers.invoice")),
		Member:  handlers.NewMemberHandler(memberSvc, baseLogger.Named("handlers.member")),
		Expense: handlers.NewExpenseHandler(expenseSvc, analyticsSvc, baseLogger.Named("handlers.expense")),
		Catalog: handlers.NewCatalogHandler(catalogSvc, baseLogger.Named("handlers.catalog")),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
