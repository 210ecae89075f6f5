package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/heritage/internal/audit"
	"github.com/MrJamesThe3rd/heritage/internal/cache"
	"github.com/MrJamesThe3rd/heritage/internal/config"
	"github.com/MrJamesThe3rd/heritage/internal/database"
	heritageHttp "github.com/MrJamesThe3rd/heritage/internal/http"
	accountsHandler "github.com/MrJamesThe3rd/heritage/internal/http/accounts"
	bookingHandler "github.com/MrJamesThe3rd/heritage/internal/http/booking"
	configHandler "github.com/MrJamesThe3rd/heritage/internal/http/controlcenter"
	expenseHandler "github.com/MrJamesThe3rd/heritage/internal/http/expense"
	importHandler "github.com/MrJamesThe3rd/heritage/internal/http/importcsv"
	"github.com/MrJamesThe3rd/heritage/internal/importer"
	"github.com/MrJamesThe3rd/heritage/internal/ledger"
	"github.com/MrJamesThe3rd/heritage/internal/mirror/postgres"
	"github.com/MrJamesThe3rd/heritage/internal/notify"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	opts := ledger.Options{Notifier: notify.Log{}}

	if cfg.MirrorEnabled() {
		db, err := database.New(cfg.MirrorDSN())
		if err != nil {
			slog.Error("failed to connect to mirror database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		opts.Mirror = postgres.New(db)
	} else {
		slog.Info("mirror database not configured, running in-memory only")
	}

	if cfg.Redis.Addr != "" {
		snapshots, err := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer snapshots.Close()

		opts.Snapshots = snapshots
	}

	if cfg.AMQP.URL != "" {
		publisher, err := audit.NewPublisher(cfg.AMQP.URL)
		if err != nil {
			slog.Error("failed to connect to amqp broker", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()

		opts.Audit = publisher
	}

	state := ledger.LoadState(context.Background(), opts.Snapshots)
	store := ledger.NewStore(state, opts)

	var (
		importService = importer.NewService()
	)

	var (
		bookingsH = bookingHandler.New(store)
		expensesH = expenseHandler.New(store)
		accountsH = accountsHandler.New(store)
		importH   = importHandler.New(store, importService)
		configH   = configHandler.New(store)
	)

	router := heritageHttp.New(cfg.Auth.Secret, bookingsH, expensesH, accountsH, importH, configH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
