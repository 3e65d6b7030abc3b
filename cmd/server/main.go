package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/evanwills/firing-pricing-adjuster/internal/auth"
	"github.com/evanwills/firing-pricing-adjuster/internal/config"
	"github.com/evanwills/firing-pricing-adjuster/internal/service"
	"github.com/evanwills/firing-pricing-adjuster/internal/sheet"
	"github.com/evanwills/firing-pricing-adjuster/internal/storage"
	"github.com/evanwills/firing-pricing-adjuster/internal/storage/memory"
	"github.com/evanwills/firing-pricing-adjuster/internal/storage/sqlite"
	"github.com/evanwills/firing-pricing-adjuster/pkg/logging"
	"github.com/evanwills/firing-pricing-adjuster/pkg/metrics"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.SetLevel(cfg.LogLevel)

	store, cache := openStorage(cfg.DBPath)
	defer store.Close()

	ctx := context.Background()
	priceSheet := sheet.New(cache)
	priceSheet.Load(ctx)

	// A cold cache may still have a roster in the durable tables.
	if members, err := store.ListMembers(ctx); err != nil {
		slog.Warn("Failed to load roster from storage", "error", err)
	} else {
		priceSheet.SeedRoster(members)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	m.SetRosterSize(len(priceSheet.Members("")))

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL())
	authenticator := auth.NewPasswordAuthenticator(store)

	handler := service.NewRouter(service.Deps{
		Sheet:         priceSheet,
		Store:         store,
		Authenticator: authenticator,
		JWT:           jwtManager,
		Metrics:       m,
	})

	// h2c lets clients speak HTTP/2 without TLS in front of the API.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// openStorage opens the sqlite database, which serves as both the durable
// store and the sheet's field cache. If the database cannot be opened the
// service still comes up on in-memory storage: identical behaviour, no
// persistence across restarts.
func openStorage(dbPath string) (storage.Store, storage.KV) {
	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Warn("Failed to open database, running without persistence",
			"database", dbPath, "error", err)
		return memory.NewStore(), memory.NewKV()
	}
	slog.Info("Storage initialized", "database", dbPath)
	return db, db
}
