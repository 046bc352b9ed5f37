package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/andreasstove999/table-ordering/internal/auth"
	"github.com/andreasstove999/table-ordering/internal/catalog"
	"github.com/andreasstove999/table-ordering/internal/config"
	"github.com/andreasstove999/table-ordering/internal/db"
	httpapi "github.com/andreasstove999/table-ordering/internal/http"
	"github.com/andreasstove999/table-ordering/internal/metrics"
	"github.com/andreasstove999/table-ordering/internal/order"
	"github.com/andreasstove999/table-ordering/internal/user"
)

func main() {
	logger := log.New(os.Stdout, "[ordering-api] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- DB ---
	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	// --- services ---
	secret := []byte(cfg.JWTSecret)

	orders := order.NewService(
		order.NewPostgresRepository(pool),
		order.Limits{MaxTable: cfg.MaxTable, MaxAmount: cfg.MaxAmount},
		logger,
	)
	menu := catalog.NewService(catalog.NewPostgresRepository(pool))
	users := user.NewService(user.NewPostgresRepository(pool), auth.NewIssuer(secret, cfg.TokenTTL))

	// --- metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	serverMetrics := metrics.NewServerMetrics("api", reg)

	// --- HTTP ---
	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSAllowOrigins,
		Verifier:       auth.NewVerifier(secret),
		Orders:         orders,
		Catalog:        menu,
		Users:          users,
		Metrics:        serverMetrics,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutdown requested")
	case err := <-errCh:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown error: %v", err)
	}
	logger.Printf("shutdown complete")
}
