package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gridplan/gridplan/internal/app"
	"github.com/gridplan/gridplan/internal/clock"
	"github.com/gridplan/gridplan/internal/config"
	"github.com/gridplan/gridplan/internal/storage/postgres"
	"github.com/gridplan/gridplan/internal/telemetry"
	transporthttp "github.com/gridplan/gridplan/internal/transport/http"
	"github.com/gridplan/gridplan/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

const serviceName = "gridplan-api"

func main() {
	logger := log.Default()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), cfg.StartupTimeout)
	defer cancel()

	shutdownTracing, err := telemetry.Setup(startupCtx, serviceName, cfg.OTELEndpoint)
	if err != nil {
		log.Fatalf("setup tracing: %v", err)
	}

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	catalogSvc := app.NewCatalogService(postgres.NewCatalogRepository(pool))
	adminSvc := app.NewAdminService(postgres.NewAdminRepository(pool), clock.NewSystem())
	stockSvc := app.NewStockService(postgres.NewStockRepository(pool))
	allocationSvc := app.NewAllocationService(postgres.NewAllocationRepository(pool))
	objectSvc := app.NewObjectService(postgres.NewObjectRepository(pool), logger)

	handler := transporthttp.NewRouter(transporthttp.RouterConfig{
		Catalog:        catalogSvc,
		Admin:          adminSvc,
		Stock:          stockSvc,
		Allocations:    allocationSvc,
		Objects:        objectSvc,
		Logger:         logger,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		ServiceName:    serviceName,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("tracing shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
