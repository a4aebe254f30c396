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

	"github.com/GoSim-25-26J-441/tracker-gateway/config"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/bootstrap"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/logging"
	"github.com/GoSim-25-26J-441/tracker-gateway/internal/tracker/graph"
)

const serviceName = "tracker-gateway"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logging.SetLevel(cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("store close: %v", err)
		}
	}()
	log.Printf("store: %s connected", store.Driver())

	resolver := graph.NewResolver(store.Clients, store.Projects, graph.Options{
		Timeout:             cfg.GraphQL.ResolverTimeout,
		LegacyStatusDefault: cfg.GraphQL.LegacyStatusDefault,
	})
	if cfg.GraphQL.LegacyStatusDefault {
		log.Printf("warning: PROJECT_LEGACY_STATUS_DEFAULT is on; addProject stores %q when status is omitted", "Not Started")
	}

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatalf("schema: %v", err)
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		Store:          store,
		Schema:         schema,
		Metrics:        resolver.Metrics(),
		Playground:     cfg.GraphQL.Playground,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Print("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server: %v", err)
		}
	}
}
