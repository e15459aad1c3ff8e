package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"bankident/internal/platform/config"
	"bankident/internal/platform/httpserver"
	"bankident/internal/platform/logger"
	"bankident/internal/platform/metrics"
	platformredis "bankident/internal/platform/redis"
	"bankident/internal/platform/token"
	"bankident/internal/registry"
	"bankident/internal/registry/store"
	httptransport "bankident/internal/transport/http"
	"bankident/internal/validation"
)

// main wires dependencies and runs the server lifecycle. Business logic
// lives in the internal packages; everything here is plumbing.
func main() {
	cfg, err := config.Load("")
	log := logger.New()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	// Directory backends are optional: without postgres the packaged
	// snapshot serves lookups, without redis the directory is hit directly.
	directory := registry.ActiveDirectory()
	if cfg.Postgres.DSN != "" {
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("ping postgres", "error", err)
			os.Exit(1)
		}
		directory = store.NewPostgres(db)
		log.Info("bank directory backed by postgres")
	}
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		directory = store.NewRedisCache(directory, redisClient.Client, cfg.Directory.CacheTTL, m)
		log.Info("bank directory cached in redis", "ttl", cfg.Directory.CacheTTL)
	}
	registry.SetDirectory(directory)

	service := validation.New(log, m)
	tokens := token.NewService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	router := httptransport.NewRouter(
		httptransport.NewIBANHandler(service, log),
		httptransport.NewBICHandler(service, log),
		log, m, tokens,
	)
	srv := httpserver.New(cfg.Server.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting bankident", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
