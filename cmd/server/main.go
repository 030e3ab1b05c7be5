package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vpvn/bugreports/internal/bootstrap"
	"github.com/vpvn/bugreports/internal/config"
	"github.com/vpvn/bugreports/internal/infra/cache"
	"github.com/vpvn/bugreports/internal/middleware"
	"github.com/vpvn/bugreports/internal/modules/handler"
	"github.com/vpvn/bugreports/internal/modules/service"
	"github.com/vpvn/bugreports/internal/router"
	"github.com/vpvn/bugreports/internal/telemetry"
)

//	@title						Bug reports API
//	@version					1.0
//	@description				Crash report intake with per-project bug deduplication.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Operator token, "Bearer br-..."
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bugreports: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	inj := bootstrap.BuildContainer()
	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	// telemetry has to be up before the DB and Redis plugins register
	if _, err := telemetry.SetupTracing(cfg); err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	if _, err := telemetry.SetupMetrics(cfg); err != nil {
		return fmt.Errorf("setup metrics: %w", err)
	}
	if err := telemetry.InitReportMetrics(); err != nil {
		return fmt.Errorf("init report metrics: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bootstrap.EnsureRootOperator(ctx, do.MustInvoke[service.OperatorService](inj), cfg, log); err != nil {
		return fmt.Errorf("ensure root operator: %w", err)
	}

	limiter, err := do.Invoke[middleware.Limiter](inj)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	// resolving the report service dials the broker when one is configured
	reportHandler, err := do.Invoke[*handler.ReportHandler](inj)
	if err != nil {
		return err
	}

	engine := router.NewRouter(router.RouterDeps{
		Config:          cfg,
		Log:             log,
		Auth:            do.MustInvoke[service.OperatorService](inj),
		Limiter:         limiter,
		ReportHandler:   reportHandler,
		ProjectHandler:  do.MustInvoke[*handler.ProjectHandler](inj),
		BugHandler:      do.MustInvoke[*handler.BugHandler](inj),
		OccasionHandler: do.MustInvoke[*handler.OccasionHandler](inj),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	closeAll(inj, cfg, log)
	return err
}

func closeAll(inj *do.Injector, cfg *config.Config, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := telemetry.Shutdown(ctx); err != nil {
		log.Warn("tracing shutdown", zap.Error(err))
	}
	if err := telemetry.ShutdownMetrics(ctx); err != nil {
		log.Warn("metrics shutdown", zap.Error(err))
	}
	if cfg.Redis.Addr != "" && cfg.RateLimit.Enabled {
		if rdb, err := do.Invoke[*redis.Client](inj); err == nil {
			_ = cache.Close(rdb)
		}
	}
	if cfg.RabbitMQ.URL != "" {
		if conn, err := do.Invoke[*amqp.Connection](inj); err == nil {
			_ = conn.Close()
		}
	}
}
