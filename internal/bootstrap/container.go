package bootstrap

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vpvn/bugreports/internal/config"
	"github.com/vpvn/bugreports/internal/infra/cache"
	"github.com/vpvn/bugreports/internal/infra/db"
	"github.com/vpvn/bugreports/internal/infra/logger"
	mq "github.com/vpvn/bugreports/internal/infra/queue"
	"github.com/vpvn/bugreports/internal/middleware"
	"github.com/vpvn/bugreports/internal/modules/handler"
	"github.com/vpvn/bugreports/internal/modules/repo"
	"github.com/vpvn/bugreports/internal/modules/service"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			if err := db.AutoMigrate(d); err != nil {
				return nil, err
			}
		}
		if cfg.Telemetry.Enabled {
			if err := db.RegisterOpenTelemetryPlugin(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis, only resolved when redis.addr is set
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		rdb, err := cache.New(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Telemetry.Enabled {
			if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
				_ = rdb.Close()
				return nil, err
			}
		}
		return rdb, nil
	})

	// Rate limiter for the public intake route
	do.Provide(inj, func(i *do.Injector) (middleware.Limiter, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.Redis.Addr == "" || !cfg.RateLimit.Enabled {
			return nil, nil
		}
		rdb, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}
		return cache.NewRateLimiterFromConfig(rdb, cfg), nil
	})

	// RabbitMQ DialFunc for connection and reconnection
	do.Provide(inj, func(i *do.Injector) (mq.DialFunc, error) {
		return mq.NewDialFunc(do.MustInvoke[*config.Config](i)), nil
	})

	// RabbitMQ Connection, only resolved when rabbitmq.url is set
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		dialFn := do.MustInvoke[mq.DialFunc](i)
		return dialFn()
	})

	// RabbitMQ Publisher
	do.Provide(inj, func(i *do.Injector) (*mq.Publisher, error) {
		return mq.NewPublisher(
			do.MustInvoke[*amqp.Connection](i),
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[*config.Config](i),
		)
	})

	// report events; nil when no broker is configured
	do.Provide(inj, func(i *do.Injector) (service.EventPublisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.RabbitMQ.URL == "" {
			return nil, nil
		}
		p, err := do.Invoke[*mq.Publisher](i)
		if err != nil {
			return nil, err
		}
		return p, nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.Transactor, error) {
		return repo.NewTransactor(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.BugRepo, error) {
		return repo.NewBugRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.OccasionRepo, error) {
		return repo.NewOccasionRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ReportRepo, error) {
		return repo.NewReportRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.OperatorRepo, error) {
		return repo.NewOperatorRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(do.MustInvoke[repo.ProjectRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.BugService, error) {
		return service.NewBugService(
			do.MustInvoke[repo.BugRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.OccasionService, error) {
		return service.NewOccasionService(
			do.MustInvoke[repo.OccasionRepo](i),
			do.MustInvoke[repo.BugRepo](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ReportService, error) {
		publisher, err := do.Invoke[service.EventPublisher](i)
		if err != nil {
			return nil, err
		}
		return service.NewReportService(
			do.MustInvoke[repo.Transactor](i),
			do.MustInvoke[service.BugService](i),
			do.MustInvoke[service.OccasionService](i),
			do.MustInvoke[repo.ReportRepo](i),
			publisher,
			do.MustInvoke[*zap.Logger](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.OperatorService, error) {
		return service.NewOperatorService(
			do.MustInvoke[repo.OperatorRepo](i),
			do.MustInvoke[*config.Config](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.ReportHandler, error) {
		return handler.NewReportHandler(do.MustInvoke[service.ReportService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.BugHandler, error) {
		return handler.NewBugHandler(
			do.MustInvoke[service.BugService](i),
			do.MustInvoke[service.OccasionService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.OccasionHandler, error) {
		return handler.NewOccasionHandler(do.MustInvoke[service.OccasionService](i)), nil
	})
	return inj
}
