package bootstrap

import (
	"context"

	"go.uber.org/zap"

	"github.com/vpvn/bugreports/internal/config"
	"github.com/vpvn/bugreports/internal/modules/service"
)

// EnsureRootOperator creates or aligns the root admin operator when the service starts
func EnsureRootOperator(ctx context.Context, ops service.OperatorService, cfg *config.Config, log *zap.Logger) error {
	if cfg.Root.AdminToken == "" {
		return nil
	}

	op, created, err := ops.Ensure(ctx, cfg.Root.AdminName, cfg.Root.AdminToken, true)
	if err != nil {
		return err
	}
	if created {
		log.Sugar().Infow("root operator created", "operator", op.Name)
	} else {
		log.Sugar().Infow("root operator exists", "operator", op.Name)
	}
	return nil
}
