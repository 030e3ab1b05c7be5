package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vpvn/bugreports/internal/config"
	mq "github.com/vpvn/bugreports/internal/infra/queue"
)

func newEventsCmd(container func() *do.Injector) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect report events on the broker",
	}

	var (
		queue      string
		routingKey string
	)
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Print report events as JSON lines until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			inj := container()
			cfg := do.MustInvoke[*config.Config](inj)
			if cfg.RabbitMQ.URL == "" {
				return fmt.Errorf("rabbitmq.url is not configured")
			}
			log := do.MustInvoke[*zap.Logger](inj)

			conn, err := do.MustInvoke[mq.DialFunc](inj)()
			if err != nil {
				return fmt.Errorf("dial broker: %w", err)
			}
			defer conn.Close()

			if routingKey == "" {
				routingKey = cfg.RabbitMQ.RoutingKey.ReportRecorded
			}
			consumer, err := mq.NewConsumer(conn, queue, routingKey, 16, log, cfg)
			if err != nil {
				return err
			}
			defer consumer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			err = consumer.Handle(ctx, func(_ context.Context, body []byte) error {
				_, werr := fmt.Fprintln(out, string(body))
				return werr
			})
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	tail.Flags().StringVar(&queue, "queue", "", "durable queue to consume; empty uses a temporary queue")
	tail.Flags().StringVar(&routingKey, "routing-key", "", "binding key, defaults to rabbitmq.routing_key.report_recorded")

	cmd.AddCommand(tail)
	return cmd
}
