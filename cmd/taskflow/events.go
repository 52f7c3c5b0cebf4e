package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/St1cky1/taskflow/internal/worker"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Consume task events from RabbitMQ and log them",
	Args:  cobra.NoArgs,
	RunE:  runEvents,
}

func runEvents(cmd *cobra.Command, args []string) error {
	if !cfg.EventsEnabled() {
		return errors.New("events are disabled: set --amqp or TASKFLOW_AMQP_URL")
	}

	rabbitMQ, err := openEvents(cfg)
	if err != nil {
		return err
	}
	defer rabbitMQ.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	w := worker.NewEventWorker(rabbitMQ.GetChannel(), rabbitMQ.GetQueueName(), func(ctx context.Context, event *entity.TaskEvent) error {
		fmt.Fprintf(out, "%s  %-6s %s (%s)\n", event.Timestamp.Format("15:04:05"), event.Action, event.TaskID, event.Mode)
		return worker.LogEvent(ctx, event)
	})

	fmt.Fprintln(out, "Ожидаем события (Ctrl+C для остановки)...")
	return w.Start(ctx)
}
