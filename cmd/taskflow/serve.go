package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/St1cky1/taskflow/internal/api"
	"github.com/St1cky1/taskflow/internal/usecase"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web UI",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	_ = v.BindPFlag("listen_addr", serveCmd.Flags().Lookup("listen"))
}

func runServe(cmd *cobra.Command, args []string) error {
	rabbitMQ, err := openEvents(cfg)
	if err != nil {
		return err
	}

	var events usecase.EventPublisher
	if rabbitMQ != nil {
		events = rabbitMQ
	}

	board := openBoard(cfg, events)

	// первая загрузка; ошибка уже видна на странице, сервер все равно стартует
	if err := board.Refetch(cmd.Context()); err != nil {
		slog.Warn("⚠️  первая загрузка задач не удалась", "error", err)
	}

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewRouter(board),
	}

	slog.Info("🚀 TaskFlow запущен", "addr", cfg.ListenAddr, "mode", board.Mode())
	serverErr := startServer(server)

	operations := map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			slog.Info("🛑 Завершение работы HTTP сервера...")
			return server.Shutdown(ctx)
		},
	}
	if rabbitMQ != nil {
		operations["rabbitmq"] = func(context.Context) error {
			return rabbitMQ.Close()
		}
	}

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, operations)

	exitCode, err := awaitShutdown(serverErr, wait)
	if err != nil {
		slog.Error("❌ HTTP server error", "error", err)
		if rabbitMQ != nil {
			rabbitMQ.Close()
		}
		return err
	}

	slog.Info("✅ Приложение завершено", "code", exitCode)
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}

// startServer запускает сервер в горутине. Ошибка запуска (например, порт
// занят) приходит в канал; после штатного Shutdown канал закрывается.
func startServer(server *http.Server) <-chan error {
	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	return serverErr
}

// awaitShutdown ждет либо код выхода от graceful shutdown, либо падения сервера.
func awaitShutdown(serverErr <-chan error, wait <-chan int) (int, error) {
	for {
		select {
		case err, ok := <-serverErr:
			if ok && err != nil {
				return 1, fmt.Errorf("http server failed: %w", err)
			}
			// сервер остановлен штатно, дожидаемся кода выхода
			serverErr = nil
		case exitCode := <-wait:
			return exitCode, nil
		}
	}
}
