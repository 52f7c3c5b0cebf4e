package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/St1cky1/taskflow/internal/config"
	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/St1cky1/taskflow/internal/infrastructure/client"
	"github.com/St1cky1/taskflow/internal/usecase"
)

const requestTimeout = 15 * time.Second

// openBoard выбирает режим один раз: адрес бэкенда задан - remote, иначе local
func openBoard(cfg *config.Config, events usecase.EventPublisher) usecase.TaskBoard {
	if !cfg.RemoteMode() {
		slog.Info("📝 локальный режим: задачи живут только в этой сессии")
		return usecase.NewLocalBoard(events)
	}

	api := client.NewTasksAPIClient(cfg.BackendURL, &http.Client{Timeout: requestTimeout})
	slog.Info("🌐 удаленный режим", "backend", api.BaseURL())
	return usecase.NewRemoteBoard(api, events)
}

// openEvents подключается к RabbitMQ, если он настроен. nil без ошибки - события выключены.
func openEvents(cfg *config.Config) (*client.RabbitMQClient, error) {
	if !cfg.EventsEnabled() {
		return nil, nil
	}

	rabbitMQ, err := client.NewRabbitMQClient(cfg.AMQPURL, cfg.EventsQueue)
	if err != nil {
		return nil, err
	}
	slog.Info("✅ Подключение к RabbitMQ установлено", "queue", rabbitMQ.GetQueueName())
	return rabbitMQ, nil
}

// remoteBoard - доска для CLI команд над задачами, кэш заполнен полным списком
func remoteBoard(ctx context.Context) (usecase.TaskBoard, error) {
	if !cfg.RemoteMode() {
		return nil, fmt.Errorf("%w: task commands need --backend or TASKFLOW_BACKEND_URL", entity.ErrLocalMode)
	}

	board := openBoard(cfg, nil)
	if err := board.Refetch(ctx); err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return board, nil
}
