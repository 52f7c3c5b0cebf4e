package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/St1cky1/taskflow/internal/entity"
	amqp "github.com/rabbitmq/amqp091-go"
)

const consumerTag = "taskflow_events"

// Consumer - часть *amqp.Channel, нужная воркеру
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// EventHandler обрабатывает одно событие. Ошибка возвращает сообщение в очередь.
type EventHandler func(ctx context.Context, event *entity.TaskEvent) error

type EventWorker struct {
	consumer  Consumer
	queueName string
	handle    EventHandler
}

func NewEventWorker(consumer Consumer, queueName string, handle EventHandler) *EventWorker {
	if handle == nil {
		handle = LogEvent
	}
	return &EventWorker{
		consumer:  consumer,
		queueName: queueName,
		handle:    handle,
	}
}

// Start читает очередь до отмены контекста или закрытия канала доставки.
func (w *EventWorker) Start(ctx context.Context) error {
	msgs, err := w.consumer.Consume(
		w.queueName, // queue
		consumerTag, // consumer tag
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consumer on %s: %w", w.queueName, err)
	}

	slog.Info("✅ Event Worker запущен. Ожидаем сообщения...", "queue", w.queueName)

	for {
		select {
		case <-ctx.Done():
			slog.Info("🛑 Event Worker остановлен")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				slog.Info("📨 Канал сообщений закрыт")
				return nil
			}
			w.processMessage(ctx, msg)
		}
	}
}

func (w *EventWorker) processMessage(ctx context.Context, msg amqp.Delivery) {
	slog.Debug("📥 Получено сообщение", "body", string(msg.Body))

	var event entity.TaskEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		slog.Error("❌ Ошибка парсинга сообщения", "error", err)
		msg.Nack(false, false) // битое сообщение не возвращаем в очередь
		return
	}

	if err := w.handle(ctx, &event); err != nil {
		slog.Error("❌ Ошибка обработки события", "action", event.Action, "task_id", event.TaskID, "error", err)
		msg.Nack(false, true)
		return
	}

	msg.Ack(false)
}

// LogEvent пишет событие в лог
func LogEvent(_ context.Context, event *entity.TaskEvent) error {
	slog.Info("✅ событие задачи",
		"action", event.Action,
		"task_id", event.TaskID,
		"mode", event.Mode,
		"changes", len(event.Changes),
		"at", event.Timestamp,
	)
	return nil
}
