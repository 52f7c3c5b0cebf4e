package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/St1cky1/taskflow/internal/entity"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAcknowledger запоминает ack/nack по delivery tag
type fakeAcknowledger struct {
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (a *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	a.acked = append(a.acked, tag)
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	a.nacked = append(a.nacked, tag)
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

type fakeConsumer struct {
	deliveries chan amqp.Delivery
	err        error
	queue      string
}

func (c *fakeConsumer) Consume(queue, _ string, _, _, _, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	c.queue = queue
	if c.err != nil {
		return nil, c.err
	}
	return c.deliveries, nil
}

func delivery(t *testing.T, ack amqp.Acknowledger, tag uint64, body any) amqp.Delivery {
	t.Helper()

	var raw []byte
	switch b := body.(type) {
	case string:
		raw = []byte(b)
	default:
		var err error
		raw, err = json.Marshal(b)
		require.NoError(t, err)
	}
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag, Body: raw}
}

func TestEventWorker_AckNack(t *testing.T) {
	ack := &fakeAcknowledger{}
	consumer := &fakeConsumer{deliveries: make(chan amqp.Delivery, 3)}

	var handled []entity.TaskID
	handler := func(_ context.Context, event *entity.TaskEvent) error {
		if event.TaskID == "broken" {
			return errors.New("handler failed")
		}
		handled = append(handled, event.TaskID)
		return nil
	}

	task := entity.Task{ID: "t-1", Title: "Buy milk"}
	consumer.deliveries <- delivery(t, ack, 1, entity.NewTaskEvent(entity.ActionCreate, "local", nil, &task, time.Now()))
	consumer.deliveries <- delivery(t, ack, 2, "{not json")
	consumer.deliveries <- delivery(t, ack, 3, entity.TaskEvent{Action: entity.ActionDelete, TaskID: "broken"})
	close(consumer.deliveries)

	w := NewEventWorker(consumer, "task_events", handler)
	require.NoError(t, w.Start(context.Background()))

	assert.Equal(t, "task_events", consumer.queue)
	assert.Equal(t, []entity.TaskID{"t-1"}, handled)
	assert.Equal(t, []uint64{1}, ack.acked)
	assert.Equal(t, []uint64{2, 3}, ack.nacked)
	// битое сообщение не возвращается, ошибка обработчика - возвращается
	assert.Equal(t, []bool{false, true}, ack.requeue)
}

func TestEventWorker_StopsOnContextCancel(t *testing.T) {
	consumer := &fakeConsumer{deliveries: make(chan amqp.Delivery)}
	w := NewEventWorker(consumer, "task_events", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, w.Start(ctx))
}

func TestEventWorker_ConsumeError(t *testing.T) {
	consumer := &fakeConsumer{err: errors.New("channel closed")}
	w := NewEventWorker(consumer, "task_events", nil)

	err := w.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}
