package usecase

import (
	"context"
	"fmt"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/St1cky1/taskflow/internal/filter"
	"github.com/google/uuid"
)

// LocalBoard держит задачи только в памяти сессии, без сети.
type LocalBoard struct {
	*board
	newID func() (entity.TaskID, error)
}

var _ TaskBoard = (*LocalBoard)(nil)

func NewLocalBoard(events EventPublisher) *LocalBoard {
	return &LocalBoard{
		board: newBoard(ModeLocal, events),
		newID: newTaskID,
	}
}

// newTaskID - UUIDv7: метка времени в миллисекундах + случайные биты
func newTaskID() (entity.TaskID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate task id: %w", err)
	}
	return entity.TaskID(id.String()), nil
}

func (b *LocalBoard) Add(_ context.Context, req entity.CreateTaskRequest) (*entity.Task, error) {
	task, err := entity.ValidateCreate(req, b.now())
	if err != nil {
		return nil, err
	}

	id, err := b.newID()
	if err != nil {
		return nil, b.fail(MsgAddFailed, err)
	}
	task.ID = id

	if err := b.tasks.Prepend(task); err != nil {
		return nil, b.fail(MsgAddFailed, err)
	}

	b.publish(entity.ActionCreate, nil, &task)
	return &task, nil
}

func (b *LocalBoard) Toggle(_ context.Context, id entity.TaskID) (*entity.Task, error) {
	return b.update(id, func(existing entity.Task) entity.UpdateTaskRequest {
		return entity.TogglePatch(existing)
	}, MsgToggleFailed)
}

func (b *LocalBoard) Edit(_ context.Context, id entity.TaskID, patch entity.UpdateTaskRequest) (*entity.Task, error) {
	return b.update(id, func(entity.Task) entity.UpdateTaskRequest {
		return patch
	}, MsgEditFailed)
}

func (b *LocalBoard) update(id entity.TaskID, makePatch func(entity.Task) entity.UpdateTaskRequest, failMessage string) (*entity.Task, error) {
	b.mu.Lock()
	existing, ok := b.tasks.GetByTaskId(id)
	if !ok {
		b.mu.Unlock()
		return nil, b.fail(failMessage, entity.ErrTaskNotFound)
	}

	updated, err := entity.ValidateUpdate(existing, makePatch(existing))
	if err != nil {
		b.mu.Unlock()
		return nil, err
	}
	b.tasks.Replace(updated)
	b.mu.Unlock()

	b.publish(entity.ActionUpdate, &existing, &updated)
	return &updated, nil
}

func (b *LocalBoard) Remove(_ context.Context, id entity.TaskID) error {
	b.mu.Lock()
	existing, ok := b.tasks.GetByTaskId(id)
	if ok {
		b.tasks.Delete(id)
	}
	b.mu.Unlock()

	if !ok {
		return b.fail(MsgDeleteFailed, entity.ErrTaskNotFound)
	}

	b.publish(entity.ActionDelete, &existing, nil)
	return nil
}

func (b *LocalBoard) SetFilter(_ context.Context, spec entity.FilterSpec) error {
	if err := filter.Validate(spec); err != nil {
		return err
	}

	b.mu.Lock()
	b.filter = spec
	b.mu.Unlock()
	return nil
}

// Refetch - в локальном режиме загружать нечего
func (b *LocalBoard) Refetch(context.Context) error {
	return nil
}
