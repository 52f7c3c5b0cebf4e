package usecase

import (
	"context"
	"log/slog"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/St1cky1/taskflow/internal/filter"
)

// TasksAPI - REST CRUD бэкенд
type TasksAPI interface {
	List(ctx context.Context, spec entity.FilterSpec) ([]entity.Task, error)
	Create(ctx context.Context, req *entity.CreateTaskRequest) (*entity.Task, error)
	Update(ctx context.Context, id entity.TaskID, patch *entity.UpdateTaskRequest) (*entity.Task, error)
	Delete(ctx context.Context, id entity.TaskID) error
}

// RemoteBoard сначала вызывает API и меняет кэш только при успехе.
// Мьютекс не удерживается во время сетевых вызовов.
type RemoteBoard struct {
	*board
	api        TasksAPI
	generation uint64
}

var _ TaskBoard = (*RemoteBoard)(nil)

func NewRemoteBoard(api TasksAPI, events EventPublisher) *RemoteBoard {
	return &RemoteBoard{
		board: newBoard(ModeRemote, events),
		api:   api,
	}
}

func (b *RemoteBoard) Add(ctx context.Context, req entity.CreateTaskRequest) (*entity.Task, error) {
	task, err := entity.ValidateCreate(req, b.now())
	if err != nil {
		return nil, err
	}

	created, err := b.api.Create(ctx, &entity.CreateTaskRequest{
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
	})
	if err != nil {
		return nil, b.fail(MsgAddFailed, err)
	}

	// задача могла уже прийти с параллельной загрузкой списка
	if err := b.tasks.Prepend(*created); err != nil {
		b.tasks.Replace(*created)
	}

	b.publish(entity.ActionCreate, nil, created)
	return created, nil
}

func (b *RemoteBoard) Toggle(ctx context.Context, id entity.TaskID) (*entity.Task, error) {
	existing, ok := b.tasks.GetByTaskId(id)
	if !ok {
		return nil, b.fail(MsgToggleFailed, entity.ErrTaskNotFound)
	}
	return b.update(ctx, existing, entity.TogglePatch(existing), MsgToggleFailed)
}

func (b *RemoteBoard) Edit(ctx context.Context, id entity.TaskID, patch entity.UpdateTaskRequest) (*entity.Task, error) {
	existing, ok := b.tasks.GetByTaskId(id)
	if !ok {
		return nil, b.fail(MsgEditFailed, entity.ErrTaskNotFound)
	}
	return b.update(ctx, existing, patch, MsgEditFailed)
}

// update проверяет патч до сетевого вызова, отправляет очищенный патч
// и сохраняет строку сервера как есть
func (b *RemoteBoard) update(ctx context.Context, existing entity.Task, patch entity.UpdateTaskRequest, failMessage string) (*entity.Task, error) {
	merged, cleaned, err := entity.PrepareUpdate(existing, patch)
	if err != nil {
		return nil, err
	}

	updated, err := b.api.Update(ctx, existing.ID, &cleaned)
	if err != nil {
		return nil, b.fail(failMessage, err)
	}

	// 204 без тела - берем локальное слияние
	if updated == nil || updated.ID == "" {
		updated = &merged
	}

	b.tasks.Replace(*updated)
	b.publish(entity.ActionUpdate, &existing, updated)
	return updated, nil
}

func (b *RemoteBoard) Remove(ctx context.Context, id entity.TaskID) error {
	existing, known := b.tasks.GetByTaskId(id)

	if err := b.api.Delete(ctx, id); err != nil {
		return b.fail(MsgDeleteFailed, err)
	}
	b.tasks.Delete(id)

	if known {
		b.publish(entity.ActionDelete, &existing, nil)
	} else {
		b.publish(entity.ActionDelete, &entity.Task{ID: id}, nil)
	}
	return nil
}

// SetFilter сохраняет фильтр и перезагружает список, если он изменился.
func (b *RemoteBoard) SetFilter(ctx context.Context, spec entity.FilterSpec) error {
	if err := filter.Validate(spec); err != nil {
		return err
	}

	b.mu.Lock()
	changed := b.filter != spec
	b.filter = spec
	b.mu.Unlock()

	if !changed {
		return nil
	}
	return b.Refetch(ctx)
}

// Refetch загружает список по текущему фильтру. Ответ устаревшего запроса
// отбрасывается: побеждает последний отправленный запрос, а не последний
// пришедший ответ.
func (b *RemoteBoard) Refetch(ctx context.Context) error {
	b.mu.Lock()
	b.generation++
	generation := b.generation
	spec := b.filter
	b.loading = true
	b.loadErr = ""
	b.mu.Unlock()

	tasks, err := b.api.List(ctx, spec)

	b.mu.Lock()
	defer b.mu.Unlock()

	if generation != b.generation {
		slog.Debug("🔄 устаревший ответ списка отброшен", "generation", generation, "latest", b.generation)
		return nil
	}

	b.loading = false
	if err != nil {
		b.loadErr = MsgLoadFailed
		slog.Warn("❌ не удалось загрузить задачи", "error", err)
		return err
	}

	b.tasks.Reset(tasks)
	slog.Debug("📋 список задач загружен", "count", len(tasks))
	return nil
}
