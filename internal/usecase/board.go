package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/St1cky1/taskflow/internal/filter"
	"github.com/St1cky1/taskflow/internal/repository"
)

const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

const (
	MsgAddFailed    = "Failed to add task"
	MsgToggleFailed = "Failed to update task"
	MsgDeleteFailed = "Failed to delete task"
	MsgEditFailed   = "Failed to save changes"
	MsgLoadFailed   = "Failed to load tasks. Make sure the backend is running."
)

const maxNotices = 5

// TaskBoard - контейнер состояния сессии. Две реализации: LocalBoard и
// RemoteBoard, выбираются один раз при старте.
type TaskBoard interface {
	Add(ctx context.Context, req entity.CreateTaskRequest) (*entity.Task, error)
	Toggle(ctx context.Context, id entity.TaskID) (*entity.Task, error)
	Remove(ctx context.Context, id entity.TaskID) error
	Edit(ctx context.Context, id entity.TaskID, patch entity.UpdateTaskRequest) (*entity.Task, error)
	SetFilter(ctx context.Context, spec entity.FilterSpec) error
	Refetch(ctx context.Context) error
	Dismiss(noticeID int)
	View() View
	Mode() string
}

// EventPublisher интерфейс для публикации событий (RabbitMQ)
type EventPublisher interface {
	PublishTaskEvent(ctx context.Context, event *entity.TaskEvent) error
}

// Notice - сообщение об ошибке, которое пользователь может закрыть
type Notice struct {
	ID      int
	Message string
}

// View - снимок состояния для отрисовки, не разделяет память с доской
type View struct {
	Mode      string
	Filter    entity.FilterSpec
	Tasks     []entity.Task
	Total     int
	OpenCount int
	Loading   bool
	Error     string
	Notices   []Notice
}

// board - общее состояние обеих реализаций
type board struct {
	tasks  repository.ITaskRepository
	events EventPublisher
	mode   string
	now    func() time.Time

	mu        sync.Mutex
	filter    entity.FilterSpec
	loading   bool
	loadErr   string
	notices   []Notice
	noticeSeq int
}

func newBoard(mode string, events EventPublisher) *board {
	return &board{
		tasks:  repository.NewTaskRepository(),
		events: events,
		mode:   mode,
		now:    time.Now,
		filter: entity.DefaultFilter(),
	}
}

func (b *board) Mode() string {
	return b.mode
}

func (b *board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()

	all := b.tasks.List()
	openCount := 0
	for _, task := range all {
		if !task.Completed {
			openCount++
		}
	}

	notices := make([]Notice, len(b.notices))
	copy(notices, b.notices)

	return View{
		Mode:      b.mode,
		Filter:    b.filter,
		Tasks:     filter.Visible(all, b.filter),
		Total:     len(all),
		OpenCount: openCount,
		Loading:   b.loading,
		Error:     b.loadErr,
		Notices:   notices,
	}
}

func (b *board) Dismiss(noticeID int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, notice := range b.notices {
		if notice.ID == noticeID {
			b.notices = append(b.notices[:i:i], b.notices[i+1:]...)
			return
		}
	}
}

// fail записывает уведомление и возвращает исходную ошибку.
// Ошибки валидации показываются у поля формы, уведомление не нужно.
func (b *board) fail(message string, err error) error {
	if entity.IsValidation(err) {
		return err
	}

	slog.Warn("❌ "+message, "mode", b.mode, "error", err)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.noticeSeq++
	b.notices = append(b.notices, Notice{ID: b.noticeSeq, Message: message + ": " + err.Error()})
	if len(b.notices) > maxNotices {
		b.notices = b.notices[len(b.notices)-maxNotices:]
	}
	return err
}

// publish асинхронно отправляет событие, ошибка только логируется
func (b *board) publish(action entity.ActionType, oldTask, newTask *entity.Task) {
	if b.events == nil {
		return
	}
	event := entity.NewTaskEvent(action, b.mode, oldTask, newTask, b.now())

	go func() {
		if err := b.events.PublishTaskEvent(context.Background(), event); err != nil {
			slog.Error("❌ ошибка отправки события", "action", action, "task_id", event.TaskID, "error", err)
		}
	}()
}
