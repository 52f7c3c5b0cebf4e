package repository

import (
	"fmt"
	"sync"

	"github.com/St1cky1/taskflow/internal/entity"
)

// TaskRepository хранит задачи в памяти, новые задачи идут первыми.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks []entity.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// Prepend добавляет задачу в начало; id должен быть уникальным
func (r *TaskRepository) Prepend(task entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(task.ID) >= 0 {
		return fmt.Errorf("duplicate task id %q", task.ID)
	}

	tasks := make([]entity.Task, 0, len(r.tasks)+1)
	tasks = append(tasks, task)
	r.tasks = append(tasks, r.tasks...)
	return nil
}

func (r *TaskRepository) GetByTaskId(id entity.TaskID) (entity.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return entity.Task{}, false
	}
	return r.tasks[i], true
}

// Replace - замена задачи с тем же id на месте
func (r *TaskRepository) Replace(task entity.Task) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(task.ID)
	if i < 0 {
		return false
	}
	r.tasks[i] = task
	return true
}

func (r *TaskRepository) Delete(id entity.TaskID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.tasks = append(r.tasks[:i:i], r.tasks[i+1:]...)
	return true
}

// List возвращает копию
func (r *TaskRepository) List() []entity.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]entity.Task, len(r.tasks))
	copy(tasks, r.tasks)
	return tasks
}

// Reset заменяет всю коллекцию, например после загрузки с бэкенда
func (r *TaskRepository) Reset(tasks []entity.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = make([]entity.Task, len(tasks))
	copy(r.tasks, tasks)
}

func (r *TaskRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

func (r *TaskRepository) indexOf(id entity.TaskID) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
