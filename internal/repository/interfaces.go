package repository

import (
	"github.com/St1cky1/taskflow/internal/entity"
)

// ITaskRepository - упорядоченная коллекция задач (локальный кэш доски)
type ITaskRepository interface {
	Prepend(task entity.Task) error
	GetByTaskId(id entity.TaskID) (entity.Task, bool)
	Replace(task entity.Task) bool
	Delete(id entity.TaskID) bool
	List() []entity.Task
	Reset(tasks []entity.Task)
	Len() int
}
