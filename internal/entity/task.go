package entity

import (
	"bytes"
	"encoding/json"
	"time"
)

type TaskStatus string

const (
	StatusOpen       TaskStatus = "open"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// Statuses в порядке отображения
var Statuses = []TaskStatus{StatusOpen, StatusInProgress, StatusDone}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

var Priorities = []TaskPriority{PriorityHigh, PriorityMedium, PriorityLow}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// DateLayout - формат dueDate (ISO дата без времени)
const DateLayout = "2006-01-02"

// TaskID - непрозрачный идентификатор. Бэкенд может вернуть число,
// тогда храним его десятичную запись.
type TaskID string

func (id *TaskID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TaskID(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = TaskID(n.String())
	return nil
}

type Task struct {
	ID          TaskID       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description,omitempty"`
	Priority    TaskPriority `json:"priority" yaml:"priority"`
	Status      TaskStatus   `json:"status" yaml:"status"`
	Completed   bool         `json:"completed" yaml:"completed"`
	DueDate     *string      `json:"dueDate" yaml:"dueDate,omitempty"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"createdAt"`
}

// валидация
type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status,omitempty"`
	DueDate     *string      `json:"dueDate"`
}

// UpdateTaskRequest - частичное обновление, nil означает "не менять".
// DueDate с пустой строкой очищает дату.
type UpdateTaskRequest struct {
	Title       *string
	Description *string
	Priority    *TaskPriority
	Status      *TaskStatus
	Completed   *bool
	DueDate     *string
}

func (r UpdateTaskRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Priority == nil &&
		r.Status == nil && r.Completed == nil && r.DueDate == nil
}

// MarshalJSON отдает только заданные поля, очищенная дата уходит как null.
func (r UpdateTaskRequest) MarshalJSON() ([]byte, error) {
	body := make(map[string]any)
	if r.Title != nil {
		body["title"] = *r.Title
	}
	if r.Description != nil {
		body["description"] = *r.Description
	}
	if r.Priority != nil {
		body["priority"] = *r.Priority
	}
	if r.Status != nil {
		body["status"] = *r.Status
	}
	if r.Completed != nil {
		body["completed"] = *r.Completed
	}
	if r.DueDate != nil {
		if *r.DueDate == "" {
			body["dueDate"] = nil
		} else {
			body["dueDate"] = *r.DueDate
		}
	}
	return json.Marshal(body)
}

type FilterSpec struct {
	Query         string `json:"query"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	ShowCompleted bool   `json:"showCompleted"`
}

const (
	FilterStatusAll   = "all"
	FilterPriorityAny = "any"
)

func DefaultFilter() FilterSpec {
	return FilterSpec{
		Status:        FilterStatusAll,
		Priority:      FilterPriorityAny,
		ShowCompleted: true,
	}
}
