package entity

import (
	"time"
)

type ActionType string

const (
	ActionCreate ActionType = "Create"
	ActionUpdate ActionType = "Update"
	ActionDelete ActionType = "Delete"
)

// TaskEvent публикуется после успешной мутации
type TaskEvent struct {
	Action    ActionType     `json:"action"`
	TaskID    TaskID         `json:"task_id"`
	Mode      string         `json:"mode"`
	OldValues map[string]any `json:"old_values,omitempty"`
	NewValues map[string]any `json:"new_values,omitempty"`
	Changes   map[string]any `json:"changes,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Values - поля задачи для событий
func (t Task) Values() map[string]any {
	values := map[string]any{
		"title":       t.Title,
		"description": t.Description,
		"priority":    t.Priority,
		"status":      t.Status,
		"completed":   t.Completed,
	}
	if t.DueDate != nil {
		values["dueDate"] = *t.DueDate
	}
	return values
}

// NewTaskEvent собирает событие; для Update вычисляет изменения.
func NewTaskEvent(action ActionType, mode string, oldTask, newTask *Task, at time.Time) *TaskEvent {
	event := &TaskEvent{
		Action:    action,
		Mode:      mode,
		Timestamp: at,
	}
	if newTask != nil {
		event.TaskID = newTask.ID
		event.NewValues = newTask.Values()
	}
	if oldTask != nil {
		event.TaskID = oldTask.ID
		event.OldValues = oldTask.Values()
	}

	if action == ActionUpdate && oldTask != nil && newTask != nil {
		changes := make(map[string]any)
		for field, oldValue := range event.OldValues {
			if newValue, ok := event.NewValues[field]; !ok || newValue != oldValue {
				changes[field] = map[string]any{"old": oldValue, "new": event.NewValues[field]}
			}
		}
		for field, newValue := range event.NewValues {
			if _, ok := event.OldValues[field]; !ok {
				changes[field] = map[string]any{"old": nil, "new": newValue}
			}
		}
		event.Changes = changes
	}

	return event
}
