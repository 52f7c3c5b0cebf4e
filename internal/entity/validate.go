package entity

import (
	"fmt"
	"strings"
	"time"
)

// ValidateCreate проверяет заголовок и заполняет значения по умолчанию.
// ID не назначается: это делает генератор или бэкенд.
func ValidateCreate(req CreateTaskRequest, now time.Time) (Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return Task{}, &ValidationError{Field: "title", Message: "title is required"}
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return Task{}, invalidEnum("priority", string(priority))
	}

	status := req.Status
	if status == "" {
		status = StatusOpen
	}
	if !status.Valid() {
		return Task{}, invalidEnum("status", string(status))
	}

	dueDate, err := normalizeDate(req.DueDate)
	if err != nil {
		return Task{}, err
	}

	return Task{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Priority:    priority,
		Status:      status,
		Completed:   status == StatusDone,
		DueDate:     dueDate,
		CreatedAt:   now,
	}, nil
}

// Normalize связывает completed и status: если задано только одно из полей,
// второе выводится из него.
func (r UpdateTaskRequest) Normalize() UpdateTaskRequest {
	switch {
	case r.Completed != nil && r.Status == nil:
		status := StatusOpen
		if *r.Completed {
			status = StatusDone
		}
		r.Status = &status
	case r.Status != nil && r.Completed == nil:
		completed := *r.Status == StatusDone
		r.Completed = &completed
	}
	return r
}

// ValidateUpdate накладывает нормализованный патч на существующую задачу.
func ValidateUpdate(existing Task, patch UpdateTaskRequest) (Task, error) {
	merged, _, err := PrepareUpdate(existing, patch)
	return merged, err
}

// PrepareUpdate проверяет патч и возвращает слитую задачу вместе с очищенным
// патчем: заголовок и описание без пробелов по краям, дата проверена,
// completed и status связаны. Именно этот патч уходит на бэкенд.
func PrepareUpdate(existing Task, patch UpdateTaskRequest) (Task, UpdateTaskRequest, error) {
	if patch.Empty() {
		return Task{}, UpdateTaskRequest{}, &ValidationError{Message: "no fields to update"}
	}
	patch = patch.Normalize()
	merged := existing

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return Task{}, UpdateTaskRequest{}, &ValidationError{Field: "title", Message: "title is required"}
		}
		patch.Title = &title
		merged.Title = title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		patch.Description = &description
		merged.Description = description
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return Task{}, UpdateTaskRequest{}, invalidEnum("priority", string(*patch.Priority))
		}
		merged.Priority = *patch.Priority
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return Task{}, UpdateTaskRequest{}, invalidEnum("status", string(*patch.Status))
		}
		merged.Status = *patch.Status
	}
	if patch.Completed != nil {
		merged.Completed = *patch.Completed
	}
	if patch.DueDate != nil {
		dueDate, err := normalizeDate(patch.DueDate)
		if err != nil {
			return Task{}, UpdateTaskRequest{}, err
		}
		// пустая строка в патче очищает дату
		cleared := ""
		if dueDate == nil {
			patch.DueDate = &cleared
		} else {
			patch.DueDate = dueDate
		}
		merged.DueDate = dueDate
	}

	return merged, patch, nil
}

// TogglePatch переключает выполнение задачи.
func TogglePatch(task Task) UpdateTaskRequest {
	completed := !task.Completed
	return UpdateTaskRequest{Completed: &completed}.Normalize()
}

// EditPatch - полный набор редактируемых полей
func EditPatch(title, description string, priority TaskPriority, status TaskStatus, dueDate string) UpdateTaskRequest {
	return UpdateTaskRequest{
		Title:       &title,
		Description: &description,
		Priority:    &priority,
		Status:      &status,
		DueDate:     &dueDate,
	}
}

func normalizeDate(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	date := strings.TrimSpace(*value)
	if date == "" {
		return nil, nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, &ValidationError{Field: "dueDate", Message: fmt.Sprintf("invalid date %q, use YYYY-MM-DD", date)}
	}
	return &date, nil
}

func invalidEnum(field, value string) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("unknown value %q", value)}
}
