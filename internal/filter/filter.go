// Package filter derives the visible task list from a FilterSpec and maps
// a FilterSpec to and from URL query parameters.
package filter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/St1cky1/taskflow/internal/entity"
)

// Query parameter names shared by the REST contract and the web UI.
const (
	ParamQuery         = "q"
	ParamStatus        = "status"
	ParamPriority      = "priority"
	ParamShowCompleted = "show_completed"
)

// Visible returns the tasks matching spec in their original order.
// All clauses are AND-combined. The input slice is never modified.
func Visible(tasks []entity.Task, spec entity.FilterSpec) []entity.Task {
	query := strings.ToLower(spec.Query)
	visible := make([]entity.Task, 0, len(tasks))

	for _, task := range tasks {
		if query != "" &&
			!strings.Contains(strings.ToLower(task.Title), query) &&
			!strings.Contains(strings.ToLower(task.Description), query) {
			continue
		}
		if spec.Status != entity.FilterStatusAll && spec.Status != "" && string(task.Status) != spec.Status {
			continue
		}
		if spec.Priority != entity.FilterPriorityAny && spec.Priority != "" && string(task.Priority) != spec.Priority {
			continue
		}
		if !spec.ShowCompleted && task.Completed {
			continue
		}
		visible = append(visible, task)
	}

	return visible
}

// Validate rejects status and priority values outside their enums.
func Validate(spec entity.FilterSpec) error {
	if spec.Status != entity.FilterStatusAll && !entity.TaskStatus(spec.Status).Valid() {
		return &entity.ValidationError{Field: "status", Message: "unknown status filter " + strconv.Quote(spec.Status)}
	}
	if spec.Priority != entity.FilterPriorityAny && !entity.TaskPriority(spec.Priority).Valid() {
		return &entity.ValidationError{Field: "priority", Message: "unknown priority filter " + strconv.Quote(spec.Priority)}
	}
	return nil
}

// Values encodes spec, leaving out every parameter at its neutral value.
func Values(spec entity.FilterSpec) url.Values {
	values := url.Values{}
	if spec.Query != "" {
		values.Set(ParamQuery, spec.Query)
	}
	if spec.Status != "" && spec.Status != entity.FilterStatusAll {
		values.Set(ParamStatus, spec.Status)
	}
	if spec.Priority != "" && spec.Priority != entity.FilterPriorityAny {
		values.Set(ParamPriority, spec.Priority)
	}
	if !spec.ShowCompleted {
		values.Set(ParamShowCompleted, "false")
	}
	return values
}

// FromValues is the inverse of Values: missing parameters take the
// neutral value. Only the first value of each parameter counts.
func FromValues(values url.Values) entity.FilterSpec {
	spec := entity.DefaultFilter()
	spec.Query = values.Get(ParamQuery)
	if status := values.Get(ParamStatus); status != "" {
		spec.Status = status
	}
	if priority := values.Get(ParamPriority); priority != "" {
		spec.Priority = priority
	}
	if raw := values.Get(ParamShowCompleted); raw != "" {
		if show, err := strconv.ParseBool(raw); err == nil {
			spec.ShowCompleted = show
		}
	}
	return spec
}
