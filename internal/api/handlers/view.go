package handlers

import (
	"embed"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/St1cky1/taskflow/internal/filter"
	"github.com/St1cky1/taskflow/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

// formState - значения формы и ошибки по полям
type formState struct {
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     string
	Errors      map[string]string
}

type pageData struct {
	View        usecase.View
	Form        formState
	EditID      entity.TaskID
	Edit        formState
	FilterError string
	Statuses    []entity.TaskStatus
	Priorities  []entity.TaskPriority
}

type rowView struct {
	Task       entity.Task
	Editing    bool
	Form       formState
	Return     string
	EditURL    string
	Statuses   []entity.TaskStatus
	Priorities []entity.TaskPriority
}

func newPageData(view usecase.View) *pageData {
	return &pageData{
		View:       view,
		Form:       formState{Priority: string(entity.PriorityMedium)},
		Statuses:   entity.Statuses,
		Priorities: entity.Priorities,
	}
}

func formFromTask(task entity.Task) formState {
	form := formState{
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
	}
	if task.DueDate != nil {
		form.DueDate = *task.DueDate
	}
	return form
}

func parseTemplates() *template.Template {
	return template.Must(template.New("taskflow").Funcs(template.FuncMap{
		"priorityLabel": priorityLabel,
		"statusLabel":   statusLabel,
		"formatTime":    formatTime,
		"rowData":       rowData,
		"pathEscape":    pathEscape,
	}).ParseFS(templateFS, "templates/*.html"))
}

func rowData(page *pageData, task entity.Task) rowView {
	row := rowView{
		Task:       task,
		Return:     homeURL(page.View.Filter),
		EditURL:    editURL(page.View.Filter, task.ID),
		Statuses:   page.Statuses,
		Priorities: page.Priorities,
	}
	if page.EditID != "" && page.EditID == task.ID {
		row.Editing = true
		row.Form = page.Edit
	}
	return row
}

// homeURL - главная страница с текущим фильтром
func homeURL(spec entity.FilterSpec) string {
	if query := filter.Values(spec).Encode(); query != "" {
		return "/?" + query
	}
	return "/"
}

func editURL(spec entity.FilterSpec, id entity.TaskID) string {
	values := filter.Values(spec)
	values.Set("edit", string(id))
	return "/?" + values.Encode()
}

// pathEscape кодирует непрозрачный ID для сегмента пути, "/" и "?" тоже
func pathEscape(id entity.TaskID) string {
	return url.PathEscape(string(id))
}

func priorityLabel(p entity.TaskPriority) string {
	if p == "" {
		return "-"
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

func statusLabel(s entity.TaskStatus) string {
	switch s {
	case entity.StatusInProgress:
		return "In Progress"
	case entity.StatusDone:
		return "Done"
	default:
		return "Open"
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
