package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/St1cky1/taskflow/internal/filter"
	"github.com/St1cky1/taskflow/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	board usecase.TaskBoard
	tmpl  *template.Template
}

func NewTaskHandler(board usecase.TaskBoard) *TaskHandler {
	return &TaskHandler{
		board: board,
		tmpl:  parseTemplates(),
	}
}

// главная страница: форма, фильтры и список
func (h *TaskHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status := http.StatusOK

	var filterError string
	if err := h.board.SetFilter(r.Context(), filter.FromValues(query)); err != nil {
		// ошибка загрузки списка уже лежит во View.Error
		if entity.IsValidation(err) {
			filterError = err.Error()
			status = http.StatusBadRequest
		}
	}

	page := newPageData(h.board.View())
	page.FilterError = filterError

	if editID := entity.TaskID(query.Get("edit")); editID != "" {
		for _, task := range page.View.Tasks {
			if task.ID == editID {
				page.EditID = editID
				page.Edit = formFromTask(task)
				break
			}
		}
	}

	h.render(w, status, page)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest) // 400
		return
	}

	form := formState{
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
		Priority:    r.PostForm.Get("priority"),
		DueDate:     r.PostForm.Get("dueDate"),
	}

	req := entity.CreateTaskRequest{
		Title:       form.Title,
		Description: form.Description,
		Priority:    entity.TaskPriority(form.Priority),
	}
	if strings.TrimSpace(form.DueDate) != "" {
		req.DueDate = &form.DueDate
	}

	if _, err := h.board.Add(r.Context(), req); err != nil {
		if vErr := validationError(err); vErr != nil {
			form.Errors = fieldErrors(vErr)
			page := newPageData(h.board.View())
			page.Form = form
			h.render(w, http.StatusUnprocessableEntity, page) // 422
			return
		}
		// остальные ошибки уже записаны в уведомления
	}

	h.redirectHome(w, r)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := taskIDParam(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := formState{
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
		Priority:    r.PostForm.Get("priority"),
		Status:      r.PostForm.Get("status"),
		DueDate:     r.PostForm.Get("dueDate"),
	}

	patch := entity.EditPatch(
		form.Title,
		form.Description,
		entity.TaskPriority(form.Priority),
		entity.TaskStatus(form.Status),
		form.DueDate,
	)

	if _, err := h.board.Edit(r.Context(), id, patch); err != nil {
		if vErr := validationError(err); vErr != nil {
			form.Errors = fieldErrors(vErr)
			page := newPageData(h.board.View())
			page.EditID = id
			page.Edit = form
			h.render(w, http.StatusUnprocessableEntity, page)
			return
		}
	}

	h.redirectHome(w, r)
}

func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id := taskIDParam(r)
	_, _ = h.board.Toggle(r.Context(), id)
	h.redirectHome(w, r)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := taskIDParam(r)
	_ = h.board.Remove(r.Context(), id)
	h.redirectHome(w, r)
}

func (h *TaskHandler) DismissNotice(w http.ResponseWriter, r *http.Request) {
	noticeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid notice Id", http.StatusBadRequest)
		return
	}

	h.board.Dismiss(noticeID)
	h.redirectHome(w, r)
}

func (h *TaskHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	_ = h.board.Refetch(r.Context())
	h.redirectHome(w, r)
}

func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"mode":   h.board.Mode(),
	})
}

// render сначала пишет в буфер, чтобы ошибка шаблона не оставила половину страницы
func (h *TaskHandler) render(w http.ResponseWriter, status int, page *pageData) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index", page); err != nil {
		slog.Error("❌ ошибка отрисовки страницы", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError) // 500
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// после POST возвращаемся на главную с текущим фильтром (303 See Other)
func (h *TaskHandler) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, homeURL(h.board.View().Filter), http.StatusSeeOther)
}

// taskIDParam достает ID из пути. chi матчит по RawPath, если он есть,
// и тогда сегмент еще закодирован.
func taskIDParam(r *http.Request) entity.TaskID {
	raw := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return entity.TaskID(raw)
	}
	id, err := url.PathUnescape(raw)
	if err != nil {
		return entity.TaskID(raw)
	}
	return entity.TaskID(id)
}

func validationError(err error) *entity.ValidationError {
	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		return vErr
	}
	return nil
}

func fieldErrors(vErr *entity.ValidationError) map[string]string {
	field := vErr.Field
	if field == "" {
		field = "form"
	}
	return map[string]string{field: vErr.Message}
}
