package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/St1cky1/taskflow/internal/filter"
)

// TasksAPIClient - клиент REST CRUD бэкенда задач.
// Повторов нет, таймаут задает переданный http.Client.
type TasksAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

type createTaskBody struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    entity.TaskPriority `json:"priority"`
	DueDate     *string             `json:"dueDate"`
}

func NewTasksAPIClient(baseURL string, httpClient *http.Client) *TasksAPIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TasksAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *TasksAPIClient) BaseURL() string {
	return c.baseURL
}

// List - GET /tasks с параметрами фильтра, порядок задает сервер
func (c *TasksAPIClient) List(ctx context.Context, spec entity.FilterSpec) ([]entity.Task, error) {
	path := "/tasks"
	if query := filter.Values(spec).Encode(); query != "" {
		path += "?" + query
	}

	var tasks []entity.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}
	return tasks, nil
}

func (c *TasksAPIClient) Create(ctx context.Context, req *entity.CreateTaskRequest) (*entity.Task, error) {
	body := createTaskBody{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
	if body.Priority == "" {
		body.Priority = entity.PriorityMedium
	}

	var task entity.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *TasksAPIClient) Update(ctx context.Context, id entity.TaskID, patch *entity.UpdateTaskRequest) (*entity.Task, error) {
	var task entity.Task
	if err := c.do(ctx, http.MethodPatch, taskPath(id), patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *TasksAPIClient) Delete(ctx context.Context, id entity.TaskID) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

func taskPath(id entity.TaskID) string {
	return "/tasks/" + url.PathEscape(string(id))
}

// do выполняет запрос. Не 2xx превращается в RemoteError с текстом ответа,
// ошибка транспорта - в NetworkError. На 204 тело не читается.
func (c *TasksAPIClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &entity.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		message := strings.TrimSpace(string(text))
		if message == "" {
			message = resp.Status
		}
		return &entity.RemoteError{StatusCode: resp.StatusCode, Message: message}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &entity.RemoteError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("invalid response from backend: %v", err),
		}
	}
	return nil
}
