package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestValidateCreateRejectsBlankTitle(t *testing.T) {
	for _, title := range []string{"", " ", "\t\n  "} {
		_, err := ValidateCreate(CreateTaskRequest{Title: title}, time.Now())
		require.Error(t, err, "title %q", title)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "title", vErr.Field)
		assert.ErrorIs(t, err, ErrInvalidTaskData)
	}
}

func TestValidateCreateDefaults(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	task, err := ValidateCreate(CreateTaskRequest{Title: "  Write report ", Priority: PriorityHigh}, now)
	require.NoError(t, err)

	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "", task.Description)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.Equal(t, StatusOpen, task.Status)
	assert.False(t, task.Completed)
	assert.Nil(t, task.DueDate)
	assert.Equal(t, now, task.CreatedAt)

	task, err = ValidateCreate(CreateTaskRequest{Title: "x"}, now)
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, task.Priority)
}

func TestValidateCreateRejectsUnknownValues(t *testing.T) {
	_, err := ValidateCreate(CreateTaskRequest{Title: "x", Priority: "urgent"}, time.Now())
	assert.True(t, IsValidation(err))

	_, err = ValidateCreate(CreateTaskRequest{Title: "x", Status: "blocked"}, time.Now())
	assert.True(t, IsValidation(err))

	_, err = ValidateCreate(CreateTaskRequest{Title: "x", DueDate: ptr("01/02/2024")}, time.Now())
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "dueDate", vErr.Field)
}

func TestValidateCreateBlankDueDateIsNull(t *testing.T) {
	task, err := ValidateCreate(CreateTaskRequest{Title: "x", DueDate: ptr("")}, time.Now())
	require.NoError(t, err)
	assert.Nil(t, task.DueDate)
}

func TestValidateUpdateMergesFields(t *testing.T) {
	existing := Task{ID: "1", Title: "Old", Priority: PriorityLow, Status: StatusOpen, DueDate: ptr("2024-01-01")}

	merged, err := ValidateUpdate(existing, UpdateTaskRequest{Title: ptr(" New "), DueDate: ptr("")})
	require.NoError(t, err)

	assert.Equal(t, TaskID("1"), merged.ID)
	assert.Equal(t, "New", merged.Title)
	assert.Equal(t, PriorityLow, merged.Priority)
	assert.Nil(t, merged.DueDate)
	assert.Equal(t, "Old", existing.Title)
}

func TestValidateUpdateRejects(t *testing.T) {
	existing := Task{ID: "1", Title: "Old", Priority: PriorityLow, Status: StatusOpen}

	_, err := ValidateUpdate(existing, UpdateTaskRequest{Title: ptr("   ")})
	assert.True(t, IsValidation(err))

	_, err = ValidateUpdate(existing, UpdateTaskRequest{Status: ptr(TaskStatus("archived"))})
	assert.True(t, IsValidation(err))

	_, err = ValidateUpdate(existing, UpdateTaskRequest{Priority: ptr(TaskPriority("asap"))})
	assert.True(t, IsValidation(err))

	_, err = ValidateUpdate(existing, UpdateTaskRequest{})
	assert.True(t, IsValidation(err))
}

func TestStatusCompletionCoupling(t *testing.T) {
	existing := Task{ID: "1", Title: "x", Priority: PriorityLow, Status: StatusInProgress}

	done, err := ValidateUpdate(existing, UpdateTaskRequest{Status: ptr(StatusDone)})
	require.NoError(t, err)
	assert.True(t, done.Completed)

	reopened, err := ValidateUpdate(done, UpdateTaskRequest{Status: ptr(StatusInProgress)})
	require.NoError(t, err)
	assert.False(t, reopened.Completed)
	assert.Equal(t, StatusInProgress, reopened.Status)
}

func TestTogglePatchTwiceRestoresTask(t *testing.T) {
	original := Task{ID: "1", Title: "x", Priority: PriorityMedium, Status: StatusOpen}

	once, err := ValidateUpdate(original, TogglePatch(original))
	require.NoError(t, err)
	assert.True(t, once.Completed)
	assert.Equal(t, StatusDone, once.Status)

	twice, err := ValidateUpdate(once, TogglePatch(once))
	require.NoError(t, err)
	assert.Equal(t, original, twice)
}

func TestUpdateTaskRequestMarshalJSON(t *testing.T) {
	body, err := json.Marshal(UpdateTaskRequest{Completed: ptr(true)}.Normalize())
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed":true,"status":"done"}`, string(body))

	body, err = json.Marshal(EditPatch("t", "d", PriorityHigh, StatusOpen, ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"t","description":"d","priority":"high","status":"open","dueDate":null}`, string(body))
}

func TestTaskIDAcceptsNumbers(t *testing.T) {
	var tasks []Task
	err := json.Unmarshal([]byte(`[{"id":42,"title":"a"},{"id":"abc","title":"b"}]`), &tasks)
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.Equal(t, TaskID("42"), tasks[0].ID)
	assert.Equal(t, TaskID("abc"), tasks[1].ID)
}

func TestNewTaskEventChanges(t *testing.T) {
	oldTask := Task{ID: "7", Title: "a", Priority: PriorityLow, Status: StatusOpen}
	newTask := oldTask
	newTask.Status = StatusDone
	newTask.Completed = true

	event := NewTaskEvent(ActionUpdate, "local", &oldTask, &newTask, time.Now())

	assert.Equal(t, TaskID("7"), event.TaskID)
	assert.Len(t, event.Changes, 2)
	assert.Contains(t, event.Changes, "status")
	assert.Contains(t, event.Changes, "completed")
}

func TestPrepareUpdateReturnsCleanedPatch(t *testing.T) {
	existing := Task{ID: "1", Title: "Old", Priority: PriorityLow, Status: StatusOpen}

	merged, patch, err := PrepareUpdate(existing, EditPatch("  New title  ", " notes ", PriorityHigh, StatusDone, " 2024-05-01 "))
	require.NoError(t, err)

	require.NotNil(t, patch.Title)
	assert.Equal(t, "New title", *patch.Title)
	assert.Equal(t, "notes", *patch.Description)
	assert.Equal(t, "2024-05-01", *patch.DueDate)
	require.NotNil(t, patch.Completed)
	assert.True(t, *patch.Completed)

	assert.Equal(t, "New title", merged.Title)
	assert.Equal(t, "2024-05-01", *merged.DueDate)

	body, err := json.Marshal(patch)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"New title","description":"notes","priority":"high","status":"done","completed":true,"dueDate":"2024-05-01"}`, string(body))
}

func TestPrepareUpdateBlankDueDateClears(t *testing.T) {
	existing := Task{ID: "1", Title: "Old", DueDate: ptr("2024-01-01")}

	merged, patch, err := PrepareUpdate(existing, UpdateTaskRequest{DueDate: ptr("  ")})
	require.NoError(t, err)

	assert.Nil(t, merged.DueDate)
	require.NotNil(t, patch.DueDate)
	assert.Equal(t, "", *patch.DueDate)
}
