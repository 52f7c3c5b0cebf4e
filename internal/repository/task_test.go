package repository

import (
	"testing"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ITaskRepository = (*TaskRepository)(nil)

func TestPrependKeepsNewestFirst(t *testing.T) {
	repo := NewTaskRepository()
	require.NoError(t, repo.Prepend(entity.Task{ID: "1"}))
	require.NoError(t, repo.Prepend(entity.Task{ID: "2"}))

	tasks := repo.List()
	require.Len(t, tasks, 2)
	assert.Equal(t, entity.TaskID("2"), tasks[0].ID)
	assert.Equal(t, entity.TaskID("1"), tasks[1].ID)

	assert.Error(t, repo.Prepend(entity.Task{ID: "1"}))
	assert.Equal(t, 2, repo.Len())
}

func TestReplaceAndDelete(t *testing.T) {
	repo := NewTaskRepository()
	repo.Reset([]entity.Task{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}, {ID: "c", Title: "C"}})

	assert.True(t, repo.Replace(entity.Task{ID: "b", Title: "B2"}))
	assert.False(t, repo.Replace(entity.Task{ID: "z"}))

	task, ok := repo.GetByTaskId("b")
	require.True(t, ok)
	assert.Equal(t, "B2", task.Title)

	assert.True(t, repo.Delete("a"))
	assert.False(t, repo.Delete("a"))

	tasks := repo.List()
	require.Len(t, tasks, 2)
	assert.Equal(t, entity.TaskID("b"), tasks[0].ID)
	assert.Equal(t, entity.TaskID("c"), tasks[1].ID)
}

func TestListReturnsCopy(t *testing.T) {
	repo := NewTaskRepository()
	input := []entity.Task{{ID: "a", Title: "A"}}
	repo.Reset(input)
	input[0].Title = "changed"

	tasks := repo.List()
	tasks[0].Title = "mutated"

	task, _ := repo.GetByTaskId("a")
	assert.Equal(t, "A", task.Title)
}
