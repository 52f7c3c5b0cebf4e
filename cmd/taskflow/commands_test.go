package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleTasks() []entity.Task {
	due := "2024-06-01"
	return []entity.Task{
		{ID: "1", Title: "Buy milk", Priority: entity.PriorityHigh, Status: entity.StatusOpen, DueDate: &due, CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "2", Title: "Ship it", Priority: entity.PriorityLow, Status: entity.StatusDone, Completed: true},
	}
}

func TestPrintTasks_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTasks(&buf, sampleTasks(), "table"))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "2024-06-01")
	assert.Contains(t, out, "[x]")
}

func TestPrintTasks_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTasks(&buf, nil, "table"))
	assert.Equal(t, "No tasks match your filters.\n", buf.String())
}

func TestPrintTasks_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTasks(&buf, sampleTasks(), "json"))

	var got []entity.Task
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, entity.TaskID("2"), got[1].ID)
	assert.True(t, got[1].Completed)
}

func TestPrintTasks_EmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTasks(&buf, nil, "json"))
	assert.Equal(t, "[]\n", buf.String())
}

func TestPrintTasks_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printTasks(&buf, sampleTasks(), "yaml"))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Buy milk", got[0]["title"])
	assert.Equal(t, "2024-06-01", got[0]["dueDate"])
	_, hasDue := got[1]["dueDate"]
	assert.False(t, hasDue)
}

func TestPrintTasks_UnknownFormat(t *testing.T) {
	err := printTasks(&bytes.Buffer{}, nil, "xml")
	assert.Error(t, err)
}

func TestEditPatch_OnlyChangedFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "edit"}
	addEditFlags(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{"--status", "done", "--due", ""}))

	patch := editPatch(cmd)

	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.Description)
	assert.Nil(t, patch.Priority)
	require.NotNil(t, patch.Status)
	assert.Equal(t, entity.StatusDone, *patch.Status)
	require.NotNil(t, patch.DueDate)
	assert.Equal(t, "", *patch.DueDate)
}

func TestEditPatch_Empty(t *testing.T) {
	cmd := &cobra.Command{Use: "edit"}
	addEditFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(nil))

	assert.True(t, editPatch(cmd).Empty())
}
