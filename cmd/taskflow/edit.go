package main

import (
	"errors"
	"fmt"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of a task",
	Long:  "Only the flags you pass are sent. --due \"\" clears the due date.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	addEditFlags(editCmd)
}

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "new title")
	cmd.Flags().String("description", "", "new description")
	cmd.Flags().String("priority", "", "low, medium or high")
	cmd.Flags().String("status", "", "open, in_progress or done")
	cmd.Flags().String("due", "", "due date (YYYY-MM-DD), empty to clear")
}

// editPatch собирает патч только из явно переданных флагов
func editPatch(cmd *cobra.Command) entity.UpdateTaskRequest {
	var patch entity.UpdateTaskRequest
	flags := cmd.Flags()

	if flags.Changed("title") {
		title, _ := flags.GetString("title")
		patch.Title = &title
	}
	if flags.Changed("description") {
		description, _ := flags.GetString("description")
		patch.Description = &description
	}
	if flags.Changed("priority") {
		raw, _ := flags.GetString("priority")
		priority := entity.TaskPriority(raw)
		patch.Priority = &priority
	}
	if flags.Changed("status") {
		raw, _ := flags.GetString("status")
		status := entity.TaskStatus(raw)
		patch.Status = &status
	}
	if flags.Changed("due") {
		due, _ := flags.GetString("due")
		patch.DueDate = &due
	}
	return patch
}

func runEdit(cmd *cobra.Command, args []string) error {
	patch := editPatch(cmd)
	if patch.Empty() {
		return errors.New("nothing to change: pass at least one of --title, --description, --priority, --status, --due")
	}

	board, err := remoteBoard(cmd.Context())
	if err != nil {
		return err
	}

	task, err := board.Edit(cmd.Context(), entity.TaskID(args[0]), patch)
	if err != nil {
		return fmt.Errorf("failed to edit task %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Обновлена задача: %s (%s)\n", task.Title, task.Status)
	return nil
}
