package main

import (
	"fmt"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip completion of a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

func runToggle(cmd *cobra.Command, args []string) error {
	board, err := remoteBoard(cmd.Context())
	if err != nil {
		return err
	}

	task, err := board.Toggle(cmd.Context(), entity.TaskID(args[0]))
	if err != nil {
		return fmt.Errorf("failed to toggle task %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Задача %s: %s (completed=%t)\n", task.ID, task.Status, task.Completed)
	return nil
}
