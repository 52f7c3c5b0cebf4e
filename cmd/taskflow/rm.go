package main

import (
	"fmt"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	board, err := remoteBoard(cmd.Context())
	if err != nil {
		return err
	}

	if err := board.Remove(cmd.Context(), entity.TaskID(args[0])); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Удалена задача: ID=%s\n", args[0])
	return nil
}
