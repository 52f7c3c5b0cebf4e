package main

import (
	"fmt"
	"strings"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/spf13/cobra"
)

var (
	addDescription string
	addPriority    string
	addDue         string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task on the backend",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(entity.PriorityMedium), "low, medium or high")
	addCmd.Flags().StringVar(&addDue, "due", "", "due date (YYYY-MM-DD)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	board, err := remoteBoard(cmd.Context())
	if err != nil {
		return err
	}

	req := entity.CreateTaskRequest{
		Title:       strings.Join(args, " "),
		Description: addDescription,
		Priority:    entity.TaskPriority(addPriority),
	}
	if addDue != "" {
		req.DueDate = &addDue
	}

	task, err := board.Add(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Создана задача: ID=%s, Title=%s\n", task.ID, task.Title)
	return nil
}
