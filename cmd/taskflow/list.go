package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/St1cky1/taskflow/internal/entity"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	listQuery         string
	listStatus        string
	listPriority      string
	listHideCompleted bool
	listFormat        string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks matching the filter",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listQuery, "q", "", "search text in title and description")
	listCmd.Flags().StringVar(&listStatus, "status", entity.FilterStatusAll, "all, open, in_progress or done")
	listCmd.Flags().StringVar(&listPriority, "priority", entity.FilterPriorityAny, "any, low, medium or high")
	listCmd.Flags().BoolVar(&listHideCompleted, "hide-completed", false, "hide completed tasks")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format: table, json or yaml")
}

func runList(cmd *cobra.Command, args []string) error {
	board, err := remoteBoard(cmd.Context())
	if err != nil {
		return err
	}

	spec := entity.FilterSpec{
		Query:         listQuery,
		Status:        listStatus,
		Priority:      listPriority,
		ShowCompleted: !listHideCompleted,
	}
	if err := board.SetFilter(cmd.Context(), spec); err != nil {
		return fmt.Errorf("failed to apply filter: %w", err)
	}

	return printTasks(cmd.OutOrStdout(), board.View().Tasks, listFormat)
}

func printTasks(w io.Writer, tasks []entity.Task, format string) error {
	if tasks == nil {
		tasks = []entity.Task{}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		if len(tasks) == 0 {
			fmt.Fprintln(w, "No tasks match your filters.")
			return nil
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDONE\tTITLE\tPRIORITY\tSTATUS\tDUE")
		for _, task := range tasks {
			done := " "
			if task.Completed {
				done = "x"
			}
			due := "-"
			if task.DueDate != nil {
				due = *task.DueDate
			}
			fmt.Fprintf(tw, "%s\t[%s]\t%s\t%s\t%s\t%s\n", task.ID, done, task.Title, task.Priority, task.Status, due)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q: use table, json or yaml", format)
	}
}
