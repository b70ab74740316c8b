package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) taskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(a.taskAddCommand(), a.taskListCommand(), a.taskToggleCommand(), a.taskCountCommand())
	return cmd
}

func (a *App) taskAddCommand() *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a pending task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.client().CreateTask(cmd.Context(), title, description)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created task %s\n", t.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "T", "", "task title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func (a *App) taskListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := a.client().ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(a.out, styleMuted.Render("No tasks yet"))
				return nil
			}
			for _, t := range tasks {
				fmt.Fprintf(a.out, "%s %s  %s\n", statusMark(t.Status), t.Title, styleMuted.Render(t.ID))
				if t.Description != "" {
					fmt.Fprintf(a.out, "    %s\n", t.Description)
				}
			}
			return nil
		},
	}
}

func (a *App) taskToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id>",
		Short: "Flip a task between pending and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.client().ToggleTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "pending"
			if t.Status {
				state = "completed"
			}
			fmt.Fprintf(a.out, "%s %s is now %s\n", statusMark(t.Status), t.Title, state)
			return nil
		},
	}
}

func (a *App) taskCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show task totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client().CountTasks(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "total: %d  pending: %d  completed: %d\n", c.Total, c.Pending, c.Completed)
			return nil
		},
	}
}
