package cli

import (
	"fmt"

	"github.com/chrct/chrct/internal/app"
	"github.com/chrct/chrct/internal/domain"
	"github.com/chrct/chrct/internal/usecase"
	"github.com/spf13/cobra"
)

// newGoalCommand creates the goal command group.
func newGoalCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Group root tasks under long-term goals",
	}
	cmd.AddCommand(
		newGoalNewCommand(c),
		newGoalAddCommand(c),
		newGoalListCommand(c),
	)
	return cmd
}

// newGoalNewCommand creates the new command for creating goals.
func newGoalNewCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "new <name> [task-id...]",
		Short: "Create a goal, optionally with initial member tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.NewGoalUseCase().Execute(cmd.Context(), usecase.NewGoalInput{
				Name:    args[0],
				TaskIDs: args[1:],
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created goal %s\n", out.Goal.ID)
			return nil
		},
	}
}

// newGoalAddCommand creates the add command.
func newGoalAddCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "add <goal-id> <task-id>",
		Short: "Add a root task to a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.AddToGoalUseCase().Execute(cmd.Context(), usecase.AddToGoalInput{
				GoalID: args[0],
				TaskID: args[1],
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Goal %q now has %d task(s)\n", out.Goal.Name, len(out.Goal.TaskIDs))
			return nil
		},
	}
}

// newGoalListCommand creates the list command.
func newGoalListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals with their member tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListGoalsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(out.Goals) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No goals")
				return nil
			}
			for _, g := range out.Goals {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", g.Goal.Name, g.Goal.ID)
				for _, t := range g.Tasks {
					marker := "[ ]"
					switch t.Status {
					case domain.StatusActive:
						marker = "[>]"
					case domain.StatusCompleted:
						marker = "[x]"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", marker, t.Text)
				}
			}
			return nil
		},
	}
}
