package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/chrct/chrct/internal/app"
	"github.com/chrct/chrct/internal/domain"
	"github.com/chrct/chrct/internal/usecase"
	"github.com/spf13/cobra"
)

// newTaskCommand creates the task command group.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the task list",
	}
	cmd.AddCommand(
		newTaskNewCommand(c),
		newTaskListCommand(c),
		newTaskStartCommand(c),
		newTaskStopCommand(c),
		newTaskDoneCommand(c),
		newTaskUndoneCommand(c),
		newTaskRmCommand(c),
		newTaskMvCommand(c),
		newTaskImportCommand(c),
		newTaskSplitCommand(c),
	)
	return cmd
}

// newTaskNewCommand creates the new command for creating tasks.
func newTaskNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Parent      string
		DailyRepeat bool
	}

	cmd := &cobra.Command{
		Use:   "new <text>",
		Short: "Create a task",
		Long: `Create a task. The task starts idle, appended at the end of its
sibling group.

Examples:
  # Create a root task
  chrct task new "Write the quarterly report"

  # Create a subtask
  chrct task new --parent a1b2c3 "Collect the numbers"

  # Create a daily-repeating task
  chrct task new --daily "Morning pages"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.NewTaskInput{
				Text:        args[0],
				DailyRepeat: opts.DailyRepeat,
			}
			if opts.Parent != "" {
				input.ParentID = &opts.Parent
			}

			out, err := c.NewTaskUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Parent, "parent", "", "Parent task ID (creates a subtask)")
	cmd.Flags().BoolVar(&opts.DailyRepeat, "daily", false, "Reset to idle when the calendar date changes")

	return cmd
}

// newTaskListCommand creates the list command.
func newTaskListCommand(c *app.Container) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks as a tree",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{IncludeCompleted: all})
			if err != nil {
				return err
			}
			if len(out.Roots) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tasks")
				return nil
			}
			for _, root := range out.Roots {
				printTaskNode(cmd.OutOrStdout(), root, 0, out.Now)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks older than a day")

	return cmd
}

// printTaskNode renders one node and its children with indentation.
func printTaskNode(w io.Writer, node *domain.TaskNode, depth int, now time.Time) {
	marker := "[ ]"
	switch node.Task.Status {
	case domain.StatusActive:
		marker = "[>]"
	case domain.StatusCompleted:
		marker = "[x]"
	}

	line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", depth), marker, node.Task.Text)
	if d := node.Task.DisplayTime(now); d > 0 {
		line += "  (" + formatDuration(d) + ")"
	}
	if node.Task.DailyRepeat {
		line += "  ↻"
	}
	line += "  " + node.Task.ID
	_, _ = fmt.Fprintln(w, line)

	for _, child := range node.Children {
		printTaskNode(w, child, depth+1, now)
	}
}

// formatDuration renders a duration as 1h02m, 35m, or 12s.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// newTaskStartCommand creates the start command with the commitment prompt.
func newTaskStartCommand(c *app.Container) *cobra.Command {
	var firstMove string

	cmd := &cobra.Command{
		Use:   "start <id>",
		Short: "Activate a task",
		Long: `Activate a task. Activation goes through a short commitment window:
you must state the first concrete move before the window expires, or
the activation is abandoned.

With --first-move the move is committed immediately and the prompt is
skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.ActivateTaskUseCase()
			gate, err := uc.Initiate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			move := firstMove
			if move == "" {
				remaining := gate.Remaining(c.Clock.Now())
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "What is the first concrete move? (%s to answer)\n> ", formatDuration(remaining))
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read first move: %w", err)
				}
				move = strings.TrimSpace(line)
			}

			task, err := uc.Commit(cmd.Context(), gate, move)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Started: %s\n", task.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstMove, "first-move", "", "First concrete move (skips the prompt)")

	return cmd
}

// newTaskStopCommand creates the stop command.
func newTaskStopCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stop <id>",
		Short: "Pause the active task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.StopTaskUseCase().Execute(cmd.Context(), usecase.StopTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stopped after %s (total %s)\n",
				formatDuration(out.Session), formatDuration(out.Task.TotalTime))
			return nil
		},
	}
}

// newTaskDoneCommand creates the done command.
func newTaskDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Complete the active task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.CompleteTaskUseCase().Execute(cmd.Context(), usecase.CompleteTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Done: %s (%s)\n", out.Task.Text, formatDuration(out.Task.TotalTime))
			return nil
		},
	}
}

// newTaskUndoneCommand creates the undone command.
func newTaskUndoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "undone <id>",
		Short: "Revert a completed task to idle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.UncompleteTaskUseCase().Execute(cmd.Context(), usecase.UncompleteTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reverted: %s\n", out.Task.Text)
			return nil
		},
	}
}

// newTaskRmCommand creates the rm command.
func newTaskRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task and its subtasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d task(s)\n", len(out.DeletedIDs))
			return nil
		},
	}
}

// newTaskMvCommand creates the mv command for reordering within a sibling group.
func newTaskMvCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <id> <position>",
		Short: "Move a task within its sibling group (position is 1-based)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			var pos int
			if _, err := fmt.Sscanf(args[1], "%d", &pos); err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}

			task, err := c.Tasks.Get(id)
			if err != nil {
				return err
			}
			if task == nil {
				return domain.ErrTaskNotFound
			}

			all, err := c.Tasks.List()
			if err != nil {
				return err
			}
			ordered := siblingOrder(all, task.ParentID)
			idx := slices.Index(ordered, id)
			if idx < 0 {
				return domain.ErrTaskNotFound
			}
			if pos < 1 {
				pos = 1
			}
			if pos > len(ordered) {
				pos = len(ordered)
			}
			ordered = slices.Delete(ordered, idx, idx+1)
			ordered = slices.Insert(ordered, pos-1, id)

			_, err = c.ReorderTasksUseCase().Execute(cmd.Context(), usecase.ReorderTasksInput{
				ParentID:   task.ParentID,
				OrderedIDs: ordered,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved to position %d\n", pos)
			return nil
		},
	}
}

// siblingOrder returns the IDs sharing parentID, sorted by current order.
func siblingOrder(all []*domain.Task, parentID *string) []string {
	var siblings []*domain.Task
	for _, t := range all {
		switch {
		case parentID == nil && t.ParentID == nil:
			siblings = append(siblings, t)
		case parentID != nil && t.ParentID != nil && *t.ParentID == *parentID:
			siblings = append(siblings, t)
		}
	}
	slices.SortFunc(siblings, func(a, b *domain.Task) int {
		if a.Order != b.Order {
			return a.Order - b.Order
		}
		if c := a.Created.Compare(b.Created); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	ids := make([]string, len(siblings))
	for i, t := range siblings {
		ids[i] = t.ID
	}
	return ids
}

// newTaskImportCommand creates the import command.
func newTaskImportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Parent string
		DryRun bool
	}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a task tree from a YAML file",
		Long: `Import a task tree from a YAML file.

File format:
  - text: Write the quarterly report
    children:
      - text: Collect the numbers
      - text: Draft the summary
  - text: Morning pages
    dailyRepeat: true`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			input := usecase.ImportTasksInput{Content: content, DryRun: opts.DryRun}
			if opts.Parent != "" {
				input.ParentID = &opts.Parent
			}

			out, err := c.ImportTasksUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}
			if opts.DryRun {
				for _, t := range out.Tasks {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Would create: %s%s\n", strings.Repeat("  ", t.Depth), t.Text)
				}
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d task(s)\n", len(out.Tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Parent, "parent", "", "Attach imported tasks under this task")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Preview without creating")

	return cmd
}

// newTaskSplitCommand creates the split command.
func newTaskSplitCommand(c *app.Container) *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   "split <id>",
		Short: "Decompose a task into subtasks with the configured AI endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.SplitTaskUseCase().Execute(cmd.Context(), usecase.SplitTaskInput{TaskID: args[0], Max: max})
			if err != nil {
				return err
			}
			for _, t := range out.Subtasks {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  + %s\n", t.Text)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %d subtask(s)\n", len(out.Subtasks))
			return nil
		},
	}

	cmd.Flags().IntVar(&max, "max", 0, "Maximum number of subtasks (default from config)")

	return cmd
}
