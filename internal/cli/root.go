// Package cli provides the command-line interface for chrct.
package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chrct/chrct/internal/app"
	"github.com/chrct/chrct/internal/tui"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupDoc  = "doc"
	groupTask = "task"
	groupGoal = "goal"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to
// be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for chrct.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "chrct",
		Short: "One document, one active task",
		Long: `chrct is a single-document notepad with a task list attached.
The document reconciles against a hosted copy so the same text follows
you across devices; the task list enforces that at most one task is
active at a time, entered through a short commitment prompt.

Run with no arguments to open the editor.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupDoc, Title: "Document Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
		&cobra.Group{ID: groupGoal, Title: "Goal Commands:"},
	)

	docCmd := newDocCommand(c)
	docCmd.GroupID = groupDoc

	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupTask

	goalCmd := newGoalCommand(c)
	goalCmd.GroupID = groupGoal

	root.AddCommand(docCmd, taskCmd, goalCmd)

	return root
}

// launchTUI opens the full-screen editor.
func launchTUI(c *app.Container) error {
	model := tui.New(c)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
