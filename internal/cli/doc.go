package cli

import (
	"fmt"

	"github.com/chrct/chrct/internal/app"
	"github.com/chrct/chrct/internal/domain"
	"github.com/chrct/chrct/internal/usecase"
	"github.com/spf13/cobra"
)

// newDocCommand creates the doc command group.
func newDocCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Inspect and sync the document",
	}
	cmd.AddCommand(
		newDocStatusCommand(c),
		newDocCountCommand(c),
		newDocPushCommand(c),
		newDocPullCommand(c),
		newDocSyncCommand(c),
	)
	return cmd
}

// newDocStatusCommand reports what a sync would do without applying it.
func newDocStatusCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show how the local document compares to the remote",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.SyncDocumentUseCase().Execute(cmd.Context(), usecase.SyncDocumentInput{DryRun: true})
			if err != nil {
				return err
			}
			switch out.Action {
			case domain.SyncNone:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Up to date")
			case domain.SyncPush:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Local changes not on the remote (run 'chrct doc sync' to push)")
			case domain.SyncPull:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Remote changes not local (run 'chrct doc sync' to pull)")
			}
			return nil
		},
	}
}

// newDocCountCommand prints character, word, and line counts.
func newDocCountCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show character, word, and line counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := c.LocalDocs.GetDocument()
			if err != nil {
				return err
			}
			text := ""
			if doc != nil {
				text = doc.Text
			}
			stats := domain.CountText(text)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d chars, %d words, %d lines\n", stats.Chars, stats.Words, stats.Lines)
			return nil
		},
	}
}

// newDocPushCommand overwrites the remote with the local document.
func newDocPushCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Overwrite the remote document with the local copy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.SyncDocumentUseCase().Execute(cmd.Context(), usecase.SyncDocumentInput{Force: domain.SyncPush})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d chars\n", out.Stats.Chars)
			return nil
		},
	}
}

// newDocPullCommand overwrites the local document with the remote.
func newDocPullCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Overwrite the local document with the remote copy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.SyncDocumentUseCase().Execute(cmd.Context(), usecase.SyncDocumentInput{Force: domain.SyncPull})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d chars\n", out.Stats.Chars)
			return nil
		},
	}
}

// newDocSyncCommand reconciles local and remote once.
func newDocSyncCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the local document with the remote",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.SyncDocumentUseCase().Execute(cmd.Context(), usecase.SyncDocumentInput{})
			if err != nil {
				return err
			}
			switch out.Action {
			case domain.SyncNone:
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Already up to date")
			case domain.SyncPush:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d chars\n", out.Stats.Chars)
			case domain.SyncPull:
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Pulled %d chars\n", out.Stats.Chars)
			}
			return nil
		},
	}
}
