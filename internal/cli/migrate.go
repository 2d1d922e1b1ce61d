package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/interviewer/backend/internal/migration"
)

func (r *runner) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which storage backend serves statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := r.app.Migration.Status(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func printStatus(w io.Writer, st migration.Status) {
	fmt.Fprintf(w, "Backend:         %s\n", st.Backend)
	fmt.Fprintf(w, "Migrated:        %t\n", st.Migrated)
	fmt.Fprintf(w, "Initialized:     %t\n", st.Initialized)
	fmt.Fprintf(w, "Needs migration: %t\n", st.NeedsMigration)
	fmt.Fprintf(w, "Guides: %d, chapters: %d, questions: %d, answered: %d\n",
		st.Counts.Guides, st.Counts.Chapters, st.Counts.Questions, st.Counts.Answered)
}

func (r *runner) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Copy guides and statistics into the relational store and switch to it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			res := r.app.Migration.Migrate(cmd.Context(), func(p migration.Progress) {
				fmt.Fprintf(out, "[%3d%%] %s\n", p.Percentage, p.Step)
			})

			fmt.Fprintf(out, "Imported %d guides (%d skipped), %d questions, %d statistics in %dms\n",
				res.GuidesImported, res.GuidesSkipped, res.QuestionsImported, res.StatisticsImported, res.DurationMS)
			for _, e := range res.Errors {
				fmt.Fprintf(out, "  error: %s\n", e)
			}
			if !res.Success {
				return errors.New("migration failed: " + strings.Join(res.Errors, "; "))
			}
			return nil
		},
	}
}

func (r *runner) rollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Empty the relational store and serve from the document store again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.app.Migration.Rollback(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Rolled back. Statistics are served from the document store.")
			return nil
		},
	}
}

func (r *runner) exportCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of the relational store to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := r.app.Migration.Export(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bytes to %s\n", len(data), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "out", "o", "interviewer-export.db", "Snapshot file to write")
	return cmd
}

func (r *runner) importCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the relational store with a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}
			ctx := cmd.Context()
			if err := r.app.Migration.Import(ctx, data); err != nil {
				return err
			}
			st, err := r.app.Migration.Status(ctx)
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), st)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "in", "i", "", "Snapshot file to read")
	cmd.MarkFlagRequired("in")
	return cmd
}
