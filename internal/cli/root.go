// Package cli is the interviewer command tree.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/interviewer/backend/internal/infrastructure/config"
	"github.com/interviewer/backend/internal/logger"
)

// runner carries the App of the command being executed.
type runner struct {
	app *App
}

// NewRootCmd builds a fresh command tree. Each call has its own state, so
// tests can execute several in one process.
func NewRootCmd() *cobra.Command {
	r := &runner{}

	root := &cobra.Command{
		Use:   "interviewer",
		Short: "Interview preparation with per-question self-assessment statistics",
		Long: `Interviewer serves technical interview guides, records a 0 to 5
self-assessment per question and runs weighted interviews that ask
weak questions more often.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	root.AddCommand(
		r.serveCmd(),
		r.guidesCmd(),
		r.statsCmd(),
		r.weakCmd(),
		r.scoreCmd(),
		r.resetCmd(),
		r.interviewCmd(),
		r.statusCmd(),
		r.migrateCmd(),
		r.rollbackCmd(),
		r.exportCmd(),
		r.importCmd(),
	)

	// Only the commands registered here get an App. Help and completion,
	// which cobra adds at execution time, never touch config or storage.
	for _, c := range root.Commands() {
		if c.RunE == nil {
			continue
		}
		run := c.RunE
		c.RunE = func(cmd *cobra.Command, args []string) error {
			if err := r.open(cmd); err != nil {
				return err
			}
			defer r.close()
			return run(cmd, args)
		}
	}
	return root
}

func (r *runner) open(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	app, err := NewApp(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	r.app = app
	return nil
}

func (r *runner) close() {
	if r.app == nil {
		return
	}
	r.app.Logger.Sync()
	if err := r.app.Close(); err != nil {
		r.app.Logger.Warn("closing resources", "error", err)
	}
	r.app = nil
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseNumber(name, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, v)
	}
	return n, nil
}
