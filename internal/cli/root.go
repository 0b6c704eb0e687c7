package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// runner opens the App on first use and hands it to command bodies.
type runner struct {
	open Opener
	app  *App
}

func (r *runner) run(fn func(ctx context.Context, cmd *cobra.Command, args []string, app *App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if r.app == nil {
			app, err := r.open(cmd.Context())
			if err != nil {
				return err
			}
			r.app = app
		}

		ctx, cancel := r.app.Context(cmd.Context())
		defer cancel()
		return fn(ctx, cmd, args, r.app)
	}
}

func (r *runner) close() error {
	if r.app == nil {
		return nil
	}
	err := r.app.Close()
	r.app = nil
	return err
}

// NewRootCommand builds the babytrack command tree. open is called once,
// by the first command that needs storage.
func NewRootCommand(open Opener) *cobra.Command {
	return newRoot(&runner{open: open})
}

func newRoot(r *runner) *cobra.Command {
	root := &cobra.Command{
		Use:          "babytrack",
		Short:        "Record a baby's growth and feedings and show statistics",
		SilenceUsage: true,
	}

	root.AddCommand(
		newGrowthCommand(r),
		newFeedingCommand(r),
		newStatusCommand(r),
		newStatsCommand(r),
		newExportCommand(r),
	)
	return root
}

// Execute runs the command tree against ctx and releases the App once the
// command returns, whether or not it failed.
func Execute(ctx context.Context, open Opener, args []string) error {
	r := &runner{open: open}
	root := newRoot(r)
	if args != nil {
		root.SetArgs(args)
	}

	err := root.ExecuteContext(ctx)
	if cerr := r.close(); cerr != nil && err == nil {
		err = fmt.Errorf("shutdown: %w", cerr)
	}
	return err
}
