package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newStatusCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the latest measurement and today's feedings",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string, app *App) error {
			current, ok, err := app.Tracker.CurrentState(ctx)
			if err != nil {
				return err
			}
			today, err := app.Tracker.TodayFeedings(ctx)
			if err != nil {
				return err
			}
			return app.Renderer.Status(cmd.OutOrStdout(), current, ok, today)
		}),
	}
}
