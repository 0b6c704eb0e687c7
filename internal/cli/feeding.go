package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"babytrack/internal/core"
	"babytrack/internal/services"
)

// atLayouts are the accepted --at spellings, read in the tracker's zone.
var atLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "02/01/2006 15:04"}

func newFeedingCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feeding",
		Short: "Record and list feedings",
	}
	cmd.AddCommand(newFeedingAddCommand(r), newFeedingListCommand(r), newFeedingDeleteCommand(r))
	return cmd
}

func newFeedingAddCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a feeding",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string, app *App) error {
			in, err := feedingInputFromFlags(cmd, app.Tracker.Now().Location())
			if err != nil {
				return err
			}

			e, err := app.Tracker.RecordFeeding(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Renderer.Localizer().Sprintf("Feeding %s saved.", e.ID))
			return nil
		}),
	}

	cmd.Flags().String("type", "", "Feeding type: breast-milk, formula or solid-food")
	cmd.Flags().String("amount", "", "Amount in ml, formula only")
	cmd.Flags().String("notes", "", "Free-form notes")
	cmd.Flags().String("at", "", "When it happened (2006-01-02 15:04), default now")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func feedingInputFromFlags(cmd *cobra.Command, loc *time.Location) (services.FeedingInput, error) {
	typeFlag, err := cmd.Flags().GetString("type")
	if err != nil {
		return services.FeedingInput{}, err
	}
	amountFlag, err := cmd.Flags().GetString("amount")
	if err != nil {
		return services.FeedingInput{}, err
	}
	notes, err := cmd.Flags().GetString("notes")
	if err != nil {
		return services.FeedingInput{}, err
	}
	atFlag, err := cmd.Flags().GetString("at")
	if err != nil {
		return services.FeedingInput{}, err
	}

	ft, err := core.ParseFeedingType(typeFlag)
	if err != nil {
		return services.FeedingInput{}, err
	}
	in := services.FeedingInput{Type: ft, Notes: notes}

	if amountFlag != "" {
		amount, err := core.ParseMeasurement(amountFlag)
		if err != nil {
			return services.FeedingInput{}, fmt.Errorf("--amount %q: %w", amountFlag, err)
		}
		in.AmountMl = core.Float(amount)
	}
	if atFlag != "" {
		at, err := parseAt(atFlag, loc)
		if err != nil {
			return services.FeedingInput{}, err
		}
		in.OccurredAt = at
	}
	return in, nil
}

func parseAt(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range atLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("--at %q: expected a date like 2006-01-02 15:04", s)
}

func newFeedingListCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List feedings, newest first",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string, app *App) error {
			today, err := cmd.Flags().GetBool("today")
			if err != nil {
				return err
			}

			l := app.Renderer.Localizer()
			if today {
				items, err := app.Tracker.TodayFeedings(ctx)
				if err != nil {
					return err
				}
				return app.Renderer.FeedingHistory(cmd.OutOrStdout(), items, l.Sprintf("No feedings today."))
			}

			items, err := app.Tracker.FeedingHistory(ctx)
			if err != nil {
				return err
			}
			return app.Renderer.FeedingHistory(cmd.OutOrStdout(), items, l.Sprintf("No records yet."))
		}),
	}
	cmd.Flags().Bool("today", false, "Only today's feedings")
	return cmd
}

func newFeedingDeleteCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a feeding",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, args []string, app *App) error {
			if err := app.Tracker.DeleteFeeding(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Renderer.Localizer().Sprintf("Record %s deleted.", args[0]))
			return nil
		}),
	}
}
