package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"babytrack/internal/core"
	"babytrack/internal/services"
)

func newGrowthCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Record and list growth measurements",
	}
	cmd.AddCommand(newGrowthAddCommand(r), newGrowthListCommand(r), newGrowthDeleteCommand(r))
	return cmd
}

func newGrowthAddCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new growth measurement",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string, app *App) error {
			in, err := growthInputFromFlags(cmd)
			if err != nil {
				return err
			}

			rec, err := app.Tracker.RecordGrowth(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Renderer.Localizer().Sprintf("Growth record %s saved.", rec.ID))
			return nil
		}),
	}

	cmd.Flags().String("name", "", "Baby's name")
	cmd.Flags().String("age", "", "Age in whole months")
	cmd.Flags().String("weight", "", "Weight in kg (5.2 or 5,2)")
	cmd.Flags().String("height", "", "Height in cm, optional")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func growthInputFromFlags(cmd *cobra.Command) (services.GrowthInput, error) {
	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return services.GrowthInput{}, err
	}
	ageFlag, err := cmd.Flags().GetString("age")
	if err != nil {
		return services.GrowthInput{}, err
	}
	weightFlag, err := cmd.Flags().GetString("weight")
	if err != nil {
		return services.GrowthInput{}, err
	}
	heightFlag, err := cmd.Flags().GetString("height")
	if err != nil {
		return services.GrowthInput{}, err
	}

	age, err := core.ParseAgeMonths(ageFlag)
	if err != nil {
		return services.GrowthInput{}, fmt.Errorf("--age %q: %w", ageFlag, err)
	}
	weight, err := core.ParseMeasurement(weightFlag)
	if err != nil {
		return services.GrowthInput{}, fmt.Errorf("--weight %q: %w", weightFlag, core.ErrInvalidWeight)
	}

	in := services.GrowthInput{Name: name, AgeMonths: age, WeightKg: weight}
	if heightFlag != "" {
		height, err := core.ParseMeasurement(heightFlag)
		if err != nil {
			return services.GrowthInput{}, fmt.Errorf("--height %q: %w", heightFlag, core.ErrInvalidHeight)
		}
		in.HeightCm = core.Float(height)
	}
	return in, nil
}

func newGrowthListCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List growth measurements, newest first",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string, app *App) error {
			items, err := app.Tracker.GrowthHistory(ctx)
			if err != nil {
				return err
			}
			return app.Renderer.GrowthHistory(cmd.OutOrStdout(), items)
		}),
	}
}

func newGrowthDeleteCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a growth measurement",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, args []string, app *App) error {
			if err := app.Tracker.DeleteGrowth(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Renderer.Localizer().Sprintf("Record %s deleted.", args[0]))
			return nil
		}),
	}
}
