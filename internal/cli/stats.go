package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"babytrack/internal/log"
	"babytrack/internal/render"
	"babytrack/internal/stats"
)

func newStatsCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show growth and feeding statistics for a period",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string, app *App) error {
			periodFlag, err := cmd.Flags().GetString("period")
			if err != nil {
				return err
			}
			statFlag, err := cmd.Flags().GetString("stat")
			if err != nil {
				return err
			}
			chartPath, err := cmd.Flags().GetString("chart")
			if err != nil {
				return err
			}

			period, err := stats.ParsePeriod(periodFlag)
			if err != nil {
				return err
			}
			var sections []render.Section
			if statFlag != "" {
				sec, err := render.ParseSection(statFlag)
				if err != nil {
					return err
				}
				sections = append(sections, sec)
			}
			// Check the chart path before doing any work.
			var format render.ChartFormat
			if chartPath != "" {
				if format, err = render.ChartFormatFromPath(chartPath); err != nil {
					return err
				}
			}

			report, err := app.Tracker.Report(ctx, period)
			if err != nil {
				return err
			}
			if err := app.Renderer.Report(cmd.OutOrStdout(), report, sections...); err != nil {
				return err
			}

			if chartPath == "" {
				return nil
			}
			sec := render.SectionFeedings
			if len(sections) == 1 {
				sec = sections[0]
			}
			return writeChart(cmd, app, report, sec, format, chartPath)
		}),
	}

	cmd.Flags().String("period", string(stats.Week), "Period: week, month or all")
	cmd.Flags().String("stat", "", "Only one statistic: weight, height or feedings")
	cmd.Flags().String("chart", "", "Write the pie chart of --stat (default feedings) to a .png or .svg file")
	return cmd
}

func writeChart(cmd *cobra.Command, app *App, report stats.Report, sec render.Section, format render.ChartFormat, path string) error {
	pie, err := app.Renderer.ChartFor(report, sec)
	if err != nil {
		return err
	}
	if len(pie.Slices) == 0 {
		return fmt.Errorf("chart %s: %w", sec, render.ErrNoData)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := render.WritePieChart(f, format, pie); err != nil {
		_ = f.Close()
		return errors.Join(err, os.Remove(path))
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}

	app.Logger.WithComponent(log.ComponentCLI).Debug("Chart written",
		log.FieldOperation, log.OpRender,
		log.FieldPath, path)
	fmt.Fprintln(cmd.OutOrStdout(), app.Renderer.Localizer().Sprintf("Chart written to %s.", path))
	return nil
}
