package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"babytrack/internal/log"
	"babytrack/internal/render"
)

const (
	exportGrowth  = "growth"
	exportFeeding = "feeding"
)

func newExportCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a collection as CSV",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, cmd *cobra.Command, _ []string, app *App) error {
			collection, err := cmd.Flags().GetString("collection")
			if err != nil {
				return err
			}
			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}

			var (
				count int
				write func(io.Writer) error
			)
			switch collection {
			case exportGrowth:
				items, err := app.Tracker.GrowthHistory(ctx)
				if err != nil {
					return err
				}
				count = len(items)
				write = func(w io.Writer) error { return render.ExportGrowth(w, items) }
			case exportFeeding:
				items, err := app.Tracker.FeedingHistory(ctx)
				if err != nil {
					return err
				}
				count = len(items)
				write = func(w io.Writer) error { return render.ExportFeedings(w, items) }
			default:
				return fmt.Errorf("unknown collection %q: use %s or %s", collection, exportGrowth, exportFeeding)
			}

			if out == "" {
				return write(cmd.OutOrStdout())
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			if err := write(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close export file: %w", err)
			}
			app.Logger.WithComponent(log.ComponentCLI).DebugContext(ctx, "Collection exported",
				log.FieldOperation, log.OpExport,
				log.FieldCollection, collection,
				log.FieldCount, count,
				log.FieldPath, out)
			fmt.Fprintln(cmd.ErrOrStderr(), app.Renderer.Localizer().Sprintf("%d records exported.", count))
			return nil
		}),
	}

	cmd.Flags().String("collection", exportFeeding, "Collection to export: growth or feeding")
	cmd.Flags().String("out", "", "Output file, default stdout")
	return cmd
}
