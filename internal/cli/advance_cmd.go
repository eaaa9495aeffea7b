package cli

import (
	"context"
	"fmt"

	"github.com/arozanski/cadence/internal/cli/formatter"
	"github.com/arozanski/cadence/internal/service"
	"github.com/spf13/cobra"
)

func newAdvanceCmd(app *App) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "advance <habit>",
		Short: "Record progress on a habit for the current period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			h, err := resolveHabit(ctx, app, args[0])
			if err != nil {
				return err
			}

			res, err := app.Progress.Advance(ctx, service.AdvanceRequest{
				HabitID:  h.ID,
				UserID:   DefaultUserID,
				Quantity: quantity,
			})
			if err != nil {
				return err
			}

			if !res.Success {
				fmt.Printf("%s %s\n", formatter.StyleDim.Render("—"), res.Message)
				return nil
			}

			bar := formatter.RenderProgress(res.NewProgress, h.Goal, 12)
			if res.Completed {
				fmt.Printf("%s %s %s  +%d pts\n",
					formatter.StyleGreen.Render("✓"), h.Name, bar, res.PointsAdded)
			} else {
				fmt.Printf("%s %s %s  +%d pts\n",
					formatter.StyleBlue.Render("•"), h.Name, bar, res.PointsAdded)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 1, "Amount of progress to record")

	return cmd
}
