package cli

import (
	"context"
	"fmt"

	"github.com/arozanski/cadence/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show per-habit progress, points and streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			views, err := app.Progress.Overview(ctx)
			if err != nil {
				return err
			}

			fmt.Println(formatter.Header("habits"))
			if len(views) == 0 {
				fmt.Println("No habits yet. Add one with: cadence habit add")
			} else {
				headers := []string{"ID", "NAME", "CADENCE", "PROGRESS", "STATE", "STREAK"}
				rows := make([][]string, 0, len(views))
				for _, v := range views {
					progress := 0
					completed := false
					if v.Progress != nil {
						progress = v.Progress.Progress
						completed = v.Progress.Completed
					}
					streak := formatter.StyleDim.Render("—")
					if v.Streak != nil {
						streak = fmt.Sprintf("%d", v.Streak.Count)
					}
					rows = append(rows, []string{
						v.Habit.DisplayID(),
						v.Habit.Name,
						string(v.Habit.Cadence),
						formatter.RenderProgress(progress, v.Habit.Goal, 10),
						formatter.CompletionIndicator(completed),
						streak,
					})
				}
				fmt.Print(formatter.RenderTable(headers, rows))
			}

			profile, err := app.Profiles.Get(ctx, DefaultUserID)
			if err != nil {
				return err
			}
			fmt.Println()
			fmt.Printf("%s %d   %s %d   %s %d\n",
				formatter.StyleBold.Render("Points:"), profile.Points,
				formatter.StyleBold.Render("Protectors:"), profile.Protectors,
				formatter.StyleBold.Render("Longest streak:"), profile.LongestStreak)
			return nil
		},
	}
}
