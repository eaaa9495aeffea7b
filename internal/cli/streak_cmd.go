package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/arozanski/cadence/internal/cli/formatter"
	"github.com/arozanski/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newStreakCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Inspect and protect streaks",
	}

	cmd.AddCommand(
		newStreakListCmd(app),
		newStreakProtectCmd(app),
		newStreakGrantCmd(app),
		newStreakSweepCmd(app),
	)

	return cmd
}

func newStreakListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			streaks, err := app.Streaks.ListActive(context.Background())
			if err != nil {
				return err
			}
			if len(streaks) == 0 {
				fmt.Println("No active streaks.")
				return nil
			}

			headers := []string{"ID", "COUNT", "STARTED", "LAST EXTENDED"}
			rows := make([][]string, 0, len(streaks))
			for _, st := range streaks {
				rows = append(rows, []string{
					shortID(st.ID),
					fmt.Sprintf("%d", st.Count),
					st.StartedAt.Local().Format("2006-01-02"),
					st.LastExtended.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newStreakProtectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "protect <streak-id>",
		Short: "Spend one protector to keep a streak alive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			st, err := resolveStreak(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Streaks.UseProtector(ctx, DefaultUserID, st.ID); err != nil {
				return err
			}
			fmt.Printf("%s streak %s protected (count %d)\n",
				formatter.StyleGreen.Render("✓"), shortID(st.ID), st.Count)
			return nil
		},
	}
}

func newStreakGrantCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "grant <n>",
		Short: "Add streak protectors to the local profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n int
			if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil {
				return fmt.Errorf("invalid count %q", args[0])
			}
			if err := app.Streaks.GrantProtectors(context.Background(), DefaultUserID, n); err != nil {
				return err
			}
			fmt.Printf("Granted %d protector(s)\n", n)
			return nil
		},
	}
}

func newStreakSweepCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Deactivate streaks whose grace window has elapsed",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Streaks.SweepExpired(context.Background())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Println("No expired streaks.")
			} else {
				fmt.Printf("Deactivated %d expired streak(s)\n", n)
			}
			return nil
		},
	}
}

// resolveStreak matches an id or id prefix against active streaks.
func resolveStreak(ctx context.Context, app *App, ref string) (*domain.Streak, error) {
	streaks, err := app.Streaks.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*domain.Streak
	for _, st := range streaks {
		if st.ID == ref {
			return st, nil
		}
		if strings.HasPrefix(st.ID, ref) {
			matches = append(matches, st)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no active streak matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%q is ambiguous: %d streaks match", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
