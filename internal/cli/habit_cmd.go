package cli

import (
	"context"
	"fmt"

	"github.com/arozanski/cadence/internal/cli/formatter"
	"github.com/arozanski/cadence/internal/domain"
	"github.com/spf13/cobra"
)

func newHabitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage habits",
	}

	cmd.AddCommand(
		newHabitAddCmd(app),
		newHabitListCmd(app),
		newHabitArchiveCmd(app),
		newHabitRemoveCmd(app),
	)

	return cmd
}

func newHabitAddCmd(app *App) *cobra.Command {
	var cadence, difficulty, unit string
	var goal int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			h := &domain.Habit{
				Name:       args[0],
				Cadence:    domain.Cadence(cadence),
				Goal:       goal,
				Difficulty: domain.Difficulty(difficulty),
				Unit:       unit,
			}
			if err := app.Habits.Create(ctx, h); err != nil {
				return err
			}

			fmt.Printf("Added habit %s (%s, %s, goal %d)\n", h.Name, h.DisplayID(), h.Cadence, h.Goal)
			return nil
		},
	}

	cmd.Flags().StringVar(&cadence, "cadence", "daily", "Repetition period: daily, weekly or monthly")
	cmd.Flags().IntVar(&goal, "goal", 1, "Target quantity per period")
	cmd.Flags().StringVar(&difficulty, "difficulty", "medium", "Difficulty tier: easy, medium or hard")
	cmd.Flags().StringVar(&unit, "unit", "times", "Display unit for progress")

	return cmd
}

func newHabitListCmd(app *App) *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			habits, err := app.Habits.List(context.Background(), includeArchived)
			if err != nil {
				return err
			}
			if len(habits) == 0 {
				fmt.Println("No habits found.")
				return nil
			}

			headers := []string{"ID", "NAME", "CADENCE", "GOAL", "DIFFICULTY", "STATUS"}
			rows := make([][]string, 0, len(habits))
			for _, h := range habits {
				rows = append(rows, []string{
					h.DisplayID(),
					h.Name,
					string(h.Cadence),
					fmt.Sprintf("%d %s", h.Goal, h.Unit),
					string(h.Difficulty),
					string(h.Status),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived habits")

	return cmd
}

func newHabitArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <habit>",
		Short: "Archive a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			h, err := resolveHabit(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Habits.Archive(ctx, h.ID); err != nil {
				return err
			}
			fmt.Printf("Archived %s\n", h.Name)
			return nil
		},
	}
}

func newHabitRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <habit>",
		Short: "Delete an archived habit and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			h, err := resolveHabit(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Habits.Delete(ctx, h.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", h.Name)
			return nil
		},
	}
}
