package cli

import (
	"github.com/arozanski/cadence/internal/repository"
	"github.com/arozanski/cadence/internal/service"
	"github.com/spf13/cobra"
)

// DefaultUserID names the single local profile row the engine credits.
const DefaultUserID = "default"

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Habits   service.HabitService
	Progress service.ProgressService
	Streaks  service.StreakService
	Profiles repository.UserProfileRepo
}

// NewRootCmd creates the top-level "cadence" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "cadence",
		Short: "Habit tracker with period-based progress and streaks",
	}

	root.AddCommand(
		newHabitCmd(app),
		newAdvanceCmd(app),
		newStatusCmd(app),
		newStreakCmd(app),
	)

	return root
}
