package main

import (
	"fmt"
	"os"

	"github.com/arozanski/cadence/internal/cli"
	"github.com/arozanski/cadence/internal/cli/formatter"
	"github.com/arozanski/cadence/internal/config"
	"github.com/arozanski/cadence/internal/db"
	"github.com/arozanski/cadence/internal/logger"
	"github.com/arozanski/cadence/internal/repository"
	"github.com/arozanski/cadence/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataDir}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !cfg.Color || !tty {
		formatter.DisableColor()
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	habitRepo := repository.NewSQLiteHabitRepo(database)
	streakRepo := repository.NewSQLiteStreakRepo(database)
	profileRepo := repository.NewSQLiteUserProfileRepo(database)
	progressRepo := repository.NewSQLiteProgressRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	streakSvc := service.NewStreakService(streakRepo, profileRepo, uow)

	app := &cli.App{
		Habits:   service.NewHabitService(habitRepo, uow),
		Progress: service.NewProgressService(habitRepo, progressRepo, streakSvc, uow),
		Streaks:  streakSvc,
		Profiles: profileRepo,
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
