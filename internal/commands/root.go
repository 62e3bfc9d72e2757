package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mentahq/menta/internal/check"
	"github.com/mentahq/menta/internal/config"
	"github.com/mentahq/menta/internal/db"
	"github.com/mentahq/menta/internal/logging"
	"github.com/mentahq/menta/internal/models"
	"github.com/mentahq/menta/internal/status"
	"github.com/mentahq/menta/internal/workflow"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "menta",
	Short: "A CLI for tracking trainee learning progress",
	Long: `menta tracks trainees learning technologies under a mentor: plan what to
learn, time the learning sessions, schedule reviews, and record the review
results until the technology is approved.`,
}

// app bundles everything a command needs: configuration, the open
// database, and the services on top of it.
type app struct {
	cfg      config.Config
	store    *db.Store
	log      *slog.Logger
	workflow *workflow.Service
	check    *check.Service
	status   *status.Service
}

// newApp loads configuration, opens the database and builds the services.
func newApp() (*app, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := logging.New(level)

	store, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	rejected, err := models.ParseLearningState(cfg.Review.RejectedState)
	if err != nil {
		return nil, fmt.Errorf("review.rejected_state: %w", err)
	}
	checkSvc, err := check.NewService(store, check.Policy{
		RejectedState:     rejected,
		RequiredApprovals: cfg.Review.RequiredApprovals,
	}, log)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		store:    store,
		log:      log,
		workflow: workflow.NewService(store, log),
		check:    checkSvc,
		status:   status.NewService(store, log),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing database", "error", err)
	}
}

// withApp wraps a command function so the app is built before it runs
// and torn down after.
func withApp(fn func(*app, *cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer a.close()
		fn(a, cmd, args)
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.menta/config.yaml)")

	rootCmd.AddCommand(techCmd)
	rootCmd.AddCommand(traineeCmd)
	rootCmd.AddCommand(mentorCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
