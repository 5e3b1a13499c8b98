package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/config"
	"github.com/Brottuetchen/TimeTrack/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "timetrack",
	Short: "Local time tracking with automatic session aggregation",
	Long: `timetrack turns raw activity events (window focus changes, phone calls)
into billable work records. Events are clustered into sessions locally and
classified by user-defined assignment rules - no cloud, no ML.`,
}

// loadConfig reads the configuration file and environment overrides
func loadConfig() config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// initDB initializes the database from the loaded configuration
func initDB(cfg config.Config) {
	if err := db.Initialize(cfg.Database.Path); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing database: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. Commands that produce table
// output keep logging on stderr only.
func newLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
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
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.timetrack/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("timetrack %s (commit %s, built %s)\n", version, commit, date)
	},
}
