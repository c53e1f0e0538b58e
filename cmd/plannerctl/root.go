package main

import (
	"fmt"
	"os"

	"alcyxob/workout-planner/internal/config"
	"alcyxob/workout-planner/internal/logging"

	"github.com/spf13/cobra"
)

var (
	configDir string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "plannerctl",
	Short: "plannerctl manages the exercise catalog and previews workout plans",
	Long:  "plannerctl imports and validates exercise catalogs and previews the 30 day plan a profile would get.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logging.LoggerSetupParams{
			LogLevel: logLevel,
			Output:   cmd.ErrOrStderr(),
		})
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return cfg, fmt.Errorf("load config from %s: %w", configDir, err)
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory holding config.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}
