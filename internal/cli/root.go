// Package cli implements the resumematch command tree.
package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/google/gops/agent"
	"github.com/spf13/cobra"

	"resumematch/internal/app"
	"resumematch/internal/config"
)

var (
	// Version is set at build time.
	Version = "dev"

	cfgPath   string
	gopsAgent bool
)

var rootCmd = &cobra.Command{
	Use:           "resumematch",
	Short:         "Rank stored résumés against a job description",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if gopsAgent {
			if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
				log.Printf("gops: %v", err)
			}
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (default ./config.yaml or ~/.config/resumematch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&gopsAgent, "gops", false, "Start a gops diagnostics agent")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(tuiCmd)
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	cfg, _, err := config.LoadDefault()
	return cfg, err
}

// getApp loads the configuration and assembles the application.
func getApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	a, err := app.Build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start: %w", err)
	}
	return a, nil
}
