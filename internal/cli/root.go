// Package cli wires the webscan commands together.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/buemura/webscan/internal/config"
)

var version = "dev"

var (
	targetFlag      string
	outputFlag      string
	verboseFlag     bool
	concurrencyFlag int
	budgetFlag      time.Duration
	timeoutFlag     time.Duration
)

// appConfig holds the loaded configuration, available after PersistentPreRunE.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "webscan",
	Short: "WebScan — web application security scanner",
	Long: `WebScan probes web applications for exposed paths, injection
vulnerabilities, known-vulnerable components, and configuration
weaknesses, then assembles the results into a single report.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		config.ApplyFlags(cfg, cmd)

		// Sync config values back to flag variables so all commands pick up
		// config-file and env-var defaults transparently.
		targetFlag = cfg.DefaultTarget
		outputFlag = cfg.OutputFormat
		concurrencyFlag = cfg.Concurrency
		budgetFlag = cfg.TimeBudget
		timeoutFlag = cfg.RequestTimeout

		appConfig = cfg
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&targetFlag, "target", "t", "", "target host, IP, or URL")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "output format: table, json, markdown, html")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntVarP(&concurrencyFlag, "concurrency", "c", 4, "max concurrent scanners")
	rootCmd.PersistentFlags().DurationVar(&budgetFlag, "budget", 60*time.Second, "wall-clock time budget per scanner")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 5*time.Second, "per-request timeout")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)
}
