package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/buemura/webscan/internal/output"
	"github.com/buemura/webscan/internal/report"
	"github.com/buemura/webscan/internal/scanner"
	"github.com/buemura/webscan/internal/scanner/cvematch"
	"github.com/buemura/webscan/internal/scanner/headers"
	"github.com/buemura/webscan/internal/scanner/inject"
	"github.com/buemura/webscan/internal/scanner/paths"
	"github.com/buemura/webscan/internal/scanner/ssl"
	"github.com/buemura/webscan/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a single scanner against the target",
	Long:  "Scan a target for exposed paths, injection flaws, vulnerable components, or configuration weaknesses.",
}

// allScannerNames lists every scanner name for the combined profile.
var allScannerNames = []string{"paths", "inject", "cve", "headers", "tls"}

// newRegistry registers every scanner the CLI can run.
func newRegistry() *scanner.Registry {
	reg := scanner.NewRegistry()
	reg.Register(paths.New())
	reg.Register(inject.New())
	reg.Register(cvematch.New())
	reg.Register(headers.New())
	reg.Register(ssl.New())
	return reg
}

// newRunner builds a runner over the full registry.
func newRunner() *scanner.Runner {
	return scanner.NewRunner(newRegistry())
}

// requireTarget parses --target, failing when it is missing or malformed.
func requireTarget() (types.Target, error) {
	if targetFlag == "" {
		return types.Target{}, fmt.Errorf("--target (-t) is required")
	}
	target, err := types.ParseTarget(targetFlag)
	if err != nil {
		return types.Target{}, fmt.Errorf("invalid target: %w", err)
	}
	return target, nil
}

// scanOptions builds scanner options from the resolved flags.
func scanOptions(extra map[string]interface{}) scanner.Options {
	return scanner.Options{
		TimeBudget:     budgetFlag,
		RequestTimeout: timeoutFlag,
		Concurrency:    concurrencyFlag,
		Verbose:        verboseFlag,
		ExtraArgs:      extra,
	}
}

// scanContext bounds the whole invocation: the per-scanner budget plus slack
// for setup and rendering.
func scanContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), budgetFlag+30*time.Second)
}

// renderResults assembles scan results into a report and writes it in the
// selected output format.
func renderResults(results []types.ScanResult, target types.Target) error {
	formatter, err := output.GetFormatter(outputFlag)
	if err != nil {
		return err
	}

	var findings []types.Finding
	failures := 0
	var firstError string
	for _, result := range results {
		findings = append(findings, result.Findings...)
		if result.Error != "" {
			failures++
			if firstError == "" {
				firstError = result.Error
			}
		}
	}

	stats := scanner.MergeStats(results)
	opts := report.BuildOptions{
		Coverage: &report.Coverage{
			PathsProbed:   stats.PathsChecked,
			FormsTested:   stats.FormsTested,
			PayloadsSent:  stats.PayloadsSent,
			MethodsProbed: stats.TechnologiesChecked,
		},
	}

	// When every scanner failed outright nothing was actually assessed.
	if len(results) > 0 && failures == len(results) {
		opts.Status = report.StatusInconclusive
		opts.ReconError = firstError
	}

	label := target.URL
	if label == "" {
		label = target.Host
	}

	rep := report.Build(label, findings, opts)
	return formatter.Format(os.Stdout, rep)
}
