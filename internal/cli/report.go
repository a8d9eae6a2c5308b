package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buemura/webscan/internal/output"
	"github.com/buemura/webscan/internal/report"
	"github.com/buemura/webscan/pkg/types"
)

var (
	resultsFlag  string
	analysisFlag string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Assemble a report from saved scan output",
	Long: `Builds an assessment report from previously saved scan results
(JSON, as produced by --output json) and/or a free-text analysis file
containing "### FINDING:" blocks.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&resultsFlag, "results", "", "path to a JSON file of scan results")
	reportCmd.Flags().StringVar(&analysisFlag, "analysis", "", "path to a free-text analysis file with FINDING blocks")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if resultsFlag == "" && analysisFlag == "" {
		return fmt.Errorf("at least one of --results or --analysis is required")
	}

	var findings []types.Finding
	opts := report.BuildOptions{}
	label := targetFlag

	if resultsFlag != "" {
		data, err := os.ReadFile(resultsFlag)
		if err != nil {
			return fmt.Errorf("reading results file: %w", err)
		}

		var saved report.Report
		if err := json.Unmarshal(data, &saved); err != nil {
			return fmt.Errorf("parsing results file: %w", err)
		}

		findings = append(findings, saved.Findings...)
		opts.Coverage = saved.Coverage
		opts.Status = saved.Status
		opts.ReconError = saved.ReconError
		opts.ReconSummary = saved.ReconSummary
		opts.SourceSummary = saved.SourceSummary
		if label == "" {
			label = saved.Target
		}
	}

	if analysisFlag != "" {
		data, err := os.ReadFile(analysisFlag)
		if err != nil {
			return fmt.Errorf("reading analysis file: %w", err)
		}
		findings = append(findings, report.ParseFindings(string(data))...)
	}

	formatter, err := output.GetFormatter(outputFlag)
	if err != nil {
		return err
	}

	rep := report.Build(label, findings, opts)
	return formatter.Format(os.Stdout, rep)
}
