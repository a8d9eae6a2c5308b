package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buemura/webscan/pkg/types"
)

var formsFlag string

var scanInjectCmd = &cobra.Command{
	Use:   "inject",
	Short: "Probe forms for XSS and SQL injection",
	Long:  "Submits XSS and SQL injection payloads through the forms described in a crawler-produced JSON file.",
	RunE:  runInjectScan,
}

func init() {
	scanInjectCmd.Flags().StringVar(&formsFlag, "forms", "", "path to a JSON file describing the forms to test (required)")
	scanCmd.AddCommand(scanInjectCmd)
}

func runInjectScan(cmd *cobra.Command, args []string) error {
	target, err := requireTarget()
	if err != nil {
		return err
	}

	if formsFlag == "" {
		return fmt.Errorf("--forms is required")
	}

	data, err := os.ReadFile(formsFlag)
	if err != nil {
		return fmt.Errorf("reading forms file: %w", err)
	}

	forms, err := types.ParseForms(data)
	if err != nil {
		return fmt.Errorf("parsing forms file: %w", err)
	}

	ctx, cancel := scanContext()
	defer cancel()

	runner := newRunner()
	result, err := runner.RunOne(ctx, "inject", target, scanOptions(map[string]interface{}{
		"forms": forms,
	}))
	if err != nil {
		return err
	}

	return renderResults([]types.ScanResult{*result}, target)
}
