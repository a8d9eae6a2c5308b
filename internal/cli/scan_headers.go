package cli

import (
	"github.com/spf13/cobra"

	"github.com/buemura/webscan/pkg/types"
)

var scanHeadersCmd = &cobra.Command{
	Use:   "headers",
	Short: "Analyze HTTP security headers",
	Long:  "Checks the target's response headers for missing or misconfigured security controls.",
	RunE:  runHeadersScan,
}

func init() {
	scanCmd.AddCommand(scanHeadersCmd)
}

func runHeadersScan(cmd *cobra.Command, args []string) error {
	target, err := requireTarget()
	if err != nil {
		return err
	}

	ctx, cancel := scanContext()
	defer cancel()

	runner := newRunner()
	result, err := runner.RunOne(ctx, "headers", target, scanOptions(nil))
	if err != nil {
		return err
	}

	return renderResults([]types.ScanResult{*result}, target)
}
