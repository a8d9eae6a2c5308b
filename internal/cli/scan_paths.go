package cli

import (
	"github.com/spf13/cobra"

	"github.com/buemura/webscan/pkg/types"
)

var scanPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Enumerate sensitive paths",
	Long:  "Probes the target for exposed files and endpoints using robots.txt discovery plus a curated path catalog.",
	RunE:  runPathsScan,
}

func init() {
	scanCmd.AddCommand(scanPathsCmd)
}

func runPathsScan(cmd *cobra.Command, args []string) error {
	target, err := requireTarget()
	if err != nil {
		return err
	}

	ctx, cancel := scanContext()
	defer cancel()

	runner := newRunner()
	result, err := runner.RunOne(ctx, "paths", target, scanOptions(nil))
	if err != nil {
		return err
	}

	return renderResults([]types.ScanResult{*result}, target)
}
