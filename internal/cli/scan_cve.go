package cli

import (
	"github.com/spf13/cobra"

	"github.com/buemura/webscan/pkg/types"
)

var techFlag []string

var scanCVECmd = &cobra.Command{
	Use:   "cve",
	Short: "Match detected versions against known CVEs",
	Long:  "Detects the server banner and checks it, plus any --tech strings, against a catalog of known vulnerabilities.",
	RunE:  runCVEScan,
}

func init() {
	scanCVECmd.Flags().StringSliceVar(&techFlag, "tech", nil, "additional technology strings to check (e.g. \"jquery 1.12.4\")")
	scanCmd.AddCommand(scanCVECmd)
}

func runCVEScan(cmd *cobra.Command, args []string) error {
	target, err := requireTarget()
	if err != nil {
		return err
	}

	ctx, cancel := scanContext()
	defer cancel()

	runner := newRunner()
	result, err := runner.RunOne(ctx, "cve", target, scanOptions(map[string]interface{}{
		"technologies": techFlag,
	}))
	if err != nil {
		return err
	}

	return renderResults([]types.ScanResult{*result}, target)
}
