package cli

import (
	"github.com/spf13/cobra"

	"github.com/buemura/webscan/pkg/types"
)

var scanTLSCmd = &cobra.Command{
	Use:   "tls",
	Short: "Check TLS configuration",
	Long:  "Inspects the target's TLS protocol version, cipher suite, and certificate health.",
	RunE:  runTLSScan,
}

func init() {
	scanCmd.AddCommand(scanTLSCmd)
}

func runTLSScan(cmd *cobra.Command, args []string) error {
	target, err := requireTarget()
	if err != nil {
		return err
	}

	ctx, cancel := scanContext()
	defer cancel()

	runner := newRunner()
	result, err := runner.RunOne(ctx, "tls", target, scanOptions(nil))
	if err != nil {
		return err
	}

	return renderResults([]types.ScanResult{*result}, target)
}
