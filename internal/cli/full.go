package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buemura/webscan/pkg/types"
)

var (
	fullFormsFlag   string
	fullProfileFlag string
)

var fullCmd = &cobra.Command{
	Use:   "full",
	Short: "Run every scanner",
	Long:  "Runs path enumeration, injection probing, CVE matching, header analysis, and TLS checks against the target concurrently.",
	RunE:  runFull,
}

func init() {
	fullCmd.Flags().StringVar(&fullFormsFlag, "forms", "", "path to a JSON file describing forms for injection probing (optional)")
	fullCmd.Flags().StringVar(&fullProfileFlag, "profile", "", "scan profile from the config file naming which scanners to run")
	rootCmd.AddCommand(fullCmd)
}

func runFull(cmd *cobra.Command, args []string) error {
	target, err := requireTarget()
	if err != nil {
		return err
	}

	extra := map[string]interface{}{}
	names := allScannerNames
	if fullProfileFlag != "" {
		profile := appConfig.GetProfile(fullProfileFlag)
		if profile == nil {
			return fmt.Errorf("scan profile %q not found in config", fullProfileFlag)
		}
		names = profile.Scanners
	}
	if fullFormsFlag != "" {
		data, err := os.ReadFile(fullFormsFlag)
		if err != nil {
			return fmt.Errorf("reading forms file: %w", err)
		}
		forms, err := types.ParseForms(data)
		if err != nil {
			return fmt.Errorf("parsing forms file: %w", err)
		}
		extra["forms"] = forms
	} else {
		// Nothing to submit payloads through without a forms file.
		names = withoutScanner(names, "inject")
	}

	ctx, cancel := scanContext()
	defer cancel()

	runner := newRunner()
	results := runner.RunAll(ctx, names, target, scanOptions(extra))
	return renderResults(results, target)
}

func withoutScanner(names []string, drop string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != drop {
			out = append(out, n)
		}
	}
	return out
}
