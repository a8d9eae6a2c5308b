package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of WebScan",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("webscan version %s\n", version)
	},
}
