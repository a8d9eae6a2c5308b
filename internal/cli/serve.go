package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buemura/webscan/internal/web"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the WebScan web server",
	Long:  "Launches the WebScan web interface for running security scans from a browser.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", ":3000", "listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s := web.NewServer(addrFlag, newRegistry())
	fmt.Fprintf(cmd.OutOrStdout(), "WebScan web server listening on %s\n", addrFlag)
	return s.Start()
}
