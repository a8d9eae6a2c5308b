package cli

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/buemura/webscan/internal/owasp"
)

var owaspCmd = &cobra.Command{
	Use:   "owasp",
	Short: "Print the OWASP Top 10 checklist",
	Long:  "Prints the OWASP Top 10 (2021) reference table with the check areas each category covers.",
	Run:   runOWASP,
}

func init() {
	rootCmd.AddCommand(owaspCmd)
}

func runOWASP(cmd *cobra.Command, args []string) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "OWASP Top 10 (2021)")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Check Areas"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	for _, cat := range owasp.Categories() {
		table.Append([]string{cat.ID, cat.Name, strings.Join(cat.CheckAreas, "\n")})
	}
	table.Render()
}
