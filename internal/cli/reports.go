package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saeedalam/repoprobe/internal/config"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Browse persisted analysis reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted reports, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		reports, history := openStores(cfg)
		if history != nil {
			defer history.Close()
		}

		summaries, err := reports.ListReports()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(summaries) == 0 {
			fmt.Println("No reports yet. Run 'repoprobe analyze' first.")
			return
		}

		fmt.Printf("%-28s %-10s %6s  %s\n", "ID", "TRANSPORT", "TOOLS", "REPO")
		for _, s := range summaries {
			fmt.Printf("%-28s %-10s %6d  %s\n", s.ID, s.Transport, s.ToolCount, s.Repo)
		}
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a full report as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		reports, history := openStores(cfg)
		if history != nil {
			defer history.Close()
		}

		report, err := reports.GetReport(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: report not found: %s\n", args[0])
			os.Exit(1)
		}

		out, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(out))
	},
}

var reportsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over tools from past analyses",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		_, history := openStores(cfg)
		if history == nil {
			fmt.Fprintln(os.Stderr, "Error: history index unavailable")
			os.Exit(1)
		}
		defer history.Close()

		hits, err := history.SearchTools(strings.Join(args, " "), 20)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(hits) == 0 {
			fmt.Println("No matches.")
			return
		}

		for _, h := range hits {
			fmt.Printf("%s  %s (%.2f)\n", h.ReportID, h.Name, h.Confidence)
			fmt.Printf("    %s\n", h.Description)
			fmt.Printf("    %s in %s\n", h.Filename, h.Repo)
		}
	},
}

func init() {
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	reportsCmd.AddCommand(reportsSearchCmd)
	rootCmd.AddCommand(reportsCmd)
}
