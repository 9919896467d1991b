package cli

import (
	"github.com/spf13/cobra"

	"github.com/saeedalam/repoprobe/internal/analyzer"
	"github.com/saeedalam/repoprobe/internal/config"
	"github.com/saeedalam/repoprobe/internal/mcp"
	"github.com/saeedalam/repoprobe/internal/repo"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stdio JSON-RPC server",
	Long: `Start a JSON-RPC 2.0 server over stdin/stdout.

The server exposes the analysis pipeline as callable tools
(analyze_repo, clone_analyze, detect_transport, extract_tools,
get_report, list_reports) so editor and agent integrations can drive
it without the CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		matcher := newMatcher(cfg)
		loader := repo.NewLoader(cfg.WorkDir)
		reports, history := openStores(cfg)

		a := analyzer.New(matcher)
		server := mcp.NewServer(a, matcher, loader, reports, history)
		server.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
