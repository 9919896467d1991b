package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saeedalam/repoprobe/internal/analyzer"
	"github.com/saeedalam/repoprobe/internal/config"
	"github.com/saeedalam/repoprobe/internal/httpapi"
	"github.com/saeedalam/repoprobe/internal/repo"
)

var apiPort string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the analysis pipeline.

Endpoints:
  GET  /health                   Liveness probe
  GET  /status                   Index statistics
  POST /mcp/clone-analyze        Clone a git URL and analyze it
  POST /mcp/analyze-zip          Upload a zip archive and analyze it
  POST /mcp/detect-transport     Transport detection for a local path
  POST /mcp/extract-tools        Tool extraction for a local path
  GET  /reports/:id              Fetch a persisted report`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if apiPort != "" {
			cfg.Port = apiPort
		}

		matcher := newMatcher(cfg)
		loader := repo.NewLoader(cfg.WorkDir)
		reports, history := openStores(cfg)
		if history != nil {
			defer history.Close()
		}

		a := analyzer.New(matcher)
		server, err := httpapi.NewServer(a, matcher, loader, reports, history)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "RepoProbe API listening on :%s\n", cfg.Port)
		if err := server.Run(cfg.Port); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	apiCmd.Flags().StringVarP(&apiPort, "port", "p", "", "Port to listen on (overrides REPOPROBE_PORT)")
	rootCmd.AddCommand(apiCmd)
}
