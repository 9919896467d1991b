package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saeedalam/repoprobe/internal/config"
	"github.com/saeedalam/repoprobe/internal/semantic"
	"github.com/saeedalam/repoprobe/internal/storage"
)

var noSemantic bool

var rootCmd = &cobra.Command{
	Use:   "repoprobe",
	Short: "Heuristic repository analyzer for tool and transport inference",
	Long: `RepoProbe - Best-Effort Repository Analysis

RepoProbe ingests a source repository (local path, git clone or zip
archive), scans its files and infers:

  - the transport style the project likely exposes (stdio/http/websocket/sse)
  - a catalogue of tool-like entry points with guessed input/output schemas
  - a best-guess command to run the project

All results are confidence-scored heuristics meant for a human or
automated consumer to validate, not ground truth.

Quick Start:
  repoprobe analyze .               Analyze the current directory
  repoprobe analyze --git <url>     Clone and analyze a repository
  repoprobe transport <path>        Transport detection only
  repoprobe serve                   Start the stdio JSON-RPC server
  repoprobe api                     Start the HTTP API server`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noSemantic, "no-semantic", false, "Disable semantic template matching (heuristic-only mode)")
}

// newMatcher builds the process-wide semantic matcher, honoring both the
// flag and the environment switch. Failure to prepare the matcher is
// permanent for this process: it silently degrades to heuristic-only.
func newMatcher(cfg config.Config) semantic.Matcher {
	if noSemantic || !cfg.Semantic {
		return semantic.Disabled()
	}
	return semantic.NewMatcher(semantic.DefaultTemplates)
}

// openStores opens the report store and the history index. The history
// index is optional: a failure to open it is reported but not fatal.
func openStores(cfg config.Config) (*storage.ReportStore, *storage.HistoryIndex) {
	reports := storage.NewReportStore(cfg.DataDir)
	history, err := storage.NewHistoryIndex(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history index unavailable: %v\n", err)
		history = nil
	}
	return reports, history
}
