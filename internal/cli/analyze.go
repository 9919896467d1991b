package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saeedalam/repoprobe/internal/analyzer"
	"github.com/saeedalam/repoprobe/internal/config"
	"github.com/saeedalam/repoprobe/internal/repo"
)

var (
	analyzeGit  string
	analyzeZip  string
	analyzeName string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Run the full analysis pipeline and persist a report",
	Long: `Analyze a repository and persist the resulting report.

The repository can be given three ways:
  1. A local path:          repoprobe analyze /path/to/repo
  2. A git URL to clone:    repoprobe analyze --git https://example.com/x.git
  3. A zip archive:         repoprobe analyze --zip ./project.zip

Clones and extracted archives land in the configured working directory
(REPOPROBE_WORK_DIR). Reports are written under the data directory
(REPOPROBE_DATA_DIR) and mirrored into the searchable history index.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeGit, "git", "", "Git repository URL to clone and analyze")
	analyzeCmd.Flags().StringVar(&analyzeZip, "zip", "", "Path to a zip archive to extract and analyze")
	analyzeCmd.Flags().StringVar(&analyzeName, "name", "", "Checkout directory name for --git/--zip")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	cfg := config.Load()
	loader := repo.NewLoader(cfg.WorkDir)

	var root, ref string
	switch {
	case analyzeGit != "":
		var err error
		root, err = loader.CloneGit(analyzeGit, analyzeName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		ref = analyzeGit
	case analyzeZip != "":
		var err error
		root, err = loader.Unzip(analyzeZip, analyzeName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		ref = analyzeZip
	case len(args) > 0:
		root = args[0]
		ref = args[0]
	default:
		fmt.Fprintln(os.Stderr, "Error: provide a path, --git or --zip")
		os.Exit(1)
	}

	a := analyzer.New(newMatcher(cfg))
	report, err := a.Analyze(root, ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	reports, history := openStores(cfg)
	if history != nil {
		defer history.Close()
	}

	id, err := reports.SaveReport(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not save report: %v\n", err)
		os.Exit(1)
	}
	if history != nil {
		if err := history.IndexReport(report); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: history index failed: %v\n", err)
		}
	}

	fmt.Printf("Report:    %s\n", id)
	fmt.Printf("Repo:      %s\n", report.Repo)
	fmt.Printf("Transport: %s (confidence %.2f)\n", report.Transport.Type, report.Transport.Confidence)
	fmt.Printf("Tools:     %d\n", len(report.Tools))
	if report.RunTemplate.Cmd != "" {
		fmt.Printf("Run:       %s (confidence %.2f)\n", report.RunTemplate.Cmd, report.RunTemplate.Confidence)
	} else {
		fmt.Printf("Run:       (no command inferred)\n")
	}
}
