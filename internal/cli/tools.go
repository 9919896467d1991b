package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saeedalam/repoprobe/internal/catalog"
	"github.com/saeedalam/repoprobe/internal/config"
	"github.com/saeedalam/repoprobe/internal/index"
)

var toolsCmd = &cobra.Command{
	Use:   "tools <path>",
	Short: "Extract tool-like entry points from a local repository",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		files, err := index.IndexRepo(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		tools := catalog.Assemble(files, newMatcher(cfg))
		out, _ := json.MarshalIndent(map[string]interface{}{
			"tools": tools,
			"count": len(tools),
		}, "", "  ")
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
