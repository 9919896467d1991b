package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/saeedalam/repoprobe/internal/index"
	"github.com/saeedalam/repoprobe/internal/transport"
)

var transportCmd = &cobra.Command{
	Use:   "transport <path>",
	Short: "Detect the transport style of a local repository",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		files, err := index.IndexRepo(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		verdict := transport.Detect(files)
		out, _ := json.MarshalIndent(verdict, "", "  ")
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(transportCmd)
}
