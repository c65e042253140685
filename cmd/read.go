/*
Copyright © 2025 jesse galley <jesse@jessegalley.net>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jessegalley/diobench/internal/bench"
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read <target>",
	Short: "Sequential reads.",
	Long: `Reads blocks sequentially from the start of the target. Sequential reads
consume the descriptor's file cursor, so only a single job is allowed.
If the target is missing or smaller than --size it is written out first.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBench(bench.SeqRead, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "test failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}
