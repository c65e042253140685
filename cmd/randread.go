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

// randreadCmd represents the randread command
var randreadCmd = &cobra.Command{
	Use:   "randread <target>",
	Short: "Random positioned reads.",
	Long: `Reads blocks at uniformly random offsets within the target. Offsets are
positioned reads, so multiple jobs can safely share the target. If the
target is missing or smaller than --size it is written out first.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBench(bench.RandRead, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "test failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(randreadCmd)
}
