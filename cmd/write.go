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

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write <target>",
	Short: "Sequential writes.",
	Long: `Writes blocks sequentially from the start of the target, creating or
truncating it first. Writes consume the descriptor's file cursor, so
only a single job is allowed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBench(bench.Write, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "test failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
}
