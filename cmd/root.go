package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mcbench",
	Short: "mcbench measures Put/Get throughput of a Mooncake-style key-value store",
	Long:  "A benchmarking tool that drives concurrent put/get traffic against a remote key-value store and reports aggregate throughput, loosely inspired by redis-benchmark",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			os.Exit(0)
		}
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	rootCmd.AddCommand(ConfigCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
