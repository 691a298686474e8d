package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "triage",
		Short: "triage grows decision trees over clinical triage records",
		Long:  `A tool to grow decision trees that predict the diagnostic label each rater would assign to a clinical record, and to apply them to new records`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.AddCommand(versionCmd(), trainCmd(config), predictCmd(config), testCmd(config))
	return rootCmd
}
