package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jesee-kuya/triage"
	"github.com/jesee-kuya/triage/record"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	treeParamsFlags
	trainingInput string
	dataInput     string
	configInput   string
	maxDBConns    int
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of the five per-rater trees",
		Long:  `Grow the per-rater trees from a training set of records and report each tree's accuracy against a test set.`,
		Run: func(cmd *cobra.Command, args []string) {
			c, err := loadParams(cmd, config.configInput, &config.treeParamsFlags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if config.trainingInput == "" {
				config.trainingInput = c.Training
			}
			if config.dataInput == "" {
				config.dataInput = c.Input
			}
			ctx := context.Background()
			training, err := config.readRecords(ctx, config.trainingInput, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Growing %d trees from a set with %d records...", len(record.Targets()), len(training))
			predictor := triage.BuildPredictor(training, c.Params)
			config.Logf("Done")
			testing, err := config.readRecords(ctx, config.dataInput, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Testing trees against a set with %d records...", len(testing))
			for _, target := range record.Targets() {
				rate, skipped := predictor.Tree(target).Accuracy(testing)
				fmt.Printf("%s: %f success rate, %d records without a label to compare against\n", target, rate, skipped)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.trainingInput), "training", "t", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL/MongoDB connection URL with records to grow the trees from (defaults to the config file's training entry, then STDIN as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL/MongoDB connection URL with the records to test against (defaults to the config file's input entry)")
	cmd.PersistentFlags().StringVarP(&(config.configInput), "config", "c", "", "path to a YML file with tree parameters and data locations")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	config.treeParamsFlags.register(cmd)
	return cmd
}
