package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jesee-kuya/triage"
	"github.com/jesee-kuya/triage/record"
	"github.com/spf13/cobra"
)

type trainCmdConfig struct {
	*rootCmdConfig
	treeParamsFlags
	dataInput   string
	configInput string
	maxDBConns  int
}

func trainCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &trainCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Grow the five per-rater trees from a set of records",
		Long:  `Grow one decision tree per rater target from a set of training records and print them along with their training accuracy.`,
		Run: func(cmd *cobra.Command, args []string) {
			c, err := loadParams(cmd, config.configInput, &config.treeParamsFlags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if config.dataInput == "" {
				config.dataInput = c.Training
			}
			records, err := config.readRecords(context.Background(), config.dataInput, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Growing %d trees from a set with %d records...", len(record.Targets()), len(records))
			predictor := triage.BuildPredictor(records, c.Params)
			config.Logf("Done")
			for _, target := range record.Targets() {
				t := predictor.Tree(target)
				fmt.Println(t)
				rate, skipped := t.Accuracy(records)
				fmt.Printf("%s: %f training accuracy, %d records without a label\n\n", target, rate, skipped)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL/MongoDB connection URL with records to grow the trees from (defaults to the config file's training entry, then STDIN as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.configInput), "config", "c", "", "path to a YML file with tree parameters and data locations")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	config.treeParamsFlags.register(cmd)
	return cmd
}
