package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jesee-kuya/triage"
	"github.com/jesee-kuya/triage/record"
	"github.com/jesee-kuya/triage/record/csv"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeParamsFlags
	trainingInput string
	dataInput     string
	output        string
	configInput   string
	maxDBConns    int
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the five rater labels for a set of records",
		Long:  `Grow the per-rater trees from a training set of records and write the predicted labels for every record of an input set as CSV.`,
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
			if config.output == "" {
				config.output = c.Output
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
			records, err := config.readRecords(ctx, config.dataInput, config.maxDBConns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			err = config.writePredictions(predictor, records)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.trainingInput), "training", "t", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL/MongoDB connection URL with records to grow the trees from (defaults to the config file's training entry, then STDIN as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL/MongoDB connection URL with the records to predict (defaults to the config file's input entry)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the predictions will be written as CSV (defaults to the config file's output entry, then STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.configInput), "config", "c", "", "path to a YML file with tree parameters and data locations")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	config.treeParamsFlags.register(cmd)
	return cmd
}

func (pcc *predictCmdConfig) writePredictions(predictor *triage.MultiTargetPredictor, records []record.Record) error {
	var f *os.File
	var err error
	if pcc.output == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(pcc.output)
		if err != nil {
			return fmt.Errorf("creating predictions output at %s: %v", pcc.output, err)
		}
		defer f.Close()
	}
	w, err := csv.NewWriter(f)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(r, predictor.Predict(r)); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	pcc.Logf("Wrote predictions for %d records", w.Count())
	return nil
}
