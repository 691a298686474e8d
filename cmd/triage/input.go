package main

import (
	"context"
	"fmt"
	"strings"

	mgo "gopkg.in/mgo.v2"

	"github.com/jesee-kuya/triage"
	"github.com/jesee-kuya/triage/config"
	"github.com/jesee-kuya/triage/record"
	"github.com/jesee-kuya/triage/record/csv"
	"github.com/jesee-kuya/triage/record/mongosource"
	"github.com/jesee-kuya/triage/record/sqlsource"
	"github.com/spf13/cobra"
)

// readRecords loads records from the given input: a PostgreSQL or
// MongoDB URL, an SQLite3 (.db) file, a CSV filepath, or STDIN when
// the input is empty.
func (rcc *rootCmdConfig) readRecords(ctx context.Context, input string, maxDBConns int) ([]record.Record, error) {
	switch {
	case strings.HasPrefix(input, "postgresql://"):
		rcc.Logf("Opening PostgreSQL record source at %s...", input)
		src, err := sqlsource.OpenPostgreSQL(input)
		if err != nil {
			return nil, err
		}
		defer src.Close()
		return src.Read(ctx)
	case strings.HasPrefix(input, "mongodb://"):
		rcc.Logf("Dialing MongoDB record source at %s...", input)
		session, err := mgo.Dial(input)
		if err != nil {
			return nil, fmt.Errorf("dialing MongoDB at %s: %v", input, err)
		}
		src := mongosource.Open(session)
		defer src.Close()
		return src.Read(ctx)
	case strings.HasSuffix(input, ".db"):
		rcc.Logf("Opening SQLite3 record source at %s...", input)
		src, err := sqlsource.OpenSQLite3(input, maxDBConns)
		if err != nil {
			return nil, err
		}
		defer src.Close()
		return src.Read(ctx)
	}
	if input == "" {
		rcc.Logf("Reading records from STDIN...")
	} else {
		rcc.Logf("Opening %s to read records...", input)
	}
	records, stats, err := csv.ReadRecordsFromFilePath(input)
	if err != nil {
		return nil, err
	}
	if stats.Skipped > 0 {
		rcc.Logf("Skipped %d malformed rows", stats.Skipped)
	}
	if stats.Duplicates > 0 {
		rcc.Logf("Dropped %d duplicate rows", stats.Duplicates)
	}
	if stats.MissingTargets > 0 {
		rcc.Logf("Warning: %d records missing both clinician and gpt4_0 labels", stats.MissingTargets)
	}
	return records, nil
}

// treeParamsFlags holds the flag values overriding the configured
// tree parameters. Only flags the user actually set override the
// configuration file.
type treeParamsFlags struct {
	maxDepth       int
	minSamplesLeaf int
	minGainRatio   float64
}

func (tpf *treeParamsFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().IntVar(&(tpf.maxDepth), "max-depth", 0, "bound on the depth of the grown trees (overrides the config file)")
	cmd.PersistentFlags().IntVar(&(tpf.minSamplesLeaf), "min-samples-leaf", 0, "smallest record partition that may still be split (overrides the config file)")
	cmd.PersistentFlags().Float64Var(&(tpf.minGainRatio), "min-gain-ratio", 0, "smallest gain ratio for which a split is accepted (overrides the config file)")
}

func (tpf *treeParamsFlags) apply(cmd *cobra.Command, params *triage.TreeParams) {
	if cmd.PersistentFlags().Changed("max-depth") {
		params.MaxDepth = tpf.maxDepth
	}
	if cmd.PersistentFlags().Changed("min-samples-leaf") {
		params.MinSamplesLeaf = tpf.minSamplesLeaf
	}
	if cmd.PersistentFlags().Changed("min-gain-ratio") {
		params.MinGainRatio = tpf.minGainRatio
	}
}

// loadParams reads the configuration file (if any), layers the
// command's parameter flags on top and validates the result.
func loadParams(cmd *cobra.Command, configPath string, tpf *treeParamsFlags) (*config.Config, error) {
	c, err := config.ReadFromFile(configPath)
	if err != nil {
		return nil, err
	}
	tpf.apply(cmd, &c.Params)
	if err := c.Params.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
