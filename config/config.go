/*
Package config parses the YAML configuration file driving the triage
CLI: tree growing parameters and default data locations.
*/
package config

import (
	"fmt"
	"io/ioutil"

	yaml "gopkg.in/yaml.v2"

	"github.com/jesee-kuya/triage"
)

/*
Config holds the validated configuration: the tree parameters and the
default locations for training data, prediction input and prediction
output. Locations may be empty, in which case the CLI falls back to
its flags and STDIN/STDOUT.
*/
type Config struct {
	Params   triage.TreeParams
	Training string
	Input    string
	Output   string
}

type fileConfig struct {
	MaxDepth       *int     `yaml:"max_depth"`
	MinSamplesLeaf *int     `yaml:"min_samples_leaf"`
	MinGainRatio   *float64 `yaml:"min_gain_ratio"`
	Training       string   `yaml:"training"`
	Input          string   `yaml:"input"`
	Output         string   `yaml:"output"`
}

/*
Default returns the configuration used when no file is given: default
tree parameters and no preset data locations.
*/
func Default() *Config {
	return &Config{Params: triage.DefaultTreeParams()}
}

/*
Read takes a slice of bytes with a YAML configuration document and
returns the configuration parsed from it, with absent parameters kept
at their defaults, or an error if the document cannot be parsed or a
parameter is out of range.
*/
func Read(doc []byte) (*Config, error) {
	fc := &fileConfig{}
	if err := yaml.Unmarshal(doc, fc); err != nil {
		return nil, fmt.Errorf("parsing yml config: %v", err)
	}
	c := Default()
	if fc.MaxDepth != nil {
		c.Params.MaxDepth = *fc.MaxDepth
	}
	if fc.MinSamplesLeaf != nil {
		c.Params.MinSamplesLeaf = *fc.MinSamplesLeaf
	}
	if fc.MinGainRatio != nil {
		c.Params.MinGainRatio = *fc.MinGainRatio
	}
	c.Training = fc.Training
	c.Input = fc.Input
	c.Output = fc.Output
	if err := c.Params.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

/*
ReadFromFile takes a filepath, reads its contents and uses Read to
parse it and return the configuration. The empty filepath returns the
default configuration. An error is returned if the file cannot be
read or parsed.
*/
func ReadFromFile(filepath string) (*Config, error) {
	if filepath == "" {
		return Default(), nil
	}
	doc, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading config yml file %s: %v", filepath, err)
	}
	c, err := Read(doc)
	if err != nil {
		err = fmt.Errorf("parsing config yml file %s: %v", filepath, err)
	}
	return c, err
}
