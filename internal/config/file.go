package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML representation of the settings that may be stored
// in a configuration file. Absent keys leave the current value untouched.
//
//	op: product
//	separator: ";"
//	format: json
type FileConfig struct {
	Op          *string `yaml:"op"`
	Separator   *string `yaml:"separator"`
	Format      *string `yaml:"format"`
	Quiet       *bool   `yaml:"quiet"`
	Verbose     *bool   `yaml:"verbose"`
	NoColor     *bool   `yaml:"no_color"`
	Theme       *string `yaml:"theme"`
	LogLevel    *string `yaml:"log_level"`
	Trace       *string `yaml:"trace"`
	MetricsFile *string `yaml:"metrics_file"`
	Workers     *int    `yaml:"workers"`
}

// LoadFile reads and decodes a YAML configuration file. Unknown keys are
// rejected so that typos do not go unnoticed.
func LoadFile(path string) (FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	var fc FileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return fc, nil
}

// apply copies the file's values into cfg for every setting whose flag was
// not set on the command line.
func (fc FileConfig) apply(cfg *AppConfig, fs *flag.FlagSet) {
	setString := func(dst *string, src *string, flags ...string) {
		if src != nil && !isFlagSetAny(fs, flags...) {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool, flags ...string) {
		if src != nil && !isFlagSetAny(fs, flags...) {
			*dst = *src
		}
	}

	setString(&cfg.Op, fc.Op, "op")
	setString(&cfg.Separator, fc.Separator, "sep")
	setString(&cfg.Format, fc.Format, "format")
	setString(&cfg.Theme, fc.Theme, "theme")
	setString(&cfg.LogLevel, fc.LogLevel, "log-level")
	setString(&cfg.Trace, fc.Trace, "trace")
	setString(&cfg.MetricsFile, fc.MetricsFile, "metrics-file")
	setBool(&cfg.Quiet, fc.Quiet, "quiet", "q")
	setBool(&cfg.Verbose, fc.Verbose, "verbose", "v")
	setBool(&cfg.NoColor, fc.NoColor, "no-color")
	if fc.Workers != nil && !isFlagSet(fs, "workers") {
		cfg.Workers = *fc.Workers
	}
}
