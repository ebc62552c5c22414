package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RegisterCommonFlags registers flags shared by every command as persistent flags.
func RegisterCommonFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to configuration file (JSON or YAML)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
}

// RegisterIDsFlags registers the flags of the ids command.
func RegisterIDsFlags(cmd *cobra.Command) {
	configureIDsFlags(cmd.Flags())
}

// RegisterRIFFlags registers the flags of the rif command.
func RegisterRIFFlags(cmd *cobra.Command) {
	configureRIFFlags(cmd.Flags())
}

func configureIDsFlags(flags *pflag.FlagSet) {
	// Source flags
	flags.String("base-dir", "", "Directory holding the identifier files")
	flags.String("prefix", "", "Use <prefix>-bene-ids.csv instead of bene-ids.csv")
	flags.String("path", "", "Explicit identifier file (overrides base-dir and prefix)")

	// Draw flags
	flags.IntP("concurrency", "c", 1, "Number of concurrent workers drawing identifiers")
	flags.IntP("total", "t", 0, "Total number of identifiers to draw (0 means one full cycle unless duration is set)")
	flags.DurationP("duration", "d", 0, "How long to keep drawing (e.g. 30s, 1m)")
	flags.IntP("rate", "r", 0, "Draws per second limit (0 means unlimited)")

	// Output flags
	flags.Bool("print", false, "Print every drawn identifier to stdout")
	flags.String("format", "", "Template for printed identifiers, e.g. 'Patient/{{bene_id}}'")
	flags.Bool("json-output", false, "Emit JSON formatted report")
	flags.Bool("progress", false, "Show a live progress line on stderr")
}

func configureRIFFlags(flags *pflag.FlagSet) {
	flags.String("file", "", "Path to the RIF file")
	flags.String("type", "", "Declared RIF file type (e.g. BENEFICIARY, CARRIER)")
	flags.Bool("cat", false, "Stream the decoded file content to stdout")
}

// applyFlagOverrides applies command-line flag values to the config, overriding
// values from the config file. Flags that were not registered on fs are skipped.
func applyFlagOverrides(cfg *Config, fs *pflag.FlagSet) error {
	stringFlags := map[string]*string{
		"base-dir":  &cfg.BaseDir,
		"prefix":    &cfg.Prefix,
		"path":      &cfg.Path,
		"format":    &cfg.Format,
		"log-level": &cfg.LogLevel,
		"file":      &cfg.RIF.File,
		"type":      &cfg.RIF.Type,
	}
	for name, dst := range stringFlags {
		if !changed(fs, name) {
			continue
		}
		val, err := fs.GetString(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = strings.TrimSpace(val)
	}

	intFlags := map[string]*int{
		"concurrency": &cfg.Concurrency,
		"total":       &cfg.Total,
		"rate":        &cfg.Rate,
	}
	for name, dst := range intFlags {
		if !changed(fs, name) {
			continue
		}
		val, err := fs.GetInt(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = val
	}

	boolFlags := map[string]*bool{
		"print":       &cfg.Print,
		"json-output": &cfg.JSONOutput,
		"progress":    &cfg.Progress,
		"cat":         &cfg.RIF.Cat,
	}
	for name, dst := range boolFlags {
		if !changed(fs, name) {
			continue
		}
		val, err := fs.GetBool(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = val
	}

	if changed(fs, "duration") {
		val, err := fs.GetDuration("duration")
		if err != nil {
			return fmt.Errorf("duration: %w", err)
		}
		cfg.Duration = val
	}
	return nil
}

func changed(fs *pflag.FlagSet, name string) bool {
	return fs.Lookup(name) != nil && fs.Changed(name)
}
