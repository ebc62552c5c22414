package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Loader handles loading configuration from files and command-line flags.
type Loader struct{}

// NewLoader creates a new configuration Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the file named by the --config flag, if any, and then applies
// every flag the user set on fs. Flags win over file values.
func (Loader) Load(fs *pflag.FlagSet) (*Config, error) {
	var configPath string
	if f := fs.Lookup("config"); f != nil {
		configPath = strings.TrimSpace(f.Value.String())
	}

	cfgViper := viper.New()
	if configPath != "" {
		cfgViper.SetConfigFile(configPath)
		if err := cfgViper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	cfg := &Config{
		Concurrency: 1,
		LogLevel:    "info",
		ConfigFile:  configPath,
	}

	if err := applyConfigSettings(cfg, cfgViper.AllSettings()); err != nil {
		return nil, err
	}

	if err := applyFlagOverrides(cfg, fs); err != nil {
		return nil, err
	}

	cfg.BaseDir = strings.TrimSpace(cfg.BaseDir)
	cfg.Prefix = strings.TrimSpace(cfg.Prefix)
	cfg.Path = strings.TrimSpace(cfg.Path)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.RIF.Type = strings.ToUpper(strings.TrimSpace(cfg.RIF.Type))

	return cfg, nil
}

// applyConfigSettings applies settings from a config file to the Config struct.
func applyConfigSettings(cfg *Config, settings map[string]interface{}) error {
	if len(settings) == 0 {
		return nil
	}

	stringSettings := []struct {
		dst  *string
		keys []string
	}{
		{&cfg.BaseDir, []string{"base_dir", "basedir", "base-dir"}},
		{&cfg.Prefix, []string{"prefix"}},
		{&cfg.Path, []string{"path"}},
		{&cfg.Format, []string{"format"}},
		{&cfg.LogLevel, []string{"log_level", "loglevel", "log-level"}},
	}
	for _, s := range stringSettings {
		raw, ok := lookupSetting(settings, s.keys...)
		if !ok {
			continue
		}
		val, err := asString(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", s.keys[0], err)
		}
		*s.dst = val
	}

	intSettings := []struct {
		dst  *int
		keys []string
	}{
		{&cfg.Concurrency, []string{"concurrency"}},
		{&cfg.Total, []string{"total"}},
		{&cfg.Rate, []string{"rate"}},
	}
	for _, s := range intSettings {
		raw, ok := lookupSetting(settings, s.keys...)
		if !ok {
			continue
		}
		val, err := asInt(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", s.keys[0], err)
		}
		*s.dst = val
	}

	boolSettings := []struct {
		dst  *bool
		keys []string
	}{
		{&cfg.Print, []string{"print"}},
		{&cfg.JSONOutput, []string{"json_output", "jsonoutput", "json-output"}},
		{&cfg.Progress, []string{"progress"}},
	}
	for _, s := range boolSettings {
		raw, ok := lookupSetting(settings, s.keys...)
		if !ok {
			continue
		}
		val, err := asBool(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", s.keys[0], err)
		}
		*s.dst = val
	}

	if raw, ok := lookupSetting(settings, "duration"); ok {
		dur, err := asDuration(raw)
		if err != nil {
			return fmt.Errorf("duration: %w", err)
		}
		cfg.Duration = dur
	}

	if raw, ok := lookupSetting(settings, "rif"); ok {
		if err := applyRIFSettings(&cfg.RIF, raw); err != nil {
			return fmt.Errorf("rif: %w", err)
		}
	}

	return nil
}

func applyRIFSettings(rif *RIFConfig, raw interface{}) error {
	section, err := toStringKeyMap(raw)
	if err != nil {
		return err
	}
	if v, ok := lookupSetting(section, "file", "path"); ok {
		val, err := asString(v)
		if err != nil {
			return fmt.Errorf("file: %w", err)
		}
		rif.File = strings.TrimSpace(val)
	}
	if v, ok := lookupSetting(section, "type"); ok {
		val, err := asString(v)
		if err != nil {
			return fmt.Errorf("type: %w", err)
		}
		rif.Type = val
	}
	if v, ok := lookupSetting(section, "cat"); ok {
		val, err := asBool(v)
		if err != nil {
			return fmt.Errorf("cat: %w", err)
		}
		rif.Cat = val
	}
	return nil
}
