package mosaic

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golobby/config/v3"

	"github.com/GoCodeAlone/mosaic/feeders"
)

// EnvPrefix is the prefix for environment variables overlaying file-based
// configuration: MOSAIC_MODE, MOSAIC_BASE_PATH and so on, matching the
// `env` tags on Config.
const EnvPrefix = "MOSAIC"

// LoadConfigFile populates cfg from the given file, overlays prefixed
// environment variables, applies struct-tag defaults to whatever remains
// zero and runs cfg's Validate when it implements ConfigValidator.
//
// The feeder is chosen by extension: .yaml/.yml, .json, .toml or .env.
func LoadConfigFile(path string, cfg any) error {
	f, err := feederFor(path)
	if err != nil {
		return err
	}

	builder := config.New().
		AddFeeder(f).
		AddFeeder(feeders.NewPrefixEnvFeeder(EnvPrefix)).
		AddStruct(cfg)
	if err := builder.Feed(); err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	if err := ProcessConfigDefaults(cfg); err != nil {
		return err
	}
	if v, ok := cfg.(ConfigValidator); ok {
		return v.Validate()
	}
	return nil
}

// LoadConfigEnv populates cfg from prefixed environment variables alone,
// then applies defaults and validation. Used when no config file is
// present.
func LoadConfigEnv(cfg any) error {
	if err := config.New().
		AddFeeder(feeders.NewPrefixEnvFeeder(EnvPrefix)).
		AddStruct(cfg).
		Feed(); err != nil {
		return fmt.Errorf("load config from environment: %w", err)
	}
	if err := ProcessConfigDefaults(cfg); err != nil {
		return err
	}
	if v, ok := cfg.(ConfigValidator); ok {
		return v.Validate()
	}
	return nil
}

func feederFor(path string) (config.Feeder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return feeders.NewYamlFeeder(path), nil
	case ".json":
		return feeders.NewJSONFeeder(path), nil
	case ".toml":
		return feeders.NewTomlFeeder(path), nil
	case ".env":
		return feeders.NewDotEnvFeeder(path), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfig, path)
	}
}
