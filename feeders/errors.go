// Package feeders provides the configuration feeders the framework loads
// its Config through: YAML, TOML, JSON and .env files, plus prefixed
// environment variables. Each feeder satisfies the golobby/config Feeder
// contract so they compose in one feed pass.
package feeders

import "errors"

var (
	// ErrInvalidStructure indicates the feed target is not a pointer to
	// a struct.
	ErrInvalidStructure = errors.New("feeder: expected pointer to struct")

	// ErrEmptyPrefix indicates a PrefixEnvFeeder without a prefix.
	ErrEmptyPrefix = errors.New("feeder: env prefix cannot be empty")

	// ErrCannotConvert indicates an environment value that cannot be
	// coerced into its field's type.
	ErrCannotConvert = errors.New("feeder: cannot convert value to field type")
)
