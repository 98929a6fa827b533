package feeders

import "github.com/golobby/config/v3/pkg/feeder"

// DotEnvFeeder reads a .env file into the target struct by `env` tags.
type DotEnvFeeder = feeder.DotEnv

// NewDotEnvFeeder creates a feeder for the given .env file.
func NewDotEnvFeeder(path string) DotEnvFeeder {
	return DotEnvFeeder{Path: path}
}
