package feeders

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// TomlFeeder reads a TOML file into the target struct by `toml` tags.
type TomlFeeder struct {
	Path string
}

// NewTomlFeeder creates a feeder for the given TOML file.
func NewTomlFeeder(path string) TomlFeeder {
	return TomlFeeder{Path: path}
}

// Feed implements the golobby/config Feeder contract.
func (t TomlFeeder) Feed(structure interface{}) error {
	if _, err := toml.DecodeFile(t.Path, structure); err != nil {
		return fmt.Errorf("read toml %s: %w", t.Path, err)
	}
	return nil
}
