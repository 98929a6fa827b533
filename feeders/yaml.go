package feeders

import (
	"fmt"

	"github.com/golobby/config/v3/pkg/feeder"
	"gopkg.in/yaml.v3"
)

// YamlFeeder reads a YAML file into the target struct by `yaml` tags.
type YamlFeeder struct {
	feeder.Yaml
}

// NewYamlFeeder creates a feeder for the given YAML file.
func NewYamlFeeder(path string) YamlFeeder {
	return YamlFeeder{feeder.Yaml{Path: path}}
}

// FeedKey extracts one top-level key of the file into the target, so
// several configurations can share a single document.
func (y YamlFeeder) FeedKey(key string, target interface{}) error {
	var all map[string]yaml.Node
	if err := y.Feed(&all); err != nil {
		return fmt.Errorf("read yaml: %w", err)
	}
	node, ok := all[key]
	if !ok {
		return nil
	}
	if err := node.Decode(target); err != nil {
		return fmt.Errorf("decode yaml key %q: %w", key, err)
	}
	return nil
}
