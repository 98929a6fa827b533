package feeders

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONFeeder reads a JSON file into the target struct by `json` tags.
type JSONFeeder struct {
	Path string
}

// NewJSONFeeder creates a feeder for the given JSON file.
func NewJSONFeeder(path string) JSONFeeder {
	return JSONFeeder{Path: path}
}

// Feed implements the golobby/config Feeder contract.
func (j JSONFeeder) Feed(structure interface{}) error {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return fmt.Errorf("read json %s: %w", j.Path, err)
	}
	if err := json.Unmarshal(data, structure); err != nil {
		return fmt.Errorf("parse json %s: %w", j.Path, err)
	}
	return nil
}
