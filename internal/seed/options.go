package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options is a player's settings file.
//
//	name: TestPlayer
//	accessibility: minimal
//	plando_items:
//	  - item: Some Item
//	    location: Some Location
//	    from_pool: true
//	    force: warn
type Options struct {
	Name          string          `yaml:"name"`
	Accessibility string          `yaml:"accessibility"`
	PlandoItems   []DirectiveSpec `yaml:"plando_items"`
}

// LoadOptions reads a player options file.
func LoadOptions(path string) (*Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading options: %w", err)
	}
	return ParseOptions(raw)
}

// ParseOptions decodes player options from YAML.
func ParseOptions(raw []byte) (*Options, error) {
	var o Options
	if err := yaml.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("parsing options: %w", err)
	}
	return &o, nil
}
