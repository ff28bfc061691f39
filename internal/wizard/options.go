package wizard

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed options.yaml
var defaultOptions []byte

// Options are the choices the wizard offers on each step
type Options struct {
	Durations []DurationOption `yaml:"durations" json:"durations"`
	Discounts []DiscountOption `yaml:"discounts" json:"discounts"`
	Messages  []string         `yaml:"messages" json:"messages"`
	Notes     []string         `yaml:"notes" json:"notes"`
}

// DurationOption is one campaign length card
type DurationOption struct {
	Value Duration `yaml:"value" json:"value"`
	Label string   `yaml:"label" json:"label"`
	Hint  string   `yaml:"hint,omitempty" json:"hint,omitempty"`
}

// DiscountOption is a suggested discount with a short rationale
type DiscountOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
	Note  string `yaml:"note" json:"note"`
}

// LoadOptions parses an options document
func LoadOptions(data []byte) (*Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parse wizard options: %w", err)
	}
	for _, d := range opts.Durations {
		if !d.Value.Valid() {
			return nil, fmt.Errorf("parse wizard options: unknown duration %q", d.Value)
		}
	}
	return &opts, nil
}

// DefaultOptions returns the built-in options
func DefaultOptions() (*Options, error) {
	return LoadOptions(defaultOptions)
}
