package assistant

import (
	_ "embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var defaultKnowledge []byte

// Knowledge is the assistant's rule table plus the static content shown beside the chat
type Knowledge struct {
	Welcome      []string `yaml:"welcome"`
	QuickActions []string `yaml:"quick_actions"`
	Metrics      Metrics  `yaml:"metrics"`
	Fallback     string   `yaml:"fallback"`
	Rules        []Rule   `yaml:"rules"`
}

// Metrics are the sample business series drawn next to the conversation
type Metrics struct {
	Revenue   []int `yaml:"revenue" json:"revenue"`
	Customers []int `yaml:"customers" json:"customers"`
	Referrals []int `yaml:"referrals" json:"referrals"`
}

// Rule answers messages matching Pattern
type Rule struct {
	Name      string   `yaml:"name"`
	Pattern   string   `yaml:"pattern"`
	Cases     []Case   `yaml:"cases,omitempty"`
	Responses []string `yaml:"responses"`

	re *regexp.Regexp
}

// Case is a more specific answer inside a rule
type Case struct {
	Pattern  string `yaml:"pattern"`
	Response string `yaml:"response"`

	re *regexp.Regexp
}

// LoadKnowledge parses and compiles a knowledge document
func LoadKnowledge(data []byte) (*Knowledge, error) {
	var k Knowledge
	if err := yaml.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("parse knowledge: %w", err)
	}
	if err := k.compile(); err != nil {
		return nil, err
	}
	return &k, nil
}

// DefaultKnowledge returns the built-in business knowledge
func DefaultKnowledge() (*Knowledge, error) {
	return LoadKnowledge(defaultKnowledge)
}

func (k *Knowledge) compile() error {
	if k.Fallback == "" {
		return fmt.Errorf("knowledge: fallback response is required")
	}
	for i := range k.Rules {
		r := &k.Rules[i]
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return fmt.Errorf("knowledge: rule %q: %w", r.Name, err)
		}
		r.re = re
		if len(r.Responses) == 0 {
			return fmt.Errorf("knowledge: rule %q has no responses", r.Name)
		}
		for j := range r.Cases {
			c := &r.Cases[j]
			if c.re, err = regexp.Compile(c.Pattern); err != nil {
				return fmt.Errorf("knowledge: rule %q case %q: %w", r.Name, c.Pattern, err)
			}
		}
	}
	return nil
}
