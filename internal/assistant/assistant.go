// Package assistant is the scripted business assistant: an ordered table of regular
// expression rules with canned answers, and the chat transcript it appends to.
package assistant

import (
	"errors"
	"math/rand/v2"
	"strings"
)

var ErrEmptyMessage = errors.New("message is empty")

// FallbackRule names replies produced when no rule matched
const FallbackRule = "fallback"

// Picker chooses one of n responses
type Picker func(n int) int

// Reply is the answer and the rule that produced it
type Reply struct {
	Rule string `json:"rule"`
	Text string `json:"text"`
}

// Assistant answers messages from a compiled Knowledge. It holds no per-conversation state
// and is safe for concurrent use.
type Assistant struct {
	knowledge *Knowledge
	pick      Picker
}

// Option configures an Assistant
type Option func(*Assistant)

// WithPicker replaces the random response picker
func WithPicker(p Picker) Option {
	return func(a *Assistant) {
		a.pick = p
	}
}

// New creates an assistant over k
func New(k *Knowledge, opts ...Option) *Assistant {
	a := &Assistant{
		knowledge: k,
		pick:      rand.IntN,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Knowledge exposes the static content for the chat page
func (a *Assistant) Knowledge() *Knowledge {
	return a.knowledge
}

// Respond returns the answer of the first rule matching input
func (a *Assistant) Respond(input string) (Reply, error) {
	text := strings.ToLower(strings.TrimSpace(input))
	if text == "" {
		return Reply{}, ErrEmptyMessage
	}

	for _, rule := range a.knowledge.Rules {
		if !rule.re.MatchString(text) {
			continue
		}
		for _, c := range rule.Cases {
			if c.re.MatchString(text) {
				return Reply{Rule: rule.Name, Text: c.Response}, nil
			}
		}
		return Reply{Rule: rule.Name, Text: a.choose(rule.Responses)}, nil
	}

	return Reply{Rule: FallbackRule, Text: a.knowledge.Fallback}, nil
}

func (a *Assistant) choose(responses []string) string {
	if len(responses) == 1 {
		return responses[0]
	}
	i := a.pick(len(responses))
	if i < 0 || i >= len(responses) {
		i = 0
	}
	return responses[i]
}
