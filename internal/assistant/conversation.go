package assistant

import (
	"slices"
	"time"
)

// Sender is who wrote a message
type Sender string

const (
	SenderAI   Sender = "ai"
	SenderUser Sender = "user"
)

// DefaultMaxMessages bounds a transcript kept in a session
const DefaultMaxMessages = 100

// Message is one transcript entry
type Message struct {
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	Rule   string    `json:"rule,omitempty"`
	SentAt time.Time `json:"sentAt"`
}

// Conversation is a chat transcript. The welcome messages it starts with are never trimmed.
type Conversation struct {
	Messages []Message `json:"messages"`
	Seeded   int       `json:"seeded"`
	Max      int       `json:"max"`
}

// NewConversation starts a transcript with the welcome messages
func NewConversation(welcome []string, now time.Time) *Conversation {
	c := &Conversation{Max: DefaultMaxMessages}
	for _, text := range welcome {
		c.Messages = append(c.Messages, Message{Sender: SenderAI, Text: text, SentAt: now})
	}
	c.Seeded = len(c.Messages)
	return c
}

// Send appends the user's message and the assistant's reply, returning the reply
func (c *Conversation) Send(a *Assistant, text string, now time.Time) (Message, error) {
	reply, err := a.Respond(text)
	if err != nil {
		return Message{}, err
	}

	answer := Message{Sender: SenderAI, Text: reply.Text, Rule: reply.Rule, SentAt: now}
	c.Messages = append(c.Messages,
		Message{Sender: SenderUser, Text: text, SentAt: now},
		answer,
	)
	c.trim()
	return answer, nil
}

// trim drops the oldest exchanged messages once over Max
func (c *Conversation) trim() {
	limit := c.Max
	if limit <= c.Seeded {
		limit = DefaultMaxMessages
	}
	if over := len(c.Messages) - limit; over > 0 {
		c.Messages = slices.Delete(c.Messages, c.Seeded, c.Seeded+over)
	}
}

// Len is the number of messages in the transcript
func (c *Conversation) Len() int {
	return len(c.Messages)
}
