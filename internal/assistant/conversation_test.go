package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestConversation_Send(t *testing.T) {
	a := newTestAssistant(t, WithPicker(func(int) int { return 1 }))
	c := NewConversation(a.Knowledge().Welcome, now)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Seeded)

	reply, err := c.Send(a, "hello", now)
	require.NoError(t, err)

	assert.Equal(t, SenderAI, reply.Sender)
	assert.Equal(t, "greeting", reply.Rule)
	require.Equal(t, 4, c.Len())
	assert.Equal(t, Message{Sender: SenderUser, Text: "hello", SentAt: now}, c.Messages[2])
	assert.Equal(t, reply, c.Messages[3])
}

func TestConversation_SendEmptyLeavesTranscript(t *testing.T) {
	a := newTestAssistant(t)
	c := NewConversation(a.Knowledge().Welcome, now)

	_, err := c.Send(a, "  ", now)
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Equal(t, 2, c.Len())
}

func TestConversation_TrimKeepsWelcome(t *testing.T) {
	a := newTestAssistant(t)
	c := NewConversation([]string{"welcome"}, now)
	c.Max = 7

	for i := 0; i < 10; i++ {
		_, err := c.Send(a, "question "+string(rune('a'+i)), now)
		require.NoError(t, err)
		assert.LessOrEqual(t, c.Len(), 7)
	}

	assert.Equal(t, "welcome", c.Messages[0].Text)
	assert.Equal(t, "question j", c.Messages[c.Len()-2].Text)
	assert.Equal(t, SenderUser, c.Messages[c.Len()-2].Sender)
}
