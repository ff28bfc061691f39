package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewRequestContext_GeneratesID(t *testing.T) {
	ctx := NewRequestContext(context.Background(), "", "10.0.0.1:1234")

	info := GetRequestInfo(ctx)
	_, err := uuid.Parse(info.ID)
	assert.NoError(t, err)
	assert.Equal(t, "10.0.0.1:1234", info.RemoteAddr)
	assert.False(t, info.StartTime.IsZero())
	assert.Empty(t, info.SessionID)
}

func TestNewRequestContext_KeepsUpstreamID(t *testing.T) {
	ctx := NewRequestContext(context.Background(), "upstream-42", "")

	assert.Equal(t, "upstream-42", GetRequestID(ctx))
}

func TestGetters_EmptyContext(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetSessionID(ctx))
	assert.Empty(t, GetRemoteAddr(ctx))
	assert.True(t, GetStartTime(ctx).IsZero())
}

func TestWithSessionID(t *testing.T) {
	ctx := WithSessionID(context.Background(), "sess-1")

	assert.Equal(t, "sess-1", GetSessionID(ctx))
	assert.Equal(t, "sess-1", GetRequestInfo(ctx).SessionID)
}
