package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajwalbharadwajbm/referralhub/internal/assistant"
	"github.com/prajwalbharadwajbm/referralhub/internal/wizard"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	s := New(now)

	assert.NotEmpty(t, s.ID)
	assert.True(t, s.IsNew())
	assert.True(t, s.IsEmpty())
	assert.False(t, s.IsAdmin())
	assert.False(t, s.IsUser())
	assert.Empty(t, s.BearerToken())
	assert.NotEqual(t, s.ID, New(now).ID)
}

func TestSession_AdminLogin(t *testing.T) {
	s := New(now)
	s.Login("user@example.com", "user-token")
	s.AdminLogin("admin-token", "admin@example.com")

	assert.True(t, s.IsAdmin())
	assert.False(t, s.IsUser())
	assert.Empty(t, s.UserEmail)
	assert.Equal(t, "admin-token", s.BearerToken())
}

func TestSession_LoginRotatesID(t *testing.T) {
	fresh := New(now)
	id := fresh.ID
	fresh.Login("user@example.com", "user-token")
	assert.NotEqual(t, id, fresh.ID)
	assert.Empty(t, fresh.RotatedFrom(), "a new session was never stored")

	var stored Session
	stored.ID = "7f0c2a52-3f4e-4f7b-9d55-1b1f6a0f6b11"
	stored.AdminLogin("admin-token", "admin@example.com")
	first := stored.ID
	stored.Login("user@example.com", "user-token")

	assert.NotEqual(t, first, stored.ID)
	assert.Equal(t, "7f0c2a52-3f4e-4f7b-9d55-1b1f6a0f6b11", stored.RotatedFrom())
}

func TestSession_UserLoginAndCoupon(t *testing.T) {
	s := New(now)
	s.Login("user@example.com", "user-token")
	s.SetCoupon("245cfcca")

	assert.True(t, s.IsUser())
	assert.Equal(t, "user-token", s.BearerToken())
	assert.Equal(t, "245cfcca", s.CouponCode)
	assert.False(t, s.IsEmpty())
}

func TestSession_Logout(t *testing.T) {
	s := New(now)
	s.Login("user@example.com", "user-token")
	s.SetCoupon("245cfcca")
	s.Celebrated = 3
	s.Wizard = wizard.New(now)
	s.Conversation = assistant.NewConversation([]string{"hi"}, now)

	s.Logout()

	assert.True(t, s.Ended())
	assert.Empty(t, s.UserEmail)
	assert.Empty(t, s.CouponCode)
	assert.Empty(t, s.Token)
	assert.Zero(t, s.Celebrated)
	assert.Nil(t, s.Wizard)
	assert.Nil(t, s.Conversation)
	assert.False(t, s.IsUser())
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := New(now)
	got, ok := FromContext(NewContext(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = FromContext(NewContext(context.Background(), nil))
	assert.False(t, ok)
}
