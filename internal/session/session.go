// Package session keeps per-browser state on the server: who is signed in, the campaign
// wizard draft and the assistant transcript. A Session is loaded for every request and
// passed explicitly to the services that read or change it.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prajwalbharadwajbm/referralhub/internal/assistant"
	"github.com/prajwalbharadwajbm/referralhub/internal/wizard"
)

// Role says which side of the product the session is signed in to
type Role string

const (
	RoleAnonymous Role = ""
	RoleAdmin     Role = "admin"
	RoleUser      Role = "user"
)

// Session is the server-side replacement for browser storage
type Session struct {
	ID           string                  `json:"id"`
	Role         Role                    `json:"role"`
	AdminToken   string                  `json:"adminToken,omitempty"`
	AdminEmail   string                  `json:"adminEmail,omitempty"`
	Token        string                  `json:"token,omitempty"`
	UserEmail    string                  `json:"userEmail,omitempty"`
	UserName     string                  `json:"userName,omitempty"`
	CouponCode   string                  `json:"couponCode,omitempty"`
	Wizard       *wizard.Wizard          `json:"wizard,omitempty"`
	Conversation *assistant.Conversation `json:"conversation,omitempty"`
	// Celebrated is the referral count the last celebration email was sent for
	Celebrated int       `json:"celebrated,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	isNew       bool
	ended       bool
	rotatedFrom string
}

// New creates an anonymous session with a fresh ID
func New(now time.Time) *Session {
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
		isNew:     true,
	}
}

// IsAdmin reports whether an admin is signed in
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin && s.AdminToken != ""
}

// IsUser reports whether an end user is signed in
func (s *Session) IsUser() bool {
	return s.Role == RoleUser && s.UserEmail != ""
}

// AdminLogin signs an admin in, replacing any end-user identity
func (s *Session) AdminLogin(token, email string) {
	s.Rotate()
	s.clearIdentity()
	s.Role = RoleAdmin
	s.AdminToken = token
	s.AdminEmail = email
}

// Login signs an end user in, replacing any admin identity
func (s *Session) Login(email, token string) {
	s.Rotate()
	s.clearIdentity()
	s.Role = RoleUser
	s.UserEmail = email
	s.Token = token
}

// SetCoupon records the signed-in user's referral code
func (s *Session) SetCoupon(code string) {
	s.CouponCode = code
}

// BearerToken is the token to present to the backend for this session's role
func (s *Session) BearerToken() string {
	switch s.Role {
	case RoleAdmin:
		return s.AdminToken
	case RoleUser:
		return s.Token
	}
	return ""
}

// Logout clears the identity and every draft. The store entry is deleted after the request.
func (s *Session) Logout() {
	s.clearIdentity()
	s.Wizard = nil
	s.Conversation = nil
	s.ended = true
}

// Rotate gives the session a fresh ID. An ID that was already stored is remembered so
// its entry can be deleted after the request.
func (s *Session) Rotate() {
	if !s.isNew && s.rotatedFrom == "" {
		s.rotatedFrom = s.ID
	}
	s.ID = uuid.New().String()
}

// RotatedFrom returns the stored ID the session had before Rotate, or ""
func (s *Session) RotatedFrom() string {
	return s.rotatedFrom
}

// Ended reports whether Logout was called during this request
func (s *Session) Ended() bool {
	return s.ended
}

// IsNew reports whether the session was created during this request
func (s *Session) IsNew() bool {
	return s.isNew
}

// IsEmpty reports whether the session carries nothing worth persisting
func (s *Session) IsEmpty() bool {
	return s.Role == RoleAnonymous && s.Wizard == nil && s.Conversation == nil
}

// Touch records activity
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now
}

func (s *Session) clearIdentity() {
	s.Role = RoleAnonymous
	s.AdminToken = ""
	s.AdminEmail = ""
	s.Token = ""
	s.UserEmail = ""
	s.UserName = ""
	s.CouponCode = ""
	s.Celebrated = 0
}

type contextKey struct{}

// NewContext returns a context carrying s
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by NewContext
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
