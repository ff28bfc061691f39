package models

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Customer is a registered end user who may refer others. Counts and rewards are computed
// by the backend; every field may be missing.
type Customer struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	ReferralCount int             `json:"referralCount"`
	ReferralCode  string          `json:"referralCode"`
	Status        string          `json:"status"`
	Reward        decimal.Decimal `json:"reward"`
	ReferredBy    string          `json:"referredBy"`
	ReferredUsers []ReferredUser  `json:"referredUsers,omitempty"`
}

// ReferredUser is a friend who signed up with a referrer's code
type ReferredUser struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt Date   `json:"createdAt"`
}

const (
	CustomerActive   = "Active"
	CustomerInactive = "Inactive"
)

// DisplayName returns the name or "Unknown"
func (c *Customer) DisplayName() string {
	return fallback(c.Name, "Unknown")
}

// DisplayEmail returns the email or "N/A"
func (c *Customer) DisplayEmail() string {
	return fallback(c.Email, "N/A")
}

// DisplayStatus returns the status or "Inactive"
func (c *Customer) DisplayStatus() string {
	return fallback(c.Status, CustomerInactive)
}

// Initial returns the first letter of the name, upper-cased, or "?"
func (c *Customer) Initial() string {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}

// CustomerView is a customer row with display fallbacks applied
type CustomerView struct {
	Initial       string `json:"initial"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ReferralCount int    `json:"referralCount"`
	ReferralCode  string `json:"referralCode,omitempty"`
	Status        string `json:"status"`
	Reward        string `json:"reward"`
}

// View applies the display fallbacks
func (c *Customer) View() CustomerView {
	return CustomerView{
		Initial:       c.Initial(),
		Name:          c.DisplayName(),
		Email:         c.DisplayEmail(),
		ReferralCount: c.ReferralCount,
		ReferralCode:  c.ReferralCode,
		Status:        c.DisplayStatus(),
		Reward:        c.Reward.StringFixed(2),
	}
}

// CouponReferrals is what the backend knows about a referral code's use
type CouponReferrals struct {
	ReferralCount int             `json:"referralCount"`
	Reward        decimal.Decimal `json:"reward"`
	ReferredUsers []ReferredUser  `json:"referredUsers"`
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
