package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// the backend stores discountValue as a JSON number
	decimal.MarshalJSONWithoutQuotes = true
}

// Campaign is a referral promotion managed by an admin: reward terms, duration and the
// message that referrers share with friends.
type Campaign struct {
	ID              string          `json:"_id,omitempty"`
	Title           string          `json:"title"`
	AboutCampaign   string          `json:"aboutCampaign"`
	StartDate       Date            `json:"startDate"`
	EndDate         Date            `json:"endDate"`
	Status          CampaignStatus  `json:"status"`
	RewardType      RewardType      `json:"rewardType"`
	RewardFormat    RewardFormat    `json:"rewardFormat"`
	DiscountValue   decimal.Decimal `json:"discountValue"`
	CampaignMessage string          `json:"campaignMessage"`
	AdditionalNotes []string        `json:"additionalNotes"`
}

// CampaignStatus represents the status of a campaign
type CampaignStatus string

// enum values for CampaignStatus
const (
	StatusActive   CampaignStatus = "active"
	StatusInactive CampaignStatus = "inactive"
	StatusDraft    CampaignStatus = "draft"
)

// RewardType says when the referrer is rewarded
type RewardType string

const (
	RewardInstant    RewardType = "instant"
	RewardConversion RewardType = "conversion"
)

// RewardFormat says what the reward is. The backend has used both vocabularies over time.
type RewardFormat string

const (
	FormatPercentage  RewardFormat = "Percentage"
	FormatFixedAmount RewardFormat = "Fixed Amount"
	FormatDiscount    RewardFormat = "discount"
	FormatCash        RewardFormat = "cash"
)

// IsPercentage reports whether the discount value is a percentage rather than an amount
func (f RewardFormat) IsPercentage() bool {
	return f == FormatPercentage || f == FormatDiscount
}

// IsActive returns true if campaign is active
func (c *Campaign) IsActive() bool {
	return c.Status == StatusActive
}

// StatusLabel is the capitalized status shown in lists
func (c *Campaign) StatusLabel() string {
	if c.IsActive() {
		return "Active"
	}
	return "Inactive"
}

// RewardSummary renders the discount, e.g. "20% off" or "$25 off"
func (c *Campaign) RewardSummary() string {
	if c.RewardFormat.IsPercentage() {
		return c.DiscountValue.String() + "% off"
	}
	return "$" + c.DiscountValue.String() + " off"
}

// CouponCode is the last word of the campaign message, where admins put the code to copy
func (c *Campaign) CouponCode() string {
	fields := strings.Fields(c.CampaignMessage)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
