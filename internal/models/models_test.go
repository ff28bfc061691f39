package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantSet bool
		wantErr bool
	}{
		{name: "rfc3339", input: `"2025-01-01T00:00:00Z"`, want: "2025-01-01", wantSet: true},
		{name: "fractional seconds", input: `"2025-06-01T10:30:00.000Z"`, want: "2025-06-01", wantSet: true},
		{name: "bare date", input: `"2025-03-15"`, want: "2025-03-15", wantSet: true},
		{name: "null", input: `null`},
		{name: "empty string", input: `""`},
		{name: "garbage", input: `"next tuesday"`, wantErr: true},
		{name: "number", input: `12`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSet, d.IsSet())
			assert.Equal(t, tt.want, d.Day())
		})
	}
}

func TestDate_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = json.Marshal(NewDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-01T00:00:00Z"`, string(data))

	assert.Nil(t, Date{}.Ptr())
}

func TestCampaign_JSON(t *testing.T) {
	raw := `{
		"_id": "c1",
		"title": "Summer",
		"aboutCampaign": "Hot deals",
		"startDate": "2025-01-01T00:00:00.000Z",
		"endDate": null,
		"status": "active",
		"rewardType": "instant",
		"rewardFormat": "discount",
		"discountValue": "20",
		"campaignMessage": "Use code SUMMER20",
		"additionalNotes": ["Limited time offer"]
	}`

	var c Campaign
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.Equal(t, "c1", c.ID)
	assert.True(t, c.IsActive())
	assert.False(t, c.EndDate.IsSet())
	assert.True(t, c.DiscountValue.Equal(decimal.NewFromInt(20)))

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"discountValue":20`)
	assert.Contains(t, string(out), `"endDate":null`)
}

func TestCampaign_Helpers(t *testing.T) {
	tests := []struct {
		name     string
		campaign Campaign
		summary  string
		coupon   string
		label    string
	}{
		{
			name:     "percentage",
			campaign: Campaign{RewardFormat: FormatPercentage, DiscountValue: decimal.NewFromInt(20), CampaignMessage: "Get 20% off with code SAVE20", Status: StatusActive},
			summary:  "20% off",
			coupon:   "SAVE20",
			label:    "Active",
		},
		{
			name:     "fixed amount",
			campaign: Campaign{RewardFormat: FormatFixedAmount, DiscountValue: decimal.NewFromInt(25), Status: StatusDraft},
			summary:  "$25 off",
			coupon:   "",
			label:    "Inactive",
		},
		{
			name:     "legacy discount format",
			campaign: Campaign{RewardFormat: FormatDiscount, DiscountValue: decimal.NewFromInt(15), CampaignMessage: "  CODE15  "},
			summary:  "15% off",
			coupon:   "CODE15",
			label:    "Inactive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.summary, tt.campaign.RewardSummary())
			assert.Equal(t, tt.coupon, tt.campaign.CouponCode())
			assert.Equal(t, tt.label, tt.campaign.StatusLabel())
		})
	}
}

func TestCustomer_View(t *testing.T) {
	empty := Customer{}
	v := empty.View()
	assert.Equal(t, "?", v.Initial)
	assert.Equal(t, "Unknown", v.Name)
	assert.Equal(t, "N/A", v.Email)
	assert.Equal(t, "Inactive", v.Status)
	assert.Equal(t, 0, v.ReferralCount)
	assert.Equal(t, "0.00", v.Reward)

	c := Customer{Name: "ada", Email: "ada@example.com", Status: CustomerActive, ReferralCount: 3, Reward: decimal.NewFromFloat(12.5)}
	v = c.View()
	assert.Equal(t, "A", v.Initial)
	assert.Equal(t, "ada", v.Name)
	assert.Equal(t, "Active", v.Status)
	assert.Equal(t, "12.50", v.Reward)
}

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  LoginRequest
		want error
	}{
		{name: "ok", req: LoginRequest{Email: "a@b.c", Password: "pw"}},
		{name: "empty password", req: LoginRequest{Email: "a@b.c"}, want: ErrMissingPassword},
		{name: "blank email", req: LoginRequest{Email: "  ", Password: "pw"}, want: ErrMissingEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.req.Validate(), tt.want)
		})
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	assert.ErrorIs(t, (&RegisterRequest{Email: "a@b.c", Password: "pw"}).Validate(), ErrMissingName)
	assert.ErrorIs(t, (&RegisterRequest{Name: "A", Password: "pw"}).Validate(), ErrMissingEmail)
	assert.ErrorIs(t, (&RegisterRequest{Name: "A", Email: "a@b.c"}).Validate(), ErrMissingPassword)
	assert.NoError(t, (&RegisterRequest{Name: "A", Email: "a@b.c", Password: "pw"}).Validate())
}
