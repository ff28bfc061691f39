package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajwalbharadwajbm/referralhub/internal/models"
)

func TestFilterCustomers(t *testing.T) {
	list := []models.Customer{
		{Name: "Ada Lovelace", Email: "ada@example.com"},
		{Name: "Grace", Email: "hopper@navy.mil"},
		{Email: "anon@example.com"},
		{Name: "Linus"},
	}

	tests := []struct {
		search string
		want   int
	}{
		{search: "", want: 4},
		{search: "ada", want: 1},
		{search: "EXAMPLE", want: 2},
		{search: "hopper", want: 1},
		{search: "linus", want: 1},
		{search: "unknown", want: 0},
		{search: "n/a", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			assert.Len(t, FilterCustomers(list, tt.search), tt.want)
		})
	}
}

func TestCustomerStats(t *testing.T) {
	seven := make([]models.Customer, 7)

	s := CustomerStats(seven, 5)
	assert.Equal(t, 7, s.Total)
	assert.Equal(t, 2, s.New)
	assert.Equal(t, "40.00%", s.ConversionRate)
	assert.Equal(t, TrendUp, s.Trend)

	s = CustomerStats(seven[:3], 5)
	assert.Equal(t, 0, s.New)
	assert.Equal(t, "0.00%", s.ConversionRate)
	assert.Equal(t, TrendNeutral, s.Trend)

	s = CustomerStats(seven, 0)
	assert.Equal(t, 7, s.New)
	assert.Equal(t, "N/A", s.ConversionRate)
}

func TestReferralOverview(t *testing.T) {
	customers := []models.Customer{
		{Name: "a", ReferralCount: 2},
		{Name: "b", ReferralCount: 5},
		{Name: "c", ReferralCount: 5},
		{Name: "d"},
	}
	campaigns := []models.Campaign{{Status: models.StatusActive}, {Status: models.StatusDraft}}

	o := ReferralOverview(customers, campaigns)
	assert.Equal(t, 12, o.TotalReferrals)
	require.NotNil(t, o.TopReferrer)
	assert.Equal(t, "b", o.TopReferrer.Name)
	assert.Equal(t, 2, o.TotalCampaigns)
	assert.Equal(t, 1, o.ActiveCampaigns)
}

func TestReferralOverview_NoReferrals(t *testing.T) {
	o := ReferralOverview([]models.Customer{{Name: "a"}, {Name: "b"}}, nil)
	assert.Zero(t, o.TotalReferrals)
	assert.Nil(t, o.TopReferrer)
	assert.Nil(t, TopReferrer(nil))
}
