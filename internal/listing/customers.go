package listing

import (
	"fmt"
	"strings"

	"github.com/prajwalbharadwajbm/referralhub/internal/models"
)

// FilterCustomers keeps customers whose name or email contains search, ignoring case.
// A blank search keeps everyone.
func FilterCustomers(list []models.Customer, search string) []models.Customer {
	needle := fold(strings.TrimSpace(search))

	out := make([]models.Customer, 0, len(list))
	for _, c := range list {
		if needle != "" && !containsFold(c.Name, needle) && !containsFold(c.Email, needle) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Trend is the direction of a stat card arrow
type Trend string

const (
	TrendUp      Trend = "up"
	TrendNeutral Trend = "neutral"
)

// Stats is the customer page header
type Stats struct {
	Total          int    `json:"totalCustomers"`
	New            int    `json:"newCustomers"`
	ConversionRate string `json:"conversionRate"`
	Trend          Trend  `json:"trend"`
}

// CustomerStats compares the filtered count against the previous period's count
func CustomerStats(filtered []models.Customer, previousCount int) Stats {
	total := len(filtered)
	s := Stats{
		Total:          total,
		New:            max(0, total-previousCount),
		ConversionRate: "N/A",
		Trend:          TrendNeutral,
	}
	if previousCount > 0 {
		s.ConversionRate = fmt.Sprintf("%.2f%%", float64(s.New)/float64(previousCount)*100)
	}
	if s.New > 0 {
		s.Trend = TrendUp
	}
	return s
}

// Overview is the admin dashboard summary
type Overview struct {
	TotalReferrals  int              `json:"totalReferrals"`
	TopReferrer     *models.Customer `json:"topReferrer"`
	TotalCampaigns  int              `json:"totalCampaigns"`
	ActiveCampaigns int              `json:"activeCampaigns"`
}

// ReferralOverview sums referrals and picks the referrer with the strictly greatest count.
// When nobody has referred anyone there is no top referrer.
func ReferralOverview(customers []models.Customer, campaigns []models.Campaign) Overview {
	var o Overview
	best := 0
	for i := range customers {
		count := customers[i].ReferralCount
		o.TotalReferrals += count
		if count > best {
			best = count
			top := customers[i]
			o.TopReferrer = &top
		}
	}

	summary := CampaignSummary(campaigns)
	o.TotalCampaigns = summary.Total
	o.ActiveCampaigns = summary.Active
	return o
}

// TopReferrer returns the customer with the most referrals, or nil
func TopReferrer(customers []models.Customer) *models.Customer {
	return ReferralOverview(customers, nil).TopReferrer
}
