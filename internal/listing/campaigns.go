// Package listing filters, sorts and summarizes lists the backend has already returned.
package listing

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/prajwalbharadwajbm/referralhub/internal/models"
)

// SortOrder selects the comparator used after filtering
type SortOrder string

const (
	SortDate   SortOrder = "date"
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortName   SortOrder = "name"
)

// StatusAll disables the status filter
const StatusAll = "all"

// CampaignQuery is what the campaign list view sends
type CampaignQuery struct {
	Search string    `json:"search"`
	Status string    `json:"status"`
	Sort   SortOrder `json:"sort"`
}

// Normalize fills defaults: any status, newest first
func (q *CampaignQuery) Normalize() {
	q.Status = strings.ToLower(strings.TrimSpace(q.Status))
	q.Sort = SortOrder(strings.ToLower(strings.TrimSpace(string(q.Sort))))
	if q.Sort == "" {
		q.Sort = SortNewest
	}
}

// fold applies Unicode case folding. Casers are stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(fold(haystack), needle)
}

// FilterCampaigns returns the campaigns matching the query in the requested order.
// The input slice is not modified.
func FilterCampaigns(list []models.Campaign, q CampaignQuery) []models.Campaign {
	q.Normalize()
	needle := fold(strings.TrimSpace(q.Search))

	out := make([]models.Campaign, 0, len(list))
	for _, c := range list {
		if needle != "" && !containsFold(c.Title, needle) && !containsFold(c.AboutCampaign, needle) {
			continue
		}
		if q.Status != "" && q.Status != StatusAll && string(c.Status) != q.Status {
			continue
		}
		out = append(out, c)
	}

	sortCampaigns(out, q.Sort)
	return out
}

func sortCampaigns(list []models.Campaign, order SortOrder) {
	switch order {
	case SortDate, SortNewest:
		slices.SortStableFunc(list, func(a, b models.Campaign) int {
			return b.StartDate.Compare(a.StartDate.Time)
		})
	case SortOldest:
		slices.SortStableFunc(list, func(a, b models.Campaign) int {
			return a.StartDate.Compare(b.StartDate.Time)
		})
	case SortName:
		// a Collator keeps internal buffers, so one per sort
		col := collate.New(language.English)
		slices.SortStableFunc(list, func(a, b models.Campaign) int {
			return col.CompareString(a.Title, b.Title)
		})
	}
}

// Summary counts campaigns for the list header and dashboard cards
type Summary struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// CampaignSummary counts all and active campaigns
func CampaignSummary(list []models.Campaign) Summary {
	s := Summary{Total: len(list)}
	for i := range list {
		if list[i].IsActive() {
			s.Active++
		}
	}
	return s
}
