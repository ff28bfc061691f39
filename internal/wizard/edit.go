package wizard

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/prajwalbharadwajbm/referralhub/internal/models"
)

// EditForm is a fetched campaign laid out for editing: dates as YYYY-MM-DD and the
// status as a checkbox.
type EditForm struct {
	Title           string              `json:"title"`
	AboutCampaign   string              `json:"aboutCampaign"`
	StartDate       string              `json:"startDate"`
	EndDate         string              `json:"endDate"`
	RewardType      models.RewardType   `json:"rewardType"`
	RewardFormat    models.RewardFormat `json:"rewardFormat"`
	DiscountValue   string              `json:"discountValue"`
	CampaignMessage string              `json:"campaignMessage"`
	Active          bool                `json:"active"`
	AdditionalNotes []string            `json:"additionalNotes,omitempty"`
}

// NewEditForm fills the form from a campaign; absent fields become empty strings
func NewEditForm(c models.Campaign) EditForm {
	form := EditForm{
		Title:           c.Title,
		AboutCampaign:   c.AboutCampaign,
		StartDate:       c.StartDate.Day(),
		EndDate:         c.EndDate.Day(),
		RewardType:      c.RewardType,
		RewardFormat:    c.RewardFormat,
		CampaignMessage: c.CampaignMessage,
		Active:          c.IsActive(),
		AdditionalNotes: c.AdditionalNotes,
	}
	if !c.DiscountValue.IsZero() {
		form.DiscountValue = c.DiscountValue.String()
	}
	return form
}

// Campaign turns the edited form into the PUT body
func (f EditForm) Campaign(id string) (models.Campaign, error) {
	if strings.TrimSpace(f.Title) == "" {
		return models.Campaign{}, fmt.Errorf("%w: title", ErrMissingField)
	}

	start, err := models.ParseDate(f.StartDate)
	if err != nil {
		return models.Campaign{}, fmt.Errorf("start date: %w", err)
	}
	end, err := models.ParseDate(f.EndDate)
	if err != nil {
		return models.Campaign{}, fmt.Errorf("end date: %w", err)
	}
	if start.IsSet() && end.IsSet() && end.Before(start.Time) {
		return models.Campaign{}, ErrEndBeforeStart
	}

	var discount decimal.Decimal
	if v := strings.TrimSpace(f.DiscountValue); v != "" {
		discount, err = decimal.NewFromString(v)
		if err != nil || discount.IsNegative() {
			return models.Campaign{}, fmt.Errorf("%w: %q", ErrInvalidDiscount, f.DiscountValue)
		}
	}

	status := models.StatusInactive
	if f.Active {
		status = models.StatusActive
	}

	return models.Campaign{
		ID:              id,
		Title:           strings.TrimSpace(f.Title),
		AboutCampaign:   f.AboutCampaign,
		StartDate:       start,
		EndDate:         end,
		Status:          status,
		RewardType:      f.RewardType,
		RewardFormat:    f.RewardFormat,
		DiscountValue:   discount,
		CampaignMessage: f.CampaignMessage,
		AdditionalNotes: f.AdditionalNotes,
	}, nil
}
