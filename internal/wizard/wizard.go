// Package wizard holds the state of the four-step campaign creation form and the
// campaign edit form, and turns them into backend payloads.
package wizard

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prajwalbharadwajbm/referralhub/internal/models"
)

var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidDiscount = errors.New("discount value must be a whole number")
	ErrInvalidOption   = errors.New("invalid option")
	ErrEndBeforeStart  = errors.New("end date is before start date")
)

// Step is the wizard page, 1 through 4
type Step int

const (
	StepBasics Step = iota + 1
	StepReward
	StepMessaging
	StepReview
)

const (
	FirstStep = StepBasics
	LastStep  = StepReview
)

var stepTitles = map[Step]string{
	StepBasics:    "Campaign Basics",
	StepReward:    "Reward Setup",
	StepMessaging: "Messaging",
	StepReview:    "Review",
}

// Title is the label under the step indicator
func (s Step) Title() string {
	return stepTitles[s]
}

func clamp(s Step) Step {
	return min(max(s, FirstStep), LastStep)
}

// Duration is the campaign length choice
type Duration string

const (
	Duration30Days  Duration = "30"
	Duration90Days  Duration = "90"
	DurationCustom  Duration = "custom"
	DurationOngoing Duration = "ongoing"
)

// Valid reports whether d is a known duration
func (d Duration) Valid() bool {
	switch d {
	case Duration30Days, Duration90Days, DurationCustom, DurationOngoing:
		return true
	}
	return false
}

func (d Duration) days() int {
	switch d {
	case Duration30Days:
		return 30
	case Duration90Days:
		return 90
	}
	return 0
}

// Form is everything entered so far
type Form struct {
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Duration        Duration            `json:"duration"`
	StartDate       models.Date         `json:"startDate"`
	EndDate         models.Date         `json:"endDate"`
	Status          bool                `json:"status"`
	AIOptimization  bool                `json:"aiOptimization"`
	Message         string              `json:"message"`
	RewardType      models.RewardType   `json:"rewardType"`
	RewardFormat    models.RewardFormat `json:"rewardFormat"`
	DiscountValue   string              `json:"discountValue"`
	AdditionalNotes []string            `json:"additionalNotes"`
}

// Patch carries the fields a step changes; nil fields are left alone
type Patch struct {
	Name           *string              `json:"name,omitempty"`
	Description    *string              `json:"description,omitempty"`
	Duration       *Duration            `json:"duration,omitempty"`
	StartDate      *models.Date         `json:"startDate,omitempty"`
	EndDate        *models.Date         `json:"endDate,omitempty"`
	Status         *bool                `json:"status,omitempty"`
	AIOptimization *bool                `json:"aiOptimization,omitempty"`
	Message        *string              `json:"message,omitempty"`
	RewardType     *models.RewardType   `json:"rewardType,omitempty"`
	RewardFormat   *models.RewardFormat `json:"rewardFormat,omitempty"`
	DiscountValue  *string              `json:"discountValue,omitempty"`
}

// Wizard is the campaign creation draft kept in the admin's session
type Wizard struct {
	Step Step `json:"step"`
	Form Form `json:"form"`
}

// New starts a draft on step 1 with the recommended defaults
func New(now time.Time) *Wizard {
	return &Wizard{
		Step: FirstStep,
		Form: Form{
			Duration:        Duration30Days,
			StartDate:       models.NewDate(now),
			RewardType:      models.RewardInstant,
			RewardFormat:    models.FormatDiscount,
			DiscountValue:   "20",
			AdditionalNotes: []string{},
		},
	}
}

// Next moves forward one step, stopping at the review step
func (w *Wizard) Next() {
	w.Step = clamp(w.Step + 1)
}

// Back moves back one step, stopping at the first step
func (w *Wizard) Back() {
	w.Step = clamp(w.Step - 1)
}

// Progress is how far along the step indicator is, 0 to 100
func (w *Wizard) Progress() int {
	return int(clamp(w.Step)-FirstStep) * 100 / int(LastStep-FirstStep)
}

// Apply merges a patch into the form. Enumerated fields are checked; free text is not.
func (w *Wizard) Apply(p Patch) error {
	if p.Duration != nil && !p.Duration.Valid() {
		return fmt.Errorf("%w: duration %q", ErrInvalidOption, *p.Duration)
	}
	if p.RewardType != nil && !validRewardType(*p.RewardType) {
		return fmt.Errorf("%w: reward type %q", ErrInvalidOption, *p.RewardType)
	}
	if p.RewardFormat != nil && !validRewardFormat(*p.RewardFormat) {
		return fmt.Errorf("%w: reward format %q", ErrInvalidOption, *p.RewardFormat)
	}

	f := &w.Form
	setIf(&f.Name, p.Name)
	setIf(&f.Description, p.Description)
	setIf(&f.Duration, p.Duration)
	setIf(&f.StartDate, p.StartDate)
	setIf(&f.EndDate, p.EndDate)
	setIf(&f.Status, p.Status)
	setIf(&f.AIOptimization, p.AIOptimization)
	setIf(&f.Message, p.Message)
	setIf(&f.RewardType, p.RewardType)
	setIf(&f.RewardFormat, p.RewardFormat)
	setIf(&f.DiscountValue, p.DiscountValue)
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// ToggleNote adds the note if absent, removes it if present
func (w *Wizard) ToggleNote(note string) {
	notes := w.Form.AdditionalNotes
	if i := slices.Index(notes, note); i >= 0 {
		w.Form.AdditionalNotes = slices.Delete(slices.Clone(notes), i, i+1)
		return
	}
	w.Form.AdditionalNotes = append(slices.Clone(notes), note)
}

// Payload builds the campaign to POST. A missing start date defaults to now.
func (w *Wizard) Payload(now time.Time) (models.Campaign, error) {
	f := w.Form

	required := []struct{ field, value string }{
		{"name", f.Name},
		{"description", f.Description},
		{"message", f.Message},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return models.Campaign{}, fmt.Errorf("%w: %s", ErrMissingField, r.field)
		}
	}

	discount, err := parseDiscount(f.DiscountValue)
	if err != nil {
		return models.Campaign{}, err
	}

	start := f.StartDate
	if !start.IsSet() {
		start = models.NewDate(now)
	}

	var end models.Date
	switch f.Duration {
	case Duration30Days, Duration90Days:
		end = models.NewDate(start.AddDate(0, 0, f.Duration.days()))
	case DurationCustom:
		end = f.EndDate
		if end.IsSet() && end.Before(start.Time) {
			return models.Campaign{}, ErrEndBeforeStart
		}
	case DurationOngoing:
	default:
		return models.Campaign{}, fmt.Errorf("%w: duration %q", ErrInvalidOption, f.Duration)
	}

	status := models.StatusInactive
	if f.Status {
		status = models.StatusActive
	}

	notes := slices.Clone(f.AdditionalNotes)
	if notes == nil {
		notes = []string{}
	}

	return models.Campaign{
		Title:           strings.TrimSpace(f.Name),
		AboutCampaign:   strings.TrimSpace(f.Description),
		StartDate:       start,
		EndDate:         end,
		Status:          status,
		RewardType:      f.RewardType,
		RewardFormat:    f.RewardFormat,
		DiscountValue:   discount,
		CampaignMessage: strings.TrimSpace(f.Message),
		AdditionalNotes: notes,
	}, nil
}

func parseDiscount(s string) (decimal.Decimal, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidDiscount, s)
	}
	return decimal.NewFromInt(int64(n)), nil
}

func validRewardType(t models.RewardType) bool {
	return t == models.RewardInstant || t == models.RewardConversion
}

func validRewardFormat(f models.RewardFormat) bool {
	switch f {
	case models.FormatDiscount, models.FormatCash, models.FormatPercentage, models.FormatFixedAmount:
		return true
	}
	return false
}
