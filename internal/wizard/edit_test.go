package wizard

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajwalbharadwajbm/referralhub/internal/models"
)

func TestNewEditForm(t *testing.T) {
	start, err := models.ParseDate("2025-01-01T00:00:00.000Z")
	require.NoError(t, err)

	form := NewEditForm(models.Campaign{
		ID:            "c1",
		Title:         "Summer",
		StartDate:     start,
		Status:        models.StatusActive,
		DiscountValue: decimal.NewFromInt(20),
	})

	assert.Equal(t, "Summer", form.Title)
	assert.Equal(t, "2025-01-01", form.StartDate)
	assert.Equal(t, "", form.EndDate)
	assert.Equal(t, "20", form.DiscountValue)
	assert.True(t, form.Active)

	empty := NewEditForm(models.Campaign{})
	assert.Equal(t, "", empty.DiscountValue)
	assert.False(t, empty.Active)
}

func TestEditForm_Campaign(t *testing.T) {
	form := EditForm{
		Title:         " Summer ",
		StartDate:     "2025-01-01",
		EndDate:       "2025-02-01",
		DiscountValue: "15",
		Active:        false,
	}

	c, err := form.Campaign("c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "Summer", c.Title)
	assert.Equal(t, models.StatusInactive, c.Status)
	assert.Equal(t, "2025-02-01", c.EndDate.Day())
	assert.True(t, c.DiscountValue.Equal(decimal.NewFromInt(15)))
}

func TestEditForm_CampaignErrors(t *testing.T) {
	tests := []struct {
		name    string
		form    EditForm
		wantErr error
	}{
		{name: "no title", form: EditForm{}, wantErr: ErrMissingField},
		{name: "bad discount", form: EditForm{Title: "x", DiscountValue: "lots"}, wantErr: ErrInvalidDiscount},
		{name: "end before start", form: EditForm{Title: "x", StartDate: "2025-02-01", EndDate: "2025-01-01"}, wantErr: ErrEndBeforeStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Campaign("id")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := EditForm{Title: "x", StartDate: "someday"}.Campaign("id")
	assert.Error(t, err)
}
