package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used by HTML date inputs and edit forms
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	DateLayout,
}

// Date is a point in time as the backend sends it: ISO timestamps, bare dates or null.
// The zero value means "not set".
type Date struct {
	time.Time
}

// NewDate wraps t as a Date
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// ParseDate accepts any of the layouts the backend is known to emit
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

// IsSet reports whether the date carries a value
func (d Date) IsSet() bool {
	return !d.Time.IsZero()
}

// Day returns the date in YYYY-MM-DD form, or "" when unset
func (d Date) Day() string {
	if !d.IsSet() {
		return ""
	}
	return d.Time.Format(DateLayout)
}

// Ptr returns nil for an unset date, which serializes as JSON null
func (d Date) Ptr() *Date {
	if !d.IsSet() {
		return nil
	}
	return &d
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
