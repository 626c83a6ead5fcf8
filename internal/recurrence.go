package internal

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// Frequency is the tag of the recurrence union. Exactly the sub-fields owned
// by the chosen tag are meaningful; Normalize clears the rest before storage.
type Frequency string

const (
	FrequencyEveryday  Frequency = "everyday"
	FrequencyAlternate Frequency = "alternate"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyCustom    Frequency = "custom"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyEveryday, FrequencyAlternate, FrequencyWeekly, FrequencyMonthly, FrequencyCustom:
		return true
	}
	return false
}

var weekDays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// Recurrence describes how often a subscription delivers. Stored as flat
// nullable columns; the JSON API carries the same flat shape.
type Recurrence struct {
	Frequency         Frequency      `gorm:"type:varchar(16);not null" json:"frequency"`
	AlternateDayStart *string        `gorm:"type:varchar(16)" json:"alternate_day_start"`
	WeeklyDay         *string        `gorm:"type:varchar(16)" json:"weekly_day"`
	MonthlyDate       *int           `json:"monthly_date"`
	CustomWeekDays    datatypes.JSON `json:"custom_week_days"`
}

// validate appends per-field messages; it never fails fast.
func (r *Recurrence) validate(errs []string) []string {
	if r.Frequency == "" {
		return append(errs, "frequency is required")
	}
	if !r.Frequency.Valid() {
		return append(errs, "frequency must be one of everyday, alternate, weekly, monthly, custom")
	}
	switch r.Frequency {
	case FrequencyAlternate:
		if r.AlternateDayStart == nil || (*r.AlternateDayStart != "today" && *r.AlternateDayStart != "tomorrow") {
			errs = append(errs, "alternate_day_start must be today or tomorrow")
		}
	case FrequencyWeekly:
		if r.WeeklyDay == nil || !weekDays[*r.WeeklyDay] {
			errs = append(errs, "weekly_day must be a weekday name (monday..sunday)")
		}
	case FrequencyMonthly:
		if r.MonthlyDate == nil || *r.MonthlyDate < 1 || *r.MonthlyDate > 31 {
			errs = append(errs, "monthly_date must be between 1 and 31")
		}
	case FrequencyCustom:
		days, err := r.customDays()
		if err != nil || len(days) == 0 {
			errs = append(errs, "custom_week_days must be a non-empty list of weekday names")
			break
		}
		for _, d := range days {
			if !weekDays[d] {
				errs = append(errs, fmt.Sprintf("custom_week_days contains invalid day %q", d))
			}
		}
	}
	return errs
}

// Normalize clears every sub-field the chosen frequency does not own, so a
// weekly subscription can never carry a stale monthly_date and so on.
func (r *Recurrence) Normalize() {
	if r.Frequency != FrequencyAlternate {
		r.AlternateDayStart = nil
	}
	if r.Frequency != FrequencyWeekly {
		r.WeeklyDay = nil
	}
	if r.Frequency != FrequencyMonthly {
		r.MonthlyDate = nil
	}
	if r.Frequency != FrequencyCustom {
		r.CustomWeekDays = nil
	}
}

func (r *Recurrence) customDays() ([]string, error) {
	if len(r.CustomWeekDays) == 0 {
		return nil, nil
	}
	var days []string
	if err := json.Unmarshal(r.CustomWeekDays, &days); err != nil {
		return nil, err
	}
	return days, nil
}
