package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestRecurrenceValidate(t *testing.T) {
	cases := []struct {
		name string
		rec  Recurrence
		want []string
	}{
		{"everyday ok", Recurrence{Frequency: FrequencyEveryday}, nil},
		{"missing frequency", Recurrence{}, []string{"frequency is required"}},
		{"unknown frequency", Recurrence{Frequency: "yearly"},
			[]string{"frequency must be one of everyday, alternate, weekly, monthly, custom"}},
		{"alternate ok", Recurrence{Frequency: FrequencyAlternate, AlternateDayStart: strp("today")}, nil},
		{"alternate bad start", Recurrence{Frequency: FrequencyAlternate, AlternateDayStart: strp("yesterday")},
			[]string{"alternate_day_start must be today or tomorrow"}},
		{"weekly ok", Recurrence{Frequency: FrequencyWeekly, WeeklyDay: strp("sunday")}, nil},
		{"weekly missing day", Recurrence{Frequency: FrequencyWeekly},
			[]string{"weekly_day must be a weekday name (monday..sunday)"}},
		{"monthly ok", Recurrence{Frequency: FrequencyMonthly, MonthlyDate: intp(31)}, nil},
		{"monthly zero", Recurrence{Frequency: FrequencyMonthly, MonthlyDate: intp(0)},
			[]string{"monthly_date must be between 1 and 31"}},
		{"custom ok", Recurrence{Frequency: FrequencyCustom,
			CustomWeekDays: datatypes.JSON(`["monday","friday"]`)}, nil},
		{"custom invalid day", Recurrence{Frequency: FrequencyCustom,
			CustomWeekDays: datatypes.JSON(`["monday","funday"]`)},
			[]string{`custom_week_days contains invalid day "funday"`}},
		{"custom not a list", Recurrence{Frequency: FrequencyCustom,
			CustomWeekDays: datatypes.JSON(`"monday"`)},
			[]string{"custom_week_days must be a non-empty list of weekday names"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.rec.validate(nil))
		})
	}
}

func TestRecurrenceNormalize(t *testing.T) {
	rec := Recurrence{
		Frequency:         FrequencyWeekly,
		WeeklyDay:         strp("monday"),
		AlternateDayStart: strp("today"),
		MonthlyDate:       intp(12),
		CustomWeekDays:    datatypes.JSON(`["monday"]`),
	}
	rec.Normalize()
	assert.NotNil(t, rec.WeeklyDay)
	assert.Nil(t, rec.AlternateDayStart)
	assert.Nil(t, rec.MonthlyDate)
	assert.Nil(t, rec.CustomWeekDays)
}

func TestRequesterAllows(t *testing.T) {
	admin := Requester{ID: 1, Role: RoleAdmin}
	owner := Requester{ID: 2, Role: RoleUser}

	assert.True(t, admin.Allows(2), "admin reaches any owner")
	assert.True(t, admin.Allows(1))
	assert.True(t, owner.Allows(2), "owner reaches their own resources")
	assert.False(t, owner.Allows(1))
	assert.False(t, owner.Allows(3))
}
