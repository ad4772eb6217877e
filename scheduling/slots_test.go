package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itcomdev/mentoring-app/models"
)

// 2025-03-03 is a Monday.
func monday(hour, min int) time.Time {
	return time.Date(2025, time.March, 3, hour, min, 0, 0, time.UTC)
}

func mondayRule(start, end string) models.AvailabilityRule {
	return models.AvailabilityRule{
		MentorID:  1,
		DayOfWeek: models.Monday,
		StartTime: start,
		EndTime:   end,
	}
}

func TestRuleInputValidate(t *testing.T) {
	tests := []struct {
		name string
		in   RuleInput
		want error
	}{
		{"valid", RuleInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}, nil},
		{"day too large", RuleInput{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"}, ErrInvalidDayOfWeek},
		{"day negative", RuleInput{DayOfWeek: -1, StartTime: "09:00", EndTime: "17:00"}, ErrInvalidDayOfWeek},
		{"bad start clock", RuleInput{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00"}, ErrInvalidClock},
		{"bad end clock", RuleInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:00"}, ErrInvalidClock},
		{"end before start", RuleInput{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"}, ErrInvalidTimeRange},
		{"end equals start", RuleInput{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}, ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestBuildSlotGridEmitsThirtyMinuteSlots(t *testing.T) {
	rules := []models.AvailabilityRule{mondayRule("09:00", "11:00")}
	now := monday(8, 0)

	slots := BuildSlotGrid(rules, now, 1)

	require.Len(t, slots, 4)
	assert.Equal(t, monday(9, 0), slots[0].StartTime)
	assert.Equal(t, monday(9, 30), slots[0].EndTime)
	assert.Equal(t, monday(10, 30), slots[3].StartTime)
	assert.Equal(t, monday(11, 0), slots[3].EndTime)
	for _, s := range slots {
		assert.Equal(t, SlotGranularity, s.EndTime.Sub(s.StartTime))
		assert.Equal(t, uint(1), s.MentorID)
	}
}

func TestBuildSlotGridDiscardsTrailingRemainder(t *testing.T) {
	rules := []models.AvailabilityRule{mondayRule("09:00", "10:15")}
	now := monday(0, 0)

	slots := BuildSlotGrid(rules, now, 1)

	require.Len(t, slots, 2)
	assert.Equal(t, monday(9, 30), slots[1].StartTime)
	assert.Equal(t, monday(10, 0), slots[1].EndTime)
}

func TestBuildSlotGridSkipsPartiallyPastOccurrence(t *testing.T) {
	rules := []models.AvailabilityRule{mondayRule("09:00", "11:00")}
	now := monday(9, 10)

	// The next Monday is day 7, outside a 7-day window.
	slots := BuildSlotGrid(rules, now, 7)
	assert.Empty(t, slots)

	// Widening the window by one day reaches the next Monday's occurrence.
	slots = BuildSlotGrid(rules, now, 8)
	require.Len(t, slots, 4)
	assert.Equal(t, monday(9, 0).AddDate(0, 0, 7), slots[0].StartTime)
}

func TestBuildSlotGridCoversFullWindow(t *testing.T) {
	rules := []models.AvailabilityRule{mondayRule("09:00", "17:00")}
	now := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC) // Sunday

	slots := BuildSlotGrid(rules, now, WindowDays)

	// Four Mondays in 28 days, sixteen half-hour slots per day.
	assert.Len(t, slots, 4*16)
}

func TestBuildSlotGridIgnoresOtherWeekdays(t *testing.T) {
	rules := []models.AvailabilityRule{
		{MentorID: 1, DayOfWeek: models.Tuesday, StartTime: "09:00", EndTime: "10:00"},
	}
	now := monday(0, 0)

	slots := BuildSlotGrid(rules, now, 1)

	assert.Empty(t, slots)
}

func TestBuildSlotGridMultipleRulesSameDay(t *testing.T) {
	rules := []models.AvailabilityRule{
		mondayRule("09:00", "10:00"),
		mondayRule("14:00", "15:30"),
	}
	now := monday(0, 0)

	slots := BuildSlotGrid(rules, now, 1)

	require.Len(t, slots, 5)
	assert.Equal(t, monday(9, 0), slots[0].StartTime)
	assert.Equal(t, monday(14, 0), slots[2].StartTime)
	assert.Equal(t, monday(15, 0), slots[4].StartTime)
}

func TestBuildSlotGridIsDeterministic(t *testing.T) {
	rules := []models.AvailabilityRule{
		mondayRule("09:00", "12:00"),
		{MentorID: 1, DayOfWeek: models.Friday, StartTime: "13:00", EndTime: "18:00"},
	}
	now := monday(7, 45)

	first := BuildSlotGrid(rules, now, WindowDays)
	second := BuildSlotGrid(rules, now, WindowDays)

	assert.Equal(t, first, second)
}

func TestBuildSlotGridEmptyRules(t *testing.T) {
	assert.Empty(t, BuildSlotGrid(nil, monday(0, 0), WindowDays))
}
