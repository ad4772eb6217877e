package scheduling

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/itcomdev/mentoring-app/models"
)

const (
	// WindowDays is how far ahead the bookable grid extends.
	WindowDays = 28
	// SlotGranularity is the fixed length of every generated slot.
	SlotGranularity = 30 * time.Minute
)

// RuleInput is one weekly recurrence entry as submitted by the mentor.
type RuleInput struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`   // "HH:MM"
}

// Validate rejects malformed rules before anything touches the store.
func (r RuleInput) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	start, err := parseClock(r.StartTime)
	if err != nil {
		return ErrInvalidClock
	}
	end, err := parseClock(r.EndTime)
	if err != nil {
		return ErrInvalidClock
	}
	if !end.After(start) {
		return ErrInvalidTimeRange
	}
	return nil
}

func parseClock(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}

// BuildSlotGrid compiles a rule set into concrete slot windows for
// [now, now+windowDays). It is pure: the caller injects "now", and the same
// rules at the same instant always yield the same grid. Occurrences whose
// start already passed are skipped entirely, and a trailing remainder
// shorter than the granularity is discarded.
func BuildSlotGrid(rules []models.AvailabilityRule, now time.Time, windowDays int) []models.AvailabilitySlot {
	var slots []models.AvailabilitySlot

	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	for d := 0; d < windowDays; d++ {
		day := today.AddDate(0, 0, d)
		weekday := models.DayOfWeek(day.Weekday())

		for _, rule := range rules {
			if rule.DayOfWeek != weekday {
				continue
			}

			start, err := parseClock(rule.StartTime)
			if err != nil {
				continue
			}
			end, err := parseClock(rule.EndTime)
			if err != nil {
				continue
			}

			ruleStart := time.Date(day.Year(), day.Month(), day.Day(), start.Hour(), start.Minute(), 0, 0, loc)
			ruleEnd := time.Date(day.Year(), day.Month(), day.Day(), end.Hour(), end.Minute(), 0, 0, loc)

			// Never emit partially-past occurrences.
			if ruleStart.Before(now) {
				continue
			}

			for cur := ruleStart; !cur.Add(SlotGranularity).After(ruleEnd); cur = cur.Add(SlotGranularity) {
				slots = append(slots, models.AvailabilitySlot{
					MentorID:  rule.MentorID,
					StartTime: cur,
					EndTime:   cur.Add(SlotGranularity),
				})
			}
		}
	}

	return slots
}

// Regenerate rebuilds the mentor's future slot grid from the given rules.
// Future unbooked slots are wiped and recreated; booked slots are never
// touched, which is what protects confirmed sessions from rule edits.
// Surviving booked slots keep their start times out of the new grid, or the
// insert would collide with the per-mentor start-time uniqueness.
func Regenerate(tx *gorm.DB, mentorID uint, rules []models.AvailabilityRule, now time.Time) error {
	if err := tx.
		Where("mentor_id = ? AND start_time >= ? AND is_booked = ?", mentorID, now, false).
		Delete(&models.AvailabilitySlot{}).Error; err != nil {
		return fmt.Errorf("delete future unbooked slots: %w", err)
	}

	var booked []models.AvailabilitySlot
	if err := tx.
		Where("mentor_id = ? AND start_time >= ? AND is_booked = ?", mentorID, now, true).
		Find(&booked).Error; err != nil {
		return fmt.Errorf("read booked slots: %w", err)
	}
	taken := make(map[int64]bool, len(booked))
	for _, s := range booked {
		taken[s.StartTime.Unix()] = true
	}

	grid := BuildSlotGrid(rules, now, WindowDays)
	slots := grid[:0]
	for _, s := range grid {
		if taken[s.StartTime.Unix()] {
			continue
		}
		slots = append(slots, s)
	}
	if len(slots) == 0 {
		return nil
	}

	if err := tx.CreateInBatches(slots, 200).Error; err != nil {
		return fmt.Errorf("insert generated slots: %w", err)
	}
	return nil
}

// ReplaceRules swaps the mentor's weekly template wholesale and regenerates
// the grid, all in one transaction.
func ReplaceRules(db *gorm.DB, mentorID uint, inputs []RuleInput, now time.Time) error {
	for _, in := range inputs {
		if err := in.Validate(); err != nil {
			return err
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("mentor_id = ?", mentorID).
			Delete(&models.AvailabilityRule{}).Error; err != nil {
			return fmt.Errorf("clear availability rules: %w", err)
		}

		rules := make([]models.AvailabilityRule, 0, len(inputs))
		for _, in := range inputs {
			rules = append(rules, models.AvailabilityRule{
				MentorID:  mentorID,
				DayOfWeek: models.DayOfWeek(in.DayOfWeek),
				StartTime: in.StartTime,
				EndTime:   in.EndTime,
			})
		}
		if len(rules) > 0 {
			if err := tx.Create(&rules).Error; err != nil {
				return fmt.Errorf("insert availability rules: %w", err)
			}
		}

		return Regenerate(tx, mentorID, rules, now)
	})
}
