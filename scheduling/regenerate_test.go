package scheduling

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/itcomdev/mentoring-app/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.AvailabilityRule{},
		&models.AvailabilitySlot{},
	))

	require.NoError(t, db.Exec(
		"TRUNCATE availability_rules, availability_slots RESTART IDENTITY CASCADE",
	).Error)

	return db
}

func TestReplaceRulesRejectsInvalidInputBeforeWriting(t *testing.T) {
	db := testDB(t)

	err := ReplaceRules(db, 1, []RuleInput{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: 9, StartTime: "09:00", EndTime: "17:00"},
	}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidDayOfWeek)

	var count int64
	require.NoError(t, db.Model(&models.AvailabilityRule{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReplaceRulesSwapsTemplateAndRegenerates(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	require.NoError(t, ReplaceRules(db, 1, []RuleInput{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
	}, now))

	var firstGrid []models.AvailabilitySlot
	require.NoError(t, db.Where("mentor_id = ?", 1).Find(&firstGrid).Error)
	assert.NotEmpty(t, firstGrid)

	require.NoError(t, ReplaceRules(db, 1, []RuleInput{
		{DayOfWeek: 2, StartTime: "14:00", EndTime: "16:00"},
	}, now))

	var rules []models.AvailabilityRule
	require.NoError(t, db.Where("mentor_id = ?", 1).Find(&rules).Error)
	require.Len(t, rules, 1)
	assert.Equal(t, models.Tuesday, rules[0].DayOfWeek)

	var slots []models.AvailabilitySlot
	require.NoError(t, db.Where("mentor_id = ?", 1).Find(&slots).Error)
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.Equal(t, time.Tuesday, s.StartTime.Weekday())
	}
}

func TestRegenerateNeverTouchesBookedSlots(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	require.NoError(t, ReplaceRules(db, 1, []RuleInput{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
	}, now))

	// Book the first generated slot by hand.
	var booked models.AvailabilitySlot
	require.NoError(t, db.Where("mentor_id = ?", 1).Order("start_time ASC").First(&booked).Error)
	bookingID := "11111111-1111-1111-1111-111111111111"
	require.NoError(t, db.Model(&booked).Updates(map[string]interface{}{
		"is_booked":  true,
		"booking_id": bookingID,
	}).Error)

	// Wiping the template would orphan the session if booked slots were
	// deleted along with the rest of the grid.
	require.NoError(t, ReplaceRules(db, 1, nil, now))

	var survivor models.AvailabilitySlot
	require.NoError(t, db.First(&survivor, "id = ?", booked.ID).Error)
	assert.True(t, survivor.IsBooked)
	require.NotNil(t, survivor.BookingID)
	assert.Equal(t, bookingID, *survivor.BookingID)

	var unbooked int64
	require.NoError(t, db.Model(&models.AvailabilitySlot{}).
		Where("mentor_id = ? AND is_booked = ?", 1, false).
		Count(&unbooked).Error)
	assert.Zero(t, unbooked)
}

// Re-submitting a template that still covers a booked time must not collide
// with the surviving booked slot's (mentor, start_time) uniqueness.
func TestReplaceRulesAfterBookingKeepsBookedTime(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	rules := []RuleInput{{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"}}
	require.NoError(t, ReplaceRules(db, 1, rules, now))

	var booked models.AvailabilitySlot
	require.NoError(t, db.Where("mentor_id = ?", 1).Order("start_time ASC").First(&booked).Error)
	bookingID := "22222222-2222-2222-2222-222222222222"
	require.NoError(t, db.Model(&booked).Updates(map[string]interface{}{
		"is_booked":  true,
		"booking_id": bookingID,
	}).Error)

	var before int64
	require.NoError(t, db.Model(&models.AvailabilitySlot{}).
		Where("mentor_id = ?", 1).Count(&before).Error)

	// Identical template, so every booked time is re-covered.
	require.NoError(t, ReplaceRules(db, 1, rules, now))

	var after int64
	require.NoError(t, db.Model(&models.AvailabilitySlot{}).
		Where("mentor_id = ?", 1).Count(&after).Error)
	assert.Equal(t, before, after)

	var survivor models.AvailabilitySlot
	require.NoError(t, db.First(&survivor, "id = ?", booked.ID).Error)
	assert.True(t, survivor.IsBooked)
	require.NotNil(t, survivor.BookingID)
	assert.Equal(t, bookingID, *survivor.BookingID)

	var dupes int64
	require.NoError(t, db.Model(&models.AvailabilitySlot{}).
		Where("mentor_id = ? AND start_time = ?", 1, booked.StartTime).
		Count(&dupes).Error)
	assert.EqualValues(t, 1, dupes)
}

func TestRegenerateLeavesOtherMentorsAlone(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	require.NoError(t, ReplaceRules(db, 1, []RuleInput{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
	}, now))
	require.NoError(t, ReplaceRules(db, 2, []RuleInput{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
	}, now))

	require.NoError(t, ReplaceRules(db, 1, nil, now))

	var count int64
	require.NoError(t, db.Model(&models.AvailabilitySlot{}).
		Where("mentor_id = ?", 2).Count(&count).Error)
	assert.NotZero(t, count)
}
