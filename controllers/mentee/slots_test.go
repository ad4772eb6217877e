package mentee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itcomdev/mentoring-app/scheduling"
)

func TestParseSlotRangeDefaultsToGridWindow(t *testing.T) {
	now := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)

	from, to, err := parseSlotRange("", "", now)

	require.NoError(t, err)
	assert.Equal(t, now, from)
	assert.Equal(t, now.AddDate(0, 0, scheduling.WindowDays), to)
}

func TestParseSlotRangeClampsFromToNow(t *testing.T) {
	now := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -3).Format(time.RFC3339)

	from, _, err := parseSlotRange(past, "", now)

	require.NoError(t, err)
	assert.Equal(t, now, from)
}

func TestParseSlotRangeExplicitBounds(t *testing.T) {
	now := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)
	fromStr := "2025-03-10T09:00:00Z"
	toStr := "2025-03-12T18:00:00Z"

	from, to, err := parseSlotRange(fromStr, toStr, now)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.March, 12, 18, 0, 0, 0, time.UTC), to)
}

func TestParseSlotRangeRejectsMalformedInput(t *testing.T) {
	now := time.Now()

	_, _, err := parseSlotRange("next tuesday", "", now)
	assert.EqualError(t, err, "from must be RFC3339")

	_, _, err = parseSlotRange("", "tomorrow", now)
	assert.EqualError(t, err, "to must be RFC3339")
}
