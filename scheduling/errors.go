package scheduling

import "errors"

var (
	ErrInvalidDayOfWeek = errors.New("day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidClock     = errors.New("start_time and end_time must be HH:MM in 24h format")
	ErrInvalidTimeRange = errors.New("end_time must be after start_time")
)
