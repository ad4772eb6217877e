package booking

import (
	"errors"
	"fmt"
)

var (
	ErrSlotNotFound   = errors.New("availability slot not found")
	ErrSlotConflict   = errors.New("availability slot is already booked")
	ErrMentorNotFound = errors.New("mentor not found")
)

// ValidationError rejects malformed input before any transaction opens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
