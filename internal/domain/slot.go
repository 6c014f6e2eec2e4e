package domain

import "time"

// TimeSlot represents a candidate bookable interval of fixed granularity within
// a resource's operating hours on a given day. Derived, never persisted
type TimeSlot struct {
	StartTime time.Time
	EndTime   time.Time
	Available bool

	// BlockingBookingID is set when the slot is unavailable because of an
	// active booking (nil for slots that are merely in the past)
	BlockingBookingID *int64
}

// DurationMinutes returns the slot length in minutes
func (s *TimeSlot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}
