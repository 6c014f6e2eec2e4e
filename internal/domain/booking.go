package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a reservation of a shared resource for a half-open
// time interval [StartTime, EndTime)
type Booking struct {
	ID          int64
	ResourceID  int64
	RequesterID int64
	StartTime   time.Time
	EndTime     time.Time
	Status      BookingStatus

	CheckInTime *time.Time
	Purpose     *string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking participates in the no-overlap invariant
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsTerminal returns true if the booking reached a terminal status
func (b *Booking) IsTerminal() bool {
	for _, status := range TerminalStatuses {
		if b.Status == status {
			return true
		}
	}
	return false
}

// IsCheckedIn returns true if a check-in has been recorded
func (b *Booking) IsCheckedIn() bool {
	return b.CheckInTime != nil
}

// CanBeCancelled returns true if the booking can still be cancelled at the given moment
// A booking already in progress or in the past cannot be cancelled
func (b *Booking) CanBeCancelled(now time.Time) bool {
	return b.Status == StatusActive && now.Before(b.StartTime)
}

// CanCheckIn returns true if a check-in is allowed at the given moment
func (b *Booking) CanCheckIn(now time.Time) bool {
	return b.Status == StatusActive &&
		b.CheckInTime == nil &&
		!now.Before(b.StartTime) &&
		now.Before(b.EndTime)
}

// Overlaps returns true if the booking interval overlaps [start, end)
// Touching boundaries do not count as an overlap
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// FinishedStatus returns the terminal status an elapsed active booking converges to:
// completed when a check-in was recorded, no_show otherwise
func (b *Booking) FinishedStatus() BookingStatus {
	if b.IsCheckedIn() {
		return StatusCompleted
	}
	return StatusNoShow
}

// DeriveStatus returns the status of the booking as of the given moment without
// mutating it. An active booking whose end time has passed derives to completed
// or no_show; the periodic sweep persists the same result, so lazy readers and
// the sweep always agree
func DeriveStatus(b *Booking, now time.Time) BookingStatus {
	if b.Status == StatusActive && !now.Before(b.EndTime) {
		return b.FinishedStatus()
	}
	return b.Status
}

// UserBookingsFilter фильтр для получения бронирований пользователя
type UserBookingsFilter struct {
	RequesterID     int64
	Status          *BookingStatus
	IncludeFinished bool
}
