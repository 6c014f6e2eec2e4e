package domain

import "time"

// WaitlistStatus represents the status of a waitlist entry
type WaitlistStatus string

const (
	WaitlistOpen      WaitlistStatus = "open"
	WaitlistPromoted  WaitlistStatus = "promoted"
	WaitlistExpired   WaitlistStatus = "expired"
	WaitlistCancelled WaitlistStatus = "cancelled"
)

// WaitlistEntry represents a request to be notified when a desired interval
// on a resource becomes bookable. Promotion is an offer, not a reservation:
// the requester still has to create the booking themselves
type WaitlistEntry struct {
	ID           int64
	ResourceID   int64
	RequesterID  int64
	DesiredStart time.Time
	DesiredEnd   time.Time
	Status       WaitlistStatus
	ExpiresAt    time.Time
	PromotedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen returns true if the entry can still be promoted
func (w *WaitlistEntry) IsOpen() bool {
	return w.Status == WaitlistOpen
}

// IsExpiredAt returns true if the entry is past its expiry at the given moment
func (w *WaitlistEntry) IsExpiredAt(now time.Time) bool {
	return !w.ExpiresAt.After(now)
}

// MatchesFreedInterval returns true if the desired interval is fully contained
// in the freed interval. Containment (not mere overlap) is required so a
// promotion offer never points at an interval that would conflict again
func (w *WaitlistEntry) MatchesFreedInterval(freedStart, freedEnd time.Time) bool {
	return !w.DesiredStart.Before(freedStart) && !w.DesiredEnd.After(freedEnd)
}
