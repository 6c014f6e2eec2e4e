package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind represents the kind of a notification intent
type NotificationKind string

const (
	NotificationBookingConfirmed  NotificationKind = "booking_confirmed"
	NotificationBookingCancelled  NotificationKind = "booking_cancelled"
	NotificationWaitlistAvailable NotificationKind = "waitlist_available"
)

// NotificationIntent is a durable outbox record describing a notification that
// must be delivered to a recipient. The row is written in the same transaction
// as the state change it describes; a background dispatcher hands it to the
// delivery collaborator at least once (IntentKey lets the collaborator
// deduplicate retries)
type NotificationIntent struct {
	ID              int64
	IntentKey       uuid.UUID
	RecipientID     int64
	Kind            NotificationKind
	BookingID       *int64
	WaitlistEntryID *int64
	ResourceID      int64
	OccursAt        time.Time
	Context         map[string]string

	DispatchedAt *time.Time
	CreatedAt    time.Time
}

// IsDispatched returns true if the intent has been handed to the delivery collaborator
func (n *NotificationIntent) IsDispatched() bool {
	return n.DispatchedAt != nil
}
