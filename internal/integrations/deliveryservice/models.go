package deliveryservice

import "time"

// Notification модель уведомления для сервиса доставки
// IntentKey используется сервисом доставки для дедупликации повторных отправок.
// BookingID / WaitlistEntryID указывают сущность, к которой относится уведомление
type Notification struct {
	IntentKey       string            `json:"intentKey"`
	RecipientID     int64             `json:"recipientId"`
	Kind            string            `json:"kind"`
	BookingID       *int64            `json:"bookingId,omitempty"`
	WaitlistEntryID *int64            `json:"waitlistEntryId,omitempty"`
	ResourceID      int64             `json:"resourceId"`
	OccursAt        time.Time         `json:"occursAt"`
	Context         map[string]string `json:"context,omitempty"`
}
