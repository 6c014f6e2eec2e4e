package cancel_booking

import (
	cancelBooking "github.com/campushub/CB-ReservationService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID, requesterID int64) *cancelBooking.Request {
	return &cancelBooking.Request{
		BookingID:   bookingID,
		RequesterID: requesterID,
		Reason:      r.Reason,
	}
}
