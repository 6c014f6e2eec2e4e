package check_in_booking

import "time"

// Request модель запроса на отметку о прибытии
type Request struct {
	BookingID   int64 // ID бронирования
	RequesterID int64 // ID пользователя (должен совпадать с владельцем)
}

// Response модель ответа с временем отметки
type Response struct {
	BookingID   int64     `json:"bookingId"`
	CheckInTime time.Time `json:"checkInTime"`
}
