package cancel_booking

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID   int64   // ID бронирования
	RequesterID int64   // ID пользователя (должен совпадать с владельцем)
	Reason      *string // Причина отмены (опционально)
}
