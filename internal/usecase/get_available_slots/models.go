package get_available_slots

import (
	"time"

	"github.com/campushub/CB-ReservationService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	ResourceID         int64     // ID ресурса
	Date               time.Time // Дата, на которую запрашиваются слоты (без времени)
	GranularityMinutes int       // Шаг генерации слотов в минутах
}

// Response модель ответа со слотами ресурса на дату
type Response struct {
	ResourceID int64
	Date       time.Time
	Slots      []domain.TimeSlot
}
