package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	RequesterID int64     // ID пользователя (уже аутентифицирован транспортным слоем)
	ResourceID  int64     // ID ресурса из каталога
	StartTime   time.Time // Начало интервала
	EndTime     time.Time // Конец интервала (не включается)
	Purpose     *string   // Цель бронирования (опционально)
	Notes       *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	ResourceID  int64
	RequesterID int64
	StartTime   time.Time
	EndTime     time.Time
	Status      string
	Purpose     *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
