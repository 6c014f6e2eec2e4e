package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist entry not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrEntryNotOpen возвращается при попытке отменить запись не в статусе open
	ErrEntryNotOpen = errors.New("waitlist entry is not open")

	// ErrInvalidInterval возвращается, когда желаемый интервал пуст или в прошлом
	ErrInvalidInterval = errors.New("invalid desired interval")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
