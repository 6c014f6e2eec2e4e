package create_booking

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден в каталоге
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrResourceInactive возвращается, когда ресурс выведен из обращения
	// (существующие бронирования остаются в силе, новые не принимаются)
	ErrResourceInactive = errors.New("create_booking: resource is inactive")

	// ErrInvalidInterval возвращается, когда интервал пуст или вывернут (end <= start)
	ErrInvalidInterval = errors.New("create_booking: end must be after start")

	// ErrStartInPast возвращается при попытке забронировать интервал в прошлом
	ErrStartInPast = errors.New("create_booking: start time is in the past")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит за рабочие часы
	// ресурса хотя бы в один из дней, которые он охватывает
	ErrOutsideOperatingHours = errors.New("create_booking: interval is outside operating hours")

	// ErrIntervalConflict возвращается, когда интервал пересекается с активным
	// бронированием. Проигравший конкурентную гонку запрос получает эту же ошибку
	ErrIntervalConflict = errors.New("create_booking: interval conflicts with an active booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
