package get_available_slots

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден в каталоге
	ErrResourceNotFound = errors.New("get_available_slots: resource not found")

	// ErrInvalidGranularity возвращается, когда шаг слотов некорректен
	// (не положительный или не делит рабочее окно нацело)
	ErrInvalidGranularity = errors.New("get_available_slots: invalid slot granularity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
