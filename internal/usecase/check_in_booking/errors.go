package check_in_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("check_in_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("check_in_booking: access denied")

	// ErrInvalidTransition возвращается, когда отметка о прибытии невозможна:
	// бронирование не активно, его интервал еще не начался или уже закончился,
	// либо отметка уже сделана
	ErrInvalidTransition = errors.New("check_in_booking: check-in is not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_in_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_in_booking: internal error")
)
