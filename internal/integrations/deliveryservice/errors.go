package deliveryservice

import "errors"

var (
	// ErrDeliveryRejected возвращается, когда сервис доставки отклонил уведомление
	ErrDeliveryRejected = errors.New("deliveryservice: notification rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("deliveryservice: internal error")
)
