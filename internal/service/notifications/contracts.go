package notifications

import (
	"context"
	"time"

	"github.com/campushub/CB-ReservationService/internal/domain"
	"github.com/campushub/CB-ReservationService/internal/integrations/deliveryservice"
)

// NotificationRepository интерфейс notification outbox
type NotificationRepository interface {
	GetPending(ctx context.Context, limit uint64) ([]*domain.NotificationIntent, error)
	MarkDispatched(ctx context.Context, id int64, dispatchedAt time.Time) error
}

// DeliveryClient интерфейс клиента сервиса доставки уведомлений
type DeliveryClient interface {
	Deliver(ctx context.Context, notification *deliveryservice.Notification) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
