package cancel_booking

import (
	"context"
	"time"

	"github.com/campushub/CB-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason *string) error
}

// NotificationRepository интерфейс notification outbox
type NotificationRepository interface {
	Create(ctx context.Context, intent *domain.NotificationIntent) (*domain.NotificationIntent, error)
}

// WaitlistPromoter интерфейс планировщика промоушена листа ожидания
// Вызывается после фиксации отмены для освободившегося интервала
type WaitlistPromoter interface {
	OnIntervalFreed(ctx context.Context, resourceID int64, freedStart, freedEnd time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
