package promote_waitlist

import (
	"context"
	"time"

	"github.com/campushub/CB-ReservationService/internal/domain"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	GetOpenByResource(ctx context.Context, resourceID int64, now time.Time) ([]*domain.WaitlistEntry, error)
	MarkPromoted(ctx context.Context, id int64, promotedAt time.Time) error
	ExpireOpenBefore(ctx context.Context, now time.Time) (int64, error)
}

// NotificationRepository интерфейс notification outbox
type NotificationRepository interface {
	Create(ctx context.Context, intent *domain.NotificationIntent) (*domain.NotificationIntent, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
