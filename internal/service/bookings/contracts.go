package bookings

import (
	"context"
	"time"

	"github.com/campushub/CB-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByRequester(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	ListElapsedActive(ctx context.Context, now time.Time, limit uint64) ([]*domain.Booking, error)
	FinishIfActive(ctx context.Context, id int64, status domain.BookingStatus) (bool, error)
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
