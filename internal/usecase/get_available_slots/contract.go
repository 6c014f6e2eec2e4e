package get_available_slots

import (
	"context"
	"time"

	"github.com/campushub/CB-ReservationService/internal/domain"
	"github.com/campushub/CB-ReservationService/internal/integrations/resourcecatalog"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveOverlapping получает активные бронирования ресурса, пересекающиеся с [start, end)
	GetActiveOverlapping(ctx context.Context, resourceID int64, start, end time.Time) ([]*domain.Booking, error)
}

// ResourceCatalogClient интерфейс клиента каталога ресурсов
type ResourceCatalogClient interface {
	GetResource(ctx context.Context, resourceID int64) (*resourcecatalog.Resource, error)
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
