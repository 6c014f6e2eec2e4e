package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/campushub/CB-ReservationService/internal/infra/storage/booking"
	"github.com/campushub/CB-ReservationService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и фонового завершения истекших
type Service struct {
	bookingRepo    BookingRepository
	timeProvider   TimeProvider
	logger         Logger
	sweepBatchSize uint64
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, sweepBatchSize uint64, logger Logger) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		sweepBatchSize: sweepBatchSize,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только свои бронирования
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for requester=%d", id, requesterID)

	if id <= 0 || requesterID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.RequesterID != requesterID {
		s.logger.Warn("GetByID: access denied for requester=%d to booking id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу; по умолчанию отдаются только активные
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for requester=%d, status=%v", req.RequesterID, req.Status)

	if req.RequesterID <= 0 {
		return nil, fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status=%v for requester=%d", req.Status, req.RequesterID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByRequester(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for requester=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for requester=%d", len(bookings), req.RequesterID)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// FinishElapsed переводит активные бронирования с истекшим интервалом в
// терминальный статус: completed при отметке о прибытии, no_show без нее.
// Идемпотентна: условный UPDATE срабатывает только для строк, всё ещё
// активных на момент выполнения, поэтому конкурирующий запуск безвреден
func (s *Service) FinishElapsed(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()

	elapsed, err := s.bookingRepo.ListElapsedActive(ctx, now, s.sweepBatchSize)
	if err != nil {
		s.logger.Error("FinishElapsed: failed to list elapsed bookings: %v", err)
		return 0, fmt.Errorf("%w: FinishElapsed - repository error: %v", ErrInternal, err)
	}

	finished := 0
	for _, booking := range elapsed {
		updated, err := s.bookingRepo.FinishIfActive(ctx, booking.ID, booking.FinishedStatus())
		if err != nil {
			s.logger.Error("FinishElapsed: failed to finish booking id=%d: %v", booking.ID, err)
			return finished, fmt.Errorf("%w: FinishElapsed - repository error: %v", ErrInternal, err)
		}
		if updated {
			finished++
		}
	}

	if finished > 0 {
		s.logger.Info("FinishElapsed: finished %d elapsed bookings", finished)
	}
	return finished, nil
}
