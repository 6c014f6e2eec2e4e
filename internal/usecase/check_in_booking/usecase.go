package check_in_booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepository "github.com/campushub/CB-ReservationService/internal/infra/storage/booking"
)

// UseCase use case для отметки о прибытии
// Отметка допустима только внутри интервала бронирования и только один раз;
// после нее бронирование по истечении интервала завершается как completed
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отметки о прибытии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckInBooking: booking=%d, requester=%d", req.BookingID, req.RequesterID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckInBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверки и отметка в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepository.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("CheckInBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3.1. Отметиться может только владелец бронирования
		if booking.RequesterID != req.RequesterID {
			uc.logger.Warn("CheckInBooking: requester=%d is not the owner of booking=%d", req.RequesterID, booking.ID)
			return ErrAccessDenied
		}

		// 3.2. Отметка допустима только внутри интервала активного бронирования
		if !booking.CanCheckIn(now) {
			uc.logger.Warn("CheckInBooking: check-in is not allowed for booking=%d (status=%s, interval=[%s, %s))",
				booking.ID, booking.Status,
				booking.StartTime.Format("2006-01-02 15:04"), booking.EndTime.Format("2006-01-02 15:04"))
			return ErrInvalidTransition
		}

		// 3.3. Условный UPDATE защищает от повторной отметки при гонке
		if err := uc.bookingRepo.SetCheckIn(txCtx, booking.ID, now); err != nil {
			if errors.Is(err, bookingRepository.ErrNotUpdated) {
				return ErrInvalidTransition
			}
			uc.logger.Error("CheckInBooking: failed to set check-in for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to set check-in: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckInBooking: successfully checked in booking id=%d", req.BookingID)

	return &Response{
		BookingID:   req.BookingID,
		CheckInTime: now,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	return nil
}
