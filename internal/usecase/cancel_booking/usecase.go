package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/CB-ReservationService/internal/domain"
	bookingRepository "github.com/campushub/CB-ReservationService/internal/infra/storage/booking"
)

// promotionTimeout ограничивает длительность фоновой попытки промоушена
const promotionTimeout = 30 * time.Second

// UseCase use case для отмены бронирования
// После фиксации отмены асинхронно запускает промоушен листа ожидания
// для освободившегося интервала; ошибка промоушена не влияет на результат отмены
type UseCase struct {
	bookingRepo      BookingRepository
	notificationRepo NotificationRepository
	promoter         WaitlistPromoter
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger

	promotions sync.WaitGroup
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	notificationRepo NotificationRepository,
	promoter WaitlistPromoter,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		notificationRepo: notificationRepo,
		promoter:         promoter,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("CancelBooking: booking=%d, requester=%d", req.BookingID, req.RequesterID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var cancelled *domain.Booking

	// 3. Проверки и отмена в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepository.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 3.1. Отменить бронирование может только его владелец
		if booking.RequesterID != req.RequesterID {
			uc.logger.Warn("CancelBooking: requester=%d is not the owner of booking=%d", req.RequesterID, booking.ID)
			return ErrAccessDenied
		}

		// 3.2. Отмена допустима только для активного бронирования до его начала
		if !booking.CanBeCancelled(now) {
			uc.logger.Warn("CancelBooking: booking=%d cannot be cancelled (status=%s, start=%s)",
				booking.ID, booking.Status, booking.StartTime.Format("2006-01-02 15:04"))
			return ErrInvalidTransition
		}

		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, req.Reason); err != nil {
			// Условный UPDATE не сработал: бронирование перестало быть активным
			// между чтением и отменой
			if errors.Is(err, bookingRepository.ErrNotUpdated) {
				uc.logger.Warn("CancelBooking: booking=%d is no longer active", booking.ID)
				return ErrInvalidTransition
			}
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// 3.3. Intent об отмене пишется в outbox той же транзакцией
		intent := &domain.NotificationIntent{
			IntentKey:   uuid.New(),
			RecipientID: booking.RequesterID,
			Kind:        domain.NotificationBookingCancelled,
			BookingID:   &booking.ID,
			ResourceID:  booking.ResourceID,
			OccursAt:    booking.StartTime,
			Context:     map[string]string{},
		}
		if req.Reason != nil {
			intent.Context["reason"] = *req.Reason
		}

		if _, err := uc.notificationRepo.Create(txCtx, intent); err != nil {
			uc.logger.Error("CancelBooking: failed to create notification intent: %v", err)
			return fmt.Errorf("%w: failed to create notification intent: %v", ErrInternal, err)
		}

		cancelled = booking
		return nil
	})

	if err != nil {
		return err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d", cancelled.ID)

	// 4. Интервал освободился: запускаем промоушен листа ожидания.
	// Выполняется вне транзакции отмены и не влияет на её результат
	uc.promotions.Add(1)
	go func(resourceID int64, start, end time.Time) {
		defer uc.promotions.Done()

		promoCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), promotionTimeout)
		defer cancel()

		if err := uc.promoter.OnIntervalFreed(promoCtx, resourceID, start, end); err != nil {
			uc.logger.Error("CancelBooking: waitlist promotion for resource=%d failed: %v", resourceID, err)
		}
	}(cancelled.ResourceID, cancelled.StartTime, cancelled.EndTime)

	return nil
}

// Wait дожидается завершения всех запущенных промоушенов.
// Используется при graceful shutdown
func (uc *UseCase) Wait() {
	uc.promotions.Wait()
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	return nil
}
