package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/campushub/CB-ReservationService/internal/domain"
	catalogClient "github.com/campushub/CB-ReservationService/internal/integrations/resourcecatalog"
)

// pgSerializationFailure код SQLSTATE, которым PostgreSQL сигнализирует о
// невозможности сериализовать конкурентные транзакции
const pgSerializationFailure = "40001"

// UseCase use case для создания бронирования
// Единственная операция, требующая настоящего контроля конкурентности:
// проверка непересечения и вставка выполняются в одной сериализуемой
// транзакции, поэтому из двух конкурентных запросов на пересекающиеся
// интервалы одного ресурса выигрывает ровно один
type UseCase struct {
	bookingRepo      BookingRepository
	notificationRepo NotificationRepository
	catalogClient    ResourceCatalogClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	notificationRepo NotificationRepository,
	catalogClient ResourceCatalogClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		notificationRepo: notificationRepo,
		catalogClient:    catalogClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: requester=%d, resource=%d, interval=[%s, %s)",
		req.RequesterID, req.ResourceID, req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("2006-01-02 15:04"))

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных (до каких-либо мутаций)
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем ресурс из каталога
	resource, err := uc.catalogClient.GetResource(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrResourceNotFound) {
			uc.logger.Warn("CreateBooking: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// 4. Неактивный ресурс не принимает новых бронирований
	if !resource.IsActive {
		uc.logger.Warn("CreateBooking: resource id=%d is inactive", req.ResourceID)
		return nil, ErrResourceInactive
	}

	// 5. Интервал должен попадать в рабочие часы в каждый охваченный день
	if err := validateWithinOperatingHours(resource, req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("CreateBooking: operating hours validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 6. Проверка и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Перепроверяем инвариант непересечения с блокировкой строк (FOR UPDATE)
		overlapping, err := uc.bookingRepo.GetActiveOverlapping(txCtx, req.ResourceID, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to get overlapping bookings: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: interval conflicts with booking id=%d on resource=%d",
				overlapping[0].ID, req.ResourceID)
			return ErrIntervalConflict
		}

		// 6.2. Вставляем бронирование
		booking := &domain.Booking{
			ResourceID:  req.ResourceID,
			RequesterID: req.RequesterID,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Status:      domain.StatusActive,
			Purpose:     req.Purpose,
			Notes:       req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 6.3. Записываем intent подтверждения в outbox той же транзакцией:
		// либо фиксируются и бронирование, и уведомление, либо ничего
		intent := &domain.NotificationIntent{
			IntentKey:   uuid.New(),
			RecipientID: req.RequesterID,
			Kind:        domain.NotificationBookingConfirmed,
			BookingID:   &created.ID,
			ResourceID:  req.ResourceID,
			OccursAt:    req.StartTime,
			Context: map[string]string{
				"resourceName": resource.Name,
			},
		}

		if _, err := uc.notificationRepo.Create(txCtx, intent); err != nil {
			uc.logger.Error("CreateBooking: failed to create notification intent: %v", err)
			return fmt.Errorf("%w: failed to create notification intent: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Проигравшая сериализацию транзакция эквивалентна проигранной гонке за слот
		if isSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization failure on resource=%d, treating as conflict", req.ResourceID)
			return nil, ErrIntervalConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:          result.ID,
		ResourceID:  result.ResourceID,
		RequesterID: result.RequesterID,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		Status:      string(result.Status),
		Purpose:     result.Purpose,
		Notes:       result.Notes,
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// isSerializationFailure распознает ошибку сериализации PostgreSQL (SQLSTATE 40001)
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgSerializationFailure
	}
	return false
}
