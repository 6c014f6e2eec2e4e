package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushub/CB-ReservationService/internal/domain"
	catalogClient "github.com/campushub/CB-ReservationService/internal/integrations/resourcecatalog"
)

// UseCase use case для получения слотов ресурса на дату
// Чтение без побочных эффектов: слоты вычисляются из рабочих часов ресурса
// и активных бронирований
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient ResourceCatalogClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient ResourceCatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: resource=%d, date=%s, granularity=%d",
		req.ResourceID, req.Date.Format(domain.DateFormat), req.GranularityMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем ресурс из каталога
	resource, err := uc.catalogClient.GetResource(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrResourceNotFound) {
			uc.logger.Warn("GetAvailableSlots: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	// 4. Неактивный ресурс не принимает новых бронирований - слотов нет
	if !resource.IsActive {
		uc.logger.Info("GetAvailableSlots: resource id=%d is inactive", req.ResourceID)
		return uc.emptyResponse(req), nil
	}

	// 5. Получаем расписание на указанный день недели
	schedule := scheduleForDay(resource, req.Date)
	if !schedule.IsOpen {
		uc.logger.Info("GetAvailableSlots: resource id=%d is closed on %s",
			req.ResourceID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 6. Проверяем, что шаг слотов делит рабочее окно нацело
	if err := validateGranularityFits(schedule, req.GranularityMinutes); err != nil {
		uc.logger.Warn("GetAvailableSlots: granularity validation failed: %v", err)
		return nil, err
	}

	// 7. Получаем активные бронирования ресурса на эту дату
	dayStart, dayEnd := dayBounds(req.Date)
	bookings, err := uc.bookingRepo.GetActiveOverlapping(ctx, req.ResourceID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Генерируем слоты с вычислением доступности
	slots, err := generateTimeSlots(schedule, req.GranularityMinutes, req.Date, now, bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for resource=%d, date=%s",
		len(slots), req.ResourceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ResourceID: req.ResourceID,
		Date:       req.Date,
		Slots:      slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		ResourceID: req.ResourceID,
		Date:       req.Date,
		Slots:      []domain.TimeSlot{},
	}
}
