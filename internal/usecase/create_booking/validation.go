package create_booking

import (
	"fmt"
	"time"

	"github.com/campushub/CB-ReservationService/internal/domain"
	"github.com/campushub/CB-ReservationService/internal/integrations/resourcecatalog"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.EndTime.After(req.StartTime) {
		return ErrInvalidInterval
	}

	if req.StartTime.Before(now) {
		return ErrStartInPast
	}

	if req.Purpose != nil && len(*req.Purpose) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose exceeds %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateWithinOperatingHours проверяет, что интервал попадает в рабочие часы
// ресурса в каждый день, который он охватывает. Дневная часть интервала должна
// целиком лежать между открытием и закрытием; в закрытый день бронирование невозможно
func validateWithinOperatingHours(resource *resourcecatalog.Resource, start, end time.Time) error {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	for day.Before(end) {
		nextDay := day.AddDate(0, 0, 1)

		segStart := start
		if day.After(segStart) {
			segStart = day
		}
		segEnd := end
		if nextDay.Before(segEnd) {
			segEnd = nextDay
		}

		schedule := scheduleForDay(resource, day)
		open, close, ok := schedule.Window()
		if !ok {
			return fmt.Errorf("%w: resource is closed on %s", ErrOutsideOperatingHours, day.Format(domain.DateFormat))
		}

		openTime, err := open.OnDate(day)
		if err != nil {
			return fmt.Errorf("%w: invalid operating hours: %v", ErrInternal, err)
		}
		closeTime, err := close.OnDate(day)
		if err != nil {
			return fmt.Errorf("%w: invalid operating hours: %v", ErrInternal, err)
		}

		if segStart.Before(openTime) || segEnd.After(closeTime) {
			return fmt.Errorf("%w: %s is open %s-%s", ErrOutsideOperatingHours,
				day.Format(domain.DateFormat), open, close)
		}

		day = nextDay
	}

	return nil
}

// scheduleForDay возвращает расписание ресурса на указанный день недели
func scheduleForDay(resource *resourcecatalog.Resource, date time.Time) resourcecatalog.DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return resource.OperatingHours.Monday
	case time.Tuesday:
		return resource.OperatingHours.Tuesday
	case time.Wednesday:
		return resource.OperatingHours.Wednesday
	case time.Thursday:
		return resource.OperatingHours.Thursday
	case time.Friday:
		return resource.OperatingHours.Friday
	case time.Saturday:
		return resource.OperatingHours.Saturday
	case time.Sunday:
		return resource.OperatingHours.Sunday
	default:
		return resourcecatalog.DaySchedule{IsOpen: false}
	}
}
