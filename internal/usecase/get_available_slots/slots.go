package get_available_slots

import (
	"time"

	"github.com/campushub/CB-ReservationService/internal/domain"
	"github.com/campushub/CB-ReservationService/internal/integrations/resourcecatalog"
)

// generateTimeSlots генерирует слоты ресурса на день с фиксированным шагом granularity
// Слоты идут от времени открытия до времени закрытия; слот, не помещающийся
// целиком до закрытия, не генерируется. Для каждого слота проверяется пересечение
// с активными бронированиями и попадание в прошлое
func generateTimeSlots(
	schedule resourcecatalog.DaySchedule,
	granularityMinutes int,
	requestDate time.Time,
	now time.Time,
	bookings []*domain.Booking,
) ([]domain.TimeSlot, error) {
	open, close, ok := schedule.Window()
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	slots := make([]domain.TimeSlot, 0)
	current := open

	for current.IsBefore(close) {
		slotEndTime, err := current.AddMinutes(granularityMinutes)
		if err != nil {
			return nil, err
		}
		if slotEndTime.IsAfter(close) {
			break
		}

		slotStart, err := current.OnDate(requestDate)
		if err != nil {
			return nil, err
		}
		slotEnd := slotStart.Add(time.Duration(granularityMinutes) * time.Minute)

		slots = append(slots, buildSlot(slotStart, slotEnd, now, bookings))

		current = slotEndTime
	}

	return slots, nil
}

// buildSlot вычисляет доступность одного слота
// Слот недоступен, если он целиком в прошлом или пересекается с активным
// бронированием; в последнем случае проставляется ID блокирующего бронирования
func buildSlot(slotStart, slotEnd, now time.Time, bookings []*domain.Booking) domain.TimeSlot {
	slot := domain.TimeSlot{
		StartTime: slotStart,
		EndTime:   slotEnd,
		Available: true,
	}

	if blocking := findBlockingBooking(slotStart, slotEnd, bookings); blocking != nil {
		slot.Available = false
		id := blocking.ID
		slot.BlockingBookingID = &id
	}

	// Слоты целиком в прошлом недоступны независимо от бронирований
	if !slotEnd.After(now) {
		slot.Available = false
	}

	return slot
}

// findBlockingBooking возвращает первое активное бронирование, пересекающееся со слотом
// Пересечение считается по строгим неравенствам: граничащие интервалы не пересекаются
//
// Примеры:
// - Слот 11:00-12:00, бронирование 11:20-11:40 → ЕСТЬ пересечение
// - Слот 11:00-12:00, бронирование 10:00-11:00 → НЕТ пересечения (граничат)
// - Слот 11:00-12:00, бронирование 12:00-13:00 → НЕТ пересечения (граничат)
func findBlockingBooking(slotStart, slotEnd time.Time, bookings []*domain.Booking) *domain.Booking {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if booking.StartTime.Before(slotEnd) && booking.EndTime.After(slotStart) {
			return booking
		}
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

// dayBounds возвращает границы календарного дня [start, end)
func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}
