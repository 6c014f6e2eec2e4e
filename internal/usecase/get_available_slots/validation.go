package get_available_slots

import (
	"fmt"

	"github.com/campushub/CB-ReservationService/internal/domain"
	"github.com/campushub/CB-ReservationService/internal/integrations/resourcecatalog"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.GranularityMinutes < domain.MinGranularityMinutes ||
		req.GranularityMinutes > domain.MaxGranularityMinutes {
		return fmt.Errorf("%w: granularity must be between %d and %d minutes",
			ErrInvalidGranularity, domain.MinGranularityMinutes, domain.MaxGranularityMinutes)
	}

	return nil
}

// validateGranularityFits проверяет, что шаг слотов делит рабочее окно нацело
// Для закрытого дня проверка не выполняется (слотов не будет)
func validateGranularityFits(schedule resourcecatalog.DaySchedule, granularityMinutes int) error {
	open, close, ok := schedule.Window()
	if !ok {
		return nil
	}

	windowMinutes, err := open.MinutesUntil(close)
	if err != nil {
		return fmt.Errorf("%w: invalid operating hours: %v", ErrInternal, err)
	}

	if windowMinutes <= 0 {
		return fmt.Errorf("%w: operating window is empty", ErrInternal)
	}

	if windowMinutes%granularityMinutes != 0 {
		return fmt.Errorf("%w: granularity %d does not evenly divide a %d minute window",
			ErrInvalidGranularity, granularityMinutes, windowMinutes)
	}

	return nil
}
