package get_available_slots

import (
	"time"

	"github.com/campushub/CB-ReservationService/internal/domain"
	getAvailableSlots "github.com/campushub/CB-ReservationService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	Available         bool   `json:"available"`
	BlockingBookingID *int64 `json:"blockingBookingId,omitempty"`
}

// SlotsResponse HTTP модель ответа со слотами
type SlotsResponse struct {
	ResourceID int64          `json:"resourceId"`
	Date       string         `json:"date"`
	Slots      []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(resourceID int64, dateStr string, granularity int) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ResourceID:         resourceID,
		Date:               date,
		GranularityMinutes: granularity,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:         slot.StartTime.Format(time.RFC3339),
			EndTime:           slot.EndTime.Format(time.RFC3339),
			Available:         slot.Available,
			BlockingBookingID: slot.BlockingBookingID,
		})
	}

	return &SlotsResponse{
		ResourceID: resp.ResourceID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
	}
}
