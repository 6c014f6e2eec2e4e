package join_waitlist

import (
	"time"

	"github.com/campushub/CB-ReservationService/internal/service/waitlist/models"
)

// JoinWaitlistRequest HTTP request model
type JoinWaitlistRequest struct {
	ResourceID   int64  `json:"resourceId"`
	DesiredStart string `json:"desiredStart"` // RFC3339
	DesiredEnd   string `json:"desiredEnd"`   // RFC3339
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *JoinWaitlistRequest) ToServiceRequest(requesterID int64) (*models.JoinWaitlistRequest, error) {
	desiredStart, err := time.Parse(time.RFC3339, r.DesiredStart)
	if err != nil {
		return nil, err
	}

	desiredEnd, err := time.Parse(time.RFC3339, r.DesiredEnd)
	if err != nil {
		return nil, err
	}

	return &models.JoinWaitlistRequest{
		RequesterID:  requesterID,
		ResourceID:   r.ResourceID,
		DesiredStart: desiredStart,
		DesiredEnd:   desiredEnd,
	}, nil
}
