package get_user_waitlist

import (
	"context"

	"github.com/campushub/CB-ReservationService/internal/service/waitlist/models"
)

type WaitlistService interface {
	GetUserEntries(ctx context.Context, requesterID int64) (*models.WaitlistListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
