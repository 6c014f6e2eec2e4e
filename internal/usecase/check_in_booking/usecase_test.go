package check_in_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/CB-ReservationService/internal/domain"
	bookingRepository "github.com/campushub/CB-ReservationService/internal/infra/storage/booking"
)

type memBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (r *memBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepository.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *memBookingRepo) SetCheckIn(_ context.Context, id int64, checkInTime time.Time) error {
	booking, ok := r.bookings[id]
	if !ok || booking.Status != domain.StatusActive || booking.CheckInTime != nil {
		return bookingRepository.ErrNotUpdated
	}
	booking.CheckInTime = &checkInTime
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	bookingStart = time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	bookingEnd   = time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
)

func newTestEnv(now time.Time) (*UseCase, *memBookingRepo) {
	repo := &memBookingRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID:          1,
			ResourceID:  5,
			RequesterID: 10,
			StartTime:   bookingStart,
			EndTime:     bookingEnd,
			Status:      domain.StatusActive,
		},
	}}

	uc := NewUseCase(repo, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc, repo
}

func TestExecute_ChecksInWithinInterval(t *testing.T) {
	now := bookingStart.Add(15 * time.Minute)
	uc, repo := newTestEnv(now)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, now, resp.CheckInTime)
	require.NotNil(t, repo.bookings[1].CheckInTime)
	assert.Equal(t, now, *repo.bookings[1].CheckInTime)
}

func TestExecute_CheckInWindow(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "exactly at start is allowed", now: bookingStart},
		{name: "before start is rejected", now: bookingStart.Add(-time.Minute), wantErr: ErrInvalidTransition},
		{name: "exactly at end is rejected", now: bookingEnd, wantErr: ErrInvalidTransition},
		{name: "after end is rejected", now: bookingEnd.Add(time.Minute), wantErr: ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestEnv(tt.now)

			_, err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 10})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestExecute_SecondCheckInRejected(t *testing.T) {
	uc, _ := newTestEnv(bookingStart.Add(15 * time.Minute))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 10})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 10})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_OnlyOwnerCanCheckIn(t *testing.T) {
	uc, repo := newTestEnv(bookingStart.Add(15 * time.Minute))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.bookings[1].CheckInTime)
}

func TestExecute_CancelledBookingCannotCheckIn(t *testing.T) {
	uc, repo := newTestEnv(bookingStart.Add(15 * time.Minute))
	repo.bookings[1].Status = domain.StatusCancelled

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 10})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _ := newTestEnv(bookingStart.Add(15 * time.Minute))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, RequesterID: 10})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
