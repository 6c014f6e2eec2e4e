package bookings

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/CB-ReservationService/internal/domain"
	bookingRepo "github.com/campushub/CB-ReservationService/internal/infra/storage/booking"
	"github.com/campushub/CB-ReservationService/internal/service/bookings/models"
)

type memBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (r *memBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *memBookingRepo) GetByRequester(_ context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.RequesterID != filter.RequesterID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.Status == nil && !filter.IncludeFinished && b.IsTerminal() {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memBookingRepo) ListElapsedActive(_ context.Context, now time.Time, limit uint64) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.IsActive() && !now.Before(b.EndTime) && uint64(len(result)) < limit {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *memBookingRepo) FinishIfActive(_ context.Context, id int64, status domain.BookingStatus) (bool, error) {
	booking, ok := r.bookings[id]
	if !ok || !booking.IsActive() {
		return false, nil
	}
	booking.Status = status
	return true, nil
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

func newTestService(now time.Time, bookings ...*domain.Booking) (*Service, *memBookingRepo) {
	repo := &memBookingRepo{bookings: map[int64]*domain.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}

	svc := NewService(repo, domain.DefaultSweepBatchSize, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: now}
	return svc, repo
}

func activeBooking(id, requesterID int64) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		ResourceID:  5,
		RequesterID: requesterID,
		StartTime:   bookingStart,
		EndTime:     bookingEnd,
		Status:      domain.StatusActive,
	}
}

func TestGetByID_OwnerOnly(t *testing.T) {
	svc, _ := newTestService(bookingStart, activeBooking(1, 10))

	resp, err := svc.GetByID(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	_, err = svc.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 42, 10)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_DerivesElapsedStatus(t *testing.T) {
	// Sweep ещё не прошёл, но истекшее активное бронирование читается терминальным
	checkedIn := activeBooking(1, 10)
	checkInTime := bookingStart.Add(5 * time.Minute)
	checkedIn.CheckInTime = &checkInTime

	noShow := activeBooking(2, 10)

	svc, repo := newTestService(bookingEnd.Add(time.Minute), checkedIn, noShow)

	resp, err := svc.GetByID(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)

	resp, err = svc.GetByID(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), resp.Status)

	// Хранимый статус при этом не изменился
	assert.Equal(t, domain.StatusActive, repo.bookings[1].Status)
	assert.Equal(t, domain.StatusActive, repo.bookings[2].Status)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	cancelled := activeBooking(2, 10)
	cancelled.Status = domain.StatusCancelled

	svc, _ := newTestService(bookingStart, activeBooking(1, 10), cancelled, activeBooking(3, 20))

	// По умолчанию отдаются только незавершённые
	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{RequesterID: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	// С includeFinished видны и терминальные
	resp, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		RequesterID:     10,
		IncludeFinished: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	// Некорректный статус отклоняется
	badStatus := "unknown"
	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		RequesterID: 10,
		Status:      &badStatus,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFinishElapsed_ConvergesAndIsIdempotent(t *testing.T) {
	checkedIn := activeBooking(1, 10)
	checkInTime := bookingStart.Add(5 * time.Minute)
	checkedIn.CheckInTime = &checkInTime

	noShow := activeBooking(2, 20)

	stillRunning := activeBooking(3, 30)
	stillRunning.EndTime = bookingEnd.Add(2 * time.Hour)

	svc, repo := newTestService(bookingEnd.Add(time.Minute), checkedIn, noShow, stillRunning)

	finished, err := svc.FinishElapsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, finished)

	assert.Equal(t, domain.StatusCompleted, repo.bookings[1].Status)
	assert.Equal(t, domain.StatusNoShow, repo.bookings[2].Status)
	assert.Equal(t, domain.StatusActive, repo.bookings[3].Status)

	// Повторный запуск ничего не меняет
	finished, err = svc.FinishElapsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, finished)
}
