package cancel_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/CB-ReservationService/internal/domain"
	bookingRepository "github.com/campushub/CB-ReservationService/internal/infra/storage/booking"
	"github.com/campushub/CB-ReservationService/pkg/ptr"
)

type memBookingRepo struct {
	bookings map[int64]*domain.Booking

	cancelErr error
}

func (r *memBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepository.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *memBookingRepo) Cancel(_ context.Context, id int64, reason *string) error {
	if r.cancelErr != nil {
		return r.cancelErr
	}
	booking, ok := r.bookings[id]
	if !ok {
		return bookingRepository.ErrBookingNotFound
	}
	booking.Status = domain.StatusCancelled
	booking.CancellationReason = reason
	now := time.Now()
	booking.CancelledAt = &now
	return nil
}

type memIntentRepo struct {
	intents   []*domain.NotificationIntent
	createErr error
}

func (r *memIntentRepo) Create(_ context.Context, intent *domain.NotificationIntent) (*domain.NotificationIntent, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	created := *intent
	created.ID = int64(len(r.intents) + 1)
	r.intents = append(r.intents, &created)
	return &created, nil
}

type promotionCall struct {
	resourceID int64
	start, end time.Time
}

type fakePromoter struct {
	mu    sync.Mutex
	calls []promotionCall
}

func (p *fakePromoter) OnIntervalFreed(_ context.Context, resourceID int64, start, end time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, promotionCall{resourceID: resourceID, start: start, end: end})
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

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:          1,
		ResourceID:  5,
		RequesterID: 10,
		StartTime:   bookingStart,
		EndTime:     bookingEnd,
		Status:      domain.StatusActive,
	}
}

func newTestEnv(now time.Time) (*UseCase, *memBookingRepo, *memIntentRepo, *fakePromoter) {
	repo := &memBookingRepo{bookings: map[int64]*domain.Booking{1: activeBooking()}}
	intents := &memIntentRepo{}
	promoter := &fakePromoter{}

	uc := NewUseCase(repo, intents, promoter, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc, repo, intents, promoter
}

func TestExecute_CancelsAndTriggersPromotion(t *testing.T) {
	uc, repo, intents, promoter := newTestEnv(bookingStart.Add(-time.Hour))

	err := uc.Execute(context.Background(), &Request{
		BookingID:   1,
		RequesterID: 10,
		Reason:      ptr.Ptr("plans changed"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	require.NotNil(t, repo.bookings[1].CancellationReason)
	assert.Equal(t, "plans changed", *repo.bookings[1].CancellationReason)

	// Intent отмены записан
	require.Len(t, intents.intents, 1)
	intent := intents.intents[0]
	assert.Equal(t, domain.NotificationBookingCancelled, intent.Kind)
	assert.Equal(t, int64(10), intent.RecipientID)
	assert.Equal(t, "plans changed", intent.Context["reason"])

	// Промоушен запущен для освободившегося интервала
	uc.Wait()
	require.Len(t, promoter.calls, 1)
	call := promoter.calls[0]
	assert.Equal(t, int64(5), call.resourceID)
	assert.Equal(t, bookingStart, call.start)
	assert.Equal(t, bookingEnd, call.end)
}

func TestExecute_CancellationBoundary(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{
			name: "five minutes before start is allowed",
			now:  bookingStart.Add(-5 * time.Minute),
		},
		{
			name:    "exactly at start is rejected",
			now:     bookingStart,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "five minutes after start is rejected",
			now:     bookingStart.Add(5 * time.Minute),
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _, _ := newTestEnv(tt.now)

			err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 10})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			uc.Wait()
		})
	}
}

func TestExecute_OnlyOwnerCanCancel(t *testing.T) {
	uc, repo, _, promoter := newTestEnv(bookingStart.Add(-time.Hour))

	err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.StatusActive, repo.bookings[1].Status)

	uc.Wait()
	assert.Empty(t, promoter.calls)
}

func TestExecute_TerminalBookingCannotBeCancelled(t *testing.T) {
	for _, status := range domain.TerminalStatuses {
		t.Run(string(status), func(t *testing.T) {
			uc, repo, _, _ := newTestEnv(bookingStart.Add(-time.Hour))
			repo.bookings[1].Status = status

			err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 10})
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestExecute_LostRaceIsInvalidTransition(t *testing.T) {
	uc, repo, _, promoter := newTestEnv(bookingStart.Add(-time.Hour))

	// Бронирование перестало быть активным между чтением и условным UPDATE
	// (конкурентная отмена или sweep)
	repo.cancelErr = bookingRepository.ErrNotUpdated

	err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 10})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	uc.Wait()
	assert.Empty(t, promoter.calls)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _, _, _ := newTestEnv(bookingStart.Add(-time.Hour))

	err := uc.Execute(context.Background(), &Request{BookingID: 42, RequesterID: 10})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_PromotionFailureDoesNotAffectResult(t *testing.T) {
	repo := &memBookingRepo{bookings: map[int64]*domain.Booking{1: activeBooking()}}
	intents := &memIntentRepo{}

	uc := NewUseCase(repo, intents, &failingPromoter{}, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: bookingStart.Add(-time.Hour)}

	err := uc.Execute(context.Background(), &Request{BookingID: 1, RequesterID: 10})
	require.NoError(t, err)

	uc.Wait()
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
}

type failingPromoter struct{}

func (failingPromoter) OnIntervalFreed(context.Context, int64, time.Time, time.Time) error {
	return errors.New("promotion failed")
}
