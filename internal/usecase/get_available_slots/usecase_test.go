package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/CB-ReservationService/internal/domain"
	"github.com/campushub/CB-ReservationService/internal/integrations/resourcecatalog"
	"github.com/campushub/CB-ReservationService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetActiveOverlapping(_ context.Context, _ int64, start, end time.Time) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.Overlaps(start, end) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeCatalogClient struct {
	resource *resourcecatalog.Resource
	err      error
}

func (f *fakeCatalogClient) GetResource(_ context.Context, _ int64) (*resourcecatalog.Resource, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resource, nil
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

// 2025-11-03 - понедельник
var testDate = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

func openResource() *resourcecatalog.Resource {
	day := resourcecatalog.DaySchedule{
		IsOpen:    true,
		OpenTime:  ptr.Ptr("08:00"),
		CloseTime: ptr.Ptr("22:00"),
	}
	return &resourcecatalog.Resource{
		ID:       1,
		Name:     "Study Room A",
		Type:     resourcecatalog.TypeRoom,
		IsActive: true,
		OperatingHours: resourcecatalog.WeeklySchedule{
			Monday:    day,
			Tuesday:   day,
			Wednesday: day,
			Thursday:  day,
			Friday:    day,
			Saturday:  resourcecatalog.DaySchedule{IsOpen: false},
			Sunday:    resourcecatalog.DaySchedule{IsOpen: false},
		},
	}
}

func newTestUseCase(repo *fakeBookingRepo, catalog *fakeCatalogClient, now time.Time) *UseCase {
	uc := NewUseCase(repo, catalog, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_FullDayWithOneBooking(t *testing.T) {
	// Ресурс открыт 08:00-22:00, шаг 60 минут, одно бронирование 10:00-12:00
	booking := &domain.Booking{
		ID:        42,
		Status:    domain.StatusActive,
		StartTime: testDate.Add(10 * time.Hour),
		EndTime:   testDate.Add(12 * time.Hour),
	}
	repo := &fakeBookingRepo{bookings: []*domain.Booking{booking}}
	catalog := &fakeCatalogClient{resource: openResource()}

	// Запрос накануне: все слоты в будущем
	uc := newTestUseCase(repo, catalog, testDate.Add(-2*time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:         1,
		Date:               testDate,
		GranularityMinutes: 60,
	})
	require.NoError(t, err)

	// 14 часов работы / 60 минут = 14 слотов
	require.Len(t, resp.Slots, 14)

	assert.Equal(t, testDate.Add(8*time.Hour), resp.Slots[0].StartTime)
	assert.Equal(t, testDate.Add(22*time.Hour), resp.Slots[13].EndTime)

	for _, slot := range resp.Slots {
		switch {
		case slot.StartTime.Equal(testDate.Add(10 * time.Hour)),
			slot.StartTime.Equal(testDate.Add(11 * time.Hour)):
			assert.False(t, slot.Available, "slot %s must be blocked", slot.StartTime)
			require.NotNil(t, slot.BlockingBookingID)
			assert.Equal(t, int64(42), *slot.BlockingBookingID)
		default:
			assert.True(t, slot.Available, "slot %s must be free", slot.StartTime)
			assert.Nil(t, slot.BlockingBookingID)
		}
	}
}

func TestExecute_TouchingBookingDoesNotBlock(t *testing.T) {
	// Бронирование 09:00-10:00 граничит со слотами 08:00-09:00 и 10:00-11:00
	booking := &domain.Booking{
		ID:        7,
		Status:    domain.StatusActive,
		StartTime: testDate.Add(9 * time.Hour),
		EndTime:   testDate.Add(10 * time.Hour),
	}
	repo := &fakeBookingRepo{bookings: []*domain.Booking{booking}}
	catalog := &fakeCatalogClient{resource: openResource()}
	uc := newTestUseCase(repo, catalog, testDate.Add(-time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:         1,
		Date:               testDate,
		GranularityMinutes: 60,
	})
	require.NoError(t, err)

	bySlotStart := map[time.Time]domain.TimeSlot{}
	for _, slot := range resp.Slots {
		bySlotStart[slot.StartTime] = slot
	}

	assert.True(t, bySlotStart[testDate.Add(8*time.Hour)].Available)
	assert.False(t, bySlotStart[testDate.Add(9*time.Hour)].Available)
	assert.True(t, bySlotStart[testDate.Add(10*time.Hour)].Available)
}

func TestExecute_PastSlotsUnavailable(t *testing.T) {
	repo := &fakeBookingRepo{}
	catalog := &fakeCatalogClient{resource: openResource()}

	// Сейчас 10:30: слоты до 10:00 включительно в прошлом,
	// частично начавшийся слот 10:00-11:00 ещё доступен
	uc := newTestUseCase(repo, catalog, testDate.Add(10*time.Hour+30*time.Minute))

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:         1,
		Date:               testDate,
		GranularityMinutes: 60,
	})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		if !slot.EndTime.After(testDate.Add(10*time.Hour + 30*time.Minute)) {
			assert.False(t, slot.Available, "past slot %s must be unavailable", slot.StartTime)
			assert.Nil(t, slot.BlockingBookingID)
		} else {
			assert.True(t, slot.Available, "future slot %s must be available", slot.StartTime)
		}
	}
}

func TestExecute_ClosedDayReturnsNoSlots(t *testing.T) {
	repo := &fakeBookingRepo{}
	catalog := &fakeCatalogClient{resource: openResource()}
	uc := newTestUseCase(repo, catalog, testDate)

	// 2025-11-08 - суббота, ресурс закрыт
	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:         1,
		Date:               time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC),
		GranularityMinutes: 60,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_InactiveResourceReturnsNoSlots(t *testing.T) {
	resource := openResource()
	resource.IsActive = false

	repo := &fakeBookingRepo{}
	catalog := &fakeCatalogClient{resource: resource}
	uc := newTestUseCase(repo, catalog, testDate)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:         1,
		Date:               testDate,
		GranularityMinutes: 60,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_GranularityMustDivideWindow(t *testing.T) {
	repo := &fakeBookingRepo{}
	catalog := &fakeCatalogClient{resource: openResource()}
	uc := newTestUseCase(repo, catalog, testDate)

	// 840 минут не делятся на 45 нацело
	_, err := uc.Execute(context.Background(), &Request{
		ResourceID:         1,
		Date:               testDate,
		GranularityMinutes: 45,
	})
	assert.ErrorIs(t, err, ErrInvalidGranularity)
}

func TestExecute_ResourceNotFound(t *testing.T) {
	repo := &fakeBookingRepo{}
	catalog := &fakeCatalogClient{err: resourcecatalog.ErrResourceNotFound}
	uc := newTestUseCase(repo, catalog, testDate)

	_, err := uc.Execute(context.Background(), &Request{
		ResourceID:         99,
		Date:               testDate,
		GranularityMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_InvalidRequest(t *testing.T) {
	tests := []struct {
		name     string
		req      *Request
		expected error
	}{
		{
			name:     "non-positive resource id",
			req:      &Request{ResourceID: 0, Date: testDate, GranularityMinutes: 60},
			expected: ErrInvalidInput,
		},
		{
			name:     "zero date",
			req:      &Request{ResourceID: 1, GranularityMinutes: 60},
			expected: ErrInvalidInput,
		},
		{
			name:     "non-positive granularity",
			req:      &Request{ResourceID: 1, Date: testDate, GranularityMinutes: 0},
			expected: ErrInvalidGranularity,
		},
		{
			name:     "granularity below minimum",
			req:      &Request{ResourceID: 1, Date: testDate, GranularityMinutes: domain.MinGranularityMinutes - 1},
			expected: ErrInvalidGranularity,
		},
		{
			name:     "granularity above maximum",
			req:      &Request{ResourceID: 1, Date: testDate, GranularityMinutes: domain.MaxGranularityMinutes + 1},
			expected: ErrInvalidGranularity,
		},
	}

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogClient{resource: openResource()}, testDate)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
