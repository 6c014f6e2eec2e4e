package waitlist

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/CB-ReservationService/internal/domain"
	waitlistRepo "github.com/campushub/CB-ReservationService/internal/infra/storage/waitlist"
	"github.com/campushub/CB-ReservationService/internal/service/waitlist/models"
)

type memWaitlistRepo struct {
	nextID  int64
	entries map[int64]*domain.WaitlistEntry
}

func (r *memWaitlistRepo) Create(_ context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	r.nextID++
	created := *entry
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.entries[created.ID] = &created

	copied := created
	return &copied, nil
}

func (r *memWaitlistRepo) GetByID(_ context.Context, id int64) (*domain.WaitlistEntry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, waitlistRepo.ErrEntryNotFound
	}
	copied := *entry
	return &copied, nil
}

func (r *memWaitlistRepo) GetByRequester(_ context.Context, requesterID int64) ([]*domain.WaitlistEntry, error) {
	var result []*domain.WaitlistEntry
	for _, entry := range r.entries {
		if entry.RequesterID == requesterID {
			copied := *entry
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memWaitlistRepo) CancelIfOpen(_ context.Context, id int64) error {
	entry, ok := r.entries[id]
	if !ok || !entry.IsOpen() {
		return waitlistRepo.ErrNotUpdated
	}
	entry.Status = domain.WaitlistCancelled
	return nil
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

const testExpiryDays = 7

var testNow = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

func newTestService() (*Service, *memWaitlistRepo) {
	repo := &memWaitlistRepo{entries: map[int64]*domain.WaitlistEntry{}}

	svc := NewService(repo, testExpiryDays, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: testNow}
	return svc, repo
}

func validJoinRequest() *models.JoinWaitlistRequest {
	return &models.JoinWaitlistRequest{
		RequesterID:  10,
		ResourceID:   5,
		DesiredStart: testNow.Add(2 * time.Hour),
		DesiredEnd:   testNow.Add(4 * time.Hour),
	}
}

func TestJoin_CreatesOpenEntryWithExpiry(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Join(context.Background(), validJoinRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.WaitlistOpen), resp.Status)
	assert.Equal(t, testNow.AddDate(0, 0, testExpiryDays), resp.ExpiresAt)

	entry, ok := repo.entries[resp.ID]
	require.True(t, ok)
	assert.Equal(t, domain.WaitlistOpen, entry.Status)
}

func TestJoin_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(req *models.JoinWaitlistRequest)
		expected error
	}{
		{
			name:     "non-positive requester",
			mutate:   func(req *models.JoinWaitlistRequest) { req.RequesterID = 0 },
			expected: ErrInvalidInput,
		},
		{
			name:     "non-positive resource",
			mutate:   func(req *models.JoinWaitlistRequest) { req.ResourceID = -1 },
			expected: ErrInvalidInput,
		},
		{
			name:     "missing interval",
			mutate:   func(req *models.JoinWaitlistRequest) { req.DesiredStart = time.Time{} },
			expected: ErrInvalidInput,
		},
		{
			name:     "end before start",
			mutate:   func(req *models.JoinWaitlistRequest) { req.DesiredEnd = req.DesiredStart.Add(-time.Hour) },
			expected: ErrInvalidInterval,
		},
		{
			name:     "empty interval",
			mutate:   func(req *models.JoinWaitlistRequest) { req.DesiredEnd = req.DesiredStart },
			expected: ErrInvalidInterval,
		},
		{
			name: "interval in past",
			mutate: func(req *models.JoinWaitlistRequest) {
				req.DesiredStart = testNow.Add(-2 * time.Hour)
				req.DesiredEnd = testNow.Add(-time.Hour)
			},
			expected: ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()
			req := validJoinRequest()
			tt.mutate(req)

			_, err := svc.Join(context.Background(), req)
			assert.ErrorIs(t, err, tt.expected)
			assert.Empty(t, repo.entries)
		})
	}
}

func TestCancelEntry_OwnerOnly(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Join(context.Background(), validJoinRequest())
	require.NoError(t, err)

	err = svc.CancelEntry(context.Background(), resp.ID, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.WaitlistOpen, repo.entries[resp.ID].Status)

	err = svc.CancelEntry(context.Background(), resp.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.WaitlistCancelled, repo.entries[resp.ID].Status)
}

func TestCancelEntry_NonOpenStatuses(t *testing.T) {
	for _, status := range []domain.WaitlistStatus{
		domain.WaitlistPromoted,
		domain.WaitlistExpired,
		domain.WaitlistCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			svc, repo := newTestService()

			resp, err := svc.Join(context.Background(), validJoinRequest())
			require.NoError(t, err)
			repo.entries[resp.ID].Status = status

			err = svc.CancelEntry(context.Background(), resp.ID, 10)
			assert.ErrorIs(t, err, ErrEntryNotOpen)
		})
	}
}

func TestCancelEntry_NotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.CancelEntry(context.Background(), 42, 10)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestGetUserEntries_FiltersByRequester(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Join(context.Background(), validJoinRequest())
	require.NoError(t, err)

	other := validJoinRequest()
	other.RequesterID = 20
	_, err = svc.Join(context.Background(), other)
	require.NoError(t, err)

	resp, err := svc.GetUserEntries(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(10), resp.Entries[0].RequesterID)
}
