package promote_waitlist

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/CB-ReservationService/internal/domain"
	waitlistRepository "github.com/campushub/CB-ReservationService/internal/infra/storage/waitlist"
)

type memWaitlistRepo struct {
	entries map[int64]*domain.WaitlistEntry
}

func (r *memWaitlistRepo) GetOpenByResource(_ context.Context, resourceID int64, now time.Time) ([]*domain.WaitlistEntry, error) {
	var result []*domain.WaitlistEntry
	for _, entry := range r.entries {
		if entry.ResourceID == resourceID && entry.IsOpen() && !entry.IsExpiredAt(now) {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memWaitlistRepo) MarkPromoted(_ context.Context, id int64, promotedAt time.Time) error {
	entry, ok := r.entries[id]
	if !ok || !entry.IsOpen() {
		return waitlistRepository.ErrNotUpdated
	}
	entry.Status = domain.WaitlistPromoted
	entry.PromotedAt = &promotedAt
	return nil
}

func (r *memWaitlistRepo) ExpireOpenBefore(_ context.Context, now time.Time) (int64, error) {
	var expired int64
	for _, entry := range r.entries {
		if entry.IsOpen() && entry.IsExpiredAt(now) {
			entry.Status = domain.WaitlistExpired
			expired++
		}
	}
	return expired, nil
}

type memIntentRepo struct {
	intents []*domain.NotificationIntent
}

func (r *memIntentRepo) Create(_ context.Context, intent *domain.NotificationIntent) (*domain.NotificationIntent, error) {
	created := *intent
	created.ID = int64(len(r.intents) + 1)
	r.intents = append(r.intents, &created)
	return &created, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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
	testNow    = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	freedStart = time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	freedEnd   = time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
)

func openEntry(id int64, createdAt time.Time, start, end time.Time) *domain.WaitlistEntry {
	return &domain.WaitlistEntry{
		ID:           id,
		ResourceID:   5,
		RequesterID:  100 + id,
		DesiredStart: start,
		DesiredEnd:   end,
		Status:       domain.WaitlistOpen,
		ExpiresAt:    testNow.AddDate(0, 0, 7),
		CreatedAt:    createdAt,
	}
}

func newTestEnv(entries ...*domain.WaitlistEntry) (*UseCase, *memWaitlistRepo, *memIntentRepo) {
	repo := &memWaitlistRepo{entries: map[int64]*domain.WaitlistEntry{}}
	for _, entry := range entries {
		repo.entries[entry.ID] = entry
	}
	intents := &memIntentRepo{}

	uc := NewUseCase(repo, intents, passthroughTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc, repo, intents
}

func TestOnIntervalFreed_PromotesEarliestMatching(t *testing.T) {
	// Вторая по времени создания заявка тоже подходит, но промоутится первая
	first := openEntry(1, testNow.Add(-2*time.Hour), freedStart, freedEnd)
	second := openEntry(2, testNow.Add(-time.Hour), freedStart, freedStart.Add(time.Hour))

	uc, repo, intents := newTestEnv(first, second)

	err := uc.OnIntervalFreed(context.Background(), 5, freedStart, freedEnd)
	require.NoError(t, err)

	assert.Equal(t, domain.WaitlistPromoted, repo.entries[1].Status)
	assert.Equal(t, domain.WaitlistOpen, repo.entries[2].Status)

	// Intent о доступности записан для владельца промоутнутой заявки
	require.Len(t, intents.intents, 1)
	intent := intents.intents[0]
	assert.Equal(t, domain.NotificationWaitlistAvailable, intent.Kind)
	assert.Equal(t, first.RequesterID, intent.RecipientID)
	require.NotNil(t, intent.WaitlistEntryID)
	assert.Equal(t, int64(1), *intent.WaitlistEntryID)
}

func TestOnIntervalFreed_RequiresContainment(t *testing.T) {
	// Заявка пересекается с освободившимся интервалом, но выходит за его пределы
	overlapping := openEntry(1, testNow.Add(-time.Hour), freedStart.Add(time.Hour), freedEnd.Add(time.Hour))

	uc, repo, intents := newTestEnv(overlapping)

	err := uc.OnIntervalFreed(context.Background(), 5, freedStart, freedEnd)
	require.NoError(t, err)

	assert.Equal(t, domain.WaitlistOpen, repo.entries[1].Status)
	assert.Empty(t, intents.intents)
}

func TestOnIntervalFreed_AtMostOnePromotion(t *testing.T) {
	// Обе заявки помещаются в освободившийся интервал, промоутится только одна
	first := openEntry(1, testNow.Add(-2*time.Hour), freedStart, freedStart.Add(time.Hour))
	second := openEntry(2, testNow.Add(-time.Hour), freedStart.Add(time.Hour), freedEnd)

	uc, repo, intents := newTestEnv(first, second)

	err := uc.OnIntervalFreed(context.Background(), 5, freedStart, freedEnd)
	require.NoError(t, err)

	assert.Equal(t, domain.WaitlistPromoted, repo.entries[1].Status)
	assert.Equal(t, domain.WaitlistOpen, repo.entries[2].Status)
	assert.Len(t, intents.intents, 1)
}

func TestOnIntervalFreed_SkipsExpiredEntries(t *testing.T) {
	expired := openEntry(1, testNow.Add(-2*time.Hour), freedStart, freedEnd)
	expired.ExpiresAt = testNow.Add(-time.Minute)

	uc, repo, intents := newTestEnv(expired)

	err := uc.OnIntervalFreed(context.Background(), 5, freedStart, freedEnd)
	require.NoError(t, err)

	assert.Equal(t, domain.WaitlistOpen, repo.entries[1].Status)
	assert.Empty(t, intents.intents)
}

func TestOnIntervalFreed_NoCandidatesIsNotAnError(t *testing.T) {
	uc, _, intents := newTestEnv()

	err := uc.OnIntervalFreed(context.Background(), 5, freedStart, freedEnd)
	require.NoError(t, err)
	assert.Empty(t, intents.intents)
}

func TestSweepExpired_Idempotent(t *testing.T) {
	stale := openEntry(1, testNow.Add(-48*time.Hour), freedStart, freedEnd)
	stale.ExpiresAt = testNow.Add(-time.Hour)
	fresh := openEntry(2, testNow.Add(-time.Hour), freedStart, freedEnd)

	uc, repo, _ := newTestEnv(stale, fresh)

	expired, err := uc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)
	assert.Equal(t, domain.WaitlistExpired, repo.entries[1].Status)
	assert.Equal(t, domain.WaitlistOpen, repo.entries[2].Status)

	// Повторный запуск ничего не меняет
	expired, err = uc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), expired)
}
