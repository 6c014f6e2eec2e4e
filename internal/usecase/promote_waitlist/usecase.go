package promote_waitlist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/CB-ReservationService/internal/domain"
)

// UseCase use case промоушена листа ожидания
// Когда на ресурсе освобождается интервал, промоушен получает самая ранняя
// открытая заявка, чей желаемый интервал целиком помещается в освободившийся.
// На одно освобождение промоутится не больше одной заявки: промоушен это
// предложение, а не бронирование, и двойное предложение одного слота создало
// бы конфликт
type UseCase struct {
	waitlistRepo     WaitlistRepository
	notificationRepo NotificationRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	waitlistRepo WaitlistRepository,
	notificationRepo NotificationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		waitlistRepo:     waitlistRepo,
		notificationRepo: notificationRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// OnIntervalFreed обрабатывает освобождение интервала на ресурсе:
// выбирает заявку для промоушена и пишет intent в outbox.
// Отсутствие подходящей заявки не считается ошибкой
func (uc *UseCase) OnIntervalFreed(ctx context.Context, resourceID int64, freedStart, freedEnd time.Time) error {
	if resourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}
	if !freedEnd.After(freedStart) {
		return fmt.Errorf("%w: freed interval is empty", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	// Выбор и промоушен в одной сериализуемой транзакции: конкурентные
	// освобождения на одном ресурсе не промоутят одну заявку дважды
	return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Открытые непросроченные заявки ресурса, от самой ранней (FOR UPDATE)
		entries, err := uc.waitlistRepo.GetOpenByResource(txCtx, resourceID, now)
		if err != nil {
			uc.logger.Error("PromoteWaitlist: failed to get open entries for resource=%d: %v", resourceID, err)
			return fmt.Errorf("%w: failed to get open entries: %v", ErrInternal, err)
		}

		// 2. Первая заявка, чей интервал целиком помещается в освободившийся
		var candidate *domain.WaitlistEntry
		for _, entry := range entries {
			if entry.MatchesFreedInterval(freedStart, freedEnd) {
				candidate = entry
				break
			}
		}

		if candidate == nil {
			uc.logger.Info("PromoteWaitlist: no matching entry for resource=%d, interval=[%s, %s)",
				resourceID, freedStart.Format("2006-01-02 15:04"), freedEnd.Format("2006-01-02 15:04"))
			return nil
		}

		// 3. Переводим заявку в promoted
		if err := uc.waitlistRepo.MarkPromoted(txCtx, candidate.ID, now); err != nil {
			uc.logger.Error("PromoteWaitlist: failed to mark entry id=%d promoted: %v", candidate.ID, err)
			return fmt.Errorf("%w: failed to mark entry promoted: %v", ErrInternal, err)
		}

		// 4. Intent о доступности пишется в outbox той же транзакцией
		intent := &domain.NotificationIntent{
			IntentKey:       uuid.New(),
			RecipientID:     candidate.RequesterID,
			Kind:            domain.NotificationWaitlistAvailable,
			WaitlistEntryID: &candidate.ID,
			ResourceID:      candidate.ResourceID,
			OccursAt:        candidate.DesiredStart,
			Context: map[string]string{
				"desiredStart": candidate.DesiredStart.Format(time.RFC3339),
				"desiredEnd":   candidate.DesiredEnd.Format(time.RFC3339),
			},
		}

		if _, err := uc.notificationRepo.Create(txCtx, intent); err != nil {
			uc.logger.Error("PromoteWaitlist: failed to create notification intent: %v", err)
			return fmt.Errorf("%w: failed to create notification intent: %v", ErrInternal, err)
		}

		uc.logger.Info("PromoteWaitlist: promoted entry id=%d (requester=%d) on resource=%d",
			candidate.ID, candidate.RequesterID, resourceID)
		return nil
	})
}

// SweepExpired переводит просроченные открытые заявки в expired.
// Идемпотентна: повторный запуск над теми же данными ничего не меняет
func (uc *UseCase) SweepExpired(ctx context.Context) (int64, error) {
	now := uc.timeProvider.Now()

	expired, err := uc.waitlistRepo.ExpireOpenBefore(ctx, now)
	if err != nil {
		uc.logger.Error("PromoteWaitlist: failed to expire entries: %v", err)
		return 0, fmt.Errorf("%w: failed to expire entries: %v", ErrInternal, err)
	}

	if expired > 0 {
		uc.logger.Info("PromoteWaitlist: expired %d waitlist entries", expired)
	}
	return expired, nil
}
