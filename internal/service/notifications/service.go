package notifications

import (
	"context"
	"fmt"

	"github.com/campushub/CB-ReservationService/internal/domain"
	"github.com/campushub/CB-ReservationService/internal/integrations/deliveryservice"
	"github.com/campushub/CB-ReservationService/pkg/metrics"
)

// Service диспетчер notification outbox
// Передает накопленные intent'ы сервису доставки хотя бы один раз:
// intent помечается dispatched только после успешной передачи, поэтому сбой
// доставки оставляет его в очереди до следующего прохода
type Service struct {
	notificationRepo NotificationRepository
	deliveryClient   DeliveryClient
	timeProvider     TimeProvider
	logger           Logger
	metrics          *metrics.Metrics
	batchSize        uint64
}

// NewService создает новый экземпляр диспетчера уведомлений
func NewService(
	notificationRepo NotificationRepository,
	deliveryClient DeliveryClient,
	batchSize uint64,
	m *metrics.Metrics,
	logger Logger,
) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		deliveryClient:   deliveryClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		metrics:          m,
		batchSize:        batchSize,
	}
}

// DispatchPending передает очередную пачку недоставленных intent'ов
// Возвращает число успешно переданных; ошибка отдельного intent'а не
// прерывает проход
func (s *Service) DispatchPending(ctx context.Context) (int, error) {
	pending, err := s.notificationRepo.GetPending(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("DispatchPending: failed to get pending intents: %v", err)
		return 0, fmt.Errorf("%w: DispatchPending - repository error: %v", ErrInternal, err)
	}

	if len(pending) == 0 {
		return 0, nil
	}

	dispatched := 0
	for _, intent := range pending {
		if err := s.dispatchOne(ctx, intent); err != nil {
			s.logger.Error("DispatchPending: failed to dispatch intent id=%d (key=%s): %v",
				intent.ID, intent.IntentKey, err)
			s.observe(intent.Kind, "error")
			continue
		}
		dispatched++
		s.observe(intent.Kind, "ok")
	}

	s.logger.Info("DispatchPending: dispatched %d of %d pending intents", dispatched, len(pending))
	return dispatched, nil
}

// dispatchOne передает один intent и помечает его доставленным
func (s *Service) dispatchOne(ctx context.Context, intent *domain.NotificationIntent) error {
	notification := &deliveryservice.Notification{
		IntentKey:       intent.IntentKey.String(),
		RecipientID:     intent.RecipientID,
		Kind:            string(intent.Kind),
		BookingID:       intent.BookingID,
		WaitlistEntryID: intent.WaitlistEntryID,
		ResourceID:      intent.ResourceID,
		OccursAt:        intent.OccursAt,
		Context:         intent.Context,
	}

	if err := s.deliveryClient.Deliver(ctx, notification); err != nil {
		return err
	}

	// Сбой между Deliver и MarkDispatched дает повторную передачу на следующем
	// проходе; получатель дедуплицирует по intent key
	if err := s.notificationRepo.MarkDispatched(ctx, intent.ID, s.timeProvider.Now()); err != nil {
		return err
	}

	return nil
}

func (s *Service) observe(kind domain.NotificationKind, status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.NotificationsDispatch.WithLabelValues(string(kind), status).Inc()
}
