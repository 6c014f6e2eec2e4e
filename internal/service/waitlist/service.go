package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushub/CB-ReservationService/internal/domain"
	waitlistRepo "github.com/campushub/CB-ReservationService/internal/infra/storage/waitlist"
	"github.com/campushub/CB-ReservationService/internal/service/waitlist/models"
)

// Service сервис для работы с листом ожидания
type Service struct {
	waitlistRepo WaitlistRepository
	timeProvider TimeProvider
	logger       Logger
	expiryDays   int
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(waitlistRepo WaitlistRepository, expiryDays int, logger Logger) *Service {
	return &Service{
		waitlistRepo: waitlistRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		expiryDays:   expiryDays,
	}
}

// Join ставит пользователя в лист ожидания на желаемый интервал
// Запись истекает через настроенное число дней, если её не промоутят раньше
func (s *Service) Join(ctx context.Context, req *models.JoinWaitlistRequest) (*models.WaitlistEntryResponse, error) {
	s.logger.Info("Join: requester=%d, resource=%d, interval=[%s, %s)",
		req.RequesterID, req.ResourceID,
		req.DesiredStart.Format("2006-01-02 15:04"), req.DesiredEnd.Format("2006-01-02 15:04"))

	now := s.timeProvider.Now()

	if err := validateJoinRequest(req, now); err != nil {
		s.logger.Warn("Join: validation failed: %v", err)
		return nil, err
	}

	entry := &domain.WaitlistEntry{
		ResourceID:   req.ResourceID,
		RequesterID:  req.RequesterID,
		DesiredStart: req.DesiredStart,
		DesiredEnd:   req.DesiredEnd,
		Status:       domain.WaitlistOpen,
		ExpiresAt:    now.AddDate(0, 0, s.expiryDays),
	}

	created, err := s.waitlistRepo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Join: failed to create entry: %v", err)
		return nil, fmt.Errorf("%w: Join - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Join: successfully created entry id=%d", created.ID)
	return models.FromDomainEntry(created), nil
}

// CancelEntry отменяет открытую запись листа ожидания
// Отменить запись может только её владелец; промоутнутую или истёкшую
// запись отменить нельзя
func (s *Service) CancelEntry(ctx context.Context, id int64, requesterID int64) error {
	s.logger.Info("CancelEntry: entry=%d, requester=%d", id, requesterID)

	if id <= 0 || requesterID <= 0 {
		return fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	entry, err := s.waitlistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("CancelEntry: entry id=%d not found", id)
			return ErrEntryNotFound
		}
		s.logger.Error("CancelEntry: repository error for entry id=%d: %v", id, err)
		return fmt.Errorf("%w: CancelEntry - repository error: %v", ErrInternal, err)
	}

	if entry.RequesterID != requesterID {
		s.logger.Warn("CancelEntry: access denied for requester=%d to entry id=%d", requesterID, id)
		return ErrAccessDenied
	}

	if !entry.IsOpen() {
		s.logger.Warn("CancelEntry: entry id=%d is not open (status=%s)", id, entry.Status)
		return ErrEntryNotOpen
	}

	if err := s.waitlistRepo.CancelIfOpen(ctx, id); err != nil {
		// Гонка с промоушеном или sweep: запись перестала быть открытой
		if errors.Is(err, waitlistRepo.ErrNotUpdated) {
			return ErrEntryNotOpen
		}
		s.logger.Error("CancelEntry: failed to cancel entry id=%d: %v", id, err)
		return fmt.Errorf("%w: CancelEntry - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelEntry: successfully cancelled entry id=%d", id)
	return nil
}

// GetUserEntries получает записи листа ожидания пользователя
func (s *Service) GetUserEntries(ctx context.Context, requesterID int64) (*models.WaitlistListResponse, error) {
	s.logger.Info("GetUserEntries: fetching entries for requester=%d", requesterID)

	if requesterID <= 0 {
		return nil, fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	entries, err := s.waitlistRepo.GetByRequester(ctx, requesterID)
	if err != nil {
		s.logger.Error("GetUserEntries: repository error for requester=%d: %v", requesterID, err)
		return nil, fmt.Errorf("%w: GetUserEntries - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserEntries: successfully fetched %d entries for requester=%d", len(entries), requesterID)
	return models.FromDomainEntryList(entries), nil
}

// validateJoinRequest валидирует запрос на постановку в лист ожидания
func validateJoinRequest(req *models.JoinWaitlistRequest, now time.Time) error {
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.DesiredStart.IsZero() || req.DesiredEnd.IsZero() {
		return fmt.Errorf("%w: desiredStart and desiredEnd are required", ErrInvalidInput)
	}

	if !req.DesiredEnd.After(req.DesiredStart) {
		return ErrInvalidInterval
	}

	if req.DesiredStart.Before(now) {
		return fmt.Errorf("%w: desired interval is in the past", ErrInvalidInterval)
	}

	return nil
}
