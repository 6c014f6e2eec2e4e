package models

import (
	"time"

	"github.com/campushub/CB-ReservationService/internal/domain"
)

// Request модели

// JoinWaitlistRequest запрос на постановку в лист ожидания
type JoinWaitlistRequest struct {
	RequesterID  int64     `json:"requesterId"`
	ResourceID   int64     `json:"resourceId"`
	DesiredStart time.Time `json:"desiredStart"`
	DesiredEnd   time.Time `json:"desiredEnd"`
}

// Response модели

// WaitlistEntryResponse ответ с данными записи листа ожидания
type WaitlistEntryResponse struct {
	ID           int64      `json:"id"`
	ResourceID   int64      `json:"resourceId"`
	RequesterID  int64      `json:"requesterId"`
	DesiredStart time.Time  `json:"desiredStart"`
	DesiredEnd   time.Time  `json:"desiredEnd"`
	Status       string     `json:"status"`
	ExpiresAt    time.Time  `json:"expiresAt"`
	PromotedAt   *time.Time `json:"promotedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// WaitlistListResponse ответ со списком записей листа ожидания
type WaitlistListResponse struct {
	Entries []*WaitlistEntryResponse `json:"entries"`
	Total   int                      `json:"total"`
}

// FromDomainEntry конвертирует domain.WaitlistEntry в WaitlistEntryResponse
func FromDomainEntry(e *domain.WaitlistEntry) *WaitlistEntryResponse {
	return &WaitlistEntryResponse{
		ID:           e.ID,
		ResourceID:   e.ResourceID,
		RequesterID:  e.RequesterID,
		DesiredStart: e.DesiredStart,
		DesiredEnd:   e.DesiredEnd,
		Status:       string(e.Status),
		ExpiresAt:    e.ExpiresAt,
		PromotedAt:   e.PromotedAt,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// FromDomainEntryList конвертирует список domain.WaitlistEntry в WaitlistListResponse
func FromDomainEntryList(entries []*domain.WaitlistEntry) *WaitlistListResponse {
	result := make([]*WaitlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, FromDomainEntry(e))
	}
	return &WaitlistListResponse{
		Entries: result,
		Total:   len(result),
	}
}
