package cancel_waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/campushub/CB-ReservationService/internal/api/handlers"
	"github.com/campushub/CB-ReservationService/internal/api/middleware"
	"github.com/campushub/CB-ReservationService/internal/service/waitlist"
)

const (
	msgInvalidEntryID = "некорректный ID записи"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "запись листа ожидания не найдена"
	msgForbidden      = "доступ запрещен"
	msgNotOpen        = "запись листа ожидания уже закрыта"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/waitlist/{entryId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем entryId из URL
	vars := mux.Vars(r)
	entryIDStr := vars["entryId"]

	entryID, err := strconv.ParseInt(entryIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /waitlist/{id}/cancel - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /waitlist/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Отменяем запись
	err = h.service.CancelEntry(r.Context(), entryID, requesterID)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrEntryNotFound):
			h.logger.Warn("PATCH /waitlist/{id}/cancel - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, waitlist.ErrAccessDenied):
			h.logger.Warn("PATCH /waitlist/{id}/cancel - Access denied: entry_id=%d, user_id=%d",
				entryID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, waitlist.ErrEntryNotOpen):
			h.logger.Warn("PATCH /waitlist/{id}/cancel - Entry not open: entry_id=%d", entryID)
			handlers.RespondConflict(w, msgNotOpen)

		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("PATCH /waitlist/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /waitlist/{id}/cancel - Failed to cancel entry: entry_id=%d, error=%v",
				entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /waitlist/{id}/cancel - Entry cancelled successfully: entry_id=%d, user_id=%d",
		entryID, requesterID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
