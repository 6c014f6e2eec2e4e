package check_in_booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/campushub/CB-ReservationService/internal/api/handlers"
	"github.com/campushub/CB-ReservationService/internal/api/middleware"
	checkInBooking "github.com/campushub/CB-ReservationService/internal/usecase/check_in_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgCannotCheckIn    = "отметка о прибытии невозможна"
)

// CheckInResponse HTTP response model
type CheckInResponse struct {
	BookingID   int64  `json:"bookingId"`
	CheckInTime string `json:"checkInTime"`
}

type Handler struct {
	useCase CheckInBookingUseCase
	logger  Logger
}

func NewHandler(useCase CheckInBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/check-in - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/check-in - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Отмечаем прибытие
	result, err := h.useCase.Execute(r.Context(), &checkInBooking.Request{
		BookingID:   bookingID,
		RequesterID: requesterID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkInBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/check-in - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkInBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/check-in - Access denied: booking_id=%d, user_id=%d",
				bookingID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkInBooking.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/check-in - Cannot check in: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotCheckIn)

		case errors.Is(err, checkInBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/check-in - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /bookings/{id}/check-in - Failed to check in: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/check-in - Checked in successfully: booking_id=%d, user_id=%d",
		bookingID, requesterID)
	handlers.RespondJSON(w, http.StatusOK, &CheckInResponse{
		BookingID:   result.BookingID,
		CheckInTime: result.CheckInTime.Format(time.RFC3339),
	})
}
