package transition_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ensembleops/ERS-ReservationService/internal/api/handlers"
	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	transitionBooking "github.com/ensembleops/ERS-ReservationService/internal/usecase/transition_booking"
	"github.com/ensembleops/ERS-ReservationService/pkg/txmanager"
)

const (
	msgInvalidBookingID  = "некорректный идентификатор бронирования"
	msgBookingNotFound   = "бронирование не найдено"
	msgInvalidTransition = "переход в этот статус недопустим"
	msgWindowConflict    = "временное окно пересекается с уже одобренным бронированием"

	retryAfterSeconds = 1
)

type Handler struct {
	useCase TransitionBookingUseCase
	logger  Logger
}

func NewHandler(useCase TransitionBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleApprove POST /api/v1/bookings/{bookingId}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.BookingStatusApproved)
}

// HandleReject POST /api/v1/bookings/{bookingId}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.BookingStatusRejected)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, target domain.BookingStatus) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &transitionBooking.Request{
		BookingID:    bookingID,
		TargetStatus: target,
	})
	if err != nil {
		var conflictErr *transitionBooking.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Info("POST /bookings/{id}/%s - Window conflict: booking_id=%d, conflicts=%d",
				target, bookingID, len(conflictErr.Conflicts))
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgWindowConflict,
				FromConflicts(conflictErr.Conflicts))

		case errors.Is(err, transitionBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/%s - Booking not found: booking_id=%d", target, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, transitionBooking.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/%s - Invalid transition: booking_id=%d, error=%v",
				target, bookingID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, transitionBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, txmanager.ErrTxBusy):
			h.logger.Warn("POST /bookings/{id}/%s - Transaction busy: booking_id=%d", target, bookingID)
			handlers.RespondServiceUnavailable(w, retryAfterSeconds)

		default:
			h.logger.Error("POST /bookings/{id}/%s - Failed: booking_id=%d, error=%v", target, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/%s - Booking transitioned: booking_id=%d", target, bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
