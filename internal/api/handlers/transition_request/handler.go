package transition_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ensembleops/ERS-ReservationService/internal/api/handlers"
	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	transitionRequest "github.com/ensembleops/ERS-ReservationService/internal/usecase/transition_request"
)

const (
	msgInvalidRequestID  = "некорректный идентификатор заявки"
	msgRequestNotFound   = "заявка не найдена"
	msgInvalidTransition = "переход в этот статус недопустим"
)

type Handler struct {
	useCase TransitionRequestUseCase
	logger  Logger
}

func NewHandler(useCase TransitionRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleApprove POST /api/v1/reservation-requests/{requestId}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.RequestStatusApproved)
}

// HandleReject POST /api/v1/reservation-requests/{requestId}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.RequestStatusRejected)
}

// HandlePay POST /api/v1/reservation-requests/{requestId}/pay
func (h *Handler) HandlePay(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.RequestStatusPaid)
}

// HandleReturn POST /api/v1/reservation-requests/{requestId}/return
func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.RequestStatusReturned)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, target domain.RequestStatus) {
	requestID, err := strconv.ParseInt(mux.Vars(r)["requestId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &transitionRequest.Request{
		RequestID:    requestID,
		TargetStatus: target,
	})
	if err != nil {
		switch {
		case errors.Is(err, transitionRequest.ErrRequestNotFound):
			h.logger.Warn("POST /reservation-requests/{id}/%s - Request not found: request_id=%d", target, requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, transitionRequest.ErrInvalidTransition):
			h.logger.Warn("POST /reservation-requests/{id}/%s - Invalid transition: request_id=%d, error=%v",
				target, requestID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, transitionRequest.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestID)

		default:
			h.logger.Error("POST /reservation-requests/{id}/%s - Failed: request_id=%d, error=%v",
				target, requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservation-requests/{id}/%s - Request transitioned: request_id=%d", target, requestID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
