package get_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ensembleops/ERS-ReservationService/internal/api/handlers"
	"github.com/ensembleops/ERS-ReservationService/internal/api/middleware"
	"github.com/ensembleops/ERS-ReservationService/internal/service/requests"
)

const (
	msgInvalidRequestID = "некорректный идентификатор заявки"
	msgRequestNotFound  = "заявка не найдена"
	msgAccessDenied     = "нет доступа к этой заявке"
	msgUnauthorized     = "пользователь не аутентифицирован"
)

type Handler struct {
	service RequestsService
	logger  Logger
}

func NewHandler(service RequestsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservation-requests/{requestId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	requestID, err := strconv.ParseInt(mux.Vars(r)["requestId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	result, err := h.service.GetByID(r.Context(), requestID, userID)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrRequestNotFound):
			h.logger.Warn("GET /reservation-requests/{id} - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, requests.ErrAccessDenied):
			h.logger.Warn("GET /reservation-requests/{id} - Access denied: request_id=%d, user_id=%d", requestID, userID)
			handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)

		default:
			h.logger.Error("GET /reservation-requests/{id} - Failed: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
