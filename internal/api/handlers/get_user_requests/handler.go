package get_user_requests

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ensembleops/ERS-ReservationService/internal/api/handlers"
	"github.com/ensembleops/ERS-ReservationService/internal/api/middleware"
	"github.com/ensembleops/ERS-ReservationService/internal/service/requests"
	"github.com/ensembleops/ERS-ReservationService/internal/service/requests/models"
)

const (
	msgInvalidFilter = "некорректные параметры фильтра"
	msgUnauthorized  = "пользователь не аутентифицирован"
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

// Handle GET /api/v1/reservation-requests?status=...&instrumentId=...
// Возвращает заявки аутентифицированного пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	req := &models.GetUserRequestsRequest{UserID: userID}

	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if instrumentIDStr := query.Get("instrumentId"); instrumentIDStr != "" {
		instrumentID, err := strconv.ParseInt(instrumentIDStr, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.InstrumentID = &instrumentID
	}

	result, err := h.service.GetUserRequests(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("GET /reservation-requests - Invalid filter: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /reservation-requests - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
