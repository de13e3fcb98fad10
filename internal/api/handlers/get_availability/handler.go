package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ensembleops/ERS-ReservationService/internal/api/handlers"
	getAvailability "github.com/ensembleops/ERS-ReservationService/internal/usecase/get_availability"
)

const (
	msgInvalidInstrumentID = "некорректный идентификатор инструмента"
	msgInvalidDates        = "некорректный формат дат, ожидается YYYY-MM-DD"
	msgInvalidPeriod       = "дата начала не может быть позже даты окончания"
	msgInstrumentNotFound  = "инструмент не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/instruments/{instrumentId}/availability?startDate=...&endDate=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	instrumentID, err := strconv.ParseInt(mux.Vars(r)["instrumentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /instruments/{id}/availability - Invalid instrument ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInstrumentID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(instrumentID, query.Get("startDate"), query.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /instruments/{id}/availability - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInstrumentNotFound):
			h.logger.Warn("GET /instruments/{id}/availability - Instrument not found: instrument_id=%d", instrumentID)
			handlers.RespondNotFound(w, msgInstrumentNotFound)

		case errors.Is(err, getAvailability.ErrInvalidPeriod):
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInstrumentID)

		default:
			h.logger.Error("GET /instruments/{id}/availability - Failed: instrument_id=%d, error=%v", instrumentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
