package get_instrument

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ensembleops/ERS-ReservationService/internal/api/handlers"
	"github.com/ensembleops/ERS-ReservationService/internal/service/catalog"
)

const (
	msgInvalidInstrumentID = "некорректный идентификатор инструмента"
	msgInstrumentNotFound  = "инструмент не найден"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/instruments/{instrumentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	instrumentID, err := strconv.ParseInt(mux.Vars(r)["instrumentId"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidInstrumentID)
		return
	}

	result, err := h.service.GetByID(r.Context(), instrumentID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInstrumentNotFound):
			h.logger.Warn("GET /instruments/{id} - Instrument not found: instrument_id=%d", instrumentID)
			handlers.RespondNotFound(w, msgInstrumentNotFound)
		default:
			h.logger.Error("GET /instruments/{id} - Failed: instrument_id=%d, error=%v", instrumentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
