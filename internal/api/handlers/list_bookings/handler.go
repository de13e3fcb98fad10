package list_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/api/handlers"
	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/internal/service/bookings"
	"github.com/ensembleops/ERS-ReservationService/internal/service/bookings/models"
)

const (
	msgInvalidFilter = "некорректные параметры фильтра"
	msgInvalidDates  = "некорректный формат дат, ожидается YYYY-MM-DD"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?startDate=...&endDate=...&status=...&requesterId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListBookingsRequest{}

	query := r.URL.Query()

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDates)
			return
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDates)
			return
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if requesterIDStr := query.Get("requesterId"); requesterIDStr != "" {
		requesterID, err := strconv.ParseInt(requesterIDStr, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.RequesterID = &requesterID
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
