package create_reservation_cart

import (
	"errors"
	"net/http"

	"github.com/ensembleops/ERS-ReservationService/internal/api/handlers"
	"github.com/ensembleops/ERS-ReservationService/internal/api/middleware"
	createCart "github.com/ensembleops/ERS-ReservationService/internal/usecase/create_reservation_cart"
	"github.com/ensembleops/ERS-ReservationService/pkg/txmanager"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDates         = "некорректный формат дат, ожидается YYYY-MM-DD"
	msgInvalidPeriod        = "дата начала не может быть позже даты окончания"
	msgInvalidInput         = "некорректные параметры корзины"
	msgInstrumentNotFound   = "инструмент не найден"
	msgInsufficientQuantity = "недостаточно инструментов на выбранные даты"
	msgDuplicateClientToken = "клиентский токен уже использован"
	msgUnauthorized         = "пользователь не аутентифицирован"
)

const retryAfterSeconds = 1

type Handler struct {
	useCase CreateReservationCartUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationCartUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservation-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateCartRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservation-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservation-requests - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var insufficientErr *createCart.InsufficientAvailabilityError
		switch {
		case errors.As(err, &insufficientErr):
			h.logger.Info("POST /reservation-requests - Cart rejected: user_id=%d, deficits=%d",
				userID, len(insufficientErr.Items))
			handlers.RespondErrorWithDetails(w, http.StatusConflict, msgInsufficientQuantity, insufficientErr.Items)

		case errors.Is(err, createCart.ErrDuplicateClientToken):
			h.logger.Warn("POST /reservation-requests - Duplicate client token: user_id=%d", userID)
			handlers.RespondConflict(w, msgDuplicateClientToken)

		case errors.Is(err, createCart.ErrInstrumentNotFound):
			h.logger.Warn("POST /reservation-requests - Instrument not found: user_id=%d, error=%v", userID, err)
			handlers.RespondNotFound(w, msgInstrumentNotFound)

		case errors.Is(err, createCart.ErrInvalidPeriod):
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		case errors.Is(err, createCart.ErrInvalidInput):
			h.logger.Warn("POST /reservation-requests - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, txmanager.ErrTxBusy):
			h.logger.Warn("POST /reservation-requests - Transaction busy: user_id=%d", userID)
			handlers.RespondServiceUnavailable(w, retryAfterSeconds)

		default:
			h.logger.Error("POST /reservation-requests - Failed to create cart: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservation-requests - Cart created: user_id=%d, requests=%d",
		userID, len(result.Requests))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
