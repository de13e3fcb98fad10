package models

import (
	"errors"
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid request status")
)

// Request модели

// GetUserRequestsRequest запрос на получение заявок пользователя
type GetUserRequestsRequest struct {
	UserID       int64   `json:"userId"`
	Status       *string `json:"status,omitempty"`
	InstrumentID *int64  `json:"instrumentId,omitempty"`
}

// Response модели

// RequestResponse ответ с данными заявки
type RequestResponse struct {
	ID               int64   `json:"id"`
	InstrumentID     int64   `json:"instrumentId"`
	Kind             string  `json:"kind"`
	Quantity         int     `json:"quantity"`
	StartDate        string  `json:"startDate"` // "2025-09-01"
	EndDate          string  `json:"endDate"`   // "2025-09-05", включительно
	Status           string  `json:"status"`
	RequesterID      int64   `json:"requesterId"`
	RequesterContact string  `json:"requesterContact,omitempty"`
	RentalFee        float64 `json:"rentalFee"`
	ClientToken      *string `json:"clientToken,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RequestListResponse ответ со списком заявок
type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// Методы конвертации

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.ReservationRequest) *RequestResponse {
	if r == nil {
		return nil
	}

	return &RequestResponse{
		ID:               r.ID,
		InstrumentID:     r.InstrumentID,
		Kind:             string(r.Kind),
		Quantity:         r.Quantity,
		StartDate:        r.Period.StartDate.Format(domain.DateFormat),
		EndDate:          r.Period.EndDate.Format(domain.DateFormat),
		Status:           string(r.Status),
		RequesterID:      r.RequesterID,
		RequesterContact: r.RequesterContact,
		RentalFee:        r.RentalFee,
		ClientToken:      r.ClientToken,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// FromDomainRequestList конвертирует список domain моделей в DTO
func FromDomainRequestList(requests []*domain.ReservationRequest) *RequestListResponse {
	if requests == nil {
		return &RequestListResponse{
			Requests: []RequestResponse{},
		}
	}

	resp := &RequestListResponse{
		Requests: make([]RequestResponse, len(requests)),
	}

	for i, request := range requests {
		if requestResp := FromDomainRequest(request); requestResp != nil {
			resp.Requests[i] = *requestResp
		}
	}

	return resp
}

// ToDomainRequestStatus конвертирует строку в domain.RequestStatus с валидацией
func ToDomainRequestStatus(status string) (domain.RequestStatus, error) {
	s := domain.RequestStatus(status)

	validStatuses := []domain.RequestStatus{
		domain.RequestStatusPending,
		domain.RequestStatusApproved,
		domain.RequestStatusRejected,
		domain.RequestStatusPaid,
		domain.RequestStatusReturned,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
