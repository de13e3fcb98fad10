package transition_request

import (
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	transitionRequest "github.com/ensembleops/ERS-ReservationService/internal/usecase/transition_request"
)

// RequestResponse HTTP response model
type RequestResponse struct {
	ID           int64   `json:"id"`
	InstrumentID int64   `json:"instrumentId"`
	Kind         string  `json:"kind"`
	Quantity     int     `json:"quantity"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Status       string  `json:"status"`
	RentalFee    float64 `json:"rentalFee"`
	UpdatedAt    string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionRequest.Response) *RequestResponse {
	r := resp.Request
	return &RequestResponse{
		ID:           r.ID,
		InstrumentID: r.InstrumentID,
		Kind:         string(r.Kind),
		Quantity:     r.Quantity,
		StartDate:    r.Period.StartDate.Format(domain.DateFormat),
		EndDate:      r.Period.EndDate.Format(domain.DateFormat),
		Status:       string(r.Status),
		RentalFee:    r.RentalFee,
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}
