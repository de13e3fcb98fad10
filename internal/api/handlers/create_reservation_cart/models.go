package create_reservation_cart

import (
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	createCart "github.com/ensembleops/ERS-ReservationService/internal/usecase/create_reservation_cart"
)

// CartItemRequest позиция корзины в HTTP запросе
type CartItemRequest struct {
	InstrumentID int64   `json:"instrumentId"`
	Quantity     int     `json:"quantity"`
	StartDate    string  `json:"startDate"` // "2025-09-01"
	EndDate      string  `json:"endDate"`   // "2025-09-05", включительно
	ClientToken  *string `json:"clientToken,omitempty"`
}

// CreateCartRequest HTTP request model
type CreateCartRequest struct {
	RequesterContact string            `json:"requesterContact"`
	Kind             string            `json:"kind"` // "rental" | "borrow"
	Items            []CartItemRequest `json:"items"`
}

// RequestResponse созданная заявка в HTTP ответе
type RequestResponse struct {
	ID           int64   `json:"id"`
	InstrumentID int64   `json:"instrumentId"`
	Kind         string  `json:"kind"`
	Quantity     int     `json:"quantity"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Status       string  `json:"status"`
	RentalFee    float64 `json:"rentalFee"`
	ClientToken  *string `json:"clientToken,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

// CreateCartResponse HTTP response model
type CreateCartResponse struct {
	Requests []RequestResponse `json:"requests"`
	// TokenMap сопоставление клиентских токенов серверным ID
	TokenMap map[string]int64 `json:"tokenMap,omitempty"`
	TotalFee float64          `json:"totalFee"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateCartRequest) ToUseCaseRequest(userID int64) (*createCart.Request, error) {
	items := make([]createCart.Item, len(r.Items))

	for i, item := range r.Items {
		startDate, err := time.Parse(domain.DateFormat, item.StartDate)
		if err != nil {
			return nil, err
		}

		endDate, err := time.Parse(domain.DateFormat, item.EndDate)
		if err != nil {
			return nil, err
		}

		items[i] = createCart.Item{
			InstrumentID: item.InstrumentID,
			Quantity:     item.Quantity,
			Period: domain.DateRange{
				StartDate: startDate,
				EndDate:   endDate,
			},
			ClientToken: item.ClientToken,
		}
	}

	return &createCart.Request{
		RequesterID:      userID,
		RequesterContact: r.RequesterContact,
		Kind:             domain.RequestKind(r.Kind),
		Items:            items,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createCart.Response) *CreateCartResponse {
	result := &CreateCartResponse{
		Requests: make([]RequestResponse, len(resp.Requests)),
		TokenMap: resp.TokenMap,
		TotalFee: resp.TotalFee,
	}

	for i, request := range resp.Requests {
		result.Requests[i] = RequestResponse{
			ID:           request.ID,
			InstrumentID: request.InstrumentID,
			Kind:         string(request.Kind),
			Quantity:     request.Quantity,
			StartDate:    request.Period.StartDate.Format(domain.DateFormat),
			EndDate:      request.Period.EndDate.Format(domain.DateFormat),
			Status:       string(request.Status),
			RentalFee:    request.RentalFee,
			ClientToken:  request.ClientToken,
			CreatedAt:    request.CreatedAt.Format(time.RFC3339),
		}
	}

	return result
}
