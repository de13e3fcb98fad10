package get_availability

import (
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	getAvailability "github.com/ensembleops/ERS-ReservationService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	InstrumentID      int64  `json:"instrumentId"`
	InstrumentName    string `json:"instrumentName"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	TotalQuantity     int    `json:"totalQuantity"`
	ReservedQuantity  int    `json:"reservedQuantity"`
	AvailableQuantity int    `json:"availableQuantity"`
}

// ToUseCaseRequest собирает модель use case из параметров запроса
func ToUseCaseRequest(instrumentID int64, startDate, endDate string) (*getAvailability.Request, error) {
	start, err := time.Parse(domain.DateFormat, startDate)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse(domain.DateFormat, endDate)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		InstrumentID: instrumentID,
		Period: domain.DateRange{
			StartDate: start,
			EndDate:   end,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		InstrumentID:      resp.InstrumentID,
		InstrumentName:    resp.InstrumentName,
		StartDate:         resp.Period.StartDate.Format(domain.DateFormat),
		EndDate:           resp.Period.EndDate.Format(domain.DateFormat),
		TotalQuantity:     resp.TotalQuantity,
		ReservedQuantity:  resp.ReservedQuantity,
		AvailableQuantity: resp.AvailableQuantity,
	}
}
