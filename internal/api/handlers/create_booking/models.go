package create_booking

import (
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	createBooking "github.com/ensembleops/ERS-ReservationService/internal/usecase/create_booking"
	"github.com/ensembleops/ERS-ReservationService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Title            string `json:"title"`
	EventDate        string `json:"eventDate"` // "2025-09-26"
	StartTime        string `json:"startTime"` // "14:00"
	EndTime          string `json:"endTime"`   // "18:00"
	RequesterContact string `json:"requesterContact"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	EventDate        string  `json:"eventDate"`
	StartTime        string  `json:"startTime"`
	EndTime          string  `json:"endTime"`
	Status           string  `json:"status"`
	RequesterID      int64   `json:"requesterId"`
	RequesterContact string  `json:"requesterContact,omitempty"`
	EstimatedValue   float64 `json:"estimatedValue"`
	CreatedAt        string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	eventDate, err := time.Parse(domain.DateFormat, r.EventDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Title:            r.Title,
		EventDate:        eventDate,
		StartTime:        startTime,
		EndTime:          endTime,
		RequesterID:      userID,
		RequesterContact: r.RequesterContact,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	b := resp.Booking
	return &BookingResponse{
		ID:               b.ID,
		Title:            b.Title,
		EventDate:        b.EventDate.Format(domain.DateFormat),
		StartTime:        b.StartTime.String(),
		EndTime:          b.EndTime.String(),
		Status:           string(b.Status),
		RequesterID:      b.RequesterID,
		RequesterContact: b.RequesterContact,
		EstimatedValue:   b.EstimatedValue,
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
}
