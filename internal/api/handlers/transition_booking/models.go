package transition_booking

import (
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	transitionBooking "github.com/ensembleops/ERS-ReservationService/internal/usecase/transition_booking"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	EventDate      string  `json:"eventDate"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Status         string  `json:"status"`
	EstimatedValue float64 `json:"estimatedValue"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ConflictDetail мешающее бронирование в теле 409 ответа
type ConflictDetail struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	EventDate string `json:"eventDate"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionBooking.Response) *BookingResponse {
	b := resp.Booking
	return &BookingResponse{
		ID:             b.ID,
		Title:          b.Title,
		EventDate:      b.EventDate.Format(domain.DateFormat),
		StartTime:      b.StartTime.String(),
		EndTime:        b.EndTime.String(),
		Status:         string(b.Status),
		EstimatedValue: b.EstimatedValue,
		UpdatedAt:      b.UpdatedAt.Format(time.RFC3339),
	}
}

// FromConflicts конвертирует конфликтующие бронирования в детали 409 ответа
func FromConflicts(conflicts []*domain.Booking) []ConflictDetail {
	details := make([]ConflictDetail, len(conflicts))
	for i, b := range conflicts {
		details[i] = ConflictDetail{
			ID:        b.ID,
			Title:     b.Title,
			EventDate: b.EventDate.Format(domain.DateFormat),
			StartTime: b.StartTime.String(),
			EndTime:   b.EndTime.String(),
		}
	}
	return details
}
