package models

import (
	"errors"
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	RequesterID *int64     `json:"requesterId,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate     *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status      *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		RequesterID: r.RequesterID,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	EventDate        string  `json:"eventDate"` // "2025-09-26"
	StartTime        string  `json:"startTime"` // "14:00"
	EndTime          string  `json:"endTime"`   // "18:00"
	Status           string  `json:"status"`
	RequesterID      int64   `json:"requesterId"`
	RequesterContact string  `json:"requesterContact,omitempty"`
	EstimatedValue   float64 `json:"estimatedValue"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

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
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.BookingStatusPending,
		domain.BookingStatusApproved,
		domain.BookingStatusRejected,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
