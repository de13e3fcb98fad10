package transition_booking

import (
	"github.com/ensembleops/ERS-ReservationService/internal/domain"
)

// Request модель запроса на перевод бронирования в новый статус
type Request struct {
	BookingID    int64
	TargetStatus domain.BookingStatus
}

// Response модель ответа с бронированием после перехода
type Response struct {
	Booking *domain.Booking
}
