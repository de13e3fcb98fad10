package create_booking

import (
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования выступления
type Request struct {
	Title            string
	EventDate        time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString
	RequesterID      int64
	RequesterContact string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
