package create_booking

import (
	"context"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/internal/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
}

// PricingClient интерфейс клиента прайсинг-сервиса
type PricingClient interface {
	ComputeBookingEstimate(ctx context.Context, eventDate, startTime, endTime string) (float64, error)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(evt events.Event)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
