package transition_booking

import (
	"context"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/internal/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindApprovedOverlapping(ctx context.Context, candidate *domain.Booking) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// InvoicingClient интерфейс клиента сервиса счетов
type InvoicingClient interface {
	CreateInvoice(ctx context.Context, bookingID int64, amount float64) error
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
