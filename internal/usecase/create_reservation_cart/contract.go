package create_reservation_cart

import (
	"context"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/internal/events"
)

// InstrumentRepository интерфейс репозитория каталога инструментов
type InstrumentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Instrument, error)
}

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	Create(ctx context.Context, req *domain.ReservationRequest) (*domain.ReservationRequest, error)
	GetOverlapping(ctx context.Context, instrumentID int64, period domain.DateRange) ([]*domain.ReservationRequest, error)
}

// TransactionManager интерфейс для управления транзакциями
// Допуск корзины выполняется в serializable-транзакции с ретраями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// PricingClient интерфейс клиента прайсинг-сервиса
type PricingClient interface {
	ComputeRentalFee(ctx context.Context, instrumentID int64, quantity, days int) (float64, error)
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
