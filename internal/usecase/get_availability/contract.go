package get_availability

import (
	"context"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
)

// InstrumentRepository интерфейс репозитория каталога инструментов
type InstrumentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Instrument, error)
}

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetOverlapping(ctx context.Context, instrumentID int64, period domain.DateRange) ([]*domain.ReservationRequest, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
