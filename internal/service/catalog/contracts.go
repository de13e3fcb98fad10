package catalog

import (
	"context"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
)

// InstrumentRepository интерфейс репозитория каталога инструментов
type InstrumentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Instrument, error)
	List(ctx context.Context) ([]*domain.Instrument, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
