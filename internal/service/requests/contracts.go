package requests

import (
	"context"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ReservationRequest, error)
	GetWithFilter(ctx context.Context, filter domain.RequestsFilter) ([]*domain.ReservationRequest, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
