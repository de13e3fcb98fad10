package list_instruments

import (
	"context"

	"github.com/ensembleops/ERS-ReservationService/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context) (*models.InstrumentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
