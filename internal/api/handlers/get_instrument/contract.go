package get_instrument

import (
	"context"

	"github.com/ensembleops/ERS-ReservationService/internal/service/catalog/models"
)

type CatalogService interface {
	GetByID(ctx context.Context, id int64) (*models.InstrumentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
