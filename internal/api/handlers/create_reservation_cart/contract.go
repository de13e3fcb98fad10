package create_reservation_cart

import (
	"context"

	createCart "github.com/ensembleops/ERS-ReservationService/internal/usecase/create_reservation_cart"
)

type CreateReservationCartUseCase interface {
	Execute(ctx context.Context, req *createCart.Request) (*createCart.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
