package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	instrumentRepo "github.com/ensembleops/ERS-ReservationService/internal/infra/storage/instrument"
)

// UseCase use case расчета доступного количества инструмента на диапазон дат
//
// Результат - консистентный снапшот: чтение каталога и ledger выполняются
// в одной read-only транзакции, чтобы цифра не собиралась из разных снапшотов
// при конкурирующих писателях. Для UI результат носит справочный характер:
// решением о допуске управляет только пересчет внутри транзакции записи
// (см. create_reservation_cart)
type UseCase struct {
	instrumentRepo InstrumentRepository
	requestRepo    RequestRepository
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	instrumentRepo InstrumentRepository,
	requestRepo RequestRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		instrumentRepo: instrumentRepo,
		requestRepo:    requestRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute выполняет use case расчета доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: instrument=%d, period=%s..%s",
		req.InstrumentID,
		req.Period.StartDate.Format(domain.DateFormat),
		req.Period.EndDate.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		instrument, err := uc.instrumentRepo.GetByID(txCtx, req.InstrumentID)
		if err != nil {
			if errors.Is(err, instrumentRepo.ErrInstrumentNotFound) {
				return ErrInstrumentNotFound
			}
			return fmt.Errorf("%w: failed to get instrument: %w", ErrInternal, err)
		}

		overlapping, err := uc.requestRepo.GetOverlapping(txCtx, req.InstrumentID, req.Period)
		if err != nil {
			return fmt.Errorf("%w: failed to get overlapping requests: %w", ErrInternal, err)
		}

		reserved := sumReservedQuantity(overlapping)
		available := instrument.TotalQuantity - reserved

		if available < 0 {
			// Отрицательный остаток означает нарушение инварианта ёмкости
			// в прошлом - фиксируем как consistency fault, не молча обрезаем
			uc.logger.Error("GetAvailability: consistency fault: instrument=%d reserved=%d exceeds total=%d over %s..%s",
				req.InstrumentID, reserved, instrument.TotalQuantity,
				req.Period.StartDate.Format(domain.DateFormat),
				req.Period.EndDate.Format(domain.DateFormat))
			available = 0
		}

		resp = &Response{
			InstrumentID:      instrument.ID,
			InstrumentName:    instrument.Name,
			Period:            req.Period,
			TotalQuantity:     instrument.TotalQuantity,
			ReservedQuantity:  reserved,
			AvailableQuantity: available,
		}
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrInstrumentNotFound) {
			uc.logger.Error("GetAvailability: failed for instrument=%d: %v", req.InstrumentID, err)
		}
		return nil, err
	}

	uc.logger.Info("GetAvailability: instrument=%d available=%d/%d",
		resp.InstrumentID, resp.AvailableQuantity, resp.TotalQuantity)

	return resp, nil
}

func validateRequest(req *Request) error {
	if req.InstrumentID <= 0 {
		return fmt.Errorf("%w: instrumentID must be positive", ErrInvalidInput)
	}

	if !req.Period.IsValid() {
		return fmt.Errorf("%w: start date must not be after end date", ErrInvalidPeriod)
	}

	return nil
}

// sumReservedQuantity суммирует количество по заявкам, потребляющим ёмкость
func sumReservedQuantity(requests []*domain.ReservationRequest) int {
	sum := 0
	for _, r := range requests {
		if r.ConsumesCapacity() {
			sum += r.Quantity
		}
	}
	return sum
}
