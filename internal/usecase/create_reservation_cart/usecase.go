package create_reservation_cart

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/internal/events"
	instrumentRepo "github.com/ensembleops/ERS-ReservationService/internal/infra/storage/instrument"
	requestRepo "github.com/ensembleops/ERS-ReservationService/internal/infra/storage/request"
)

// UseCase use case создания корзины заявок на аренду/выдачу инструментов
//
// Корзина принимается по принципу "всё или ничего": доступность каждой позиции
// пересчитывается заново внутри serializable-транзакции, и при нехватке хотя бы
// по одной позиции ни одна строка не вставляется. Любая доступность, показанная
// пользователю до этого момента, носит справочный характер
type UseCase struct {
	instrumentRepo InstrumentRepository
	requestRepo    RequestRepository
	txManager      TransactionManager
	pricingClient  PricingClient
	eventBus       EventPublisher
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	instrumentRepo InstrumentRepository,
	requestRepo RequestRepository,
	txManager TransactionManager,
	pricingClient PricingClient,
	eventBus EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		instrumentRepo: instrumentRepo,
		requestRepo:    requestRepo,
		txManager:      txManager,
		pricingClient:  pricingClient,
		eventBus:       eventBus,
		logger:         logger,
	}
}

// allocation зарезервированное внутри текущей корзины количество,
// еще не видимое в ledger
type allocation struct {
	period   domain.DateRange
	quantity int
}

// Execute выполняет use case создания корзины
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservationCart: requester=%d, kind=%s, items=%d",
		req.RequesterID, req.Kind, len(req.Items))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservationCart: validation failed: %v", err)
		return nil, err
	}

	// Стоимость считается до транзакции: внешний HTTP-вызов не должен
	// удлинять окно удержания блокировок. При недоступности прайсинга
	// корзина продолжает путь с нулевой стоимостью
	fees := uc.computeFees(ctx, req)

	var created []*domain.ReservationRequest

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = nil

		instruments, err := uc.lockInstruments(txCtx, req.Items)
		if err != nil {
			return err
		}

		if err := uc.checkAvailability(txCtx, req.Items, instruments); err != nil {
			return err
		}

		for i, item := range req.Items {
			request := &domain.ReservationRequest{
				InstrumentID:     item.InstrumentID,
				Kind:             req.Kind,
				Quantity:         item.Quantity,
				Period:           item.Period,
				Status:           domain.RequestStatusPending,
				RequesterID:      req.RequesterID,
				RequesterContact: req.RequesterContact,
				RentalFee:        fees[i],
				ClientToken:      item.ClientToken,
			}

			request, err := uc.requestRepo.Create(txCtx, request)
			if err != nil {
				if errors.Is(err, requestRepo.ErrDuplicateClientToken) {
					return fmt.Errorf("%w: item %d: %w", ErrDuplicateClientToken, i, err)
				}
				return fmt.Errorf("%w: failed to create request for item %d: %w", ErrInternal, i, err)
			}

			created = append(created, request)
		}

		return nil
	})

	if err != nil {
		var insufficientErr *InsufficientAvailabilityError
		switch {
		case errors.As(err, &insufficientErr):
			uc.logger.Info("CreateReservationCart: cart rejected for requester=%d: %v", req.RequesterID, err)
		case errors.Is(err, ErrInstrumentNotFound), errors.Is(err, ErrDuplicateClientToken):
			uc.logger.Warn("CreateReservationCart: failed for requester=%d: %v", req.RequesterID, err)
		default:
			uc.logger.Error("CreateReservationCart: failed for requester=%d: %v", req.RequesterID, err)
		}
		return nil, err
	}

	resp := uc.buildResponse(created)

	// События публикуются строго после commit
	for _, request := range created {
		uc.eventBus.Publish(events.Event{
			Type:       events.TypeRequestCreated,
			EntityID:   request.ID,
			Status:     string(request.Status),
			Recipient:  request.RequesterContact,
			OccurredAt: time.Now(),
		})
	}

	uc.logger.Info("CreateReservationCart: created %d requests for requester=%d", len(created), req.RequesterID)

	return resp, nil
}

// computeFees возвращает информационные стоимости по позициям корзины
// в порядке позиций. Для безвозмездной выдачи стоимость всегда нулевая
func (uc *UseCase) computeFees(ctx context.Context, req *Request) []float64 {
	fees := make([]float64, len(req.Items))

	if req.Kind != domain.KindRental {
		return fees
	}

	for i, item := range req.Items {
		fee, err := uc.pricingClient.ComputeRentalFee(ctx, item.InstrumentID, item.Quantity, item.Period.Days())
		if err != nil {
			uc.logger.Warn("CreateReservationCart: pricing degraded for instrument=%d, fee set to 0: %v",
				item.InstrumentID, err)
			continue
		}
		fees[i] = fee
	}

	return fees
}

// lockInstruments загружает и блокирует инструменты корзины строго в порядке
// возрастания ID. Конкурирующие корзины с пересекающимися наборами инструментов
// берут блокировки в одном порядке и не взаимоблокируются
func (uc *UseCase) lockInstruments(ctx context.Context, items []Item) (map[int64]*domain.Instrument, error) {
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.InstrumentID]; ok {
			continue
		}
		seen[item.InstrumentID] = struct{}{}
		ids = append(ids, item.InstrumentID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	instruments := make(map[int64]*domain.Instrument, len(ids))
	for _, id := range ids {
		instrument, err := uc.instrumentRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, instrumentRepo.ErrInstrumentNotFound) {
				return nil, fmt.Errorf("%w: instrument %d", ErrInstrumentNotFound, id)
			}
			return nil, fmt.Errorf("%w: failed to get instrument %d: %w", ErrInternal, id, err)
		}
		instruments[id] = instrument
	}

	return instruments, nil
}

// checkAvailability пересчитывает доступность каждой позиции внутри транзакции.
// Позиции одной корзины по одному инструменту учитывают друг друга: ранее
// принятая позиция уменьшает остаток для последующих пересекающихся по датам.
// Дефициты собираются по всем позициям сразу, чтобы клиент увидел полную картину
func (uc *UseCase) checkAvailability(ctx context.Context, items []Item, instruments map[int64]*domain.Instrument) error {
	allocated := make(map[int64][]allocation)
	var deficits []ItemDeficit

	for _, item := range items {
		instrument := instruments[item.InstrumentID]

		overlapping, err := uc.requestRepo.GetOverlapping(ctx, item.InstrumentID, item.Period)
		if err != nil {
			return fmt.Errorf("%w: failed to get overlapping requests for instrument %d: %w",
				ErrInternal, item.InstrumentID, err)
		}

		reserved := 0
		for _, r := range overlapping {
			if r.ConsumesCapacity() {
				reserved += r.Quantity
			}
		}

		for _, alloc := range allocated[item.InstrumentID] {
			if alloc.period.Overlaps(item.Period) {
				reserved += alloc.quantity
			}
		}

		available := instrument.TotalQuantity - reserved
		if available < 0 {
			// Отрицательный остаток означает нарушение инварианта ёмкости
			// в прошлом - фиксируем как consistency fault, не молча обрезаем
			uc.logger.Error("CreateReservationCart: consistency fault: instrument=%d reserved=%d exceeds total=%d over %s..%s",
				item.InstrumentID, reserved, instrument.TotalQuantity,
				item.Period.StartDate.Format(domain.DateFormat),
				item.Period.EndDate.Format(domain.DateFormat))
			available = 0
		}

		if item.Quantity > available {
			deficits = append(deficits, ItemDeficit{
				InstrumentID:   item.InstrumentID,
				InstrumentName: instrument.Name,
				Requested:      item.Quantity,
				Available:      available,
				Deficit:        item.Quantity - available,
			})
			continue
		}

		allocated[item.InstrumentID] = append(allocated[item.InstrumentID], allocation{
			period:   item.Period,
			quantity: item.Quantity,
		})
	}

	if len(deficits) > 0 {
		return &InsufficientAvailabilityError{Items: deficits}
	}

	return nil
}

func (uc *UseCase) buildResponse(created []*domain.ReservationRequest) *Response {
	resp := &Response{
		Requests: created,
		TokenMap: make(map[string]int64),
	}

	for _, request := range created {
		resp.TotalFee += request.RentalFee
		if request.ClientToken != nil {
			resp.TokenMap[*request.ClientToken] = request.ID
		}
	}

	return resp
}
