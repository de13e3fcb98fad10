package transition_request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/internal/events"
	requestRepo "github.com/ensembleops/ERS-ReservationService/internal/infra/storage/request"
)

// UseCase use case перевода заявки по машине состояний
//
//	pending  -> approved | rejected
//	approved -> paid (только аренда) | returned
//	paid     -> returned
//
// Отклонение и возврат освобождают ёмкость инструмента: заявка в терминальном
// статусе перестает учитываться при расчете доступности, отдельного
// "декремента" не существует
type UseCase struct {
	requestRepo RequestRepository
	txManager   TransactionManager
	eventBus    EventPublisher
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	txManager TransactionManager,
	eventBus EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo: requestRepo,
		txManager:   txManager,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Execute выполняет use case перевода статуса заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionRequest: request=%d, target=%s", req.RequestID, req.TargetStatus)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionRequest: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.ReservationRequest

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// GetByID внутри транзакции берет FOR UPDATE - конкурирующие переходы
		// по одной заявке сериализуются, и проверка машины состояний видит
		// актуальный статус
		current, err := uc.requestRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: failed to get request: %w", ErrInternal, err)
		}

		if !current.CanTransitionTo(req.TargetStatus) {
			return fmt.Errorf("%w: %s -> %s is not allowed for kind %s",
				ErrInvalidTransition, current.Status, req.TargetStatus, current.Kind)
		}

		if err := uc.requestRepo.UpdateStatus(txCtx, req.RequestID, req.TargetStatus); err != nil {
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		current.Status = req.TargetStatus
		updated = current
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound), errors.Is(err, ErrInvalidTransition):
			uc.logger.Warn("TransitionRequest: rejected for request=%d: %v", req.RequestID, err)
		default:
			uc.logger.Error("TransitionRequest: failed for request=%d: %v", req.RequestID, err)
		}
		return nil, err
	}

	uc.eventBus.Publish(events.Event{
		Type:       events.TypeRequestStatusChanged,
		EntityID:   updated.ID,
		Status:     string(updated.Status),
		Recipient:  updated.RequesterContact,
		OccurredAt: time.Now(),
	})

	uc.logger.Info("TransitionRequest: request=%d moved to %s", updated.ID, updated.Status)

	return &Response{Request: updated}, nil
}

func validateRequest(req *Request) error {
	if req.RequestID <= 0 {
		return fmt.Errorf("%w: requestID must be positive", ErrInvalidInput)
	}

	switch req.TargetStatus {
	case domain.RequestStatusApproved,
		domain.RequestStatusRejected,
		domain.RequestStatusPaid,
		domain.RequestStatusReturned:
		return nil
	case domain.RequestStatusPending:
		return fmt.Errorf("%w: pending is not a reachable target status", ErrInvalidInput)
	default:
		return fmt.Errorf("%w: unknown target status %q", ErrInvalidInput, req.TargetStatus)
	}
}
