package transition_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/internal/events"
	bookingRepo "github.com/ensembleops/ERS-ReservationService/internal/infra/storage/booking"
)

// UseCase use case одобрения/отклонения бронирования выступления
//
// Ансамбль - один эксклюзивный ресурс: на пересекающиеся окна одной даты
// допускается не более одного одобренного бронирования. Проверка конфликтов
// выполняется внутри транзакции одобрения, окна с совпадающими граничными
// точками (конец одного = начало другого) не конфликтуют
type UseCase struct {
	bookingRepo     BookingRepository
	txManager       TransactionManager
	invoicingClient InvoicingClient
	eventBus        EventPublisher
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	invoicingClient InvoicingClient,
	eventBus EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		txManager:       txManager,
		invoicingClient: invoicingClient,
		eventBus:        eventBus,
		logger:          logger,
	}
}

// Execute выполняет use case перевода статуса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: booking=%d, target=%s", req.BookingID, req.TargetStatus)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionBooking: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.Booking

	// Одобрение идет под serializable: два конкурирующих одобрения разных
	// pending-бронирований с пересекающимися окнами не встречаются ни на одной
	// строчной блокировке (FindApprovedOverlapping видит и блокирует только
	// approved-строки), и под Read Committed оба бы закоммитились. SSI обрывает
	// одну сторону, повтор видит уже одобренное окно и возвращает конфликт
	run := uc.txManager.Do
	if req.TargetStatus == domain.BookingStatusApproved {
		run = uc.txManager.DoSerializable
	}

	err := run(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if !current.CanTransitionTo(req.TargetStatus) {
			return fmt.Errorf("%w: %s -> %s is not allowed",
				ErrInvalidTransition, current.Status, req.TargetStatus)
		}

		// Конфликт окон проверяется только при одобрении: отклонение не
		// занимает ансамбль и проходит без проверки
		if req.TargetStatus == domain.BookingStatusApproved {
			conflicts, err := uc.bookingRepo.FindApprovedOverlapping(txCtx, current)
			if err != nil {
				return fmt.Errorf("%w: failed to find overlapping bookings: %w", ErrInternal, err)
			}
			if len(conflicts) > 0 {
				return &ConflictError{Conflicts: conflicts}
			}
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, req.BookingID, req.TargetStatus); err != nil {
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		current.Status = req.TargetStatus
		updated = current
		return nil
	})

	if err != nil {
		var conflictErr *ConflictError
		switch {
		case errors.As(err, &conflictErr):
			uc.logger.Info("TransitionBooking: approval of booking=%d blocked by %d conflicts",
				req.BookingID, len(conflictErr.Conflicts))
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrInvalidTransition):
			uc.logger.Warn("TransitionBooking: rejected for booking=%d: %v", req.BookingID, err)
		default:
			uc.logger.Error("TransitionBooking: failed for booking=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.eventBus.Publish(events.Event{
		Type:       events.TypeBookingStatusChanged,
		EntityID:   updated.ID,
		Status:     string(updated.Status),
		Recipient:  updated.RequesterContact,
		OccurredAt: time.Now(),
	})

	// Счет выставляется best-effort после commit: недоступность биллинга
	// не откатывает уже одобренное бронирование. Нулевая оценка тоже
	// выставляется - биллинг ведет реестр счетов по всем одобрениям
	if updated.Status == domain.BookingStatusApproved {
		if err := uc.invoicingClient.CreateInvoice(ctx, updated.ID, updated.EstimatedValue); err != nil {
			uc.logger.Warn("TransitionBooking: invoicing degraded for booking=%d: %v", updated.ID, err)
		}
	}

	uc.logger.Info("TransitionBooking: booking=%d moved to %s", updated.ID, updated.Status)

	return &Response{Booking: updated}, nil
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.TargetStatus != domain.BookingStatusApproved && req.TargetStatus != domain.BookingStatusRejected {
		return fmt.Errorf("%w: target status must be approved or rejected, got %q",
			ErrInvalidInput, req.TargetStatus)
	}

	return nil
}
