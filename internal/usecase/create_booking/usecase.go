package create_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/internal/events"
)

// UseCase use case создания бронирования выступления ансамбля
//
// Созданное бронирование всегда pending и не проверяется на конфликты:
// эксклюзивность ансамбля гарантируется только в момент одобрения
// (см. transition_booking). Несколько pending-заявок на одно окно - норма
type UseCase struct {
	bookingRepo   BookingRepository
	pricingClient PricingClient
	eventBus      EventPublisher
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	pricingClient PricingClient,
	eventBus EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		pricingClient: pricingClient,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: requester=%d, date=%s, window=%s-%s",
		req.RequesterID, req.EventDate.Format(domain.DateFormat), req.StartTime, req.EndTime)

	booking := &domain.Booking{
		Title:            req.Title,
		EventDate:        req.EventDate,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Status:           domain.BookingStatusPending,
		RequesterID:      req.RequesterID,
		RequesterContact: req.RequesterContact,
	}

	if err := validateRequest(req, booking); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// Оценочная стоимость информационная: при недоступности прайсинга
	// бронирование создается с нулевой оценкой
	estimate, err := uc.pricingClient.ComputeBookingEstimate(ctx,
		req.EventDate.Format(domain.DateFormat), string(req.StartTime), string(req.EndTime))
	if err != nil {
		uc.logger.Warn("CreateBooking: pricing degraded, estimate set to 0: %v", err)
	} else {
		booking.EstimatedValue = estimate
	}

	booking, err = uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed for requester=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
	}

	uc.eventBus.Publish(events.Event{
		Type:       events.TypeBookingCreated,
		EntityID:   booking.ID,
		Status:     string(booking.Status),
		Recipient:  booking.RequesterContact,
		OccurredAt: time.Now(),
	})

	uc.logger.Info("CreateBooking: created booking=%d", booking.ID)

	return &Response{Booking: booking}, nil
}

func validateRequest(req *Request, booking *domain.Booking) error {
	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}

	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if len(req.Title) > domain.MaxBookingTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, domain.MaxBookingTitleLength)
	}

	if len(req.RequesterContact) > domain.MaxRequesterContactLength {
		return fmt.Errorf("%w: requester contact exceeds %d characters",
			ErrInvalidInput, domain.MaxRequesterContactLength)
	}

	if !booking.HasValidWindow() {
		return fmt.Errorf("%w: window %s-%s on %s must be well-formed with positive length",
			ErrInvalidWindow, req.StartTime, req.EndTime, req.EventDate.Format(domain.DateFormat))
	}

	return nil
}
