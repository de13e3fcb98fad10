package transition_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/internal/events"
	bookingRepo "github.com/ensembleops/ERS-ReservationService/internal/infra/storage/booking"
	"github.com/ensembleops/ERS-ReservationService/pkg/txmanager"
	"github.com/ensembleops/ERS-ReservationService/pkg/types"
)

type bookingRepoMock struct {
	bookings       map[int64]*domain.Booking
	updatedStatus  *domain.BookingStatus
	updateStatusFn func(ctx context.Context, id int64, status domain.BookingStatus) error
}

func (m *bookingRepoMock) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if b, ok := m.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (m *bookingRepoMock) FindApprovedOverlapping(ctx context.Context, candidate *domain.Booking) ([]*domain.Booking, error) {
	var conflicts []*domain.Booking
	for _, b := range m.bookings {
		if b.ID == candidate.ID || b.Status != domain.BookingStatusApproved {
			continue
		}
		if b.OverlapsWindow(candidate) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts, nil
}

func (m *bookingRepoMock) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	m.updatedStatus = &status
	m.bookings[id].Status = status
	return nil
}

type txManagerMock struct {
	plainCalls        int
	serializableCalls int
}

func (m *txManagerMock) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.plainCalls++
	return fn(ctx)
}

// DoSerializable повторяет fn при retryable-ошибках, как настоящий менеджер
func (m *txManagerMock) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.serializableCalls++
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil || !txmanager.IsRetryable(lastErr) {
			return lastErr
		}
	}
	return txmanager.ErrTxBusy
}

type invoicingClientMock struct {
	invoiced []int64
	err      error
}

func (m *invoicingClientMock) CreateInvoice(ctx context.Context, bookingID int64, amount float64) error {
	if m.err != nil {
		return m.err
	}
	m.invoiced = append(m.invoiced, bookingID)
	return nil
}

type eventBusMock struct {
	published []events.Event
}

func (m *eventBusMock) Publish(evt events.Event) {
	m.published = append(m.published, evt)
}

type loggerStub struct{}

func (l *loggerStub) Info(format string, v ...interface{})  {}
func (l *loggerStub) Warn(format string, v ...interface{})  {}
func (l *loggerStub) Error(format string, v ...interface{}) {}

func sept26() time.Time {
	return time.Date(2025, time.September, 26, 0, 0, 0, 0, time.UTC)
}

func booking(id int64, startTime, endTime string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:               id,
		Title:            "evening concert",
		EventDate:        sept26(),
		StartTime:        types.TimeString(startTime),
		EndTime:          types.TimeString(endTime),
		Status:           status,
		RequesterContact: "organizer@venue.example",
		EstimatedValue:   1500,
	}
}

func newFixture(bookings ...*domain.Booking) (*UseCase, *bookingRepoMock, *invoicingClientMock, *eventBusMock) {
	uc, repo, _, invoicing, bus := newFixtureWithTx(bookings...)
	return uc, repo, invoicing, bus
}

func newFixtureWithTx(bookings ...*domain.Booking) (*UseCase, *bookingRepoMock, *txManagerMock, *invoicingClientMock, *eventBusMock) {
	repo := &bookingRepoMock{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	tx := &txManagerMock{}
	invoicing := &invoicingClientMock{}
	bus := &eventBusMock{}
	uc := NewUseCase(repo, tx, invoicing, bus, &loggerStub{})
	return uc, repo, tx, invoicing, bus
}

func TestExecute_ApproveWithoutConflicts(t *testing.T) {
	uc, repo, invoicing, bus := newFixture(
		booking(1, "14:00", "18:00", domain.BookingStatusPending),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		TargetStatus: domain.BookingStatusApproved,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusApproved, resp.Booking.Status)
	require.NotNil(t, repo.updatedStatus)

	require.Len(t, bus.published, 1)
	assert.Equal(t, events.TypeBookingStatusChanged, bus.published[0].Type)

	assert.Equal(t, []int64{1}, invoicing.invoiced)
}

func TestExecute_ApproveBlockedByOverlap(t *testing.T) {
	// Одобренное 14:00-18:00 блокирует одобрение 16:00-20:00 той же даты
	uc, repo, _, bus := newFixture(
		booking(1, "14:00", "18:00", domain.BookingStatusApproved),
		booking(2, "16:00", "20:00", domain.BookingStatusPending),
	)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    2,
		TargetStatus: domain.BookingStatusApproved,
	})

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, int64(1), conflictErr.Conflicts[0].ID)

	// Кандидат остается pending, событие не публикуется
	assert.Equal(t, domain.BookingStatusPending, repo.bookings[2].Status)
	assert.Empty(t, bus.published)
}

func TestExecute_ApproveRunsSerializable(t *testing.T) {
	// Read Committed недостаточно: два конкурирующих одобрения разных
	// pending-бронирований не видят друг друга в approved-скане и не берут
	// общих блокировок, оба зафиксировались бы
	uc, _, tx, _, _ := newFixtureWithTx(
		booking(1, "14:00", "18:00", domain.BookingStatusPending),
	)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		TargetStatus: domain.BookingStatusApproved,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, tx.serializableCalls)
	assert.Equal(t, 0, tx.plainCalls)
}

func TestExecute_RejectRunsPlainTransaction(t *testing.T) {
	uc, _, tx, _, _ := newFixtureWithTx(
		booking(1, "14:00", "18:00", domain.BookingStatusPending),
	)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		TargetStatus: domain.BookingStatusRejected,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, tx.serializableCalls)
	assert.Equal(t, 1, tx.plainCalls)
}

func TestExecute_ApproveRetryObservesConcurrentApproval(t *testing.T) {
	// Гонка двух одобрений pending-бронирований с пересекающимися окнами:
	// конкурент выигрывает, наша транзакция обрывается serialization failure,
	// повтор видит уже одобренное окно и возвращает конфликт вместо
	// второго approved
	uc, repo, tx, _, bus := newFixtureWithTx(
		booking(1, "14:00", "18:00", domain.BookingStatusPending),
		booking(2, "16:00", "20:00", domain.BookingStatusPending),
	)

	repo.updateStatusFn = func(ctx context.Context, id int64, status domain.BookingStatus) error {
		repo.updateStatusFn = nil
		repo.bookings[1].Status = domain.BookingStatusApproved
		return fmt.Errorf("%w: UpdateStatus - execute update: %w",
			bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"})
	}

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    2,
		TargetStatus: domain.BookingStatusApproved,
	})

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, int64(1), conflictErr.Conflicts[0].ID)

	assert.Equal(t, 1, tx.serializableCalls)
	assert.Equal(t, domain.BookingStatusPending, repo.bookings[2].Status)
	assert.Empty(t, bus.published)
}

func TestExecute_TouchingWindowsDoNotConflict(t *testing.T) {
	uc, _, _, _ := newFixture(
		booking(1, "14:00", "18:00", domain.BookingStatusApproved),
		booking(2, "18:00", "20:00", domain.BookingStatusPending),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    2,
		TargetStatus: domain.BookingStatusApproved,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusApproved, resp.Booking.Status)
}

func TestExecute_RejectSkipsConflictCheck(t *testing.T) {
	uc, _, invoicing, bus := newFixture(
		booking(1, "14:00", "18:00", domain.BookingStatusApproved),
		booking(2, "16:00", "20:00", domain.BookingStatusPending),
	)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    2,
		TargetStatus: domain.BookingStatusRejected,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusRejected, resp.Booking.Status)
	assert.Empty(t, invoicing.invoiced)
	require.Len(t, bus.published, 1)
	assert.Equal(t, "rejected", bus.published[0].Status)
}

func TestExecute_ZeroEstimateStillInvoiced(t *testing.T) {
	// Оценка могла деградировать до нуля при создании - счет по одобрению
	// выставляется в любом случае
	zeroValue := booking(1, "14:00", "18:00", domain.BookingStatusPending)
	zeroValue.EstimatedValue = 0
	uc, _, invoicing, _ := newFixture(zeroValue)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		TargetStatus: domain.BookingStatusApproved,
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, invoicing.invoiced)
}

func TestExecute_InvoicingDegradationDoesNotFailApproval(t *testing.T) {
	uc, _, invoicing, _ := newFixture(
		booking(1, "14:00", "18:00", domain.BookingStatusPending),
	)
	invoicing.err = assert.AnError

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		TargetStatus: domain.BookingStatusApproved,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusApproved, resp.Booking.Status)
}

func TestExecute_TerminalStatusRejectsTransitions(t *testing.T) {
	uc, _, _, _ := newFixture(
		booking(1, "14:00", "18:00", domain.BookingStatusApproved),
	)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    1,
		TargetStatus: domain.BookingStatusRejected,
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _, _, _ := newFixture()

	_, err := uc.Execute(context.Background(), &Request{
		BookingID:    99,
		TargetStatus: domain.BookingStatusApproved,
	})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}
