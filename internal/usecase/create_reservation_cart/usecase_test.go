package create_reservation_cart

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/internal/events"
	instrumentRepo "github.com/ensembleops/ERS-ReservationService/internal/infra/storage/instrument"
	"github.com/ensembleops/ERS-ReservationService/pkg/ptr"
)

type instrumentRepoMock struct {
	instruments map[int64]*domain.Instrument
	lockOrder   []int64
}

func (m *instrumentRepoMock) GetByID(ctx context.Context, id int64) (*domain.Instrument, error) {
	m.lockOrder = append(m.lockOrder, id)
	if instrument, ok := m.instruments[id]; ok {
		return instrument, nil
	}
	return nil, instrumentRepo.ErrInstrumentNotFound
}

type requestRepoMock struct {
	overlapping map[int64][]*domain.ReservationRequest
	created     []*domain.ReservationRequest
	nextID      int64
}

func (m *requestRepoMock) Create(ctx context.Context, req *domain.ReservationRequest) (*domain.ReservationRequest, error) {
	m.nextID++
	req.ID = m.nextID
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	m.created = append(m.created, req)
	return req, nil
}

func (m *requestRepoMock) GetOverlapping(ctx context.Context, instrumentID int64, period domain.DateRange) ([]*domain.ReservationRequest, error) {
	var result []*domain.ReservationRequest
	for _, r := range m.overlapping[instrumentID] {
		if r.Period.Overlaps(period) {
			result = append(result, r)
		}
	}
	return result, nil
}

type txManagerMock struct{}

func (m *txManagerMock) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type pricingClientMock struct {
	feePerUnit float64
	err        error
}

func (m *pricingClientMock) ComputeRentalFee(ctx context.Context, instrumentID int64, quantity, days int) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.feePerUnit * float64(quantity) * float64(days), nil
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

type recordingLogger struct {
	loggerStub
	errorLines []string
}

func (l *recordingLogger) Error(format string, v ...interface{}) {
	l.errorLines = append(l.errorLines, fmt.Sprintf(format, v...))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func period(start, end time.Time) domain.DateRange {
	return domain.DateRange{StartDate: start, EndDate: end}
}

func newFixture(instruments map[int64]*domain.Instrument, overlapping map[int64][]*domain.ReservationRequest) (*UseCase, *requestRepoMock, *eventBusMock, *instrumentRepoMock) {
	ir := &instrumentRepoMock{instruments: instruments}
	rr := &requestRepoMock{overlapping: overlapping}
	bus := &eventBusMock{}
	uc := NewUseCase(ir, rr, &txManagerMock{}, &pricingClientMock{feePerUnit: 10}, bus, &loggerStub{})
	return uc, rr, bus, ir
}

func TestExecute_CartAdmitted(t *testing.T) {
	uc, rr, bus, _ := newFixture(
		map[int64]*domain.Instrument{
			1: {ID: 1, Name: "violin", TotalQuantity: 5},
			2: {ID: 2, Name: "viola", TotalQuantity: 2},
		},
		nil,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		RequesterID:      42,
		RequesterContact: "musician@ensemble.example",
		Kind:             domain.KindRental,
		Items: []Item{
			{InstrumentID: 1, Quantity: 2, Period: period(date(2025, 9, 1), date(2025, 9, 3)), ClientToken: ptr.Ptr("tok-a")},
			{InstrumentID: 2, Quantity: 1, Period: period(date(2025, 9, 1), date(2025, 9, 3))},
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Requests, 2)

	assert.Equal(t, int64(1), resp.Requests[0].InstrumentID)
	assert.Equal(t, int64(2), resp.Requests[1].InstrumentID)
	assert.Equal(t, domain.RequestStatusPending, resp.Requests[0].Status)
	assert.Equal(t, domain.RequestStatusPending, resp.Requests[1].Status)

	assert.Equal(t, resp.Requests[0].ID, resp.TokenMap["tok-a"])
	assert.Len(t, rr.created, 2)

	require.Len(t, bus.published, 2)
	assert.Equal(t, events.TypeRequestCreated, bus.published[0].Type)
	assert.Equal(t, resp.Requests[0].ID, bus.published[0].EntityID)
}

func TestExecute_AllOrNothing(t *testing.T) {
	// Первая позиция проходит, второй не хватает - не создается ни одной заявки
	uc, rr, bus, _ := newFixture(
		map[int64]*domain.Instrument{
			1: {ID: 1, Name: "violin", TotalQuantity: 5},
			2: {ID: 2, Name: "timpani", TotalQuantity: 1},
		},
		map[int64][]*domain.ReservationRequest{
			2: {
				{Quantity: 1, Status: domain.RequestStatusApproved, Period: period(date(2025, 9, 1), date(2025, 9, 10))},
			},
		},
	)

	_, err := uc.Execute(context.Background(), &Request{
		RequesterID:      42,
		RequesterContact: "musician@ensemble.example",
		Kind:             domain.KindBorrow,
		Items: []Item{
			{InstrumentID: 1, Quantity: 1, Period: period(date(2025, 9, 2), date(2025, 9, 4))},
			{InstrumentID: 2, Quantity: 1, Period: period(date(2025, 9, 2), date(2025, 9, 4))},
		},
	})

	var insufficientErr *InsufficientAvailabilityError
	require.ErrorAs(t, err, &insufficientErr)
	require.Len(t, insufficientErr.Items, 1)
	assert.Equal(t, int64(2), insufficientErr.Items[0].InstrumentID)
	assert.Equal(t, "timpani", insufficientErr.Items[0].InstrumentName)
	assert.Equal(t, 1, insufficientErr.Items[0].Requested)
	assert.Equal(t, 0, insufficientErr.Items[0].Available)
	assert.Equal(t, 1, insufficientErr.Items[0].Deficit)

	assert.Empty(t, rr.created)
	assert.Empty(t, bus.published)
}

func TestExecute_SameInstrumentItemsShareCapacity(t *testing.T) {
	// Две позиции по одному инструменту с пересекающимися датами
	// делят один пул: вторая видит остаток после первой
	uc, rr, _, _ := newFixture(
		map[int64]*domain.Instrument{
			1: {ID: 1, Name: "clarinet", TotalQuantity: 3},
		},
		nil,
	)

	_, err := uc.Execute(context.Background(), &Request{
		RequesterID:      42,
		RequesterContact: "musician@ensemble.example",
		Kind:             domain.KindBorrow,
		Items: []Item{
			{InstrumentID: 1, Quantity: 2, Period: period(date(2025, 9, 1), date(2025, 9, 5))},
			{InstrumentID: 1, Quantity: 2, Period: period(date(2025, 9, 5), date(2025, 9, 8))},
		},
	})

	var insufficientErr *InsufficientAvailabilityError
	require.ErrorAs(t, err, &insufficientErr)
	require.Len(t, insufficientErr.Items, 1)
	assert.Equal(t, 1, insufficientErr.Items[0].Available)
	assert.Empty(t, rr.created)
}

func TestExecute_SameInstrumentDisjointPeriods(t *testing.T) {
	// Непересекающиеся диапазоны по одному инструменту не конкурируют
	uc, rr, _, _ := newFixture(
		map[int64]*domain.Instrument{
			1: {ID: 1, Name: "clarinet", TotalQuantity: 2},
		},
		nil,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		RequesterID:      42,
		RequesterContact: "musician@ensemble.example",
		Kind:             domain.KindBorrow,
		Items: []Item{
			{InstrumentID: 1, Quantity: 2, Period: period(date(2025, 9, 1), date(2025, 9, 5))},
			{InstrumentID: 1, Quantity: 2, Period: period(date(2025, 9, 6), date(2025, 9, 8))},
		},
	})

	require.NoError(t, err)
	assert.Len(t, resp.Requests, 2)
	assert.Len(t, rr.created, 2)
}

func TestExecute_LocksInstrumentsInAscendingOrder(t *testing.T) {
	uc, _, _, ir := newFixture(
		map[int64]*domain.Instrument{
			3: {ID: 3, Name: "oboe", TotalQuantity: 1},
			7: {ID: 7, Name: "flute", TotalQuantity: 1},
			5: {ID: 5, Name: "horn", TotalQuantity: 1},
		},
		nil,
	)

	_, err := uc.Execute(context.Background(), &Request{
		RequesterID:      42,
		RequesterContact: "musician@ensemble.example",
		Kind:             domain.KindBorrow,
		Items: []Item{
			{InstrumentID: 7, Quantity: 1, Period: period(date(2025, 9, 1), date(2025, 9, 1))},
			{InstrumentID: 3, Quantity: 1, Period: period(date(2025, 9, 1), date(2025, 9, 1))},
			{InstrumentID: 5, Quantity: 1, Period: period(date(2025, 9, 1), date(2025, 9, 1))},
			{InstrumentID: 3, Quantity: 0, Period: period(date(2025, 9, 1), date(2025, 9, 1))},
		},
	})

	// последняя позиция с нулевым количеством валидацию не пройдет,
	// до блокировок дело не дойдет
	require.Error(t, err)

	_, err = uc.Execute(context.Background(), &Request{
		RequesterID:      42,
		RequesterContact: "musician@ensemble.example",
		Kind:             domain.KindBorrow,
		Items: []Item{
			{InstrumentID: 7, Quantity: 1, Period: period(date(2025, 9, 1), date(2025, 9, 1))},
			{InstrumentID: 3, Quantity: 1, Period: period(date(2025, 9, 1), date(2025, 9, 1))},
			{InstrumentID: 5, Quantity: 1, Period: period(date(2025, 9, 1), date(2025, 9, 1))},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5, 7}, ir.lockOrder)
}

func TestExecute_PricingDegradation(t *testing.T) {
	ir := &instrumentRepoMock{instruments: map[int64]*domain.Instrument{
		1: {ID: 1, Name: "violin", TotalQuantity: 5},
	}}
	rr := &requestRepoMock{}
	bus := &eventBusMock{}
	uc := NewUseCase(ir, rr, &txManagerMock{}, &pricingClientMock{err: assert.AnError}, bus, &loggerStub{})

	resp, err := uc.Execute(context.Background(), &Request{
		RequesterID:      42,
		RequesterContact: "musician@ensemble.example",
		Kind:             domain.KindRental,
		Items: []Item{
			{InstrumentID: 1, Quantity: 1, Period: period(date(2025, 9, 1), date(2025, 9, 3))},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, float64(0), resp.Requests[0].RentalFee)
	assert.Equal(t, float64(0), resp.TotalFee)
}

func TestExecute_OverReservedLedgerLoggedAsConsistencyFault(t *testing.T) {
	// Ledger зарезервировал больше, чем есть в каталоге: остаток обрезается
	// до нуля, но нарушение инварианта ёмкости фиксируется в логе
	ir := &instrumentRepoMock{instruments: map[int64]*domain.Instrument{
		1: {ID: 1, Name: "timpani", TotalQuantity: 1},
	}}
	rr := &requestRepoMock{overlapping: map[int64][]*domain.ReservationRequest{
		1: {
			{Quantity: 3, Status: domain.RequestStatusApproved, Period: period(date(2025, 9, 1), date(2025, 9, 10))},
		},
	}}
	log := &recordingLogger{}
	uc := NewUseCase(ir, rr, &txManagerMock{}, &pricingClientMock{}, &eventBusMock{}, log)

	_, err := uc.Execute(context.Background(), &Request{
		RequesterID:      42,
		RequesterContact: "musician@ensemble.example",
		Kind:             domain.KindBorrow,
		Items: []Item{
			{InstrumentID: 1, Quantity: 1, Period: period(date(2025, 9, 2), date(2025, 9, 4))},
		},
	})

	var insufficientErr *InsufficientAvailabilityError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 0, insufficientErr.Items[0].Available)

	require.NotEmpty(t, log.errorLines)
	assert.Contains(t, log.errorLines[0], "consistency fault")
	assert.Contains(t, log.errorLines[0], "reserved=3")
}

func TestExecute_DuplicateTokenWithinCart(t *testing.T) {
	uc, rr, _, _ := newFixture(
		map[int64]*domain.Instrument{
			1: {ID: 1, Name: "violin", TotalQuantity: 5},
		},
		nil,
	)

	_, err := uc.Execute(context.Background(), &Request{
		RequesterID:      42,
		RequesterContact: "musician@ensemble.example",
		Kind:             domain.KindBorrow,
		Items: []Item{
			{InstrumentID: 1, Quantity: 1, Period: period(date(2025, 9, 1), date(2025, 9, 3)), ClientToken: ptr.Ptr("tok")},
			{InstrumentID: 1, Quantity: 1, Period: period(date(2025, 9, 4), date(2025, 9, 6)), ClientToken: ptr.Ptr("tok")},
		},
	})

	assert.ErrorIs(t, err, ErrDuplicateClientToken)
	assert.Empty(t, rr.created)
}

func TestExecute_InstrumentNotFound(t *testing.T) {
	uc, _, _, _ := newFixture(map[int64]*domain.Instrument{}, nil)

	_, err := uc.Execute(context.Background(), &Request{
		RequesterID:      42,
		RequesterContact: "musician@ensemble.example",
		Kind:             domain.KindBorrow,
		Items: []Item{
			{InstrumentID: 99, Quantity: 1, Period: period(date(2025, 9, 1), date(2025, 9, 3))},
		},
	})

	assert.ErrorIs(t, err, ErrInstrumentNotFound)
}
