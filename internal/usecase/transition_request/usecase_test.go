package transition_request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/internal/events"
	requestRepo "github.com/ensembleops/ERS-ReservationService/internal/infra/storage/request"
)

type requestRepoMock struct {
	request       *domain.ReservationRequest
	updatedStatus *domain.RequestStatus
}

func (m *requestRepoMock) GetByID(ctx context.Context, id int64) (*domain.ReservationRequest, error) {
	if m.request == nil || m.request.ID != id {
		return nil, requestRepo.ErrRequestNotFound
	}
	copied := *m.request
	return &copied, nil
}

func (m *requestRepoMock) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	m.updatedStatus = &status
	return nil
}

type txManagerMock struct{}

func (m *txManagerMock) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func newFixture(req *domain.ReservationRequest) (*UseCase, *requestRepoMock, *eventBusMock) {
	repo := &requestRepoMock{request: req}
	bus := &eventBusMock{}
	return NewUseCase(repo, &txManagerMock{}, bus, &loggerStub{}), repo, bus
}

func pendingRental() *domain.ReservationRequest {
	return &domain.ReservationRequest{
		ID:               1,
		InstrumentID:     10,
		Kind:             domain.KindRental,
		Quantity:         1,
		Status:           domain.RequestStatusPending,
		RequesterContact: "musician@ensemble.example",
		CreatedAt:        time.Now(),
	}
}

func TestExecute_ApprovePending(t *testing.T) {
	uc, repo, bus := newFixture(pendingRental())

	resp, err := uc.Execute(context.Background(), &Request{
		RequestID:    1,
		TargetStatus: domain.RequestStatusApproved,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, resp.Request.Status)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.RequestStatusApproved, *repo.updatedStatus)

	require.Len(t, bus.published, 1)
	assert.Equal(t, events.TypeRequestStatusChanged, bus.published[0].Type)
	assert.Equal(t, "approved", bus.published[0].Status)
}

func TestExecute_TerminalStatusRejectsFurtherTransitions(t *testing.T) {
	rejected := pendingRental()
	rejected.Status = domain.RequestStatusRejected
	uc, repo, bus := newFixture(rejected)

	// Повторное отклонение уже отклоненной заявки не идемпотентно -
	// терминальный статус не допускает никаких переходов
	_, err := uc.Execute(context.Background(), &Request{
		RequestID:    1,
		TargetStatus: domain.RequestStatusRejected,
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, repo.updatedStatus)
	assert.Empty(t, bus.published)
}

func TestExecute_BorrowCannotBePaid(t *testing.T) {
	borrow := pendingRental()
	borrow.Kind = domain.KindBorrow
	borrow.Status = domain.RequestStatusApproved
	uc, _, _ := newFixture(borrow)

	_, err := uc.Execute(context.Background(), &Request{
		RequestID:    1,
		TargetStatus: domain.RequestStatusPaid,
	})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_RentalLifecycle(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.RequestStatus
		to      domain.RequestStatus
		wantErr bool
	}{
		{"pending to approved", domain.RequestStatusPending, domain.RequestStatusApproved, false},
		{"pending to rejected", domain.RequestStatusPending, domain.RequestStatusRejected, false},
		{"pending to paid skips approval", domain.RequestStatusPending, domain.RequestStatusPaid, true},
		{"approved to paid", domain.RequestStatusApproved, domain.RequestStatusPaid, false},
		{"approved to returned", domain.RequestStatusApproved, domain.RequestStatusReturned, false},
		{"paid to returned", domain.RequestStatusPaid, domain.RequestStatusReturned, false},
		{"returned is terminal", domain.RequestStatusReturned, domain.RequestStatusApproved, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pendingRental()
			req.Status = tt.from
			uc, _, _ := newFixture(req)

			_, err := uc.Execute(context.Background(), &Request{
				RequestID:    1,
				TargetStatus: tt.to,
			})

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_RequestNotFound(t *testing.T) {
	uc, _, _ := newFixture(nil)

	_, err := uc.Execute(context.Background(), &Request{
		RequestID:    99,
		TargetStatus: domain.RequestStatusApproved,
	})

	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestExecute_InvalidTarget(t *testing.T) {
	uc, _, _ := newFixture(pendingRental())

	_, err := uc.Execute(context.Background(), &Request{
		RequestID:    1,
		TargetStatus: domain.RequestStatusPending,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		RequestID:    1,
		TargetStatus: domain.RequestStatus("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
