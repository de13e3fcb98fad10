package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensembleops/ERS-ReservationService/internal/domain"
	"github.com/ensembleops/ERS-ReservationService/internal/events"
	"github.com/ensembleops/ERS-ReservationService/pkg/types"
)

type bookingRepoMock struct {
	created *domain.Booking
}

func (m *bookingRepoMock) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = 7
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.created = b
	return b, nil
}

type pricingClientMock struct {
	estimate float64
	err      error
}

func (m *pricingClientMock) ComputeBookingEstimate(ctx context.Context, eventDate, startTime, endTime string) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.estimate, nil
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

func validRequest() *Request {
	return &Request{
		Title:            "chamber recital",
		EventDate:        time.Date(2025, time.September, 26, 0, 0, 0, 0, time.UTC),
		StartTime:        types.TimeString("14:00"),
		EndTime:          types.TimeString("18:00"),
		RequesterID:      42,
		RequesterContact: "organizer@venue.example",
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	repo := &bookingRepoMock{}
	bus := &eventBusMock{}
	uc := NewUseCase(repo, &pricingClientMock{estimate: 2500}, bus, &loggerStub{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Booking.ID)
	assert.Equal(t, domain.BookingStatusPending, resp.Booking.Status)
	assert.Equal(t, float64(2500), resp.Booking.EstimatedValue)

	require.Len(t, bus.published, 1)
	assert.Equal(t, events.TypeBookingCreated, bus.published[0].Type)
	assert.Equal(t, int64(7), bus.published[0].EntityID)
}

func TestExecute_PricingDegradation(t *testing.T) {
	repo := &bookingRepoMock{}
	uc := NewUseCase(repo, &pricingClientMock{err: assert.AnError}, &eventBusMock{}, &loggerStub{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, float64(0), resp.Booking.EstimatedValue)
}

func TestExecute_InvalidWindow(t *testing.T) {
	uc := NewUseCase(&bookingRepoMock{}, &pricingClientMock{}, &eventBusMock{}, &loggerStub{})

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"zero length window", "14:00", "14:00"},
		{"end before start", "18:00", "14:00"},
		{"malformed time", "2pm", "18:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.StartTime = types.TimeString(tt.start)
			req.EndTime = types.TimeString(tt.end)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidWindow)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&bookingRepoMock{}, &pricingClientMock{}, &eventBusMock{}, &loggerStub{})

	req := validRequest()
	req.Title = ""
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.RequesterID = 0
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
