package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ensembleops/ERS-ReservationService/pkg/types"
)

func mkBooking(day time.Time, start, end string, status BookingStatus) *Booking {
	return &Booking{
		EventDate: day,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    status,
	}
}

func TestBooking_OverlapsWindow(t *testing.T) {
	day := date(2025, 9, 26)
	base := mkBooking(day, "14:00", "18:00", BookingStatusApproved)

	tests := []struct {
		name     string
		other    *Booking
		overlaps bool
	}{
		{"identical window", mkBooking(day, "14:00", "18:00", BookingStatusPending), true},
		{"partial overlap", mkBooking(day, "16:00", "20:00", BookingStatusPending), true},
		{"contained", mkBooking(day, "15:00", "16:00", BookingStatusPending), true},
		{"touching end-start does not conflict", mkBooking(day, "18:00", "20:00", BookingStatusPending), false},
		{"touching start-end does not conflict", mkBooking(day, "10:00", "14:00", BookingStatusPending), false},
		{"earlier same day", mkBooking(day, "08:00", "10:00", BookingStatusPending), false},
		{"different day", mkBooking(date(2025, 9, 27), "14:00", "18:00", BookingStatusPending), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.OverlapsWindow(tt.other))
			assert.Equal(t, tt.overlaps, tt.other.OverlapsWindow(base))
		})
	}
}

func TestBooking_CanTransitionTo(t *testing.T) {
	day := date(2025, 9, 26)

	pending := mkBooking(day, "14:00", "18:00", BookingStatusPending)
	assert.True(t, pending.CanTransitionTo(BookingStatusApproved))
	assert.True(t, pending.CanTransitionTo(BookingStatusRejected))
	assert.False(t, pending.CanTransitionTo(BookingStatusPending))

	approved := mkBooking(day, "14:00", "18:00", BookingStatusApproved)
	assert.False(t, approved.CanTransitionTo(BookingStatusRejected))
	assert.False(t, approved.CanTransitionTo(BookingStatusPending))

	rejected := mkBooking(day, "14:00", "18:00", BookingStatusRejected)
	assert.False(t, rejected.CanTransitionTo(BookingStatusApproved))
	assert.False(t, rejected.CanTransitionTo(BookingStatusRejected))
}

func TestBooking_HasValidWindow(t *testing.T) {
	day := date(2025, 9, 26)

	assert.True(t, mkBooking(day, "14:00", "18:00", BookingStatusPending).HasValidWindow())
	// нулевая длительность недопустима
	assert.False(t, mkBooking(day, "14:00", "14:00", BookingStatusPending).HasValidWindow())
	assert.False(t, mkBooking(day, "18:00", "14:00", BookingStatusPending).HasValidWindow())
	assert.False(t, mkBooking(day, "25:00", "26:00", BookingStatusPending).HasValidWindow())
	assert.False(t, mkBooking(time.Time{}, "14:00", "18:00", BookingStatusPending).HasValidWindow())
}
