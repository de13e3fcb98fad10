package domain

import (
	"time"

	"github.com/ensembleops/ERS-ReservationService/pkg/types"
)

// BookingStatus represents the status of an event booking
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusApproved BookingStatus = "approved"
	BookingStatusRejected BookingStatus = "rejected"
)

// Booking represents an engagement of the ensemble for a single date and
// time window. The ensemble is one exclusive resource: at most one Approved
// booking may exist per overlapping window.
type Booking struct {
	ID        int64
	Title     string
	EventDate time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    BookingStatus

	RequesterID      int64
	RequesterContact string

	// EstimatedValue is informational; populated from the pricing collaborator
	EstimatedValue float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the status allows no further transitions
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusApproved || s == BookingStatusRejected
}

// CanTransitionTo reports whether the booking state machine allows moving to
// the target status: pending -> approved | rejected; both are terminal.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	if b.Status != BookingStatusPending {
		return false
	}
	return target == BookingStatusApproved || target == BookingStatusRejected
}

// HasValidWindow returns true if both times are well-formed and the window has
// positive length (a zero-length window is invalid)
func (b *Booking) HasValidWindow() bool {
	if b.EventDate.IsZero() {
		return false
	}
	if b.StartTime.Validate() != nil || b.EndTime.Validate() != nil {
		return false
	}
	return b.StartTime.IsBefore(b.EndTime)
}

// OverlapsWindow returns true if the two bookings compete for the ensemble.
// Windows [s1,e1] and [s2,e2] on the same date overlap iff s1 < e2 and s2 < e1;
// back-to-back windows with touching endpoints do not overlap.
func (b *Booking) OverlapsWindow(other *Booking) bool {
	if !sameDay(b.EventDate, other.EventDate) {
		return false
	}
	return b.StartTime.IsBefore(other.EndTime) && other.StartTime.IsBefore(b.EndTime)
}

// BookingsFilter filter for listing bookings
type BookingsFilter struct {
	RequesterID *int64
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *BookingStatus
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
