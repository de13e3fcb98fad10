package domain

import "time"

// RequestStatus represents the lifecycle status of a reservation request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
	RequestStatusPaid     RequestStatus = "paid"
	RequestStatusReturned RequestStatus = "returned"
)

// RequestKind distinguishes paid rentals from free borrows.
// Borrows skip the paid step of the lifecycle.
type RequestKind string

const (
	KindRental RequestKind = "rental"
	KindBorrow RequestKind = "borrow"
)

// ReservationRequest represents a request to hold a quantity of one instrument
// over an inclusive date range
type ReservationRequest struct {
	ID           int64
	InstrumentID int64
	Kind         RequestKind
	Quantity     int
	Period       DateRange
	Status       RequestStatus

	RequesterID      int64
	RequesterContact string

	// RentalFee is informational only; it never participates in admission decisions
	RentalFee float64

	// ClientToken is an optional client-generated correlation token used to
	// reconcile optimistic client-side identities with server-issued IDs
	ClientToken *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the status allows no further transitions
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusRejected || s == RequestStatusReturned
}

// ConsumesCapacity returns true if the request still counts against the
// instrument's available quantity
func (r *ReservationRequest) ConsumesCapacity() bool {
	return r.Status == RequestStatusPending ||
		r.Status == RequestStatusApproved ||
		r.Status == RequestStatusPaid
}

// CanTransitionTo reports whether the lifecycle state machine allows moving
// the request to the target status:
//
//	pending  -> approved | rejected
//	approved -> paid (rental only) | returned
//	paid     -> returned
//	rejected, returned are terminal
func (r *ReservationRequest) CanTransitionTo(target RequestStatus) bool {
	switch r.Status {
	case RequestStatusPending:
		return target == RequestStatusApproved || target == RequestStatusRejected
	case RequestStatusApproved:
		if target == RequestStatusReturned {
			return true
		}
		return target == RequestStatusPaid && r.Kind == KindRental
	case RequestStatusPaid:
		return target == RequestStatusReturned
	default:
		return false
	}
}

// RequestsFilter filter for listing reservation requests
type RequestsFilter struct {
	RequesterID  *int64
	InstrumentID *int64
	Status       *RequestStatus
	Period       *DateRange // overlap filter, not containment
}
