package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationRequest_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		kind    RequestKind
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{"pending to approved", KindRental, RequestStatusPending, RequestStatusApproved, true},
		{"pending to rejected", KindRental, RequestStatusPending, RequestStatusRejected, true},
		{"pending to paid skips approval", KindRental, RequestStatusPending, RequestStatusPaid, false},
		{"pending to returned skips approval", KindRental, RequestStatusPending, RequestStatusReturned, false},
		{"approved to paid rental", KindRental, RequestStatusApproved, RequestStatusPaid, true},
		{"approved to paid borrow", KindBorrow, RequestStatusApproved, RequestStatusPaid, false},
		{"approved to returned", KindRental, RequestStatusApproved, RequestStatusReturned, true},
		{"approved borrow to returned", KindBorrow, RequestStatusApproved, RequestStatusReturned, true},
		{"approved back to pending", KindRental, RequestStatusApproved, RequestStatusPending, false},
		{"paid to returned", KindRental, RequestStatusPaid, RequestStatusReturned, true},
		{"paid to rejected", KindRental, RequestStatusPaid, RequestStatusRejected, false},
		{"rejected is terminal", KindRental, RequestStatusRejected, RequestStatusApproved, false},
		{"rejected twice", KindRental, RequestStatusRejected, RequestStatusRejected, false},
		{"returned is terminal", KindRental, RequestStatusReturned, RequestStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ReservationRequest{Kind: tt.kind, Status: tt.from}
			assert.Equal(t, tt.allowed, r.CanTransitionTo(tt.to))
		})
	}
}

func TestReservationRequest_ConsumesCapacity(t *testing.T) {
	consuming := []RequestStatus{RequestStatusPending, RequestStatusApproved, RequestStatusPaid}
	for _, s := range consuming {
		r := &ReservationRequest{Status: s}
		assert.True(t, r.ConsumesCapacity(), "status %s must consume capacity", s)
	}

	released := []RequestStatus{RequestStatusRejected, RequestStatusReturned}
	for _, s := range released {
		r := &ReservationRequest{Status: s}
		assert.False(t, r.ConsumesCapacity(), "status %s must release capacity", s)
	}
}

func TestRequestStatus_IsTerminal(t *testing.T) {
	assert.True(t, RequestStatusRejected.IsTerminal())
	assert.True(t, RequestStatusReturned.IsTerminal())
	assert.False(t, RequestStatusPending.IsTerminal())
	assert.False(t, RequestStatusApproved.IsTerminal())
	assert.False(t, RequestStatusPaid.IsTerminal())
}
