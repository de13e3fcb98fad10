package domain

import "time"

// ConditionStatus represents the physical condition of a catalog instrument
type ConditionStatus string

const (
	ConditionGood        ConditionStatus = "good"
	ConditionFair        ConditionStatus = "fair"
	ConditionPoor        ConditionStatus = "poor"
	ConditionUnavailable ConditionStatus = "unavailable"
)

// Instrument represents a catalog entry of a physical instrument held in quantity.
// Owned by inventory administration; this service only reads it.
type Instrument struct {
	ID              int64
	Name            string
	TotalQuantity   int
	PricePerDay     float64
	ConditionStatus ConditionStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsStocked returns true if the instrument has at least one unit in stock
func (i *Instrument) IsStocked() bool {
	return i.TotalQuantity > 0
}
