package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRange_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		r     DateRange
		valid bool
	}{
		{"single day", DateRange{date(2025, 9, 26), date(2025, 9, 26)}, true},
		{"multi day", DateRange{date(2025, 9, 1), date(2025, 9, 5)}, true},
		{"start after end", DateRange{date(2025, 9, 5), date(2025, 9, 1)}, false},
		{"zero start", DateRange{time.Time{}, date(2025, 9, 5)}, false},
		{"zero end", DateRange{date(2025, 9, 5), time.Time{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.r.IsValid())
		})
	}
}

func TestDateRange_Overlaps(t *testing.T) {
	base := DateRange{date(2025, 9, 10), date(2025, 9, 15)}

	tests := []struct {
		name     string
		other    DateRange
		overlaps bool
	}{
		{"identical", DateRange{date(2025, 9, 10), date(2025, 9, 15)}, true},
		{"contained", DateRange{date(2025, 9, 11), date(2025, 9, 12)}, true},
		{"partial left", DateRange{date(2025, 9, 5), date(2025, 9, 10)}, true},
		{"partial right", DateRange{date(2025, 9, 15), date(2025, 9, 20)}, true},
		{"touching boundary day counts", DateRange{date(2025, 9, 15), date(2025, 9, 15)}, true},
		{"before", DateRange{date(2025, 9, 1), date(2025, 9, 9)}, false},
		{"after", DateRange{date(2025, 9, 16), date(2025, 9, 20)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.Overlaps(tt.other))
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(base))
		})
	}
}

func TestDateRange_Days(t *testing.T) {
	assert.Equal(t, 1, DateRange{date(2025, 9, 26), date(2025, 9, 26)}.Days())
	assert.Equal(t, 5, DateRange{date(2025, 9, 1), date(2025, 9, 5)}.Days())
	// время суток не влияет на количество дней
	r := DateRange{
		StartDate: time.Date(2025, 9, 1, 23, 30, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 2, 0, 15, 0, 0, time.UTC),
	}
	assert.Equal(t, 2, r.Days())
}

func TestDateRange_ContainsDate(t *testing.T) {
	r := DateRange{date(2025, 9, 10), date(2025, 9, 15)}
	assert.True(t, r.ContainsDate(date(2025, 9, 10)))
	assert.True(t, r.ContainsDate(date(2025, 9, 15)))
	assert.True(t, r.ContainsDate(date(2025, 9, 12)))
	assert.False(t, r.ContainsDate(date(2025, 9, 9)))
	assert.False(t, r.ContainsDate(date(2025, 9, 16)))
}
