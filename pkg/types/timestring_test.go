package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("9:30am")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("24:00")
	assert.Error(t, err)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	_, err = TimeString("bad").AddMinutes(30)
	assert.Error(t, err)
}

func TestTimeString_MinutesSinceMidnight(t *testing.T) {
	m, err := TimeString("02:05").MinutesSinceMidnight()
	require.NoError(t, err)
	assert.Equal(t, 125, m)
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 9, 26, 14, 7, 0, 0, time.UTC))
	assert.Equal(t, TimeString("14:07"), ts)
}
