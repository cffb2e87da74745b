package workhours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func TestCompute_StandardDay(t *testing.T) {
	result, err := Compute(ts(9, 0), ts(17, 0), nil, 480)

	assert.NoError(t, err)
	assert.Equal(t, 480, result.WorkMinutes)
	assert.Equal(t, 0, result.OvertimeMinutes)
}

func TestCompute_WithBreaks(t *testing.T) {
	breaks := []Break{{DurationMinutes: 30}, {DurationMinutes: 15}}

	result, err := Compute(ts(9, 0), ts(17, 0), breaks, 480)

	assert.NoError(t, err)
	assert.Equal(t, 435, result.WorkMinutes)
	assert.Equal(t, 0, result.OvertimeMinutes)
}

func TestCompute_Overtime(t *testing.T) {
	result, err := Compute(ts(9, 0), ts(19, 30), nil, 480)

	assert.NoError(t, err)
	assert.Equal(t, 630, result.WorkMinutes)
	assert.Equal(t, 150, result.OvertimeMinutes)
}

func TestCompute_FloorsPartialMinutes(t *testing.T) {
	checkIn := ts(9, 0)
	checkOut := checkIn.Add(59*time.Minute + 59*time.Second)

	result, err := Compute(checkIn, checkOut, nil, 480)

	assert.NoError(t, err)
	assert.Equal(t, 59, result.WorkMinutes)
}

func TestCompute_BreaksExceedWork(t *testing.T) {
	breaks := []Break{{DurationMinutes: 120}}

	result, err := Compute(ts(9, 0), ts(10, 0), breaks, 480)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.WorkMinutes)
	assert.Equal(t, 0, result.OvertimeMinutes)
}

func TestCompute_NegativeBreakIgnored(t *testing.T) {
	breaks := []Break{{DurationMinutes: -30}, {DurationMinutes: 20}}

	result, err := Compute(ts(9, 0), ts(17, 0), breaks, 480)

	assert.NoError(t, err)
	assert.Equal(t, 460, result.WorkMinutes)
}

func TestCompute_CheckOutBeforeCheckIn(t *testing.T) {
	_, err := Compute(ts(17, 0), ts(9, 0), nil, 480)

	assert.ErrorIs(t, err, ErrCheckOutBeforeCheckIn)
}

func TestCompute_CheckOutEqualsCheckIn(t *testing.T) {
	_, err := Compute(ts(9, 0), ts(9, 0), nil, 480)

	assert.ErrorIs(t, err, ErrCheckOutBeforeCheckIn)
}

func TestCompute_DefaultStandardDay(t *testing.T) {
	// Zero falls back to 480.
	result, err := Compute(ts(9, 0), ts(18, 0), nil, 0)

	assert.NoError(t, err)
	assert.Equal(t, 540, result.WorkMinutes)
	assert.Equal(t, 60, result.OvertimeMinutes)
}

func TestCompute_MonotonicInCheckOut(t *testing.T) {
	breaks := []Break{{DurationMinutes: 45}}

	prev := -1
	for minutes := 30; minutes <= 12*60; minutes += 17 {
		result, err := Compute(ts(9, 0), ts(9, 0).Add(time.Duration(minutes)*time.Minute), breaks, 480)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, result.WorkMinutes, prev,
			"a later check-out must never reduce work minutes (at +%dm)", minutes)
		prev = result.WorkMinutes
	}
}

func TestCompute_RecomputeIsIdempotent(t *testing.T) {
	breaks := []Break{{DurationMinutes: 30}, {DurationMinutes: 15}}

	first, err := Compute(ts(8, 30), ts(18, 10), breaks, 480)
	assert.NoError(t, err)
	second, err := Compute(ts(8, 30), ts(18, 10), breaks, 480)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}
