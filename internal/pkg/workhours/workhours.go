package workhours

import (
	"errors"
	"time"
)

// DefaultStandardDayMinutes is the fallback standard working day (8 hours)
// when a company has no attendance settings row.
const DefaultStandardDayMinutes = 480

var ErrCheckOutBeforeCheckIn = errors.New("check-out time must be after check-in time")

// Break is a recorded pause between check-in and check-out.
type Break struct {
	DurationMinutes int
}

type Result struct {
	WorkMinutes     int
	OvertimeMinutes int
}

// Compute derives net worked minutes and overtime from stored timestamps and
// break durations. It reads no clocks: recomputing from the same inputs always
// yields the same result.
func Compute(checkIn, checkOut time.Time, breaks []Break, standardDayMinutes int) (Result, error) {
	if !checkOut.After(checkIn) {
		return Result{}, ErrCheckOutBeforeCheckIn
	}
	if standardDayMinutes <= 0 {
		standardDayMinutes = DefaultStandardDayMinutes
	}

	rawMinutes := int(checkOut.Sub(checkIn) / time.Minute)

	breakMinutes := 0
	for _, b := range breaks {
		if b.DurationMinutes > 0 {
			breakMinutes += b.DurationMinutes
		}
	}

	workMinutes := rawMinutes - breakMinutes
	if workMinutes < 0 {
		workMinutes = 0
	}

	overtimeMinutes := workMinutes - standardDayMinutes
	if overtimeMinutes < 0 {
		overtimeMinutes = 0
	}

	return Result{
		WorkMinutes:     workMinutes,
		OvertimeMinutes: overtimeMinutes,
	}, nil
}
