package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNoCheckInFound    = errors.New("no check-in found for today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// Store errors
	ErrDuplicateRecord = errors.New("attendance record already exists for this day")
	ErrRecordNotFound  = errors.New("attendance record not found")

	// Break errors
	ErrBreakAlreadyOpen = errors.New("an open break already exists")
	ErrNoOpenBreak      = errors.New("no open break to end")
)
