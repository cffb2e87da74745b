package attendance

import (
	"time"
)

// Daily attendance statuses. HOLIDAY, WEEKEND and ABSENT are only ever written
// by the scheduler or an admin manual entry, never by the employee's own
// check-in.
const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusHalfDay = "HALF_DAY"
	StatusOnLeave = "ON_LEAVE"
	StatusHoliday = "HOLIDAY"
	StatusWeekend = "WEEKEND"
)

func ValidStatuses() []string {
	return []string{
		StatusPresent,
		StatusAbsent,
		StatusLate,
		StatusHalfDay,
		StatusOnLeave,
		StatusHoliday,
		StatusWeekend,
	}
}

// Record is one employee's attendance for one calendar day. The
// (EmployeeID, CompanyID, Date) triple is unique at the storage layer.
type Record struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time

	CheckInAt           *time.Time
	CheckInLatitude     *float64
	CheckInLongitude    *float64
	CheckInAddress      *string
	CheckInWithinOffice *bool
	DeviceInfo          *string

	CheckOutAt           *time.Time
	CheckOutLatitude     *float64
	CheckOutLongitude    *float64
	CheckOutAddress      *string
	CheckOutWithinOffice *bool

	Status          string
	WorkMinutes     *int
	OvertimeMinutes *int
	Notes           *string

	IsManualEntry     bool
	ManualEntryReason *string
	ApprovedBy        *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// Break is a recorded pause inside a record's day. An open break has a nil
// EndedAt; check-out closes it.
type Break struct {
	ID              string
	AttendanceID    string
	StartedAt       time.Time
	EndedAt         *time.Time
	DurationMinutes int
	Reason          *string
	CreatedAt       time.Time
}
