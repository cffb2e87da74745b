package attendance

import (
	"context"
)

// Service defines business logic for attendance operations
type Service interface {
	// CheckIn records the first attendance event of the employee's day,
	// validating the reported location against the company geofence.
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes today's open record and computes work and overtime
	// minutes from the stored timestamps and breaks.
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// StartBreak opens a break on today's open record.
	StartBreak(ctx context.Context, req StartBreakRequest) (BreakResponse, error)

	// EndBreak closes the open break on today's record.
	EndBreak(ctx context.Context) (BreakResponse, error)

	// ManualEntry creates or overwrites a record under admin authority,
	// bypassing geofence validation.
	ManualEntry(ctx context.Context, req ManualEntryRequest) (RecordResponse, error)

	// UpdateRecord fixes fields on an existing record (admin/manager).
	UpdateRecord(ctx context.Context, req UpdateRequest) (RecordResponse, error)

	// GetMyAttendance retrieves records for the authenticated employee.
	GetMyAttendance(ctx context.Context, filter Filter) (ListResponse, error)

	// ListAttendance retrieves records with filters (admin/manager).
	ListAttendance(ctx context.Context, filter Filter) (ListResponse, error)

	// GetRecord retrieves a single record by ID.
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
}
