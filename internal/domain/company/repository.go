package company

import (
	"context"
	"time"
)

// Repository is the read-side collaborator resolving a company's office
// geofence and attendance thresholds. Identity and company management live in
// a separate service; this engine only reads.
type Repository interface {
	// GetOfficeLocation returns the configured office, or nil when the
	// company has none. Callers treat nil as "geofence validation skipped,
	// default to outside office".
	GetOfficeLocation(ctx context.Context, companyID string) (*OfficeLocation, error)

	// GetAttendanceSettings returns the company thresholds, falling back to
	// DefaultAttendanceSettings when no row exists.
	GetAttendanceSettings(ctx context.Context, companyID string) (AttendanceSettings, error)

	// IsHoliday reports whether the given calendar day is a configured
	// company holiday.
	IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error)

	// ListActiveCompanyIDs returns companies with active employees; used by
	// the scheduler.
	ListActiveCompanyIDs(ctx context.Context) ([]string, error)
}
