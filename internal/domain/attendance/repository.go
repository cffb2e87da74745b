package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records. All methods take a
// companyID to prevent cross-company data access.
//
// The one-record-per-employee-per-day rule is enforced here, not in the
// service layer: CreateIfAbsent relies on the storage unique constraint over
// (employee_id, company_id, date), and CompleteCheckOut is guarded so that
// concurrent check-outs serialize at the row.
type Repository interface {
	// CreateIfAbsent atomically inserts the record. If a record already exists
	// for (employee, company, date) it returns ErrDuplicateRecord and leaves
	// the existing row untouched. Never a read-then-write.
	CreateIfAbsent(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by ID with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Record, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one
	// calendar day, or nil when none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*Record, error)

	// CompleteCheckOut writes the check-out leg and derived work figures in a
	// single statement guarded by "check_out_at IS NULL". When the guard does
	// not match an existing row it returns ErrAlreadyCheckedOut; when the row
	// does not exist at all it returns ErrRecordNotFound.
	CompleteCheckOut(ctx context.Context, record Record) (Record, error)

	// Upsert creates or overwrites a record for manual entry. The unique
	// constraint resolves the conflict; admin authority permits the overwrite.
	Upsert(ctx context.Context, record Record) (Record, error)

	// Update applies an admin edit to an existing record.
	Update(ctx context.Context, record Record) error

	// List retrieves records with filters and pagination for one company.
	List(ctx context.Context, filter Filter, companyID string) ([]Record, int64, error)

	// ListByEmployee retrieves one employee's records with filters.
	ListByEmployee(ctx context.Context, employeeID string, filter Filter, companyID string) ([]Record, int64, error)

	// Breaks
	AddBreak(ctx context.Context, brk Break) (Break, error)
	CloseBreak(ctx context.Context, attendanceID string, endedAt time.Time) (Break, error)
	ListBreaks(ctx context.Context, attendanceID string) ([]Break, error)
	GetOpenBreak(ctx context.Context, attendanceID string) (*Break, error)

	// MissingForDate returns active employee IDs with no record on the given
	// day. Used by the scheduler to backfill ABSENT/WEEKEND/HOLIDAY rows.
	MissingForDate(ctx context.Context, companyID string, date time.Time) ([]string, error)
}

// TxManager runs a function inside a storage transaction. Repository calls
// made with the wrapped context join the same transaction.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
