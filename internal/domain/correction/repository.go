package correction

import (
	"context"
)

// Repository defines data access for correction requests. All methods take a
// companyID to prevent cross-company data access.
type Repository interface {
	// Create inserts a new PENDING correction. A second request for the same
	// (employee, company, date) hits the storage unique constraint and
	// returns ErrDuplicateCorrection regardless of the existing request's
	// state.
	Create(ctx context.Context, c Correction) (Correction, error)

	// GetByID retrieves a correction by ID with company isolation.
	GetByID(ctx context.Context, id string, companyID string) (Correction, error)

	// Resolve moves a PENDING correction to APPROVED or REJECTED in a single
	// guarded statement. When the guard does not match an existing row it
	// returns ErrAlreadyReviewed; when the row does not exist it returns
	// ErrCorrectionNotFound.
	Resolve(ctx context.Context, c Correction) (Correction, error)

	// List retrieves corrections with filters and pagination for one company.
	List(ctx context.Context, filter Filter, companyID string) ([]Correction, int64, error)

	// ListByEmployee retrieves one employee's corrections with filters.
	ListByEmployee(ctx context.Context, employeeID string, filter Filter, companyID string) ([]Correction, int64, error)
}
