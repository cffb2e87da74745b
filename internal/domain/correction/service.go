package correction

import (
	"context"
)

// Service defines business logic for the correction workflow
type Service interface {
	// Request files a correction for a past day on behalf of the
	// authenticated employee.
	Request(ctx context.Context, req RequestCorrectionRequest) (CorrectionResponse, error)

	// Review approves or rejects a PENDING correction. Approval authorizes a
	// separate manual entry; it does not change the attendance record itself.
	Review(ctx context.Context, req ReviewRequest) (CorrectionResponse, error)

	// GetMyCorrections retrieves corrections for the authenticated employee.
	GetMyCorrections(ctx context.Context, filter Filter) (ListResponse, error)

	// ListCorrections retrieves corrections with filters (admin/manager).
	ListCorrections(ctx context.Context, filter Filter) (ListResponse, error)

	// GetCorrection retrieves a single correction by ID.
	GetCorrection(ctx context.Context, id string) (CorrectionResponse, error)
}
