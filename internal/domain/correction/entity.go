package correction

import "time"

// Correction statuses. A correction transitions once, PENDING to APPROVED or
// REJECTED, and is terminal thereafter.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Correction is an employee-initiated request to amend a past attendance
// record. Approval authorizes a manual entry; it never applies one. The
// (EmployeeID, CompanyID, Date) triple is unique at the storage layer.
type Correction struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time
	Reason     string
	Status     string
	ReviewedBy *string
	ReviewNote *string
	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}
