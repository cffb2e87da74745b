package response

import (
	"errors"
	"net/http"

	"github.com/lokahr/attendance-backend-go/internal/domain/attendance"
	"github.com/lokahr/attendance-backend-go/internal/domain/company"
	"github.com/lokahr/attendance-backend-go/internal/domain/correction"
	"github.com/lokahr/attendance-backend-go/internal/domain/user"
	"github.com/lokahr/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNoCheckInFound):
		Conflict(w, "No check-in found for today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "Attendance record already exists for this day")
	case errors.Is(err, attendance.ErrBreakAlreadyOpen):
		Conflict(w, "A break is already in progress")
	case errors.Is(err, attendance.ErrNoOpenBreak):
		Conflict(w, "No break in progress")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Correction domain errors
	case errors.Is(err, correction.ErrDuplicateCorrection):
		Conflict(w, "A correction request already exists for this day")
	case errors.Is(err, correction.ErrAlreadyReviewed):
		Conflict(w, "Correction request has already been reviewed")
	case errors.Is(err, correction.ErrCorrectionNotFound):
		NotFound(w, "Correction request not found")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Authorization errors
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrEmployeeIDRequired):
		Forbidden(w, "Token does not carry an employee identity")
	case errors.Is(err, user.ErrCompanyIDRequired):
		Forbidden(w, "Token does not carry a company identity")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
