package correction

import "errors"

// Correction domain errors
var (
	ErrDuplicateCorrection = errors.New("a correction request already exists for this day")
	ErrCorrectionNotFound  = errors.New("correction request not found")
	ErrAlreadyReviewed     = errors.New("correction request has already been reviewed")
)
