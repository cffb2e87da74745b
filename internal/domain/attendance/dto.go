package attendance

import (
	"strings"

	"github.com/lokahr/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Address    *string `json:"address,omitempty"`
	DeviceInfo *string `json:"device_info,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   *string `json:"address,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ManualEntryRequest creates or overwrites a record under admin authority.
// Geofence fields are accepted as given; no validation against the office is
// performed.
type ManualEntryRequest struct {
	EmployeeID           string   `json:"employee_id"`
	Date                 string   `json:"date"`                   // YYYY-MM-DD
	CheckInTime          *string  `json:"check_in_time,omitempty"` // RFC3339
	CheckOutTime         *string  `json:"check_out_time,omitempty"`
	CheckInLatitude      *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude     *float64 `json:"check_in_longitude,omitempty"`
	CheckInWithinOffice  *bool    `json:"check_in_within_office,omitempty"`
	CheckOutLatitude     *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude    *float64 `json:"check_out_longitude,omitempty"`
	CheckOutWithinOffice *bool    `json:"check_out_within_office,omitempty"`
	Status               string   `json:"status"`
	Reason               string   `json:"reason"`
	Notes                *string  `json:"notes,omitempty"`
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !validator.IsInSlice(strings.ToUpper(r.Status), ValidStatuses()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: PRESENT, ABSENT, LATE, HALF_DAY, ON_LEAVE, HOLIDAY, WEEKEND",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "manual entry reason is required",
		})
	}

	if r.CheckInTime != nil {
		if _, valid := validator.IsValidDateTime(*r.CheckInTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.CheckOutTime != nil {
		if _, valid := validator.IsValidDateTime(*r.CheckOutTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.CheckInLatitude != nil && !validator.IsValidLatitude(*r.CheckInLatitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_latitude",
			Message: "check_in_latitude must be between -90 and 90",
		})
	}
	if r.CheckInLongitude != nil && !validator.IsValidLongitude(*r.CheckInLongitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_in_longitude",
			Message: "check_in_longitude must be between -180 and 180",
		})
	}
	if r.CheckOutLatitude != nil && !validator.IsValidLatitude(*r.CheckOutLatitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_latitude",
			Message: "check_out_latitude must be between -90 and 90",
		})
	}
	if r.CheckOutLongitude != nil && !validator.IsValidLongitude(*r.CheckOutLongitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "check_out_longitude",
			Message: "check_out_longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateRequest fixes fields on an existing record (admin/manager).
type UpdateRequest struct {
	ID           string  `json:"-"`
	CheckInTime  *string `json:"check_in_time,omitempty"`  // RFC3339
	CheckOutTime *string `json:"check_out_time,omitempty"` // RFC3339
	Status       *string `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	Reason       string  `json:"reason"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !validator.IsInSlice(strings.ToUpper(*r.Status), ValidStatuses()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: PRESENT, ABSENT, LATE, HALF_DAY, ON_LEAVE, HOLIDAY, WEEKEND",
		})
	}

	if r.CheckInTime != nil {
		if _, valid := validator.IsValidDateTime(*r.CheckInTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in_time",
				Message: "check_in_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.CheckOutTime != nil {
		if _, valid := validator.IsValidDateTime(*r.CheckOutTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out_time",
				Message: "check_out_time must be an RFC3339 timestamp",
			})
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "edit reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type StartBreakRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ========================================
// RESPONSES
// ========================================

type BreakResponse struct {
	ID              string  `json:"id"`
	StartedAt       string  `json:"started_at"`
	EndedAt         *string `json:"ended_at,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Reason          *string `json:"reason,omitempty"`
}

type RecordResponse struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         *string         `json:"employee_name,omitempty"`
	Date                 string          `json:"date"`
	CheckInTime          *string         `json:"check_in_time,omitempty"`
	CheckInLatitude      *float64        `json:"check_in_latitude,omitempty"`
	CheckInLongitude     *float64        `json:"check_in_longitude,omitempty"`
	CheckInAddress       *string         `json:"check_in_address,omitempty"`
	CheckInWithinOffice  *bool           `json:"check_in_within_office,omitempty"`
	CheckOutTime         *string         `json:"check_out_time,omitempty"`
	CheckOutLatitude     *float64        `json:"check_out_latitude,omitempty"`
	CheckOutLongitude    *float64        `json:"check_out_longitude,omitempty"`
	CheckOutWithinOffice *bool           `json:"check_out_within_office,omitempty"`
	Status               string          `json:"status"`
	WorkMinutes          *int            `json:"work_minutes,omitempty"`
	OvertimeMinutes      *int            `json:"overtime_minutes,omitempty"`
	Breaks               []BreakResponse `json:"breaks,omitempty"`
	Notes                *string         `json:"notes,omitempty"`
	IsManualEntry        bool            `json:"is_manual_entry"`
	ManualEntryReason    *string         `json:"manual_entry_reason,omitempty"`
	ApprovedBy           *string         `json:"approved_by,omitempty"`
	CreatedAt            string          `json:"created_at"`
	UpdatedAt            string          `json:"updated_at"`
}

type ListResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

// ========================================
// FILTERS
// ========================================

type Filter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, check_in_time, check_out_time, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && !validator.IsInSlice(strings.ToUpper(*f.Status), ValidStatuses()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: PRESENT, ABSENT, LATE, HALF_DAY, ON_LEAVE, HOLIDAY, WEEKEND",
		})
	}

	for field, value := range map[string]*string{
		"date":       f.Date,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if value != nil && *value != "" {
			if _, valid := validator.IsValidDate(*value); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"date", "check_in_time", "check_out_time", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, check_in_time, check_out_time, status",
			})
		}
	} else {
		f.SortBy = "date" // Default sort
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
