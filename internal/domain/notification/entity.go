package notification

import (
	"time"
)

// Type represents the type of notification
type Type string

const (
	TypeCheckedIn           Type = "attendance_checked_in"
	TypeCheckedOut          Type = "attendance_checked_out"
	TypeManualEntry         Type = "attendance_manual_entry"
	TypeCorrectionRequested Type = "correction_requested"
	TypeCorrectionApproved  Type = "correction_approved"
	TypeCorrectionRejected  Type = "correction_rejected"
)

// Notification is a status-change event emitted by the attendance engine.
// Delivery is best effort: a failed notification never fails the attendance
// operation that produced it.
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        Type
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	CreatedAt   time.Time
}
