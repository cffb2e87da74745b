package notification

import (
	"context"
)

// CreateNotificationRequest is the payload queued by emitting services.
type CreateNotificationRequest struct {
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        Type
	Title       string
	Message     string
	Data        map[string]interface{}
}

// Service is the notification sink. Queue is non-blocking from the caller's
// point of view: events are processed by background workers and dropped (with
// a log line) when the queue is full.
type Service interface {
	Queue(ctx context.Context, req CreateNotificationRequest)
	Stop()
}

// Repository persists notifications for later retrieval by the notification
// subsystem.
type Repository interface {
	CreateBatch(ctx context.Context, notifications []*Notification) error
}
