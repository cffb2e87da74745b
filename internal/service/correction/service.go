package correction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lokahr/attendance-backend-go/internal/domain/company"
	"github.com/lokahr/attendance-backend-go/internal/domain/correction"
	"github.com/lokahr/attendance-backend-go/internal/domain/notification"
	"github.com/lokahr/attendance-backend-go/internal/domain/user"
	"github.com/lokahr/attendance-backend-go/internal/pkg/authctx"
)

type service struct {
	correctionRepo  correction.Repository
	companyRepo     company.Repository
	notificationSvc notification.Service

	now func() time.Time
}

// NewCorrectionService creates the correction workflow service.
func NewCorrectionService(
	correctionRepo correction.Repository,
	companyRepo company.Repository,
	notificationSvc notification.Service,
) correction.Service {
	return &service{
		correctionRepo:  correctionRepo,
		companyRepo:     companyRepo,
		notificationSvc: notificationSvc,
		now:             time.Now,
	}
}

func (s *service) Request(ctx context.Context, req correction.RequestCorrectionRequest) (correction.CorrectionResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.CorrectionResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	settings, err := s.companyRepo.GetAttendanceSettings(ctx, identity.CompanyID)
	if err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, settings.Location())
	if err != nil {
		return correction.CorrectionResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	created, err := s.correctionRepo.Create(ctx, correction.Correction{
		EmployeeID: identity.EmployeeID,
		CompanyID:  identity.CompanyID,
		Date:       date,
		Reason:     req.Reason,
		Status:     correction.StatusPending,
	})
	if err != nil {
		if errors.Is(err, correction.ErrDuplicateCorrection) {
			return correction.CorrectionResponse{}, correction.ErrDuplicateCorrection
		}
		return correction.CorrectionResponse{}, fmt.Errorf("failed to create correction request: %w", err)
	}

	s.notificationSvc.Queue(ctx, notification.CreateNotificationRequest{
		CompanyID:   identity.CompanyID,
		RecipientID: identity.EmployeeID,
		Type:        notification.TypeCorrectionRequested,
		Title:       "Correction requested",
		Message:     fmt.Sprintf("Correction for %s submitted for review", req.Date),
		Data: map[string]interface{}{
			"correction_id": created.ID,
		},
	})

	return toResponse(created), nil
}

func (s *service) Review(ctx context.Context, req correction.ReviewRequest) (correction.CorrectionResponse, error) {
	if err := req.Validate(); err != nil {
		return correction.CorrectionResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}
	if !identity.Role.CanReviewAttendance() {
		return correction.CorrectionResponse{}, user.ErrManagerAccessRequired
	}

	status := correction.StatusApproved
	notifType := notification.TypeCorrectionApproved
	title := "Correction approved"
	if strings.ToUpper(req.Decision) == correction.DecisionReject {
		status = correction.StatusRejected
		notifType = notification.TypeCorrectionRejected
		title = "Correction rejected"
	}

	now := s.now()
	resolved, err := s.correctionRepo.Resolve(ctx, correction.Correction{
		ID:         req.ID,
		CompanyID:  identity.CompanyID,
		Status:     status,
		ReviewedBy: &identity.EmployeeID,
		ReviewNote: req.Note,
		ReviewedAt: &now,
	})
	if err != nil {
		if errors.Is(err, correction.ErrAlreadyReviewed) || errors.Is(err, correction.ErrCorrectionNotFound) {
			return correction.CorrectionResponse{}, err
		}
		return correction.CorrectionResponse{}, fmt.Errorf("failed to resolve correction: %w", err)
	}

	s.notificationSvc.Queue(ctx, notification.CreateNotificationRequest{
		CompanyID:   identity.CompanyID,
		RecipientID: resolved.EmployeeID,
		SenderID:    &identity.EmployeeID,
		Type:        notifType,
		Title:       title,
		Message:     fmt.Sprintf("Your correction for %s was %s", resolved.Date.Format("2006-01-02"), strings.ToLower(status)),
		Data: map[string]interface{}{
			"correction_id": resolved.ID,
			"status":        resolved.Status,
		},
	})

	return toResponse(resolved), nil
}

func (s *service) GetMyCorrections(ctx context.Context, filter correction.Filter) (correction.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return correction.ListResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return correction.ListResponse{}, err
	}

	corrections, total, err := s.correctionRepo.ListByEmployee(ctx, identity.EmployeeID, filter, identity.CompanyID)
	if err != nil {
		return correction.ListResponse{}, fmt.Errorf("failed to list corrections: %w", err)
	}

	return toListResponse(corrections, total, filter), nil
}

func (s *service) ListCorrections(ctx context.Context, filter correction.Filter) (correction.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return correction.ListResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return correction.ListResponse{}, err
	}
	if !identity.Role.CanReviewAttendance() {
		return correction.ListResponse{}, user.ErrManagerAccessRequired
	}

	corrections, total, err := s.correctionRepo.List(ctx, filter, identity.CompanyID)
	if err != nil {
		return correction.ListResponse{}, fmt.Errorf("failed to list corrections: %w", err)
	}

	return toListResponse(corrections, total, filter), nil
}

func (s *service) GetCorrection(ctx context.Context, id string) (correction.CorrectionResponse, error) {
	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	c, err := s.correctionRepo.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		return correction.CorrectionResponse{}, err
	}

	// Employees can only see their own correction requests.
	if !identity.Role.CanReviewAttendance() && c.EmployeeID != identity.EmployeeID {
		return correction.CorrectionResponse{}, correction.ErrCorrectionNotFound
	}

	return toResponse(c), nil
}

func toResponse(c correction.Correction) correction.CorrectionResponse {
	resp := correction.CorrectionResponse{
		ID:           c.ID,
		EmployeeID:   c.EmployeeID,
		EmployeeName: c.EmployeeName,
		Date:         c.Date.Format("2006-01-02"),
		Reason:       c.Reason,
		Status:       c.Status,
		ReviewedBy:   c.ReviewedBy,
		ReviewNote:   c.ReviewNote,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}

	if c.ReviewedAt != nil {
		reviewedAt := c.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewedAt
	}

	return resp
}

func toListResponse(corrections []correction.Correction, total int64, filter correction.Filter) correction.ListResponse {
	resp := correction.ListResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Corrections: make([]correction.CorrectionResponse, 0, len(corrections)),
	}

	if filter.Limit > 0 {
		resp.TotalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}

	for _, c := range corrections {
		resp.Corrections = append(resp.Corrections, toResponse(c))
	}

	return resp
}
