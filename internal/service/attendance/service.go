package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lokahr/attendance-backend-go/internal/domain/attendance"
	"github.com/lokahr/attendance-backend-go/internal/domain/company"
	"github.com/lokahr/attendance-backend-go/internal/domain/notification"
	"github.com/lokahr/attendance-backend-go/internal/domain/user"
	"github.com/lokahr/attendance-backend-go/internal/pkg/authctx"
	"github.com/lokahr/attendance-backend-go/internal/pkg/geofence"
	"github.com/lokahr/attendance-backend-go/internal/pkg/workhours"
)

type service struct {
	txManager       attendance.TxManager
	attendanceRepo  attendance.Repository
	companyRepo     company.Repository
	notificationSvc notification.Service

	// now is swappable for deterministic tests
	now func() time.Time
}

// NewAttendanceService creates the attendance service wired to its
// repositories and the notification sink.
func NewAttendanceService(
	txManager attendance.TxManager,
	attendanceRepo attendance.Repository,
	companyRepo company.Repository,
	notificationSvc notification.Service,
) attendance.Service {
	return &service{
		txManager:       txManager,
		attendanceRepo:  attendanceRepo,
		companyRepo:     companyRepo,
		notificationSvc: notificationSvc,
		now:             time.Now,
	}
}

// evaluateGeofence resolves the company office and scores the reported point
// against it. A company with no configured office degrades to "outside
// office" with a warning instead of rejecting the check-in.
func (s *service) evaluateGeofence(ctx context.Context, companyID string, lat, lng float64) (bool, error) {
	loc, err := s.companyRepo.GetOfficeLocation(ctx, companyID)
	if err != nil {
		return false, fmt.Errorf("failed to get office location: %w", err)
	}

	var office *geofence.Office
	if loc != nil {
		office = &geofence.Office{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			RadiusKm:  loc.RadiusKm,
		}
	}

	result, err := geofence.Evaluate(geofence.Point{Latitude: lat, Longitude: lng}, office)
	if err != nil {
		if errors.Is(err, geofence.ErrNotConfigured) {
			slog.Warn("office location not configured, treating as outside office",
				"company_id", companyID)
			return false, nil
		}
		return false, fmt.Errorf("failed to evaluate geofence: %w", err)
	}

	return result.WithinOffice, nil
}

// localDay truncates t to the start of its calendar day in the company's
// configured timezone. The stored date column carries the local day so that a
// late-night check-in lands on the correct attendance day.
func localDay(t time.Time, settings company.AttendanceSettings) time.Time {
	lt := t.In(settings.Location())
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, lt.Location())
}

func (s *service) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	settings, err := s.companyRepo.GetAttendanceSettings(ctx, identity.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	now := s.now()
	today := localDay(now, settings)

	withinOffice, err := s.evaluateGeofence(ctx, identity.CompanyID, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	status := attendance.StatusPresent
	if !withinOffice {
		status = attendance.StatusLate
	}

	rec := attendance.Record{
		EmployeeID:          identity.EmployeeID,
		CompanyID:           identity.CompanyID,
		Date:                today,
		CheckInAt:           &now,
		CheckInLatitude:     &req.Latitude,
		CheckInLongitude:    &req.Longitude,
		CheckInAddress:      req.Address,
		CheckInWithinOffice: &withinOffice,
		DeviceInfo:          req.DeviceInfo,
		Status:              status,
	}

	created, err := s.attendanceRepo.CreateIfAbsent(ctx, rec)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	s.notificationSvc.Queue(ctx, notification.CreateNotificationRequest{
		CompanyID:   identity.CompanyID,
		RecipientID: identity.EmployeeID,
		Type:        notification.TypeCheckedIn,
		Title:       "Checked in",
		Message:     fmt.Sprintf("Checked in at %s", now.In(settings.Location()).Format("15:04")),
		Data: map[string]interface{}{
			"attendance_id": created.ID,
			"status":        created.Status,
		},
	})

	return toRecordResponse(created, nil), nil
}

func (s *service) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	settings, err := s.companyRepo.GetAttendanceSettings(ctx, identity.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	now := s.now()
	today := localDay(now, settings)

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, identity.EmployeeID, today, identity.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if rec == nil || rec.CheckInAt == nil {
		return attendance.RecordResponse{}, attendance.ErrNoCheckInFound
	}
	if rec.CheckOutAt != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	withinOffice, err := s.evaluateGeofence(ctx, identity.CompanyID, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	// The break close and the check-out write commit together or not at all.
	var completed attendance.Record
	var breaks []attendance.Break
	var workMinutes int
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		openBreak, err := s.attendanceRepo.GetOpenBreak(txCtx, rec.ID)
		if err != nil {
			return fmt.Errorf("failed to get open break: %w", err)
		}
		if openBreak != nil {
			if _, err := s.attendanceRepo.CloseBreak(txCtx, rec.ID, now); err != nil {
				return fmt.Errorf("failed to close open break: %w", err)
			}
		}

		breaks, err = s.attendanceRepo.ListBreaks(txCtx, rec.ID)
		if err != nil {
			return fmt.Errorf("failed to list breaks: %w", err)
		}

		workBreaks := make([]workhours.Break, len(breaks))
		for i, b := range breaks {
			workBreaks[i] = workhours.Break{DurationMinutes: b.DurationMinutes}
		}

		result, err := workhours.Compute(*rec.CheckInAt, now, workBreaks, settings.StandardDayMinutes)
		if err != nil {
			return fmt.Errorf("failed to compute work hours: %w", err)
		}
		workMinutes = result.WorkMinutes

		status := rec.Status
		if result.WorkMinutes < settings.HalfDayThresholdMinutes &&
			(status == attendance.StatusPresent || status == attendance.StatusLate) {
			status = attendance.StatusHalfDay
		}

		update := *rec
		update.CheckOutAt = &now
		update.CheckOutLatitude = &req.Latitude
		update.CheckOutLongitude = &req.Longitude
		update.CheckOutAddress = req.Address
		update.CheckOutWithinOffice = &withinOffice
		update.Status = status
		update.WorkMinutes = &result.WorkMinutes
		update.OvertimeMinutes = &result.OvertimeMinutes

		completed, err = s.attendanceRepo.CompleteCheckOut(txCtx, update)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to complete check-out: %w", err)
	}

	s.notificationSvc.Queue(ctx, notification.CreateNotificationRequest{
		CompanyID:   identity.CompanyID,
		RecipientID: identity.EmployeeID,
		Type:        notification.TypeCheckedOut,
		Title:       "Checked out",
		Message:     fmt.Sprintf("Checked out at %s, %d minutes worked", now.In(settings.Location()).Format("15:04"), workMinutes),
		Data: map[string]interface{}{
			"attendance_id": completed.ID,
			"work_minutes":  workMinutes,
		},
	})

	return toRecordResponse(completed, breaks), nil
}

func (s *service) StartBreak(ctx context.Context, req attendance.StartBreakRequest) (attendance.BreakResponse, error) {
	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	settings, err := s.companyRepo.GetAttendanceSettings(ctx, identity.CompanyID)
	if err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	now := s.now()
	today := localDay(now, settings)

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, identity.EmployeeID, today, identity.CompanyID)
	if err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if rec == nil || rec.CheckInAt == nil {
		return attendance.BreakResponse{}, attendance.ErrNoCheckInFound
	}
	if rec.CheckOutAt != nil {
		return attendance.BreakResponse{}, attendance.ErrAlreadyCheckedOut
	}

	open, err := s.attendanceRepo.GetOpenBreak(ctx, rec.ID)
	if err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to get open break: %w", err)
	}
	if open != nil {
		return attendance.BreakResponse{}, attendance.ErrBreakAlreadyOpen
	}

	brk, err := s.attendanceRepo.AddBreak(ctx, attendance.Break{
		AttendanceID: rec.ID,
		StartedAt:    now,
		Reason:       req.Reason,
	})
	if err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to add break: %w", err)
	}

	return toBreakResponse(brk), nil
}

func (s *service) EndBreak(ctx context.Context) (attendance.BreakResponse, error) {
	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	settings, err := s.companyRepo.GetAttendanceSettings(ctx, identity.CompanyID)
	if err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	now := s.now()
	today := localDay(now, settings)

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, identity.EmployeeID, today, identity.CompanyID)
	if err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if rec == nil || rec.CheckInAt == nil {
		return attendance.BreakResponse{}, attendance.ErrNoCheckInFound
	}

	brk, err := s.attendanceRepo.CloseBreak(ctx, rec.ID, now)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenBreak) {
			return attendance.BreakResponse{}, attendance.ErrNoOpenBreak
		}
		return attendance.BreakResponse{}, fmt.Errorf("failed to close break: %w", err)
	}

	return toBreakResponse(brk), nil
}

func (s *service) ManualEntry(ctx context.Context, req attendance.ManualEntryRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !identity.Role.CanReviewAttendance() {
		return attendance.RecordResponse{}, user.ErrManagerAccessRequired
	}

	settings, err := s.companyRepo.GetAttendanceSettings(ctx, identity.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, settings.Location())
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	var checkInAt, checkOutAt *time.Time
	if req.CheckInTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to parse check_in_time: %w", err)
		}
		checkInAt = &t
	}
	if req.CheckOutTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to parse check_out_time: %w", err)
		}
		checkOutAt = &t
	}

	// An overwrite keeps the existing row and its break children; the new
	// work figures must stay net of those breaks.
	var workBreaks []workhours.Break
	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date, identity.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if existing != nil {
		breaks, err := s.attendanceRepo.ListBreaks(ctx, existing.ID)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to list breaks: %w", err)
		}
		workBreaks = make([]workhours.Break, len(breaks))
		for i, b := range breaks {
			workBreaks[i] = workhours.Break{DurationMinutes: b.DurationMinutes}
		}
	}

	// Work figures are always recomputed server side, never accepted from the
	// request.
	var workMinutes, overtimeMinutes *int
	if checkInAt != nil && checkOutAt != nil {
		result, err := workhours.Compute(*checkInAt, *checkOutAt, workBreaks, settings.StandardDayMinutes)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		workMinutes = &result.WorkMinutes
		overtimeMinutes = &result.OvertimeMinutes
	}

	approvedBy := identity.EmployeeID

	rec := attendance.Record{
		EmployeeID:           req.EmployeeID,
		CompanyID:            identity.CompanyID,
		Date:                 date,
		CheckInAt:            checkInAt,
		CheckInLatitude:      req.CheckInLatitude,
		CheckInLongitude:     req.CheckInLongitude,
		CheckInWithinOffice:  req.CheckInWithinOffice,
		CheckOutAt:           checkOutAt,
		CheckOutLatitude:     req.CheckOutLatitude,
		CheckOutLongitude:    req.CheckOutLongitude,
		CheckOutWithinOffice: req.CheckOutWithinOffice,
		Status:               strings.ToUpper(req.Status),
		WorkMinutes:          workMinutes,
		OvertimeMinutes:      overtimeMinutes,
		Notes:                req.Notes,
		IsManualEntry:        true,
		ManualEntryReason:    &req.Reason,
		ApprovedBy:           &approvedBy,
	}

	saved, err := s.attendanceRepo.Upsert(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	s.notificationSvc.Queue(ctx, notification.CreateNotificationRequest{
		CompanyID:   identity.CompanyID,
		RecipientID: req.EmployeeID,
		SenderID:    &approvedBy,
		Type:        notification.TypeManualEntry,
		Title:       "Attendance updated",
		Message:     fmt.Sprintf("Your attendance for %s was entered manually", req.Date),
		Data: map[string]interface{}{
			"attendance_id": saved.ID,
			"status":        saved.Status,
		},
	})

	return toRecordResponse(saved, nil), nil
}

func (s *service) UpdateRecord(ctx context.Context, req attendance.UpdateRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !identity.Role.CanReviewAttendance() {
		return attendance.RecordResponse{}, user.ErrManagerAccessRequired
	}

	rec, err := s.attendanceRepo.GetByID(ctx, req.ID, identity.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if req.CheckInTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to parse check_in_time: %w", err)
		}
		rec.CheckInAt = &t
	}
	if req.CheckOutTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to parse check_out_time: %w", err)
		}
		rec.CheckOutAt = &t
	}
	if req.Status != nil {
		rec.Status = strings.ToUpper(*req.Status)
	}
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	// Edited timestamps invalidate the stored work figures; recompute from
	// what is now on the record.
	if rec.CheckInAt != nil && rec.CheckOutAt != nil {
		settings, err := s.companyRepo.GetAttendanceSettings(ctx, identity.CompanyID)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance settings: %w", err)
		}

		breaks, err := s.attendanceRepo.ListBreaks(ctx, rec.ID)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to list breaks: %w", err)
		}
		workBreaks := make([]workhours.Break, len(breaks))
		for i, b := range breaks {
			workBreaks[i] = workhours.Break{DurationMinutes: b.DurationMinutes}
		}

		result, err := workhours.Compute(*rec.CheckInAt, *rec.CheckOutAt, workBreaks, settings.StandardDayMinutes)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		rec.WorkMinutes = &result.WorkMinutes
		rec.OvertimeMinutes = &result.OvertimeMinutes
	}

	rec.IsManualEntry = true
	rec.ManualEntryReason = &req.Reason
	rec.ApprovedBy = &identity.EmployeeID

	if err := s.attendanceRepo.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	updated, err := s.attendanceRepo.GetByID(ctx, rec.ID, identity.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return toRecordResponse(updated, nil), nil
}

func (s *service) GetMyAttendance(ctx context.Context, filter attendance.Filter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	records, total, err := s.attendanceRepo.ListByEmployee(ctx, identity.EmployeeID, filter, identity.CompanyID)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return toListResponse(records, total, filter), nil
}

func (s *service) ListAttendance(ctx context.Context, filter attendance.Filter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.ListResponse{}, err
	}
	if !identity.Role.CanReviewAttendance() {
		return attendance.ListResponse{}, user.ErrManagerAccessRequired
	}

	records, total, err := s.attendanceRepo.List(ctx, filter, identity.CompanyID)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	return toListResponse(records, total, filter), nil
}

func (s *service) GetRecord(ctx context.Context, id string) (attendance.RecordResponse, error) {
	identity, err := authctx.FromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec, err := s.attendanceRepo.GetByID(ctx, id, identity.CompanyID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	// Employees can only see their own records.
	if !identity.Role.CanReviewAttendance() && rec.EmployeeID != identity.EmployeeID {
		return attendance.RecordResponse{}, attendance.ErrRecordNotFound
	}

	breaks, err := s.attendanceRepo.ListBreaks(ctx, rec.ID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	return toRecordResponse(rec, breaks), nil
}

// ========================================
// RESPONSE MAPPING
// ========================================

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func toBreakResponse(b attendance.Break) attendance.BreakResponse {
	return attendance.BreakResponse{
		ID:              b.ID,
		StartedAt:       b.StartedAt.Format(time.RFC3339),
		EndedAt:         formatTimePtr(b.EndedAt),
		DurationMinutes: b.DurationMinutes,
		Reason:          b.Reason,
	}
}

func toRecordResponse(rec attendance.Record, breaks []attendance.Break) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:                   rec.ID,
		EmployeeID:           rec.EmployeeID,
		EmployeeName:         rec.EmployeeName,
		Date:                 rec.Date.Format("2006-01-02"),
		CheckInTime:          formatTimePtr(rec.CheckInAt),
		CheckInLatitude:      rec.CheckInLatitude,
		CheckInLongitude:     rec.CheckInLongitude,
		CheckInAddress:       rec.CheckInAddress,
		CheckInWithinOffice:  rec.CheckInWithinOffice,
		CheckOutTime:         formatTimePtr(rec.CheckOutAt),
		CheckOutLatitude:     rec.CheckOutLatitude,
		CheckOutLongitude:    rec.CheckOutLongitude,
		CheckOutWithinOffice: rec.CheckOutWithinOffice,
		Status:               rec.Status,
		WorkMinutes:          rec.WorkMinutes,
		OvertimeMinutes:      rec.OvertimeMinutes,
		Notes:                rec.Notes,
		IsManualEntry:        rec.IsManualEntry,
		ManualEntryReason:    rec.ManualEntryReason,
		ApprovedBy:           rec.ApprovedBy,
		CreatedAt:            rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            rec.UpdatedAt.Format(time.RFC3339),
	}

	for _, b := range breaks {
		resp.Breaks = append(resp.Breaks, toBreakResponse(b))
	}

	return resp
}

func toListResponse(records []attendance.Record, total int64, filter attendance.Filter) attendance.ListResponse {
	resp := attendance.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Records:    make([]attendance.RecordResponse, 0, len(records)),
	}

	if filter.Limit > 0 {
		resp.TotalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}

	for _, rec := range records {
		resp.Records = append(resp.Records, toRecordResponse(rec, nil))
	}

	return resp
}
