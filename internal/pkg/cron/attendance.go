package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lokahr/attendance-backend-go/internal/domain/attendance"
	"github.com/lokahr/attendance-backend-go/internal/domain/company"
)

// AttendanceJobs backfills attendance records for days that ended without an
// employee check-in. It is the only writer of the WEEKEND and HOLIDAY
// statuses, and of scheduler-produced ABSENT rows.
type AttendanceJobs struct {
	attendanceRepo attendance.Repository
	companyRepo    company.Repository
}

func NewAttendanceJobs(
	attendanceRepo attendance.Repository,
	companyRepo company.Repository,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		companyRepo:    companyRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_missing_attendance", 1*time.Hour, j.MarkMissingAttendance)
}

// MarkMissingAttendance writes a WEEKEND, HOLIDAY or ABSENT record for every
// active employee who has no record for yesterday. Running it twice is safe:
// the records are created with the same duplicate guard as a check-in, so an
// existing row is never touched.
func (j *AttendanceJobs) MarkMissingAttendance(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting mark missing attendance job")

	companyIDs, err := j.companyRepo.ListActiveCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	totalMarked := 0

	for _, companyID := range companyIDs {
		marked, err := j.backfillCompany(ctx, companyID)
		if err != nil {
			slog.Error("Cron: Failed to backfill company", "company_id", companyID, "error", err)
			continue
		}
		totalMarked += marked
	}

	slog.Info("Cron: Marked missing attendance", "count", totalMarked)
	return nil
}

func (j *AttendanceJobs) backfillCompany(ctx context.Context, companyID string) (int, error) {
	settings, err := j.companyRepo.GetAttendanceSettings(ctx, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	// Yesterday in the company's timezone.
	nowLocal := time.Now().In(settings.Location())
	y := nowLocal.AddDate(0, 0, -1)
	yesterday := time.Date(y.Year(), y.Month(), y.Day(), 0, 0, 0, 0, y.Location())

	status := attendance.StatusAbsent
	if settings.IsWeekend(yesterday.Weekday()) {
		status = attendance.StatusWeekend
	} else {
		holiday, err := j.companyRepo.IsHoliday(ctx, companyID, yesterday)
		if err != nil {
			return 0, fmt.Errorf("failed to check holiday: %w", err)
		}
		if holiday {
			status = attendance.StatusHoliday
		}
	}

	employeeIDs, err := j.attendanceRepo.MissingForDate(ctx, companyID, yesterday)
	if err != nil {
		return 0, fmt.Errorf("failed to find missing records: %w", err)
	}

	marked := 0
	for _, employeeID := range employeeIDs {
		_, err := j.attendanceRepo.CreateIfAbsent(ctx, attendance.Record{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Date:       yesterday,
			Status:     status,
		})
		if err != nil {
			// A record created between the scan and the insert wins.
			if errors.Is(err, attendance.ErrDuplicateRecord) {
				continue
			}
			slog.Error("Cron: Failed to create backfill record",
				"employee_id", employeeID,
				"company_id", companyID,
				"error", err)
			continue
		}
		marked++
	}

	return marked, nil
}
