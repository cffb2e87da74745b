package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lokahr/attendance-backend-go/internal/domain/attendance"
	"github.com/lokahr/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.company_id, a.date,
	a.check_in_at, a.check_in_latitude, a.check_in_longitude, a.check_in_address,
	a.check_in_within_office, a.device_info,
	a.check_out_at, a.check_out_latitude, a.check_out_longitude, a.check_out_address,
	a.check_out_within_office,
	a.status, a.work_minutes, a.overtime_minutes, a.notes,
	a.is_manual_entry, a.manual_entry_reason, a.approved_by,
	a.created_at, a.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner, withEmployeeName bool) (attendance.Record, error) {
	var rec attendance.Record
	dest := []any{
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.Date,
		&rec.CheckInAt, &rec.CheckInLatitude, &rec.CheckInLongitude, &rec.CheckInAddress,
		&rec.CheckInWithinOffice, &rec.DeviceInfo,
		&rec.CheckOutAt, &rec.CheckOutLatitude, &rec.CheckOutLongitude, &rec.CheckOutAddress,
		&rec.CheckOutWithinOffice,
		&rec.Status, &rec.WorkMinutes, &rec.OvertimeMinutes, &rec.Notes,
		&rec.IsManualEntry, &rec.ManualEntryReason, &rec.ApprovedBy,
		&rec.CreatedAt, &rec.UpdatedAt,
	}
	if withEmployeeName {
		dest = append(dest, &rec.EmployeeName)
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

// CreateIfAbsent implements attendance.Repository. The insert races against
// the unique index over (employee_id, company_id, date); a losing insert is
// reported as attendance.ErrDuplicateRecord without touching the winner's row.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, company_id, date,
			check_in_at, check_in_latitude, check_in_longitude, check_in_address,
			check_in_within_office, device_info,
			status, is_manual_entry, manual_entry_reason, approved_by, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.CompanyID,
		rec.Date,
		rec.CheckInAt,
		rec.CheckInLatitude,
		rec.CheckInLongitude,
		rec.CheckInAddress,
		rec.CheckInWithinOffice,
		rec.DeviceInfo,
		rec.Status,
		rec.IsManualEntry,
		rec.ManualEntryReason,
		rec.ApprovedBy,
		rec.Notes,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `,
			e.full_name AS employee_name
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1 AND a.company_id = $2
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id, companyID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.employee_id = $1
		  AND a.date = $2
		  AND a.company_id = $3
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date, companyID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for this day
		}
		return nil, fmt.Errorf("failed to get attendance record by employee and date: %w", err)
	}

	return &rec, nil
}

// CompleteCheckOut implements attendance.Repository. The "check_out_at IS
// NULL" guard serializes concurrent check-outs at the row: exactly one update
// matches, the loser sees zero rows and gets ErrAlreadyCheckedOut.
func (a *attendanceRepository) CompleteCheckOut(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records a SET
			check_out_at = $1,
			check_out_latitude = $2,
			check_out_longitude = $3,
			check_out_address = $4,
			check_out_within_office = $5,
			status = $6,
			work_minutes = $7,
			overtime_minutes = $8,
			updated_at = NOW()
		WHERE a.id = $9
		  AND a.company_id = $10
		  AND a.check_out_at IS NULL
		RETURNING ` + attendanceColumns + `
	`

	rec2, err := scanRecord(q.QueryRow(ctx, query,
		rec.CheckOutAt,
		rec.CheckOutLatitude,
		rec.CheckOutLongitude,
		rec.CheckOutAddress,
		rec.CheckOutWithinOffice,
		rec.Status,
		rec.WorkMinutes,
		rec.OvertimeMinutes,
		rec.ID,
		rec.CompanyID,
	), false)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Guard did not match: either raced with another check-out or the
			// record is gone.
			if _, getErr := a.GetByID(ctx, rec.ID, rec.CompanyID); getErr == nil {
				return attendance.Record{}, attendance.ErrAlreadyCheckedOut
			}
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to complete check-out: %w", err)
	}

	return rec2, nil
}

// Upsert implements attendance.Repository.
func (a *attendanceRepository) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, company_id, date,
			check_in_at, check_in_latitude, check_in_longitude, check_in_address,
			check_in_within_office, device_info,
			check_out_at, check_out_latitude, check_out_longitude, check_out_address,
			check_out_within_office,
			status, work_minutes, overtime_minutes, notes,
			is_manual_entry, manual_entry_reason, approved_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21
		)
		ON CONFLICT (employee_id, company_id, date) DO UPDATE SET
			check_in_at = EXCLUDED.check_in_at,
			check_in_latitude = EXCLUDED.check_in_latitude,
			check_in_longitude = EXCLUDED.check_in_longitude,
			check_in_address = EXCLUDED.check_in_address,
			check_in_within_office = EXCLUDED.check_in_within_office,
			device_info = EXCLUDED.device_info,
			check_out_at = EXCLUDED.check_out_at,
			check_out_latitude = EXCLUDED.check_out_latitude,
			check_out_longitude = EXCLUDED.check_out_longitude,
			check_out_address = EXCLUDED.check_out_address,
			check_out_within_office = EXCLUDED.check_out_within_office,
			status = EXCLUDED.status,
			work_minutes = EXCLUDED.work_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			notes = EXCLUDED.notes,
			is_manual_entry = EXCLUDED.is_manual_entry,
			manual_entry_reason = EXCLUDED.manual_entry_reason,
			approved_by = EXCLUDED.approved_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID, rec.CompanyID, rec.Date,
		rec.CheckInAt, rec.CheckInLatitude, rec.CheckInLongitude, rec.CheckInAddress,
		rec.CheckInWithinOffice, rec.DeviceInfo,
		rec.CheckOutAt, rec.CheckOutLatitude, rec.CheckOutLongitude, rec.CheckOutAddress,
		rec.CheckOutWithinOffice,
		rec.Status, rec.WorkMinutes, rec.OvertimeMinutes, rec.Notes,
		rec.IsManualEntry, rec.ManualEntryReason, rec.ApprovedBy,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return rec, nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if rec.CheckInAt != nil {
		updates = append(updates, fmt.Sprintf("check_in_at = $%d", argIdx))
		args = append(args, rec.CheckInAt)
		argIdx++
	}
	if rec.CheckOutAt != nil {
		updates = append(updates, fmt.Sprintf("check_out_at = $%d", argIdx))
		args = append(args, rec.CheckOutAt)
		argIdx++
	}
	if rec.WorkMinutes != nil {
		updates = append(updates, fmt.Sprintf("work_minutes = $%d", argIdx))
		args = append(args, rec.WorkMinutes)
		argIdx++
	}
	if rec.OvertimeMinutes != nil {
		updates = append(updates, fmt.Sprintf("overtime_minutes = $%d", argIdx))
		args = append(args, rec.OvertimeMinutes)
		argIdx++
	}
	if rec.Status != "" {
		updates = append(updates, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, rec.Status)
		argIdx++
	}
	if rec.Notes != nil {
		updates = append(updates, fmt.Sprintf("notes = $%d", argIdx))
		args = append(args, rec.Notes)
		argIdx++
	}
	if rec.ManualEntryReason != nil {
		updates = append(updates, fmt.Sprintf("manual_entry_reason = $%d", argIdx))
		args = append(args, rec.ManualEntryReason)
		argIdx++
	}
	if rec.ApprovedBy != nil {
		updates = append(updates, fmt.Sprintf("approved_by = $%d", argIdx))
		args = append(args, rec.ApprovedBy)
		argIdx++
	}
	if rec.IsManualEntry {
		updates = append(updates, fmt.Sprintf("is_manual_entry = $%d", argIdx))
		args = append(args, rec.IsManualEntry)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for attendance update")
	}

	updates = append(updates, "updated_at = NOW()")

	args = append(args, rec.ID)
	idIdx := argIdx
	argIdx++
	args = append(args, rec.CompanyID)

	query := "UPDATE attendance_records SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d AND company_id = $%d RETURNING id", idIdx, argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

func buildAttendanceWhere(filter attendance.Filter, baseWhere string, args []interface{}) (string, []interface{}) {
	argIdx := len(args) + 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, strings.ToUpper(*filter.Status))
		argIdx++
	}

	return baseWhere, args
}

func attendanceOrderBy(filter attendance.Filter) string {
	orderByField := "a.date"
	switch filter.SortBy {
	case "check_in_time":
		orderByField = "a.check_in_at"
	case "check_out_time":
		orderByField = "a.check_out_at"
	case "status":
		orderByField = "a.status"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}
	return orderByField + " " + sortOrder
}

func (a *attendanceRepository) list(ctx context.Context, filter attendance.Filter, baseWhere string, args []interface{}) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere, args = buildAttendanceWhere(filter, baseWhere, args)

	countQuery := "SELECT COUNT(*) FROM attendance_records a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	argIdx := len(args) + 1
	args = append(args, limit, offset)

	selectQuery := fmt.Sprintf(`
		SELECT `+attendanceColumns+`,
			e.full_name AS employee_name
		FROM attendance_records a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, attendanceOrderBy(filter), argIdx, argIdx+1)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}

// List implements attendance.Repository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter, companyID string) ([]attendance.Record, int64, error) {
	return a.list(ctx, filter, "a.company_id = $1", []interface{}{companyID})
}

// ListByEmployee implements attendance.Repository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.Filter, companyID string) ([]attendance.Record, int64, error) {
	filter.EmployeeID = nil // the scoped employee wins over any filter value
	return a.list(ctx, filter, "a.employee_id = $1 AND a.company_id = $2", []interface{}{employeeID, companyID})
}

// AddBreak implements attendance.Repository.
func (a *attendanceRepository) AddBreak(ctx context.Context, brk attendance.Break) (attendance.Break, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_breaks (attendance_id, started_at, ended_at, duration_minutes, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		brk.AttendanceID,
		brk.StartedAt,
		brk.EndedAt,
		brk.DurationMinutes,
		brk.Reason,
	).Scan(&brk.ID, &brk.CreatedAt)

	if err != nil {
		return attendance.Break{}, fmt.Errorf("failed to add break: %w", err)
	}

	return brk, nil
}

// CloseBreak implements attendance.Repository. Closes the open break and
// derives its duration in one statement.
func (a *attendanceRepository) CloseBreak(ctx context.Context, attendanceID string, endedAt time.Time) (attendance.Break, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_breaks SET
			ended_at = $1,
			duration_minutes = FLOOR(EXTRACT(EPOCH FROM ($1 - started_at)) / 60)
		WHERE attendance_id = $2
		  AND ended_at IS NULL
		RETURNING id, attendance_id, started_at, ended_at, duration_minutes, reason, created_at
	`

	var brk attendance.Break
	err := q.QueryRow(ctx, query, endedAt, attendanceID).Scan(
		&brk.ID, &brk.AttendanceID, &brk.StartedAt, &brk.EndedAt,
		&brk.DurationMinutes, &brk.Reason, &brk.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Break{}, attendance.ErrNoOpenBreak
		}
		return attendance.Break{}, fmt.Errorf("failed to close break: %w", err)
	}

	return brk, nil
}

// ListBreaks implements attendance.Repository.
func (a *attendanceRepository) ListBreaks(ctx context.Context, attendanceID string) ([]attendance.Break, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, attendance_id, started_at, ended_at, duration_minutes, reason, created_at
		FROM attendance_breaks
		WHERE attendance_id = $1
		ORDER BY started_at ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.Break
	for rows.Next() {
		var brk attendance.Break
		if err := rows.Scan(
			&brk.ID, &brk.AttendanceID, &brk.StartedAt, &brk.EndedAt,
			&brk.DurationMinutes, &brk.Reason, &brk.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		breaks = append(breaks, brk)
	}

	return breaks, nil
}

// GetOpenBreak implements attendance.Repository.
func (a *attendanceRepository) GetOpenBreak(ctx context.Context, attendanceID string) (*attendance.Break, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, attendance_id, started_at, ended_at, duration_minutes, reason, created_at
		FROM attendance_breaks
		WHERE attendance_id = $1
		  AND ended_at IS NULL
		LIMIT 1
	`

	var brk attendance.Break
	err := q.QueryRow(ctx, query, attendanceID).Scan(
		&brk.ID, &brk.AttendanceID, &brk.StartedAt, &brk.EndedAt,
		&brk.DurationMinutes, &brk.Reason, &brk.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open break: %w", err)
	}

	return &brk, nil
}

// MissingForDate implements attendance.Repository.
func (a *attendanceRepository) MissingForDate(ctx context.Context, companyID string, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT e.id
		FROM employees e
		WHERE e.company_id = $1
		  AND e.employment_status = 'active'
		  AND NOT EXISTS (
			SELECT 1 FROM attendance_records a
			WHERE a.employee_id = e.id
			  AND a.company_id = $1
			  AND a.date = $2
		  )
	`

	rows, err := q.Query(ctx, query, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query missing attendance: %w", err)
	}
	defer rows.Close()

	var employeeIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		employeeIDs = append(employeeIDs, id)
	}

	return employeeIDs, nil
}
