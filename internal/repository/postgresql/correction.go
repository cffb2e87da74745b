package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lokahr/attendance-backend-go/internal/domain/correction"
	"github.com/lokahr/attendance-backend-go/internal/pkg/database"
)

type correctionRepository struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) correction.Repository {
	return &correctionRepository{db: db}
}

const correctionColumns = `
	c.id, c.employee_id, c.company_id, c.date, c.reason, c.status,
	c.reviewed_by, c.review_note, c.reviewed_at, c.created_at, c.updated_at`

func scanCorrection(row rowScanner, withEmployeeName bool) (correction.Correction, error) {
	var c correction.Correction
	dest := []any{
		&c.ID, &c.EmployeeID, &c.CompanyID, &c.Date, &c.Reason, &c.Status,
		&c.ReviewedBy, &c.ReviewNote, &c.ReviewedAt, &c.CreatedAt, &c.UpdatedAt,
	}
	if withEmployeeName {
		dest = append(dest, &c.EmployeeName)
	}
	if err := row.Scan(dest...); err != nil {
		return correction.Correction{}, err
	}
	return c, nil
}

// Create implements correction.Repository. A raced or repeated request for
// the same (employee, company, date) hits the unique index and becomes
// correction.ErrDuplicateCorrection regardless of the existing row's status.
func (r *correctionRepository) Create(ctx context.Context, c correction.Correction) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_corrections (employee_id, company_id, date, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		c.EmployeeID,
		c.CompanyID,
		c.Date,
		c.Reason,
		correction.StatusPending,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return correction.Correction{}, correction.ErrDuplicateCorrection
		}
		return correction.Correction{}, fmt.Errorf("failed to create correction request: %w", err)
	}

	c.Status = correction.StatusPending
	return c, nil
}

// GetByID implements correction.Repository.
func (r *correctionRepository) GetByID(ctx context.Context, id string, companyID string) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + correctionColumns + `,
			e.full_name AS employee_name
		FROM attendance_corrections c
		LEFT JOIN employees e ON e.id = c.employee_id
		WHERE c.id = $1 AND c.company_id = $2
	`

	c, err := scanCorrection(q.QueryRow(ctx, query, id, companyID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.Correction{}, correction.ErrCorrectionNotFound
		}
		return correction.Correction{}, fmt.Errorf("failed to get correction by ID: %w", err)
	}

	return c, nil
}

// Resolve implements correction.Repository. The "status = PENDING" guard
// makes the transition terminal: a second review matches zero rows and is
// reported as ErrAlreadyReviewed.
func (r *correctionRepository) Resolve(ctx context.Context, c correction.Correction) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_corrections c SET
			status = $1,
			reviewed_by = $2,
			review_note = $3,
			reviewed_at = NOW(),
			updated_at = NOW()
		WHERE c.id = $4
		  AND c.company_id = $5
		  AND c.status = $6
		RETURNING ` + correctionColumns + `
	`

	resolved, err := scanCorrection(q.QueryRow(ctx, query,
		c.Status,
		c.ReviewedBy,
		c.ReviewNote,
		c.ID,
		c.CompanyID,
		correction.StatusPending,
	), false)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, c.ID, c.CompanyID); getErr == nil {
				return correction.Correction{}, correction.ErrAlreadyReviewed
			}
			return correction.Correction{}, correction.ErrCorrectionNotFound
		}
		return correction.Correction{}, fmt.Errorf("failed to resolve correction: %w", err)
	}

	return resolved, nil
}

func buildCorrectionWhere(filter correction.Filter, baseWhere string, args []interface{}) (string, []interface{}) {
	argIdx := len(args) + 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND c.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND c.status = $%d", argIdx)
		args = append(args, strings.ToUpper(*filter.Status))
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND c.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND c.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	return baseWhere, args
}

func (r *correctionRepository) list(ctx context.Context, filter correction.Filter, baseWhere string, args []interface{}) ([]correction.Correction, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere, args = buildCorrectionWhere(filter, baseWhere, args)

	countQuery := "SELECT COUNT(*) FROM attendance_corrections c WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count corrections: %w", err)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	argIdx := len(args) + 1
	args = append(args, limit, offset)

	selectQuery := fmt.Sprintf(`
		SELECT `+correctionColumns+`,
			e.full_name AS employee_name
		FROM attendance_corrections c
		LEFT JOIN employees e ON e.id = c.employee_id
		WHERE %s
		ORDER BY c.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer rows.Close()

	var corrections []correction.Correction
	for rows.Next() {
		c, err := scanCorrection(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan correction: %w", err)
		}
		corrections = append(corrections, c)
	}

	return corrections, total, nil
}

// List implements correction.Repository.
func (r *correctionRepository) List(ctx context.Context, filter correction.Filter, companyID string) ([]correction.Correction, int64, error) {
	return r.list(ctx, filter, "c.company_id = $1", []interface{}{companyID})
}

// ListByEmployee implements correction.Repository.
func (r *correctionRepository) ListByEmployee(ctx context.Context, employeeID string, filter correction.Filter, companyID string) ([]correction.Correction, int64, error) {
	filter.EmployeeID = nil
	return r.list(ctx, filter, "c.employee_id = $1 AND c.company_id = $2", []interface{}{employeeID, companyID})
}
