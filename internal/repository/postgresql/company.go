package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lokahr/attendance-backend-go/internal/domain/company"
	"github.com/lokahr/attendance-backend-go/internal/pkg/database"
)

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.Repository {
	return &companyRepository{db: db}
}

// GetOfficeLocation implements company.Repository. A company without office
// coordinates yields nil, which callers treat as "geofence not configured".
func (r *companyRepository) GetOfficeLocation(ctx context.Context, companyID string) (*company.OfficeLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT office_latitude, office_longitude, office_radius_km, office_address
		FROM companies
		WHERE id = $1
	`

	var lat, lng, radius *float64
	var address *string
	err := q.QueryRow(ctx, query, companyID).Scan(&lat, &lng, &radius, &address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get office location: %w", err)
	}

	if lat == nil || lng == nil {
		return nil, nil // office not configured
	}

	office := &company.OfficeLocation{
		Latitude:  *lat,
		Longitude: *lng,
		Address:   address,
	}
	if radius != nil {
		office.RadiusKm = *radius
	}

	return office, nil
}

// GetAttendanceSettings implements company.Repository.
func (r *companyRepository) GetAttendanceSettings(ctx context.Context, companyID string) (company.AttendanceSettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT standard_day_minutes, late_threshold_minutes, half_day_threshold_minutes,
			weekend_days, timezone
		FROM attendance_settings
		WHERE company_id = $1
	`

	settings := company.DefaultAttendanceSettings()
	var weekendDays []int16
	err := q.QueryRow(ctx, query, companyID).Scan(
		&settings.StandardDayMinutes,
		&settings.LateThresholdMinutes,
		&settings.HalfDayThresholdMinutes,
		&weekendDays,
		&settings.Timezone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.DefaultAttendanceSettings(), nil
		}
		return company.AttendanceSettings{}, fmt.Errorf("failed to get attendance settings: %w", err)
	}

	if len(weekendDays) > 0 {
		settings.WeekendDays = make([]time.Weekday, 0, len(weekendDays))
		for _, d := range weekendDays {
			settings.WeekendDays = append(settings.WeekendDays, time.Weekday(d))
		}
	}

	return settings, nil
}

// IsHoliday implements company.Repository.
func (r *companyRepository) IsHoliday(ctx context.Context, companyID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM company_holidays
			WHERE company_id = $1 AND date = $2
		)
	`

	var isHoliday bool
	if err := q.QueryRow(ctx, query, companyID, date).Scan(&isHoliday); err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}

	return isHoliday, nil
}

// ListActiveCompanyIDs implements company.Repository.
func (r *companyRepository) ListActiveCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT company_id FROM employees
		WHERE employment_status = 'active'
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active companies: %w", err)
	}
	defer rows.Close()

	var companyIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company id: %w", err)
		}
		companyIDs = append(companyIDs, id)
	}

	return companyIDs, nil
}
