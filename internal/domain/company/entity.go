package company

import "time"

// OfficeLocation is a company's configured geofence center and radius. One
// office per company; nil means check-ins are always treated as outside.
type OfficeLocation struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
	Address   *string
}

// AttendanceSettings are per-company thresholds read once per request by the
// boundary layer and passed into the calculators.
type AttendanceSettings struct {
	StandardDayMinutes      int
	LateThresholdMinutes    int // reserved; lateness is geofence-based in the baseline
	HalfDayThresholdMinutes int
	WeekendDays             []time.Weekday
	Timezone                string
}

// DefaultAttendanceSettings applies when a company has no settings row.
func DefaultAttendanceSettings() AttendanceSettings {
	return AttendanceSettings{
		StandardDayMinutes:      480,
		LateThresholdMinutes:    0,
		HalfDayThresholdMinutes: 240,
		WeekendDays:             []time.Weekday{time.Saturday, time.Sunday},
		Timezone:                "UTC",
	}
}

// Location returns the tenant-local *time.Location, falling back to UTC when
// the configured zone name does not resolve.
func (s AttendanceSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsWeekend reports whether the given weekday is configured as a weekend day.
func (s AttendanceSettings) IsWeekend(day time.Weekday) bool {
	for _, d := range s.WeekendDays {
		if d == day {
			return true
		}
	}
	return false
}
