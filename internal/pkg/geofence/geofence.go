package geofence

import (
	"errors"
	"math"
)

// DefaultRadiusKm is used when an office has no explicit radius configured (100 m).
const DefaultRadiusKm = 0.1

const earthRadiusKm = 6371

var (
	ErrInvalidCoordinate = errors.New("coordinate out of range")
	ErrNotConfigured     = errors.New("office location not configured")
)

// Point is a reported device location.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Office is a company's configured geofence: a center plus a radius in kilometers.
type Office struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

type Result struct {
	WithinOffice bool
	DistanceKm   float64
}

// Evaluate reports whether p falls inside the office geofence and how far it is
// from the office center. A nil office returns ErrNotConfigured; callers treat
// that as "outside office" rather than a hard failure.
func Evaluate(p Point, office *Office) (Result, error) {
	if !validCoordinate(p.Latitude, p.Longitude) {
		return Result{}, ErrInvalidCoordinate
	}
	if office == nil {
		return Result{}, ErrNotConfigured
	}
	if !validCoordinate(office.Latitude, office.Longitude) {
		return Result{}, ErrInvalidCoordinate
	}

	radius := office.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}

	distance := HaversineDistanceKm(p.Latitude, p.Longitude, office.Latitude, office.Longitude)

	return Result{
		WithinOffice: distance <= radius,
		DistanceKm:   distance,
	}, nil
}

// HaversineDistanceKm computes the great-circle distance between two
// coordinates in kilometers.
func HaversineDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func validCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
