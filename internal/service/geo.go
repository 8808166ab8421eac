package service

import (
	"math"

	"github.com/chrisueda/sakewalk/internal/model"
)

// EarthRadiusMeters is the Earth's mean radius in meters
const EarthRadiusMeters = 6371000.0

// Default bounds of the nearby query
const (
	DefaultNearbyRadiusMeters = 10000.0
	NearbyLimit               = 10
)

// HaversineMeters calculates the great-circle distance between two points in
// meters using the Haversine formula.
func HaversineMeters(a, b model.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// ValidateCoordinates rejects non-finite or out-of-range coordinates before
// they reach query construction. A NaN or infinite bound must fail the
// request rather than degrade into an unbounded query.
func ValidateCoordinates(lng, lat float64) error {
	if math.IsNaN(lng) || math.IsInf(lng, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return ErrInvalidCoordinates
	}
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return ErrInvalidCoordinates
	}
	return nil
}
