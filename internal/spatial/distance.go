package spatial

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/gavraq/activity-backend-go/internal/models"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// HaversineDistance calculates the great-circle distance between two points
// in meters using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Bearing calculates the initial bearing (forward azimuth) from point 1 to point 2
// Returns bearing in degrees (0-360), where 0 is North, 90 is East, etc.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lonDiff := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(lonDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lonDiff)
	bearing := math.Atan2(y, x)

	bearingDeg := bearing * 180 / math.Pi
	return math.Mod(bearingDeg+360, 360)
}

// compassPoints are the eight principal winds, clockwise from North
var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CompassPoint converts a bearing in degrees to one of the eight principal
// compass points
func CompassPoint(bearing float64) string {
	idx := int(math.Mod(bearing+22.5, 360) / 45)
	return compassPoints[idx]
}

// SlopeAngle calculates the slope angle in degrees from a signed altitude
// change and a horizontal distance. Returns 0 when the horizontal distance
// is not positive.
func SlopeAngle(altitudeChange, horizontalMeters float64) float64 {
	if horizontalMeters <= 0 {
		return 0
	}
	return math.Atan2(altitudeChange, horizontalMeters) * 180 / math.Pi
}

// Centroid calculates the arithmetic centroid of a set of coordinates.
// Good enough at stay-cluster scale; not meridian-safe for global extents.
func Centroid(points []models.Coordinates) models.Coordinates {
	if len(points) == 0 {
		return models.Coordinates{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}
	return models.Coordinates{
		Lat: sumLat / float64(len(points)),
		Lon: sumLon / float64(len(points)),
	}
}

// WithinRadius reports whether a point falls inside a known location's
// match radius
func WithinRadius(lat, lon float64, loc models.KnownLocation) bool {
	radius := loc.RadiusMeters
	if radius <= 0 {
		radius = models.DefaultLocationRadius
	}
	return HaversineDistance(lat, lon, loc.Coordinates.Lat, loc.Coordinates.Lon) <= radius
}
