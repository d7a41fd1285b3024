// Package geocode provides cached reverse geocoding for timeline entries
// that match no known location. Lookups degrade to a coordinate-formatted
// label rather than failing an analysis.
package geocode

import (
	"context"
	"fmt"
	"log"
)

// Geocoder resolves a coordinate to a human-readable place name
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// CoordinateLabel formats a coordinate as the fallback place label
func CoordinateLabel(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}

// ReverseOrCoordinate resolves a place name, falling back to a coordinate
// label on any error. Geocoding failures are logged and never propagate.
func ReverseOrCoordinate(ctx context.Context, g Geocoder, lat, lon float64) string {
	if g == nil {
		return CoordinateLabel(lat, lon)
	}
	name, err := g.Reverse(ctx, lat, lon)
	if err != nil || name == "" {
		if err != nil {
			log.Printf("[Geocode] Reverse lookup failed for (%.4f, %.4f): %v", lat, lon, err)
		}
		return CoordinateLabel(lat, lon)
	}
	return name
}
