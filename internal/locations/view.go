package locations

import (
	"log"
	"time"

	"github.com/gavraq/activity-backend-go/internal/models"
	"github.com/gavraq/activity-backend-go/internal/spatial"
)

// View is the merged base+trip set of known locations used for one analysis.
// It is immutable once constructed; callers running multiple days in
// parallel each take their own view.
type View struct {
	tripName string
	tz       *time.Location
	order    []string
	byID     map[string]models.KnownLocation
}

// NewView merges a base tier with an optional trip overlay. Overlay
// locations win on ID collision. The timezone is an IANA name from the
// active location file; unknown or empty names resolve to UTC.
func NewView(base, overlay []models.KnownLocation, tripName, timezone string) *View {
	tz := time.UTC
	if timezone != "" {
		loaded, err := time.LoadLocation(timezone)
		if err != nil {
			log.Printf("[LocationStore] Unknown timezone %q, using UTC", timezone)
		} else {
			tz = loaded
		}
	}

	v := &View{
		tripName: tripName,
		tz:       tz,
		byID:     make(map[string]models.KnownLocation, len(base)+len(overlay)),
	}
	for _, loc := range base {
		if _, seen := v.byID[loc.ID]; !seen {
			v.order = append(v.order, loc.ID)
		}
		v.byID[loc.ID] = loc
	}
	// Trip definitions win on ID collision; base locations are otherwise
	// always retained.
	for _, loc := range overlay {
		if _, seen := v.byID[loc.ID]; !seen {
			v.order = append(v.order, loc.ID)
		}
		v.byID[loc.ID] = loc
	}
	return v
}

// TripName returns the active trip overlay name, empty when base-only
func (v *View) TripName() string {
	return v.tripName
}

// Location returns the timezone the view's locations live in. Ping
// timestamps are converted into it before analysis so time-of-day windows
// evaluate local wall-clock time.
func (v *View) Location() *time.Location {
	return v.tz
}

// All returns every known location in stable load order
func (v *View) All() []models.KnownLocation {
	out := make([]models.KnownLocation, 0, len(v.order))
	for _, id := range v.order {
		out = append(out, v.byID[id])
	}
	return out
}

// Get returns the location with the given ID
func (v *View) Get(id string) (models.KnownLocation, bool) {
	loc, ok := v.byID[id]
	return loc, ok
}

// Match returns the nearest known location whose match radius contains the
// point, or false when none does
func (v *View) Match(lat, lon float64) (models.KnownLocation, bool) {
	var best models.KnownLocation
	bestDist := -1.0
	for _, id := range v.order {
		loc := v.byID[id]
		dist := spatial.HaversineDistance(lat, lon, loc.Coordinates.Lat, loc.Coordinates.Lon)
		radius := loc.RadiusMeters
		if radius <= 0 {
			radius = models.DefaultLocationRadius
		}
		if dist <= radius && (bestDist < 0 || dist < bestDist) {
			best = loc
			bestDist = dist
		}
	}
	return best, bestDist >= 0
}

// ByType returns all locations with the given type tag
func (v *View) ByType(locType string) []models.KnownLocation {
	var out []models.KnownLocation
	for _, id := range v.order {
		if loc := v.byID[id]; loc.Type == locType {
			out = append(out, loc)
		}
	}
	return out
}

// ByActivity returns all locations tagged for the given activity
func (v *View) ByActivity(tag string) []models.KnownLocation {
	var out []models.KnownLocation
	for _, id := range v.order {
		if loc := v.byID[id]; loc.HasActivity(tag) {
			out = append(out, loc)
		}
	}
	return out
}

// Home returns the home location when one is defined
func (v *View) Home() (models.KnownLocation, bool) {
	for _, id := range v.order {
		if loc := v.byID[id]; loc.Type == models.LocationTypeHome {
			return loc, true
		}
	}
	return models.KnownLocation{}, false
}
