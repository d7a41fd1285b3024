package models

// Coordinates is a latitude/longitude pair in degrees
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// KnownLocation represents a named reference place used for dwell-time
// accounting and activity-location matching
type KnownLocation struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Coordinates  Coordinates `json:"coordinates"`
	RadiusMeters float64     `json:"radius"` // match radius, default 100

	Type       string   `json:"type,omitempty"` // e.g. "home", "office", "golf_course", "ski_resort"
	Activities []string `json:"activities,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	// Timezone defaults to the file-level timezone and is echoed to
	// clients; window evaluation uses the view-level timezone
	Timezone string `json:"timezone,omitempty"`
}

// DefaultLocationRadius is applied when a location file omits the radius
const DefaultLocationRadius = 100.0

// HasActivity reports whether the location is tagged for the given activity
func (l KnownLocation) HasActivity(tag string) bool {
	for _, a := range l.Activities {
		if a == tag {
			return true
		}
	}
	return false
}

// TripDates is the inclusive date range of a trip location file
type TripDates struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD
}

// LocationFile is the on-disk schema shared by base and trip location files
type LocationFile struct {
	Timezone  string          `json:"timezone,omitempty"`
	TripName  string          `json:"trip_name,omitempty"`  // trip files only
	TripDates *TripDates      `json:"trip_dates,omitempty"` // trip files only
	Locations []KnownLocation `json:"locations"`
}

// TripInfo describes a loaded trip overlay
type TripInfo struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Timezone  string `json:"timezone,omitempty"`
	Locations int    `json:"locations"`
}

// Location type constants used by the classifiers and the day-type table
const (
	LocationTypeHome       = "home"
	LocationTypeOffice     = "office"
	LocationTypeStation    = "station"
	LocationTypeGolfCourse = "golf_course"
	LocationTypeSkiResort  = "ski_resort"
	LocationTypePark       = "park"
	LocationTypeCommon     = "common"
	LocationTypeParkrun    = "parkrun"
)
