package locations

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gavraq/activity-backend-go/internal/models"
)

// Store holds the base tier of known locations plus every trip definition
// found on disk. It is loaded once per process and read-only afterwards;
// per-analysis merged views come from AutoResolveForDate.
type Store struct {
	baseTimezone string
	base         []models.KnownLocation
	trips        []tripDefinition
}

type tripDefinition struct {
	info      models.TripInfo
	start     time.Time
	end       time.Time
	locations []models.KnownLocation
}

// NewStore creates a store and loads base locations from <dir>/base.json
// and trip definitions from <dir>/trips/*.json. A missing or malformed base
// file leaves the base tier empty; that is logged, not fatal.
func NewStore(dir string) *Store {
	s := &Store{}

	if err := s.LoadBase(filepath.Join(dir, "base.json")); err != nil {
		log.Printf("[LocationStore] Warning: base locations unavailable: %v", err)
	}

	tripFiles, err := filepath.Glob(filepath.Join(dir, "trips", "*.json"))
	if err == nil {
		sort.Strings(tripFiles)
		for _, path := range tripFiles {
			if _, err := s.LoadTrip(path); err != nil {
				log.Printf("[LocationStore] Warning: skipping trip file %s: %v", path, err)
			}
		}
	}

	log.Printf("[LocationStore] Loaded %d base locations, %d trips", len(s.base), len(s.trips))
	return s
}

// LoadBase parses a location-list file into the base tier. Errors leave the
// base tier empty and are returned for the caller to log.
func (s *Store) LoadBase(path string) error {
	file, err := parseLocationFile(path)
	if err != nil {
		s.base = nil
		return err
	}

	s.baseTimezone = file.Timezone
	s.base = normalizeLocations(file.Locations, file.Timezone)
	return nil
}

// LoadTrip parses a trip-scoped location file and records its metadata and
// overlay locations. The overlay is applied per-date by AutoResolveForDate.
func (s *Store) LoadTrip(path string) (*models.TripInfo, error) {
	file, err := parseLocationFile(path)
	if err != nil {
		return nil, err
	}
	if file.TripDates == nil {
		return nil, fmt.Errorf("trip file %s has no trip_dates", path)
	}

	start, err := time.Parse("2006-01-02", file.TripDates.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid trip start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", file.TripDates.End)
	if err != nil {
		return nil, fmt.Errorf("invalid trip end date: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("trip end date %s before start date %s", file.TripDates.End, file.TripDates.Start)
	}

	name := file.TripName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	trip := tripDefinition{
		info: models.TripInfo{
			Name:      name,
			StartDate: file.TripDates.Start,
			EndDate:   file.TripDates.End,
			Timezone:  file.Timezone,
			Locations: len(file.Locations),
		},
		start:     start,
		end:       end,
		locations: normalizeLocations(file.Locations, file.Timezone),
	}
	s.trips = append(s.trips, trip)
	return &trip.info, nil
}

// Trips returns metadata for every loaded trip definition
func (s *Store) Trips() []models.TripInfo {
	infos := make([]models.TripInfo, len(s.trips))
	for i, t := range s.trips {
		infos[i] = t.info
	}
	return infos
}

// AutoResolveForDate returns the merged location view for a date. When
// exactly one trip's date range contains the date its locations overlay the
// base tier (trip wins on ID collision); with zero or ambiguous matches the
// view is base-only.
func (s *Store) AutoResolveForDate(date time.Time) *View {
	day := date.Format("2006-01-02")
	d, _ := time.Parse("2006-01-02", day)

	var matched *tripDefinition
	matches := 0
	for i := range s.trips {
		t := &s.trips[i]
		if !d.Before(t.start) && !d.After(t.end) {
			matched = t
			matches++
		}
	}

	if matches != 1 {
		if matches > 1 {
			log.Printf("[LocationStore] %d trips match %s; applying base locations only", matches, day)
		}
		return NewView(s.base, nil, "", s.baseTimezone)
	}

	tz := matched.info.Timezone
	if tz == "" {
		tz = s.baseTimezone
	}
	log.Printf("[LocationStore] Trip %q active for %s (%d overlay locations)", matched.info.Name, day, len(matched.locations))
	return NewView(s.base, matched.locations, matched.info.Name, tz)
}

// BaseView returns the base-tier view with no trip overlay applied
func (s *Store) BaseView() *View {
	return NewView(s.base, nil, "", s.baseTimezone)
}

// parseLocationFile reads and decodes one location file
func parseLocationFile(path string) (*models.LocationFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read location file: %w", err)
	}

	var file models.LocationFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse location file %s: %w", path, err)
	}
	return &file, nil
}

// normalizeLocations applies the default radius and file-level timezone
func normalizeLocations(locs []models.KnownLocation, fileTimezone string) []models.KnownLocation {
	out := make([]models.KnownLocation, 0, len(locs))
	for _, loc := range locs {
		if loc.ID == "" {
			continue
		}
		if loc.RadiusMeters <= 0 {
			loc.RadiusMeters = models.DefaultLocationRadius
		}
		if loc.Timezone == "" {
			loc.Timezone = fileTimezone
		}
		out = append(out, loc)
	}
	return out
}
