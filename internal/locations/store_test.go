package locations

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLocationFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testLocationsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeLocationFile(t, filepath.Join(dir, "base.json"), `{
		"timezone": "Europe/London",
		"locations": [
			{"id": "home", "name": "Home", "type": "home", "coordinates": {"lat": 51.30, "lon": -0.55}, "radius": 150},
			{"id": "office", "name": "Office", "type": "office", "coordinates": {"lat": 51.5136, "lon": -0.0846}},
			{"id": "golf-local", "name": "Local Golf Club", "type": "golf_course", "coordinates": {"lat": 51.32, "lon": -0.56}, "radius": 400}
		]
	}`)

	writeLocationFile(t, filepath.Join(dir, "trips", "alps-2026.json"), `{
		"timezone": "Europe/Paris",
		"trip_name": "Alps 2026",
		"trip_dates": {"start": "2026-01-17", "end": "2026-01-24"},
		"locations": [
			{"id": "resort", "name": "Val Thorens", "type": "ski_resort", "coordinates": {"lat": 45.2976, "lon": 6.5800}, "radius": 3000},
			{"id": "home", "name": "Chalet", "type": "home", "coordinates": {"lat": 45.2990, "lon": 6.5820}}
		]
	}`)

	return dir
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestNewStore_LoadsBaseAndTrips(t *testing.T) {
	s := NewStore(testLocationsDir(t))

	assert.Len(t, s.BaseView().All(), 3)
	trips := s.Trips()
	require.Len(t, trips, 1)
	assert.Equal(t, "Alps 2026", trips[0].Name)
	assert.Equal(t, "2026-01-17", trips[0].StartDate)
	assert.Equal(t, 2, trips[0].Locations)
}

func TestStore_DefaultRadiusAndTimezone(t *testing.T) {
	s := NewStore(testLocationsDir(t))

	office, ok := s.BaseView().Get("office")
	require.True(t, ok)
	assert.InDelta(t, 100, office.RadiusMeters, 0.001)
	assert.Equal(t, "Europe/London", office.Timezone)
}

func TestAutoResolveForDate_OutsideTrip(t *testing.T) {
	s := NewStore(testLocationsDir(t))

	view := s.AutoResolveForDate(date("2026-03-01"))
	assert.Empty(t, view.TripName())
	assert.Len(t, view.All(), 3)

	home, ok := view.Get("home")
	require.True(t, ok)
	assert.Equal(t, "Home", home.Name)
}

func TestAutoResolveForDate_WithinTrip(t *testing.T) {
	s := NewStore(testLocationsDir(t))

	view := s.AutoResolveForDate(date("2026-01-20"))
	assert.Equal(t, "Alps 2026", view.TripName())
	// Trip adds the resort and overrides home; all base locations survive
	assert.Len(t, view.All(), 4)

	home, ok := view.Get("home")
	require.True(t, ok)
	assert.Equal(t, "Chalet", home.Name)

	office, ok := view.Get("office")
	require.True(t, ok)
	assert.Equal(t, "Office", office.Name)
}

func TestView_TimezoneFollowsActiveTier(t *testing.T) {
	s := NewStore(testLocationsDir(t))

	assert.Equal(t, "Europe/London", s.BaseView().Location().String())
	assert.Equal(t, "Europe/Paris", s.AutoResolveForDate(date("2026-01-20")).Location().String())
}

func TestView_UnknownTimezoneFallsBackToUTC(t *testing.T) {
	dir := t.TempDir()
	writeLocationFile(t, filepath.Join(dir, "base.json"), `{
		"timezone": "Atlantis/Nowhere",
		"locations": [{"id": "home", "name": "Home", "type": "home", "coordinates": {"lat": 51.30, "lon": -0.55}}]
	}`)

	s := NewStore(dir)
	assert.Equal(t, time.UTC, s.BaseView().Location())
}

func TestAutoResolveForDate_BoundaryDatesInclusive(t *testing.T) {
	s := NewStore(testLocationsDir(t))

	assert.Equal(t, "Alps 2026", s.AutoResolveForDate(date("2026-01-17")).TripName())
	assert.Equal(t, "Alps 2026", s.AutoResolveForDate(date("2026-01-24")).TripName())
	assert.Empty(t, s.AutoResolveForDate(date("2026-01-16")).TripName())
	assert.Empty(t, s.AutoResolveForDate(date("2026-01-25")).TripName())
}

func TestAutoResolveForDate_AmbiguousTripsFallBackToBase(t *testing.T) {
	dir := testLocationsDir(t)
	writeLocationFile(t, filepath.Join(dir, "trips", "overlap.json"), `{
		"trip_name": "Overlap",
		"trip_dates": {"start": "2026-01-20", "end": "2026-01-22"},
		"locations": [{"id": "other", "name": "Other", "coordinates": {"lat": 40, "lon": 3}}]
	}`)
	s := NewStore(dir)

	view := s.AutoResolveForDate(date("2026-01-21"))
	assert.Empty(t, view.TripName())
	assert.Len(t, view.All(), 3)

	// Dates covered by only one of the trips still resolve
	assert.Equal(t, "Alps 2026", s.AutoResolveForDate(date("2026-01-18")).TripName())
}

func TestLoadTrip_Invalid(t *testing.T) {
	dir := t.TempDir()
	s := &Store{}

	noDates := filepath.Join(dir, "nodates.json")
	writeLocationFile(t, noDates, `{"locations": []}`)
	_, err := s.LoadTrip(noDates)
	assert.Error(t, err)

	reversed := filepath.Join(dir, "reversed.json")
	writeLocationFile(t, reversed, `{"trip_dates": {"start": "2026-02-10", "end": "2026-02-01"}, "locations": []}`)
	_, err = s.LoadTrip(reversed)
	assert.Error(t, err)

	malformed := filepath.Join(dir, "malformed.json")
	writeLocationFile(t, malformed, `{not json`)
	_, err = s.LoadTrip(malformed)
	assert.Error(t, err)
}

func TestLoadTrip_NameFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cornwall-2026.json")
	writeLocationFile(t, path, `{
		"trip_dates": {"start": "2026-06-01", "end": "2026-06-07"},
		"locations": [{"id": "cottage", "name": "Cottage", "coordinates": {"lat": 50.2, "lon": -5.4}}]
	}`)

	s := &Store{}
	info, err := s.LoadTrip(path)
	require.NoError(t, err)
	assert.Equal(t, "cornwall-2026", info.Name)
}

func TestNewStore_MissingBaseIsNonFatal(t *testing.T) {
	s := NewStore(t.TempDir())
	assert.Empty(t, s.BaseView().All())
	assert.Empty(t, s.Trips())
}

func TestView_MatchNearestWins(t *testing.T) {
	s := NewStore(testLocationsDir(t))
	view := s.BaseView()

	loc, ok := view.Match(51.3001, -0.5501)
	require.True(t, ok)
	assert.Equal(t, "home", loc.ID)

	_, ok = view.Match(52.0, -1.0)
	assert.False(t, ok)
}

func TestView_ByTypeAndActivity(t *testing.T) {
	s := NewStore(testLocationsDir(t))
	view := s.AutoResolveForDate(date("2026-01-20"))

	resorts := view.ByType("ski_resort")
	require.Len(t, resorts, 1)
	assert.Equal(t, "Val Thorens", resorts[0].Name)

	home, ok := view.Home()
	require.True(t, ok)
	assert.Equal(t, "Chalet", home.Name)
}
