package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavraq/activity-backend-go/internal/config"
	"github.com/gavraq/activity-backend-go/internal/models"
)

var parkrunVenue = models.KnownLocation{
	ID:           "bushy",
	Name:         "Bushy parkrun",
	Type:         models.LocationTypeParkrun,
	Coordinates:  models.Coordinates{Lat: 51.41, Lon: -0.335},
	RadiusMeters: 300,
}

// saturdayRun builds a ~5 km run at ~3.3 m/s starting at the venue
func saturdayRun(start time.Time) []models.Ping {
	return track(nil, start, 51, 30*time.Second, 51.41, -0.335, 0.0009)
}

func TestParkrun_SaturdayFiveK_HighConfidence(t *testing.T) {
	c := NewParkrunClassifier(config.DefaultThresholds())
	start := time.Date(2026, 4, 11, 9, 0, 0, 0, time.UTC) // Saturday

	sessions := c.DetectSessions(saturdayRun(start), testView(parkrunVenue))
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, models.ActivityParkrun, s.ActivityType)
	assert.Equal(t, models.ConfidenceHigh, s.Confidence)
	assert.InDelta(t, 1.0, s.ConfidenceScore, 0.0001)
	assert.Equal(t, "Bushy parkrun", s.Location.Name)
	assert.InDelta(t, 5000, s.Details["distance_meters"].(float64), 100)
	assert.InDelta(t, 25, s.Details["duration_minutes"].(float64), 1)
	assert.InDelta(t, 1.0, s.Details["running_share"].(float64), 0.0001)
	assert.InDelta(t, 5.0, s.Details["pace_min_per_km"].(float64), 0.2)
}

func TestParkrun_UnknownVenueStillDetected(t *testing.T) {
	c := NewParkrunClassifier(config.DefaultThresholds())
	start := time.Date(2026, 4, 11, 9, 0, 0, 0, time.UTC)

	sessions := c.DetectSessions(saturdayRun(start), testView())
	require.Len(t, sessions, 1)

	// Missing the location factor costs its 25-point weight
	assert.InDelta(t, 0.75, sessions[0].ConfidenceScore, 0.0001)
	assert.Equal(t, models.ConfidenceMedium, sessions[0].Confidence)
	assert.Equal(t, "parkrun", sessions[0].Location.Name)
}

func TestParkrun_DurationCreditReadsConfig(t *testing.T) {
	thresholds := config.DefaultThresholds()
	thresholds.Parkrun.IdealMaxMinutes = 20
	c := NewParkrunClassifier(thresholds)
	start := time.Date(2026, 4, 11, 9, 0, 0, 0, time.UTC)

	sessions := c.DetectSessions(saturdayRun(start), testView(parkrunVenue))
	require.Len(t, sessions, 1)

	// The ~25 min run sits outside the narrowed ideal band, so the
	// duration factor drops to partial credit: 0.7 * 20 points
	assert.InDelta(t, 0.94, sessions[0].ConfidenceScore, 0.0001)
}

func TestParkrun_SurvivesTrailingDataGap(t *testing.T) {
	c := NewParkrunClassifier(config.DefaultThresholds())
	start := time.Date(2026, 4, 11, 9, 0, 0, 0, time.UTC)

	// After the run the tracker goes quiet until a single fix two hours
	// later and ~23 km away. The bridging pair lands in the running band
	// at ~3.2 m/s and must not stretch the run past its duration gate.
	pings := saturdayRun(start)
	last := pings[len(pings)-1]
	pings = append(pings, models.Ping{
		Timestamp: last.Timestamp.Add(2 * time.Hour),
		Lat:       51.30,
		Lon:       -0.55,
	})

	sessions := c.DetectSessions(pings, testView(parkrunVenue))
	require.Len(t, sessions, 1)
	assert.InDelta(t, 25, sessions[0].Details["duration_minutes"].(float64), 1)
}

func TestParkrun_RejectsWrongDay(t *testing.T) {
	c := NewParkrunClassifier(config.DefaultThresholds())
	sunday := time.Date(2026, 4, 12, 9, 0, 0, 0, time.UTC)

	assert.Empty(t, c.DetectSessions(saturdayRun(sunday), testView(parkrunVenue)))
}

func TestParkrun_RejectsOutsideStartWindow(t *testing.T) {
	c := NewParkrunClassifier(config.DefaultThresholds())
	lateStart := time.Date(2026, 4, 11, 11, 0, 0, 0, time.UTC)

	assert.Empty(t, c.DetectSessions(saturdayRun(lateStart), testView(parkrunVenue)))
}

func TestParkrun_RejectsShortRun(t *testing.T) {
	c := NewParkrunClassifier(config.DefaultThresholds())
	start := time.Date(2026, 4, 11, 9, 0, 0, 0, time.UTC)
	short := track(nil, start, 21, 30*time.Second, 51.41, -0.335, 0.0009) // ~2 km

	assert.Empty(t, c.DetectSessions(short, testView(parkrunVenue)))
}

func TestParkrun_RejectsWalkedCourse(t *testing.T) {
	c := NewParkrunClassifier(config.DefaultThresholds())
	start := time.Date(2026, 4, 11, 9, 0, 0, 0, time.UTC)
	// ~5 km at walking pace; distance and duration pass but running share is 0
	walked := track(nil, start, 87, 30*time.Second, 51.41, -0.335, 0.000525)

	assert.Empty(t, c.DetectSessions(walked, testView(parkrunVenue)))
}
