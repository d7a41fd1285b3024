package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavraq/activity-backend-go/internal/config"
	"github.com/gavraq/activity-backend-go/internal/models"
)

var skiResort = models.KnownLocation{
	ID:           "resort",
	Name:         "Val Thorens",
	Type:         models.LocationTypeSkiResort,
	Coordinates:  models.Coordinates{Lat: 45.2976, Lon: 6.58},
	RadiusMeters: 3000,
}

// liftAndDescent appends one lift ride (+18 m altitude per minute at 3 m/s)
// followed by a fast descent (-100 m per minute at 10 m/s), returning the
// pings and the updated position
func liftAndDescent(pings []models.Ping, from time.Time, lat float64, alt float64) ([]models.Ping, time.Time, float64, float64) {
	t := from
	// 20 lift segments: 360 m gained
	for i := 0; i < 20; i++ {
		pings = append(pings, pingAtAlt(t, lat, 6.58, alt))
		t = t.Add(time.Minute)
		lat += 0.00162 // ~180 m per minute
		alt += 18
	}
	// 4 descent segments: 400 m dropped heading south
	for i := 0; i < 5; i++ {
		pings = append(pings, pingAtAlt(t, lat, 6.58, alt))
		if i == 4 {
			break
		}
		t = t.Add(time.Minute)
		lat -= 0.0054 // ~600 m per minute
		alt -= 100
	}
	return pings, t, lat, alt
}

func TestSnowboard_TwoRunDay(t *testing.T) {
	c := NewSnowboardClassifier(config.DefaultThresholds())
	start := time.Date(2026, 1, 20, 9, 30, 0, 0, time.UTC)

	pings, end, lat, alt := liftAndDescent(nil, start, skiResort.Coordinates.Lat, 1500)
	// 40 minutes stationary at the lift base, then a second run
	pings = append(pings, pingAtAlt(end.Add(40*time.Minute), lat, 6.58, alt))
	pings, _, _, _ = liftAndDescent(pings, end.Add(41*time.Minute), lat, alt)

	sessions := c.DetectSessions(pings, testView(skiResort))
	require.Len(t, sessions, 1)

	s := sessions[0]
	assert.Equal(t, models.ActivitySnowboarding, s.ActivityType)
	assert.Equal(t, "Val Thorens", s.Location.Name)
	assert.Equal(t, 2, s.Details["runs"])
	assert.InDelta(t, 720, s.Details["vertical_meters"].(float64), 1)
	assert.InDelta(t, 10, s.Details["avg_descent_mps"].(float64), 0.5)
	assert.Equal(t, models.ConfidenceHigh, s.Confidence)
	assert.InDelta(t, 0.877, s.ConfidenceScore, 0.01)

	directions := s.Details["descent_directions"].([]string)
	require.Len(t, directions, 2)
	assert.Equal(t, "S", directions[0])
}

func TestSnowboard_LongGapSplitsSessions(t *testing.T) {
	c := NewSnowboardClassifier(config.DefaultThresholds())
	start := time.Date(2026, 1, 20, 9, 30, 0, 0, time.UTC)

	pings, end, lat, alt := liftAndDescent(nil, start, skiResort.Coordinates.Lat, 1500)
	// Two hours of lunch breaks the session in two
	pings, _, _, _ = liftAndDescent(pings, end.Add(2*time.Hour), lat, alt)

	sessions := c.DetectSessions(pings, testView(skiResort))
	require.Len(t, sessions, 2)
	assert.Equal(t, 1, sessions[0].Details["runs"])
	assert.Equal(t, 1, sessions[1].Details["runs"])
}

func TestSnowboard_SmallLiftGainIgnored(t *testing.T) {
	c := NewSnowboardClassifier(config.DefaultThresholds())
	start := time.Date(2026, 1, 20, 9, 30, 0, 0, time.UTC)

	// A drag lift gaining 54 m stays below the 100 m minimum
	var pings []models.Ping
	lat, alt := skiResort.Coordinates.Lat, 1500.0
	for i := 0; i < 4; i++ {
		pings = append(pings, pingAtAlt(start.Add(time.Duration(i)*time.Minute), lat, 6.58, alt))
		lat += 0.00162
		alt += 18
	}
	assert.Empty(t, c.DetectSessions(pings, testView(skiResort)))
}

func TestSnowboard_NoAltitudeNoRuns(t *testing.T) {
	c := NewSnowboardClassifier(config.DefaultThresholds())
	start := time.Date(2026, 1, 20, 9, 30, 0, 0, time.UTC)

	pings := track(nil, start, 30, time.Minute, 45.2976, 6.58, 0.00162)
	assert.Empty(t, c.DetectSessions(pings, testView(skiResort)))
}
