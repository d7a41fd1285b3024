package movement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavraq/activity-backend-go/internal/models"
)

func ping(ts time.Time, lat, lon float64) models.Ping {
	return models.Ping{Timestamp: ts, Lat: lat, Lon: lon}
}

func pingAlt(ts time.Time, lat, lon, alt float64) models.Ping {
	p := ping(ts, lat, lon)
	p.Altitude = &alt
	return p
}

func TestBuildSegments_WalkingPace(t *testing.T) {
	// Pings ~55.6 m apart every 30 s: just under 2 m/s, a golfer's walk
	base := time.Date(2026, 4, 11, 10, 0, 0, 0, time.UTC)
	var pings []models.Ping
	for i := 0; i < 4; i++ {
		pings = append(pings, ping(base.Add(time.Duration(i)*30*time.Second), 51.30+float64(i)*0.0005, -0.55))
	}

	segments := BuildSegments(pings)
	require.Len(t, segments, 3)

	for _, seg := range segments {
		assert.InDelta(t, 55.6, seg.DistanceMeters, 1)
		assert.InDelta(t, 30, seg.DurationSeconds, 0.001)
		assert.InDelta(t, 1.85, seg.VelocityMPS, 0.05)
		assert.False(t, seg.HasAltitude)
	}

	bands := VelocityBands{StationaryMax: 0.5, WalkingMax: 2.5, RunningMax: 5.0}
	classified := WithVelocityClasses(segments, bands)
	for _, seg := range classified {
		assert.Equal(t, models.MovementWalking, seg.Movement)
	}
}

func TestBuildSegments_SkipsInvalidPings(t *testing.T) {
	base := time.Date(2026, 4, 11, 10, 0, 0, 0, time.UTC)
	pings := []models.Ping{
		ping(base, 51.30, -0.55),
		{Lat: 51.31, Lon: -0.55}, // zero timestamp, dropped
		ping(base.Add(time.Minute), 51.301, -0.55),
	}

	segments := BuildSegments(pings)
	require.Len(t, segments, 1)
	assert.Equal(t, base, segments[0].StartTime)
	assert.Equal(t, base.Add(time.Minute), segments[0].EndTime)
}

func TestBuildSegments_ZeroElapsed(t *testing.T) {
	base := time.Date(2026, 4, 11, 10, 0, 0, 0, time.UTC)
	pings := []models.Ping{
		ping(base, 51.30, -0.55),
		ping(base, 51.301, -0.55), // duplicate timestamp
	}

	segments := BuildSegments(pings)
	require.Len(t, segments, 1)
	assert.Zero(t, segments[0].VelocityMPS)
	assert.Greater(t, segments[0].DistanceMeters, 0.0)
}

func TestBuildSegments_AltitudeDelta(t *testing.T) {
	base := time.Date(2026, 1, 17, 9, 0, 0, 0, time.UTC)
	pings := []models.Ping{
		pingAlt(base, 45.30, 6.58, 1650),
		pingAlt(base.Add(2*time.Minute), 45.302, 6.58, 2000),
		ping(base.Add(4*time.Minute), 45.304, 6.58), // no altitude
	}

	segments := BuildSegments(pings)
	require.Len(t, segments, 2)

	assert.True(t, segments[0].HasAltitude)
	assert.InDelta(t, 350, segments[0].AltitudeChange, 0.001)

	assert.False(t, segments[1].HasAltitude)
	assert.Zero(t, segments[1].AltitudeChange)
}

func TestClassifyVelocity_Boundaries(t *testing.T) {
	bands := VelocityBands{StationaryMax: 0.5, WalkingMax: 2.5, RunningMax: 5.0}

	assert.Equal(t, models.MovementStationary, ClassifyVelocity(0.49, bands))
	assert.Equal(t, models.MovementWalking, ClassifyVelocity(0.5, bands))
	assert.Equal(t, models.MovementRunning, ClassifyVelocity(2.5, bands))
	assert.Equal(t, models.MovementFast, ClassifyVelocity(5.0, bands))
}

func TestClassifySlope(t *testing.T) {
	bands := SlopeBands{
		StationaryMaxMPS:   0.5,
		LiftMinMPS:         1.0,
		LiftMaxMPS:         8.0,
		LiftMinSlopeDeg:    3.0,
		DescentMaxSlopeDeg: -8.0,
		DescentMinMPS:      3.0,
	}
	up, down := 100.0, -100.0

	lift := models.MovementSegment{
		VelocityMPS:    4.0,
		DistanceMeters: 400,
		AltitudeChange: up,
		HasAltitude:    true,
	}
	assert.Equal(t, models.MovementLift, ClassifySlope(lift, bands))

	descent := models.MovementSegment{
		VelocityMPS:    10.0,
		DistanceMeters: 400,
		AltitudeChange: down,
		HasAltitude:    true,
	}
	assert.Equal(t, models.MovementDescent, ClassifySlope(descent, bands))

	// Too fast for a lift, too shallow for a descent
	flat := models.MovementSegment{
		VelocityMPS:    12.0,
		DistanceMeters: 4000,
		AltitudeChange: up,
		HasAltitude:    true,
	}
	assert.Equal(t, models.MovementFlat, ClassifySlope(flat, bands))

	stationary := models.MovementSegment{VelocityMPS: 0.2, HasAltitude: true}
	assert.Equal(t, models.MovementStationary, ClassifySlope(stationary, bands))

	noAltitude := models.MovementSegment{VelocityMPS: 5.0, DistanceMeters: 400}
	assert.Equal(t, models.MovementFlat, ClassifySlope(noAltitude, bands))
}
