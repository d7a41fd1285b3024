package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultThresholds_WeightsSumTo100(t *testing.T) {
	d := DefaultThresholds()

	cw := d.Commute.Weights
	assert.InDelta(t, 100, cw.LocationsVisited+cw.TimeWindow+cw.TrainSpeed+cw.Duration+cw.Direction, 0.001)

	gw := d.Golf.Weights
	assert.InDelta(t, 100, gw.DurationFit+gw.DistanceFit+gw.WalkingRatio+gw.LowContamination, 0.001)

	pw := d.Parkrun.Weights
	assert.InDelta(t, 100, pw.Location+pw.DayTime+pw.Duration+pw.Distance+pw.RunningPct, 0.001)

	dw := d.DogWalk.Weights
	assert.InDelta(t, 100, dw.HomeProximity+dw.KnownLocation+dw.WalkingShare+dw.Duration+dw.StationaryShare, 0.001)

	sw := d.Snowboard.Weights
	assert.InDelta(t, 100, sw.KnownResort+sw.RunCount+sw.DescentVelocity+sw.Vertical+sw.Duration, 0.001)
}

func TestHourWindow_Contains(t *testing.T) {
	w := HourWindow{StartMinute: 8*60 + 30, EndMinute: 10*60 + 30}

	assert.True(t, w.Contains(time.Date(2026, 4, 11, 8, 30, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2026, 4, 11, 9, 45, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2026, 4, 11, 10, 30, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2026, 4, 11, 8, 29, 0, 0, time.UTC)))
}

func TestLoadThresholds_EmptyPathUsesDefaults(t *testing.T) {
	assert.Equal(t, DefaultThresholds(), LoadThresholds(""))
}

func TestLoadThresholds_MissingFileUsesDefaults(t *testing.T) {
	assert.Equal(t, DefaultThresholds(), LoadThresholds(filepath.Join(t.TempDir(), "nope.json")))
}

func TestLoadThresholds_PartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"golf": {"min_session_hours": 2.5},
		"daily": {"office_day_hours": 5}
	}`), 0o644))

	got := LoadThresholds(path)
	assert.InDelta(t, 2.5, got.Golf.MinSessionHours, 0.001)
	assert.InDelta(t, 5, got.Daily.OfficeDayHours, 0.001)

	// Untouched values keep their defaults
	assert.Equal(t, DefaultThresholds().Parkrun, got.Parkrun)
	assert.InDelta(t, DefaultThresholds().Daily.HomeWFHHours, got.Daily.HomeWFHHours, 0.001)
}

func TestLoadThresholds_MalformedFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))

	assert.Equal(t, DefaultThresholds(), LoadThresholds(path))
}
