package activity

import (
	"log"
	"math"
	"time"

	"github.com/gavraq/activity-backend-go/internal/config"
	"github.com/gavraq/activity-backend-go/internal/locations"
	"github.com/gavraq/activity-backend-go/internal/models"
	"github.com/gavraq/activity-backend-go/internal/movement"
	"github.com/gavraq/activity-backend-go/internal/spatial"
)

// ParkrunClassifier detects timed ~5 km Saturday-morning runs. Duration,
// distance, start window and running share are hard requirements; the
// confidence factors grade how cleanly a candidate fits them.
type ParkrunClassifier struct {
	cfg config.ParkrunConfig
}

// NewParkrunClassifier creates a parkrun classifier
func NewParkrunClassifier(thresholds config.Thresholds) Classifier {
	return &ParkrunClassifier{cfg: thresholds.Parkrun}
}

// ActivityType returns the parkrun activity type
func (p *ParkrunClassifier) ActivityType() models.ActivityType {
	return models.ActivityParkrun
}

// DetectSessions clusters running/walking segments and checks each cluster
// against the parkrun requirements
func (p *ParkrunClassifier) DetectSessions(pings []models.Ping, view *locations.View) []models.ActivitySession {
	all := movement.WithVelocityClasses(movement.BuildSegments(pings), p.cfg.Bands)

	var moving []models.MovementSegment
	for _, seg := range all {
		if seg.Movement == models.MovementRunning || seg.Movement == models.MovementWalking {
			moving = append(moving, seg)
		}
	}

	gap := time.Duration(p.cfg.ClusterGapMinutes * float64(time.Minute))
	clusters := movement.ClusterByGap(moving, gap, p.cfg.MinClusterSegments)

	var sessions []models.ActivitySession
	for _, cluster := range clusters {
		if session := p.evaluate(cluster, view); session != nil {
			sessions = append(sessions, *session)
		}
	}
	return sessions
}

func (p *ParkrunClassifier) evaluate(cluster movement.Cluster, view *locations.View) *models.ActivitySession {
	start := cluster.Start()
	minutes := cluster.Duration().Minutes()
	distance := cluster.TotalDistance()
	runningShare := cluster.ClassShare(models.MovementRunning)

	// Hard requirements; a miss on any means this cluster is not a parkrun
	if minutes < p.cfg.MinMinutes || minutes > p.cfg.MaxMinutes {
		return nil
	}
	if distance < p.cfg.MinDistanceMeters || distance > p.cfg.MaxDistanceMeters {
		return nil
	}
	if int(start.Weekday()) != p.cfg.Day || !p.cfg.StartWindow.Contains(start) {
		return nil
	}
	if runningShare < p.cfg.MinRunningShare {
		return nil
	}

	venue, atVenue := p.matchVenue(cluster, view)

	factors := []Factor{
		{Name: "location", Weight: p.cfg.Weights.Location, Satisfied: boolFactor(atVenue)},
		{Name: "day_time", Weight: p.cfg.Weights.DayTime, Satisfied: 1},
		{Name: "duration", Weight: p.cfg.Weights.Duration, Satisfied: rangeFactor(minutes, p.cfg.IdealMinMinutes, p.cfg.IdealMaxMinutes, 0.7)},
		{Name: "distance", Weight: p.cfg.Weights.Distance, Satisfied: distanceFit(distance, p.cfg.TargetDistanceMeters)},
		{Name: "running_pct", Weight: p.cfg.Weights.RunningPct, Satisfied: clamp01(runningShare / p.cfg.FullCreditRunningShare)},
	}
	score := Score(factors)

	locName := "parkrun"
	coords := cluster.Centroid()
	lat, lon := coords.Lat, coords.Lon
	if atVenue {
		locName = venue.Name
		lat, lon = venue.Coordinates.Lat, venue.Coordinates.Lon
	}

	paceMinPerKm := 0.0
	if distance > 0 {
		paceMinPerKm = minutes / (distance / 1000)
	}

	log.Printf("[ParkrunClassifier] %s run at %s: %.1f min, %.0f m, %.0f%% running (score %.2f)",
		start.Format("2006-01-02"), locName, minutes, distance, runningShare*100, score)

	return &models.ActivitySession{
		ActivityType:    models.ActivityParkrun,
		StartTime:       start,
		EndTime:         cluster.End(),
		DurationHours:   cluster.Duration().Hours(),
		Location:        models.SessionLocation{Name: locName, Coordinates: [2]float64{lat, lon}},
		Confidence:      LabelForScore(score),
		ConfidenceScore: score,
		Details: map[string]interface{}{
			"distance_meters":  distance,
			"duration_minutes": minutes,
			"running_share":    runningShare,
			"pace_min_per_km":  paceMinPerKm,
		},
	}
}

// matchVenue finds a known parkrun venue containing the run's start point
func (p *ParkrunClassifier) matchVenue(cluster movement.Cluster, view *locations.View) (models.KnownLocation, bool) {
	venues := view.ByType(models.LocationTypeParkrun)
	seen := make(map[string]bool, len(venues))
	for _, v := range venues {
		seen[v.ID] = true
	}
	for _, v := range view.ByActivity("parkrun") {
		if !seen[v.ID] {
			venues = append(venues, v)
		}
	}

	startLat, startLon := cluster.Segments[0].StartLat, cluster.Segments[0].StartLon
	for _, venue := range venues {
		if spatial.WithinRadius(startLat, startLon, venue) {
			return venue, true
		}
	}
	return models.KnownLocation{}, false
}

// distanceFit gives full credit within 5% of the nominal distance and
// partial credit inside the accepted window
func distanceFit(distance, target float64) float64 {
	if target <= 0 {
		return 0
	}
	if math.Abs(distance-target) <= 0.05*target {
		return 1
	}
	return 0.7
}

func init() {
	Register(models.ActivityParkrun, NewParkrunClassifier)
}
