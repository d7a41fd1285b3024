package activity

import (
	"log"
	"time"

	"github.com/gavraq/activity-backend-go/internal/config"
	"github.com/gavraq/activity-backend-go/internal/locations"
	"github.com/gavraq/activity-backend-go/internal/models"
	"github.com/gavraq/activity-backend-go/internal/movement"
	"github.com/gavraq/activity-backend-go/internal/spatial"
)

// GolfClassifier detects rounds of golf. With a known course configured it
// uses a ping-density detector over continuous presence at the course
// (KnownCourseDensityStrategy); without one it falls back to clustering
// walking/stationary segments and scoring duration/distance fit
// (VelocityClusterStrategy). The two strategies keep separate scoring
// scales; their outcomes differ and are not reconciled.
type GolfClassifier struct {
	cfg config.GolfConfig
}

// NewGolfClassifier creates a golf classifier
func NewGolfClassifier(thresholds config.Thresholds) Classifier {
	return &GolfClassifier{cfg: thresholds.Golf}
}

// ActivityType returns the golf activity type
func (g *GolfClassifier) ActivityType() models.ActivityType {
	return models.ActivityGolf
}

// DetectSessions runs the density strategy per known course, or the
// velocity-cluster fallback when no course is configured
func (g *GolfClassifier) DetectSessions(pings []models.Ping, view *locations.View) []models.ActivitySession {
	if len(pings) == 0 {
		return nil
	}

	courses := g.knownCourses(view)
	if len(courses) == 0 {
		return g.velocityClusterStrategy(pings)
	}

	var sessions []models.ActivitySession
	for _, course := range courses {
		sessions = append(sessions, g.knownCourseDensityStrategy(pings, course)...)
	}
	return sessions
}

func (g *GolfClassifier) knownCourses(view *locations.View) []models.KnownLocation {
	seen := make(map[string]bool)
	var courses []models.KnownLocation
	for _, loc := range view.ByType(models.LocationTypeGolfCourse) {
		seen[loc.ID] = true
		courses = append(courses, loc)
	}
	for _, loc := range view.ByActivity("golf") {
		if !seen[loc.ID] {
			courses = append(courses, loc)
		}
	}
	return courses
}

// knownCourseDensityStrategy restricts pings to course proximity, splits
// them into continuous-presence periods and scans each for sub-stretches
// whose rolling ping density clears the minimum. Density discriminates a
// walked round from a parked car at the clubhouse.
func (g *GolfClassifier) knownCourseDensityStrategy(pings []models.Ping, course models.KnownLocation) []models.ActivitySession {
	var coursePings []models.Ping
	for _, p := range pings {
		if p.Valid() && spatial.WithinRadius(p.Lat, p.Lon, course) {
			coursePings = append(coursePings, p)
		}
	}
	if len(coursePings) == 0 {
		return nil
	}

	presenceGap := time.Duration(g.cfg.PresenceGapMinutes * float64(time.Minute))
	var sessions []models.ActivitySession
	for _, period := range splitByGap(coursePings, presenceGap) {
		if session := g.scanPeriod(period, course); session != nil {
			sessions = append(sessions, *session)
		}
	}
	return sessions
}

func (g *GolfClassifier) scanPeriod(period []models.Ping, course models.KnownLocation) *models.ActivitySession {
	if len(period) < 2 {
		return nil
	}
	if period[len(period)-1].Timestamp.Sub(period[0].Timestamp).Hours() < g.cfg.MinSessionHours {
		return nil
	}

	stretch := g.denseStretch(period)
	if len(stretch) < 2 {
		return nil
	}

	start := stretch[0].Timestamp
	end := stretch[len(stretch)-1].Timestamp
	durationHours := end.Sub(start).Hours()
	if durationHours < g.cfg.MinSessionHours {
		return nil
	}

	segments := movement.WithVelocityClasses(movement.BuildSegments(stretch), g.cfg.Bands)
	cluster := movement.Cluster{Segments: segments}
	walkingShare := cluster.ClassShare(models.MovementWalking)
	stationaryShare := cluster.ClassShare(models.MovementStationary)
	fastShare := cluster.ClassShare(models.MovementFast)

	if walkingShare < g.cfg.MinWalkingShare || fastShare > g.cfg.MaxFastShare {
		return nil
	}

	density := float64(len(stretch)) / (durationHours * 60)
	score := g.densityScore(density, walkingShare, stationaryShare)
	distanceKm := cluster.TotalDistance() / 1000

	log.Printf("[GolfClassifier] Course session at %s: %.1fh, %.1f km, density %.2f/min, walking %.0f%% (score %.2f)",
		course.Name, durationHours, distanceKm, density, walkingShare*100, score)

	return &models.ActivitySession{
		ActivityType:    models.ActivityGolf,
		StartTime:       start,
		EndTime:         end,
		DurationHours:   durationHours,
		Location:        models.SessionLocation{Name: course.Name, Coordinates: [2]float64{course.Coordinates.Lat, course.Coordinates.Lon}},
		Confidence:      LabelForScore(score),
		ConfidenceScore: score,
		Details: map[string]interface{}{
			"strategy":         "known_course_density",
			"density_per_min":  density,
			"distance_km":      distanceKm,
			"walking_share":    walkingShare,
			"stationary_share": stationaryShare,
			"estimated_holes":  g.estimateHoles(durationHours),
		},
	}
}

// denseStretch returns the longest contiguous run of pings whose rolling
// density (pings per minute over the density window) clears the minimum
func (g *GolfClassifier) denseStretch(period []models.Ping) []models.Ping {
	window := time.Duration(g.cfg.DensityWindowMinutes * float64(time.Minute))

	dense := make([]bool, len(period))
	j := 0
	for i := range period {
		if j < i {
			j = i
		}
		for j+1 < len(period) && period[j+1].Timestamp.Sub(period[i].Timestamp) <= window {
			j++
		}
		count := j - i + 1
		dense[i] = float64(count)/g.cfg.DensityWindowMinutes >= g.cfg.MinDensityPerMinute
	}

	bestStart, bestLen := 0, 0
	runStart := -1
	for i := 0; i <= len(dense); i++ {
		if i < len(dense) && dense[i] {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			if i-runStart > bestLen {
				bestStart, bestLen = runStart, i-runStart
			}
			runStart = -1
		}
	}
	if bestLen == 0 {
		return nil
	}

	// Extend the stretch to cover the pings inside the last window
	endIdx := bestStart + bestLen - 1
	endTime := period[endIdx].Timestamp.Add(window)
	for endIdx+1 < len(period) && !period[endIdx+1].Timestamp.After(endTime) {
		endIdx++
	}
	return period[bestStart : endIdx+1]
}

// densityScore tiers confidence from density and the velocity mix. The
// density strategy does not share the fallback's weighted formula.
func (g *GolfClassifier) densityScore(density, walkingShare, stationaryShare float64) float64 {
	switch {
	case density >= g.cfg.HighDensityPerMinute && walkingShare >= g.cfg.HighWalkingShare && stationaryShare >= g.cfg.MinStationaryShare:
		return 0.9
	case density >= g.cfg.MinDensityPerMinute && stationaryShare >= g.cfg.MinStationaryShare:
		return 0.7
	default:
		return 0.5
	}
}

func (g *GolfClassifier) estimateHoles(durationHours float64) int {
	if durationHours >= g.cfg.FullRoundMinHours {
		return 18
	}
	return 9
}

// velocityClusterStrategy clusters walking/stationary segments directly and
// scores duration+distance fit against typical 9-/18-hole windows
func (g *GolfClassifier) velocityClusterStrategy(pings []models.Ping) []models.ActivitySession {
	all := movement.WithVelocityClasses(movement.BuildSegments(pings), g.cfg.Bands)

	var slow []models.MovementSegment
	for _, seg := range all {
		if seg.Movement == models.MovementWalking || seg.Movement == models.MovementStationary {
			slow = append(slow, seg)
		}
	}

	gap := time.Duration(g.cfg.ClusterGapMinutes * float64(time.Minute))
	clusters := movement.ClusterByGap(slow, gap, g.cfg.MinClusterSegments)

	var sessions []models.ActivitySession
	for _, cluster := range clusters {
		hours := cluster.Duration().Hours()
		if hours < g.cfg.MinFallbackHours || hours > g.cfg.MaxFallbackHours {
			continue
		}

		// A round always covers real ground; a parked afternoon does not
		distanceKm := cluster.TotalDistance() / 1000
		if distanceKm < g.cfg.MinDistanceKm {
			continue
		}

		walkingShare := cluster.ClassShare(models.MovementWalking)
		fastShare := fastShareInSpan(all, cluster.Start(), cluster.End())

		factors := []Factor{
			{Name: "duration_fit", Weight: g.cfg.Weights.DurationFit, Satisfied: g.holeWindowFit(hours)},
			{Name: "distance_fit", Weight: g.cfg.Weights.DistanceFit, Satisfied: boolFactor(distanceKm >= g.cfg.MinDistanceKm && distanceKm <= g.cfg.MaxDistanceKm)},
			{Name: "walking_ratio", Weight: g.cfg.Weights.WalkingRatio, Satisfied: clamp01(walkingShare / g.cfg.MinWalkingShare)},
			{Name: "low_contamination", Weight: g.cfg.Weights.LowContamination, Satisfied: contaminationFit(fastShare)},
		}

		score := Score(factors)
		if score < g.cfg.MinScore {
			continue
		}

		centroid := cluster.Centroid()
		sessions = append(sessions, models.ActivitySession{
			ActivityType:    models.ActivityGolf,
			StartTime:       cluster.Start(),
			EndTime:         cluster.End(),
			DurationHours:   hours,
			Location:        models.SessionLocation{Name: "Unknown course", Coordinates: [2]float64{centroid.Lat, centroid.Lon}},
			Confidence:      LabelForScore(score),
			ConfidenceScore: score,
			Details: map[string]interface{}{
				"strategy":        "velocity_cluster",
				"distance_km":     distanceKm,
				"walking_share":   walkingShare,
				"fast_share":      fastShare,
				"estimated_holes": g.estimateHoles(hours),
			},
		})
	}
	return sessions
}

// holeWindowFit gives full credit for durations inside a 9- or 18-hole
// window, partial credit elsewhere in the plausible range
func (g *GolfClassifier) holeWindowFit(hours float64) float64 {
	if (hours >= g.cfg.NineHoleMinHours && hours <= g.cfg.NineHoleMaxHours) ||
		(hours >= g.cfg.FullRoundMinHours && hours <= g.cfg.FullRoundMaxHours) {
		return 1
	}
	return 0.5
}

func contaminationFit(fastShare float64) float64 {
	switch {
	case fastShare <= 0.05:
		return 1
	case fastShare <= 0.15:
		return 0.5
	default:
		return 0
	}
}

// fastShareInSpan measures high-speed contamination over all segments in a
// time span, not just the slow ones the cluster was built from
func fastShareInSpan(all []models.MovementSegment, start, end time.Time) float64 {
	total, fast := 0, 0
	for _, seg := range all {
		if seg.StartTime.Before(start) || seg.EndTime.After(end) {
			continue
		}
		total++
		if seg.Movement == models.MovementFast {
			fast++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(fast) / float64(total)
}

// splitByGap splits ordered pings into continuous-presence periods
func splitByGap(pings []models.Ping, gap time.Duration) [][]models.Ping {
	if len(pings) == 0 {
		return nil
	}

	var periods [][]models.Ping
	start := 0
	for i := 1; i < len(pings); i++ {
		if pings[i].Timestamp.Sub(pings[i-1].Timestamp) > gap {
			periods = append(periods, pings[start:i])
			start = i
		}
	}
	return append(periods, pings[start:])
}

func init() {
	Register(models.ActivityGolf, NewGolfClassifier)
}
