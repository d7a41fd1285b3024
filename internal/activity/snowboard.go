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

// SnowboardClassifier detects snowboarding by pairing lift stretches with
// the descents that follow them. A lift/descent pair qualifies as a Run only
// when the lift's cumulative altitude gain clears the minimum; consecutive
// runs within the gap tolerance merge into one session. Sessions are emitted
// whenever at least one run exists, with the score reflecting how typical
// the day looked.
type SnowboardClassifier struct {
	cfg config.SnowboardConfig
}

// NewSnowboardClassifier creates a snowboarding classifier
func NewSnowboardClassifier(thresholds config.Thresholds) Classifier {
	return &SnowboardClassifier{cfg: thresholds.Snowboard}
}

// ActivityType returns the snowboarding activity type
func (s *SnowboardClassifier) ActivityType() models.ActivityType {
	return models.ActivitySnowboarding
}

// Run is one lift ride plus the descent that followed it
type Run struct {
	Start          time.Time
	End            time.Time
	StartLat       float64
	StartLon       float64
	VerticalMeters float64 // cumulative altitude gained on the lift
	DescentDrop    float64 // meters lost on the descent (positive)
	DescentMPS     float64
	Direction      string // principal compass direction of the descent
}

// classStretch is a consecutive run of segments sharing one movement class
type classStretch struct {
	class    models.MovementClass
	segments []models.MovementSegment
}

// DetectSessions pairs lifts with descents and merges the resulting runs
// into sessions
func (s *SnowboardClassifier) DetectSessions(pings []models.Ping, view *locations.View) []models.ActivitySession {
	segments := movement.WithSlopeClasses(movement.BuildSegments(pings), s.cfg.Bands)
	runs := s.pairRuns(stretchesOf(segments))
	if len(runs) == 0 {
		return nil
	}

	var sessions []models.ActivitySession
	for _, group := range s.mergeRuns(runs) {
		sessions = append(sessions, s.buildSession(group, view))
	}
	return sessions
}

// stretchesOf groups consecutive same-class segments
func stretchesOf(segments []models.MovementSegment) []classStretch {
	var stretches []classStretch
	for _, seg := range segments {
		n := len(stretches)
		if n > 0 && stretches[n-1].class == seg.Movement {
			stretches[n-1].segments = append(stretches[n-1].segments, seg)
			continue
		}
		stretches = append(stretches, classStretch{class: seg.Movement, segments: []models.MovementSegment{seg}})
	}
	return stretches
}

func (st classStretch) start() time.Time { return st.segments[0].StartTime }
func (st classStretch) end() time.Time   { return st.segments[len(st.segments)-1].EndTime }

func (st classStretch) altitudeGain() float64 {
	var gain float64
	for _, seg := range st.segments {
		if seg.AltitudeChange > 0 {
			gain += seg.AltitudeChange
		}
	}
	return gain
}

func (st classStretch) altitudeLoss() float64 {
	var loss float64
	for _, seg := range st.segments {
		if seg.AltitudeChange < 0 {
			loss -= seg.AltitudeChange
		}
	}
	return loss
}

func (st classStretch) avgVelocity() float64 {
	var distance, seconds float64
	for _, seg := range st.segments {
		distance += seg.DistanceMeters
		seconds += seg.DurationSeconds
	}
	if seconds <= 0 {
		return 0
	}
	return distance / seconds
}

// pairRuns matches each qualifying lift stretch with the next descent
// stretch within the pairing gap
func (s *SnowboardClassifier) pairRuns(stretches []classStretch) []Run {
	pairingGap := time.Duration(s.cfg.PairingGapMinutes * float64(time.Minute))

	var runs []Run
	for i, lift := range stretches {
		if lift.class != models.MovementLift {
			continue
		}
		gain := lift.altitudeGain()
		if gain < s.cfg.MinLiftGainMeters {
			continue
		}

		for j := i + 1; j < len(stretches); j++ {
			next := stretches[j]
			if next.start().Sub(lift.end()) > pairingGap {
				break
			}
			if next.class == models.MovementLift {
				break
			}
			if next.class != models.MovementDescent {
				continue
			}

			first := next.segments[0]
			last := next.segments[len(next.segments)-1]
			runs = append(runs, Run{
				Start:          lift.start(),
				End:            next.end(),
				StartLat:       lift.segments[0].StartLat,
				StartLon:       lift.segments[0].StartLon,
				VerticalMeters: gain,
				DescentDrop:    next.altitudeLoss(),
				DescentMPS:     next.avgVelocity(),
				Direction:      spatial.CompassPoint(spatial.Bearing(first.StartLat, first.StartLon, last.EndLat, last.EndLon)),
			})
			break
		}
	}
	return runs
}

// mergeRuns groups consecutive runs separated by at most the run gap
func (s *SnowboardClassifier) mergeRuns(runs []Run) [][]Run {
	runGap := time.Duration(s.cfg.RunGapMinutes * float64(time.Minute))

	var groups [][]Run
	current := []Run{runs[0]}
	for _, run := range runs[1:] {
		if run.Start.Sub(current[len(current)-1].End) > runGap {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, run)
	}
	return append(groups, current)
}

func (s *SnowboardClassifier) buildSession(runs []Run, view *locations.View) models.ActivitySession {
	start := runs[0].Start
	end := runs[len(runs)-1].End
	hours := end.Sub(start).Hours()

	var vertical, descentSum float64
	directions := make([]string, len(runs))
	for i, run := range runs {
		vertical += run.VerticalMeters
		descentSum += run.DescentMPS
		directions[i] = run.Direction
	}
	avgDescent := descentSum / float64(len(runs))

	resort, atResort := s.matchResort(runs, view)

	factors := []Factor{
		{Name: "known_resort", Weight: s.cfg.Weights.KnownResort, Satisfied: boolFactor(atResort)},
		{Name: "run_count", Weight: s.cfg.Weights.RunCount, Satisfied: clamp01(float64(len(runs)) / float64(s.cfg.FullCreditRuns))},
		{Name: "descent_velocity", Weight: s.cfg.Weights.DescentVelocity, Satisfied: boolFactor(avgDescent >= s.cfg.DescentMinMPS && avgDescent <= s.cfg.DescentMaxMPS)},
		{Name: "vertical", Weight: s.cfg.Weights.Vertical, Satisfied: clamp01(vertical / s.cfg.FullCreditVertical)},
		{Name: "duration", Weight: s.cfg.Weights.Duration, Satisfied: rangeFactor(hours, s.cfg.MinSessionHours, s.cfg.MaxSessionHours, 0.5)},
	}
	score := Score(factors)

	name := "Unknown resort"
	lat, lon := runs[0].StartLat, runs[0].StartLon
	if atResort {
		name = resort.Name
		lat, lon = resort.Coordinates.Lat, resort.Coordinates.Lon
	}

	log.Printf("[SnowboardClassifier] Session at %s: %d runs, %.0f m vertical, avg descent %.1f m/s (score %.2f)",
		name, len(runs), vertical, avgDescent, score)

	return models.ActivitySession{
		ActivityType:    models.ActivitySnowboarding,
		StartTime:       start,
		EndTime:         end,
		DurationHours:   hours,
		Location:        models.SessionLocation{Name: name, Coordinates: [2]float64{lat, lon}},
		Confidence:      LabelForScore(score),
		ConfidenceScore: score,
		Details: map[string]interface{}{
			"runs":               len(runs),
			"vertical_meters":    vertical,
			"avg_descent_mps":    avgDescent,
			"descent_directions": directions,
		},
	}
}

// matchResort checks whether any run started inside a known ski resort
func (s *SnowboardClassifier) matchResort(runs []Run, view *locations.View) (models.KnownLocation, bool) {
	resorts := view.ByType(models.LocationTypeSkiResort)
	seen := make(map[string]bool, len(resorts))
	for _, r := range resorts {
		seen[r.ID] = true
	}
	for _, r := range view.ByActivity("snowboarding") {
		if !seen[r.ID] {
			resorts = append(resorts, r)
		}
	}

	for _, resort := range resorts {
		for _, run := range runs {
			if spatial.WithinRadius(run.StartLat, run.StartLon, resort) {
				return resort, true
			}
		}
	}
	return models.KnownLocation{}, false
}

func init() {
	Register(models.ActivitySnowboarding, NewSnowboardClassifier)
}
