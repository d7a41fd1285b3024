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

// DogWalkClassifier detects dog walks as walking/stationary clusters at a
// known local walking location. Generic movement near home is deliberately
// excluded: ordinary house movement would otherwise trigger constant false
// positives.
type DogWalkClassifier struct {
	cfg config.DogWalkConfig
}

// NewDogWalkClassifier creates a dog-walking classifier
func NewDogWalkClassifier(thresholds config.Thresholds) Classifier {
	return &DogWalkClassifier{cfg: thresholds.DogWalk}
}

// ActivityType returns the dog-walking activity type
func (d *DogWalkClassifier) ActivityType() models.ActivityType {
	return models.ActivityDogWalking
}

// DetectSessions detects walks at known walking locations
func (d *DogWalkClassifier) DetectSessions(pings []models.Ping, view *locations.View) []models.ActivitySession {
	walkLocs := d.walkingLocations(view)
	if len(walkLocs) == 0 {
		return nil
	}

	all := movement.WithVelocityClasses(movement.BuildSegments(pings), d.cfg.Bands)

	// Keep only slow segments that happen at a walking location
	var atLocation []models.MovementSegment
	for _, seg := range all {
		if seg.Movement != models.MovementWalking && seg.Movement != models.MovementStationary {
			continue
		}
		if locationFor(seg, walkLocs) != nil {
			atLocation = append(atLocation, seg)
		}
	}

	gap := time.Duration(d.cfg.ClusterGapMinutes * float64(time.Minute))
	clusters := movement.ClusterByGap(atLocation, gap, d.cfg.MinClusterSegments)

	home, hasHome := view.Home()

	var sessions []models.ActivitySession
	for _, cluster := range clusters {
		minutes := cluster.Duration().Minutes()
		if minutes < d.cfg.MinDurationMinutes || minutes > d.cfg.MaxDurationMinutes {
			continue
		}

		loc := d.dominantLocation(cluster, walkLocs)
		walkingShare := cluster.ClassShare(models.MovementWalking)
		stationaryShare := cluster.ClassShare(models.MovementStationary)

		factors := []Factor{
			{Name: "home_proximity", Weight: d.cfg.Weights.HomeProximity, Satisfied: d.homeProximity(loc, home, hasHome)},
			{Name: "known_location", Weight: d.cfg.Weights.KnownLocation, Satisfied: 1},
			{Name: "walking_share", Weight: d.cfg.Weights.WalkingShare, Satisfied: clamp01(walkingShare / d.cfg.MinWalkingShare)},
			{Name: "duration", Weight: d.cfg.Weights.Duration, Satisfied: rangeFactor(minutes, d.cfg.IdealMinMinutes, d.cfg.IdealMaxMinutes, 0.6)},
			{Name: "stationary_share", Weight: d.cfg.Weights.StationaryShare, Satisfied: d.stationaryFit(stationaryShare)},
		}

		score := Score(factors)
		if score < d.cfg.MinScore {
			continue
		}

		log.Printf("[DogWalkClassifier] Walk at %s: %.0f min, %.0f m, walking %.0f%% (score %.2f)",
			loc.Name, minutes, cluster.TotalDistance(), walkingShare*100, score)

		sessions = append(sessions, models.ActivitySession{
			ActivityType:    models.ActivityDogWalking,
			StartTime:       cluster.Start(),
			EndTime:         cluster.End(),
			DurationHours:   cluster.Duration().Hours(),
			Location:        models.SessionLocation{Name: loc.Name, Coordinates: [2]float64{loc.Coordinates.Lat, loc.Coordinates.Lon}},
			Confidence:      LabelForScore(score),
			ConfidenceScore: score,
			Details: map[string]interface{}{
				"distance_meters":  cluster.TotalDistance(),
				"walking_share":    walkingShare,
				"stationary_share": stationaryShare,
			},
		})
	}
	return sessions
}

// walkingLocations returns the known places a dog walk can happen at
func (d *DogWalkClassifier) walkingLocations(view *locations.View) []models.KnownLocation {
	seen := make(map[string]bool)
	var out []models.KnownLocation
	for _, t := range []string{models.LocationTypePark, models.LocationTypeCommon} {
		for _, loc := range view.ByType(t) {
			if !seen[loc.ID] {
				seen[loc.ID] = true
				out = append(out, loc)
			}
		}
	}
	for _, loc := range view.ByActivity("dog_walking") {
		if !seen[loc.ID] {
			seen[loc.ID] = true
			out = append(out, loc)
		}
	}
	return out
}

// dominantLocation picks the walking location containing the most segment
// start points in the cluster
func (d *DogWalkClassifier) dominantLocation(cluster movement.Cluster, walkLocs []models.KnownLocation) models.KnownLocation {
	counts := make(map[string]int)
	byID := make(map[string]models.KnownLocation)
	for _, seg := range cluster.Segments {
		if loc := locationFor(seg, walkLocs); loc != nil {
			counts[loc.ID]++
			byID[loc.ID] = *loc
		}
	}

	best := walkLocs[0]
	bestCount := -1
	for id, count := range counts {
		if count > bestCount {
			best = byID[id]
			bestCount = count
		}
	}
	return best
}

func (d *DogWalkClassifier) homeProximity(loc models.KnownLocation, home models.KnownLocation, hasHome bool) float64 {
	if !hasHome {
		return 0
	}
	dist := spatial.HaversineDistance(loc.Coordinates.Lat, loc.Coordinates.Lon, home.Coordinates.Lat, home.Coordinates.Lon)
	switch {
	case dist <= d.cfg.HomeProximityMeters:
		return 1
	case dist <= 2*d.cfg.HomeProximityMeters:
		return 0.5
	default:
		return 0
	}
}

// stationaryFit rewards the sniffing-and-stops profile of a real walk and
// penalizes prolonged idling
func (d *DogWalkClassifier) stationaryFit(share float64) float64 {
	switch {
	case share >= d.cfg.MinStationaryShare && share <= d.cfg.MaxStationaryShare:
		return 1
	case share > d.cfg.MaxStationaryShare:
		return 0.3
	default:
		return 0.6
	}
}

// locationFor returns the first walking location containing the segment's
// start point
func locationFor(seg models.MovementSegment, locs []models.KnownLocation) *models.KnownLocation {
	for i := range locs {
		if spatial.WithinRadius(seg.StartLat, seg.StartLon, locs[i]) {
			return &locs[i]
		}
	}
	return nil
}

func init() {
	Register(models.ActivityDogWalking, NewDogWalkClassifier)
}
