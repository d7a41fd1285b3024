package movement

import (
	"github.com/gavraq/activity-backend-go/internal/models"
	"github.com/gavraq/activity-backend-go/internal/spatial"
)

// BuildSegments turns a chronological list of pings into movement segments.
// Each adjacent ping pair with valid timestamps yields one segment with
// geodesic distance, elapsed seconds, derived velocity (0 if elapsed <= 0)
// and an altitude delta when both altitudes are present. Pings missing a
// timestamp are skipped rather than failing the run.
//
// Segments come back unclassified; callers apply the velocity or slope bands
// relevant to their activity.
func BuildSegments(pings []models.Ping) []models.MovementSegment {
	var segments []models.MovementSegment

	var prev *models.Ping
	for i := range pings {
		p := &pings[i]
		if !p.Valid() {
			continue
		}
		if prev == nil {
			prev = p
			continue
		}

		seg := models.MovementSegment{
			StartTime: prev.Timestamp,
			EndTime:   p.Timestamp,
			StartLat:  prev.Lat,
			StartLon:  prev.Lon,
			EndLat:    p.Lat,
			EndLon:    p.Lon,
		}

		seg.DistanceMeters = spatial.HaversineDistance(prev.Lat, prev.Lon, p.Lat, p.Lon)
		seg.DurationSeconds = p.Timestamp.Sub(prev.Timestamp).Seconds()
		if seg.DurationSeconds > 0 {
			seg.VelocityMPS = seg.DistanceMeters / seg.DurationSeconds
		}

		if prev.Altitude != nil && p.Altitude != nil {
			seg.StartAltitude = prev.Altitude
			seg.EndAltitude = p.Altitude
			seg.AltitudeChange = *p.Altitude - *prev.Altitude
			seg.HasAltitude = true
		}

		segments = append(segments, seg)
		prev = p
	}

	return segments
}

// VelocityBands holds the activity-specific velocity thresholds in m/s.
// Anything at or above RunningMax is classified as fast, i.e. too fast to
// be this activity.
type VelocityBands struct {
	StationaryMax float64 `json:"stationary_max_mps"`
	WalkingMax    float64 `json:"walking_max_mps"`
	RunningMax    float64 `json:"running_max_mps"`
}

// ClassifyVelocity maps a velocity to a movement class under the given bands
func ClassifyVelocity(velocityMPS float64, bands VelocityBands) models.MovementClass {
	switch {
	case velocityMPS < bands.StationaryMax:
		return models.MovementStationary
	case velocityMPS < bands.WalkingMax:
		return models.MovementWalking
	case velocityMPS < bands.RunningMax:
		return models.MovementRunning
	default:
		return models.MovementFast
	}
}

// WithVelocityClasses returns a copy of segments with Movement set from the
// given velocity bands
func WithVelocityClasses(segments []models.MovementSegment, bands VelocityBands) []models.MovementSegment {
	out := make([]models.MovementSegment, len(segments))
	for i, seg := range segments {
		seg.Movement = ClassifyVelocity(seg.VelocityMPS, bands)
		out[i] = seg
	}
	return out
}

// SlopeBands holds the thresholds used by slope-aware activities to separate
// lift riding from descents. Slope angles are in degrees; a negative
// DescentMaxSlopeDeg means "steeper downhill than".
type SlopeBands struct {
	StationaryMaxMPS   float64 `json:"stationary_max_mps"`
	LiftMinMPS         float64 `json:"lift_min_mps"`
	LiftMaxMPS         float64 `json:"lift_max_mps"`
	LiftMinSlopeDeg    float64 `json:"lift_min_slope_deg"`
	DescentMaxSlopeDeg float64 `json:"descent_max_slope_deg"`
	DescentMinMPS      float64 `json:"descent_min_mps"`
}

// ClassifySlope maps a segment to lift/descent/flat/stationary using slope
// angle combined with velocity. Segments without altitude data can never be
// lift or descent.
func ClassifySlope(seg models.MovementSegment, bands SlopeBands) models.MovementClass {
	if seg.VelocityMPS < bands.StationaryMaxMPS {
		return models.MovementStationary
	}
	if !seg.HasAltitude {
		return models.MovementFlat
	}

	slope := seg.SlopeDegrees()
	switch {
	case slope >= bands.LiftMinSlopeDeg && seg.VelocityMPS >= bands.LiftMinMPS && seg.VelocityMPS <= bands.LiftMaxMPS:
		return models.MovementLift
	case slope <= bands.DescentMaxSlopeDeg && seg.VelocityMPS >= bands.DescentMinMPS:
		return models.MovementDescent
	default:
		return models.MovementFlat
	}
}

// WithSlopeClasses returns a copy of segments with Movement set from the
// given slope bands
func WithSlopeClasses(segments []models.MovementSegment, bands SlopeBands) []models.MovementSegment {
	out := make([]models.MovementSegment, len(segments))
	for i, seg := range segments {
		seg.Movement = ClassifySlope(seg, bands)
		out[i] = seg
	}
	return out
}
