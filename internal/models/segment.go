package models

import (
	"math"
	"time"
)

// MovementClass labels the movement between two consecutive pings. The
// vocabulary is activity-specific: ground activities use stationary/walking/
// running/fast, slope-aware activities use lift/descent/flat/stationary.
type MovementClass string

const (
	MovementStationary MovementClass = "stationary"
	MovementWalking    MovementClass = "walking"
	MovementRunning    MovementClass = "running"
	MovementFast       MovementClass = "fast"

	MovementLift    MovementClass = "lift"
	MovementDescent MovementClass = "descent"
	MovementFlat    MovementClass = "flat"
)

// MovementSegment is the derived movement between two consecutive pings.
// Segments are recomputed per analysis and never stored.
type MovementSegment struct {
	StartTime time.Time
	EndTime   time.Time

	StartLat float64
	StartLon float64
	EndLat   float64
	EndLon   float64

	StartAltitude *float64
	EndAltitude   *float64

	DistanceMeters  float64 // straight-line geodesic
	DurationSeconds float64
	VelocityMPS     float64 // distance / elapsed, 0 if elapsed <= 0
	AltitudeChange  float64 // signed meters, 0 when either altitude is missing
	HasAltitude     bool

	Movement MovementClass
}

// SlopeDegrees returns the slope angle of the segment in degrees, derived
// from altitude change over horizontal distance. Zero when altitude data or
// horizontal movement is missing.
func (s MovementSegment) SlopeDegrees() float64 {
	if !s.HasAltitude || s.DistanceMeters <= 0 {
		return 0
	}
	return math.Atan2(s.AltitudeChange, s.DistanceMeters) * 180 / math.Pi
}
