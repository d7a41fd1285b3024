package movement

import (
	"time"

	"github.com/gavraq/activity-backend-go/internal/models"
)

// Cluster is a group of segments that belong to one candidate session
type Cluster struct {
	Segments []models.MovementSegment
}

// ClusterByGap groups ordered segments into clusters, starting a new cluster
// whenever the time gap between the end of one segment and the start of the
// next exceeds the gap tolerance. A segment whose own span exceeds the
// tolerance is a sampling gap rather than observed movement; it is dropped
// and splits the cluster at that point. Clusters with fewer than minSegments
// segments are discarded as noise.
//
// The result is deterministic: the same input and tolerance always yield the
// same cluster boundaries.
func ClusterByGap(segments []models.MovementSegment, gapTolerance time.Duration, minSegments int) []Cluster {
	var clusters []Cluster
	var current Cluster

	flush := func() {
		if len(current.Segments) >= minSegments {
			clusters = append(clusters, current)
		}
		current = Cluster{}
	}

	for _, seg := range segments {
		if seg.DurationSeconds > gapTolerance.Seconds() {
			flush()
			continue
		}
		if len(current.Segments) > 0 {
			last := current.Segments[len(current.Segments)-1]
			if seg.StartTime.Sub(last.EndTime) > gapTolerance {
				flush()
			}
		}
		current.Segments = append(current.Segments, seg)
	}
	flush()

	return clusters
}

// Start returns the start time of the cluster
func (c Cluster) Start() time.Time {
	return c.Segments[0].StartTime
}

// End returns the end time of the cluster
func (c Cluster) End() time.Time {
	return c.Segments[len(c.Segments)-1].EndTime
}

// Duration returns the elapsed time covered by the cluster
func (c Cluster) Duration() time.Duration {
	return c.End().Sub(c.Start())
}

// TotalDistance returns the sum of segment distances in meters
func (c Cluster) TotalDistance() float64 {
	var total float64
	for _, seg := range c.Segments {
		total += seg.DistanceMeters
	}
	return total
}

// ClassShare returns the fraction of segments carrying the given movement
// class, weighted by segment count
func (c Cluster) ClassShare(class models.MovementClass) float64 {
	if len(c.Segments) == 0 {
		return 0
	}
	count := 0
	for _, seg := range c.Segments {
		if seg.Movement == class {
			count++
		}
	}
	return float64(count) / float64(len(c.Segments))
}

// AvgVelocity returns the distance-weighted average velocity in m/s
func (c Cluster) AvgVelocity() float64 {
	var distance, seconds float64
	for _, seg := range c.Segments {
		distance += seg.DistanceMeters
		seconds += seg.DurationSeconds
	}
	if seconds <= 0 {
		return 0
	}
	return distance / seconds
}

// Centroid returns the arithmetic center of the cluster's segment endpoints
func (c Cluster) Centroid() models.Coordinates {
	if len(c.Segments) == 0 {
		return models.Coordinates{}
	}
	var sumLat, sumLon float64
	n := 0
	for _, seg := range c.Segments {
		sumLat += seg.StartLat + seg.EndLat
		sumLon += seg.StartLon + seg.EndLon
		n += 2
	}
	return models.Coordinates{Lat: sumLat / float64(n), Lon: sumLon / float64(n)}
}
