package models

import "time"

// ActivityType identifies one of the supported activity classifiers
type ActivityType string

const (
	ActivityCommute      ActivityType = "commute"
	ActivityGolf         ActivityType = "golf"
	ActivityParkrun      ActivityType = "parkrun"
	ActivityDogWalking   ActivityType = "dog_walking"
	ActivitySnowboarding ActivityType = "snowboarding"
)

// ConfidenceLabel is the coarse confidence tier derived from a numeric score
type ConfidenceLabel string

const (
	ConfidenceHigh   ConfidenceLabel = "HIGH"
	ConfidenceMedium ConfidenceLabel = "MEDIUM"
	ConfidenceLow    ConfidenceLabel = "LOW"
)

// SessionLocation names where a session took place, with a representative
// coordinate as [lat, lon]
type SessionLocation struct {
	Name        string     `json:"name"`
	Coordinates [2]float64 `json:"coordinates"`
}

// ActivitySession is the externally visible unit of detection. Created by a
// classifier at the end of its detection pass and never mutated afterward.
type ActivitySession struct {
	ActivityType    ActivityType    `json:"activity_type"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"` // >= StartTime
	DurationHours   float64         `json:"duration_hours"`
	Location        SessionLocation `json:"location"`
	Confidence      ConfidenceLabel `json:"confidence"`
	ConfidenceScore float64         `json:"confidence_score"` // [0.0, 1.0]

	// Activity-specific facts: distance, estimated holes, vertical meters,
	// direction, etc.
	Details map[string]interface{} `json:"details,omitempty"`
}
