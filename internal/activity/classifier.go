package activity

import (
	"fmt"
	"sort"

	"github.com/gavraq/activity-backend-go/internal/config"
	"github.com/gavraq/activity-backend-go/internal/locations"
	"github.com/gavraq/activity-backend-go/internal/models"
)

// Classifier is the interface every activity detector implements. A
// DetectSessions call is a pure function of its inputs; classifiers carry no
// state between invocations.
type Classifier interface {
	// ActivityType returns the activity this classifier detects
	ActivityType() models.ActivityType

	// DetectSessions applies the classifier's filter, pairing and scoring
	// rules to a batch of pings. An empty result means nothing was
	// detected; it is never an error.
	DetectSessions(pings []models.Ping, view *locations.View) []models.ActivitySession
}

// Factory builds a classifier from the configured thresholds
type Factory func(thresholds config.Thresholds) Classifier

// registry maps activity types to classifier factories
var registry = make(map[models.ActivityType]Factory)

// detectionOrder fixes the order classifiers run in for a daily analysis
var detectionOrder = []models.ActivityType{
	models.ActivityCommute,
	models.ActivityGolf,
	models.ActivityParkrun,
	models.ActivityDogWalking,
	models.ActivitySnowboarding,
}

// Register registers a classifier factory for an activity type
func Register(activityType models.ActivityType, factory Factory) {
	registry[activityType] = factory
}

// New builds the classifier for an activity type. An unknown type is a
// configuration mistake and fails fast.
func New(activityType models.ActivityType, thresholds config.Thresholds) (Classifier, error) {
	factory, ok := registry[activityType]
	if !ok {
		return nil, fmt.Errorf("unknown activity type %q", activityType)
	}
	return factory(thresholds), nil
}

// NewAll builds every registered classifier in detection order
func NewAll(thresholds config.Thresholds) []Classifier {
	classifiers := make([]Classifier, 0, len(registry))
	for _, t := range detectionOrder {
		if factory, ok := registry[t]; ok {
			classifiers = append(classifiers, factory(thresholds))
		}
	}
	return classifiers
}

// RegisteredTypes returns the registered activity types, sorted
func RegisteredTypes() []models.ActivityType {
	types := make([]models.ActivityType, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// SortSessions orders sessions by start time in place
func SortSessions(sessions []models.ActivitySession) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartTime.Before(sessions[j].StartTime)
	})
}
