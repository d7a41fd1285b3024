package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavraq/activity-backend-go/internal/config"
	"github.com/gavraq/activity-backend-go/internal/models"
)

func TestNew_KnownTypes(t *testing.T) {
	thresholds := config.DefaultThresholds()
	for _, typ := range []models.ActivityType{
		models.ActivityCommute,
		models.ActivityGolf,
		models.ActivityParkrun,
		models.ActivityDogWalking,
		models.ActivitySnowboarding,
	} {
		c, err := New(typ, thresholds)
		require.NoError(t, err, "type %s", typ)
		assert.Equal(t, typ, c.ActivityType())
	}
}

func TestNew_UnknownTypeFailsFast(t *testing.T) {
	_, err := New("surfing", config.DefaultThresholds())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown activity type")
}

func TestNewAll_DetectionOrder(t *testing.T) {
	classifiers := NewAll(config.DefaultThresholds())
	require.Len(t, classifiers, 5)

	got := make([]models.ActivityType, len(classifiers))
	for i, c := range classifiers {
		got[i] = c.ActivityType()
	}
	assert.Equal(t, []models.ActivityType{
		models.ActivityCommute,
		models.ActivityGolf,
		models.ActivityParkrun,
		models.ActivityDogWalking,
		models.ActivitySnowboarding,
	}, got)
}

func TestSortSessions(t *testing.T) {
	base := time.Date(2026, 4, 11, 9, 0, 0, 0, time.UTC)
	sessions := []models.ActivitySession{
		{ActivityType: models.ActivityGolf, StartTime: base.Add(3 * time.Hour)},
		{ActivityType: models.ActivityParkrun, StartTime: base},
		{ActivityType: models.ActivityDogWalking, StartTime: base.Add(time.Hour)},
	}

	SortSessions(sessions)

	assert.Equal(t, models.ActivityParkrun, sessions[0].ActivityType)
	assert.Equal(t, models.ActivityDogWalking, sessions[1].ActivityType)
	assert.Equal(t, models.ActivityGolf, sessions[2].ActivityType)
}
