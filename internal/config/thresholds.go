package config

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/gavraq/activity-backend-go/internal/movement"
)

// Thresholds holds all tunable detection parameters. Defaults are documented
// on each field; an optional JSON file can overlay any subset of them.
type Thresholds struct {
	Commute   CommuteConfig   `json:"commute"`
	Golf      GolfConfig      `json:"golf"`
	Parkrun   ParkrunConfig   `json:"parkrun"`
	DogWalk   DogWalkConfig   `json:"dog_walking"`
	Snowboard SnowboardConfig `json:"snowboarding"`
	Daily     DailyConfig     `json:"daily"`
}

// HourWindow is a time-of-day window in minutes since midnight, [Start, End).
// It compares wall-clock time in the timestamp's own location; the service
// shifts pings into the location view's timezone before analysis.
type HourWindow struct {
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

// Contains reports whether t's local time of day falls inside the window
func (w HourWindow) Contains(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	return m >= w.StartMinute && m < w.EndMinute
}

// CommuteConfig parameterizes commute detection
type CommuteConfig struct {
	// Ordered known-location IDs on the expected route, home first
	ExpectedLocations []string `json:"expected_locations"`
	// Weekdays on which commutes are expected (time.Weekday values)
	Weekdays []int `json:"weekdays"`

	MorningWindow HourWindow `json:"morning_window"`
	EveningWindow HourWindow `json:"evening_window"`

	// Train-speed corroboration band
	TrainMinMPS            float64 `json:"train_min_mps"`
	TrainMaxMPS            float64 `json:"train_max_mps"`
	MinTrainSegmentSeconds float64 `json:"min_train_segment_seconds"`

	MinLocationsVisited int     `json:"min_locations_visited"`
	MinDurationHours    float64 `json:"min_duration_hours"`
	MaxDurationHours    float64 `json:"max_duration_hours"`

	HomeKeywords   []string `json:"home_keywords"`
	OfficeKeywords []string `json:"office_keywords"`

	MinScore float64        `json:"min_score"`
	Weights  CommuteWeights `json:"weights"`
}

// CommuteWeights are the confidence factor weights, summing to 100
type CommuteWeights struct {
	LocationsVisited float64 `json:"locations_visited"`
	TimeWindow       float64 `json:"time_window"`
	TrainSpeed       float64 `json:"train_speed"`
	Duration         float64 `json:"duration"`
	Direction        float64 `json:"direction"`
}

// GolfConfig parameterizes both golf detection strategies
type GolfConfig struct {
	Bands movement.VelocityBands `json:"bands"`

	// Known-course density strategy
	PresenceGapMinutes    float64 `json:"presence_gap_minutes"`
	DensityWindowMinutes  float64 `json:"density_window_minutes"`
	MinDensityPerMinute   float64 `json:"min_density_per_minute"`
	HighDensityPerMinute  float64 `json:"high_density_per_minute"`
	MinSessionHours       float64 `json:"min_session_hours"`
	MinWalkingShare       float64 `json:"min_walking_share"`
	HighWalkingShare      float64 `json:"high_walking_share"`
	MinStationaryShare    float64 `json:"min_stationary_share"`
	MaxFastShare          float64 `json:"max_fast_share"`

	// Velocity-cluster fallback strategy
	ClusterGapMinutes  float64 `json:"cluster_gap_minutes"`
	MinClusterSegments int     `json:"min_cluster_segments"`
	MinFallbackHours   float64 `json:"min_fallback_hours"`
	MaxFallbackHours   float64 `json:"max_fallback_hours"`
	NineHoleMinHours   float64 `json:"nine_hole_min_hours"`
	NineHoleMaxHours   float64 `json:"nine_hole_max_hours"`
	FullRoundMinHours  float64 `json:"full_round_min_hours"`
	FullRoundMaxHours  float64 `json:"full_round_max_hours"`
	MinDistanceKm      float64 `json:"min_distance_km"`
	MaxDistanceKm      float64 `json:"max_distance_km"`

	MinScore float64     `json:"min_score"`
	Weights  GolfWeights `json:"weights"`
}

// GolfWeights are the fallback-strategy factor weights, summing to 100.
// The density strategy tiers confidence directly and does not use them.
type GolfWeights struct {
	DurationFit      float64 `json:"duration_fit"`
	DistanceFit      float64 `json:"distance_fit"`
	WalkingRatio     float64 `json:"walking_ratio"`
	LowContamination float64 `json:"low_contamination"`
}

// ParkrunConfig parameterizes parkrun detection
type ParkrunConfig struct {
	Bands movement.VelocityBands `json:"bands"`

	ClusterGapMinutes  float64 `json:"cluster_gap_minutes"`
	MinClusterSegments int     `json:"min_cluster_segments"`

	MinMinutes           float64 `json:"min_minutes"`
	MaxMinutes           float64 `json:"max_minutes"`
	IdealMinMinutes      float64 `json:"ideal_min_minutes"`
	IdealMaxMinutes      float64 `json:"ideal_max_minutes"`
	TargetDistanceMeters float64 `json:"target_distance_meters"`
	MinDistanceMeters    float64 `json:"min_distance_meters"`
	MaxDistanceMeters    float64 `json:"max_distance_meters"`

	Day         int        `json:"day"` // time.Weekday, Saturday by default
	StartWindow HourWindow `json:"start_window"`

	MinRunningShare        float64 `json:"min_running_share"`
	FullCreditRunningShare float64 `json:"full_credit_running_share"`

	Weights ParkrunWeights `json:"weights"`
}

// ParkrunWeights are the confidence factor weights, summing to 100
type ParkrunWeights struct {
	Location   float64 `json:"location"`
	DayTime    float64 `json:"day_time"`
	Duration   float64 `json:"duration"`
	Distance   float64 `json:"distance"`
	RunningPct float64 `json:"running_pct"`
}

// DogWalkConfig parameterizes dog-walking detection
type DogWalkConfig struct {
	Bands movement.VelocityBands `json:"bands"`

	ClusterGapMinutes  float64 `json:"cluster_gap_minutes"`
	MinClusterSegments int     `json:"min_cluster_segments"`

	MinDurationMinutes   float64 `json:"min_duration_minutes"`
	MaxDurationMinutes   float64 `json:"max_duration_minutes"`
	IdealMinMinutes      float64 `json:"ideal_min_minutes"`
	IdealMaxMinutes      float64 `json:"ideal_max_minutes"`
	HomeProximityMeters  float64 `json:"home_proximity_meters"`
	MinWalkingShare      float64 `json:"min_walking_share"`
	MinStationaryShare   float64 `json:"min_stationary_share"`
	MaxStationaryShare   float64 `json:"max_stationary_share"`

	MinScore float64        `json:"min_score"`
	Weights  DogWalkWeights `json:"weights"`
}

// DogWalkWeights are the confidence factor weights, summing to 100
type DogWalkWeights struct {
	HomeProximity   float64 `json:"home_proximity"`
	KnownLocation   float64 `json:"known_location"`
	WalkingShare    float64 `json:"walking_share"`
	Duration        float64 `json:"duration"`
	StationaryShare float64 `json:"stationary_share"`
}

// SnowboardConfig parameterizes snowboarding detection
type SnowboardConfig struct {
	Bands movement.SlopeBands `json:"bands"`

	MinLiftGainMeters  float64 `json:"min_lift_gain_meters"`
	PairingGapMinutes  float64 `json:"pairing_gap_minutes"` // max gap between a lift top and the descent
	RunGapMinutes      float64 `json:"run_gap_minutes"`     // consecutive runs within this merge into one session

	DescentMinMPS      float64 `json:"descent_min_mps"` // expected average descent velocity band
	DescentMaxMPS      float64 `json:"descent_max_mps"`
	FullCreditRuns     int     `json:"full_credit_runs"`
	FullCreditVertical float64 `json:"full_credit_vertical_meters"`
	MinSessionHours    float64 `json:"min_session_hours"`
	MaxSessionHours    float64 `json:"max_session_hours"`

	Weights SnowboardWeights `json:"weights"`
}

// SnowboardWeights are the confidence factor weights, summing to 100
type SnowboardWeights struct {
	KnownResort     float64 `json:"known_resort"`
	RunCount        float64 `json:"run_count"`
	DescentVelocity float64 `json:"descent_velocity"`
	Vertical        float64 `json:"vertical"`
	Duration        float64 `json:"duration"`
}

// DailyConfig parameterizes the daily pattern analyzer
type DailyConfig struct {
	MinVisitMinutes     float64 `json:"min_visit_minutes"`
	StayRadiusMeters    float64 `json:"stay_radius_meters"`
	StayGapMinutes      float64 `json:"stay_gap_minutes"`
	MinStayMinutes      float64 `json:"min_stay_minutes"`
	PrimaryMinHours     float64 `json:"primary_min_hours"`
	OfficeDayHours      float64 `json:"office_day_hours"`
	HomeWFHHours        float64 `json:"home_wfh_hours"`
	WeekendHomeHours    float64 `json:"weekend_home_hours"`
	TravelMaxKnownHours float64 `json:"travel_max_known_hours"`
	GeocodeTimeoutSecs  float64 `json:"geocode_timeout_secs"`
}

// DefaultThresholds returns the documented default parameter set
func DefaultThresholds() Thresholds {
	return Thresholds{
		Commute: CommuteConfig{
			Weekdays:      []int{1, 2, 3, 4, 5}, // Monday-Friday
			MorningWindow: HourWindow{StartMinute: 6 * 60, EndMinute: 10 * 60},
			EveningWindow: HourWindow{StartMinute: 16 * 60, EndMinute: 20 * 60},

			TrainMinMPS:            10,
			TrainMaxMPS:            40,
			MinTrainSegmentSeconds: 60,

			MinLocationsVisited: 2,
			MinDurationHours:    0.25,
			MaxDurationHours:    2.5,

			HomeKeywords:   []string{"home", "house"},
			OfficeKeywords: []string{"office", "work", "hq"},

			MinScore: 0.4,
			Weights: CommuteWeights{
				LocationsVisited: 30,
				TimeWindow:       20,
				TrainSpeed:       20,
				Duration:         15,
				Direction:        15,
			},
		},
		Golf: GolfConfig{
			Bands: movement.VelocityBands{StationaryMax: 0.5, WalkingMax: 2.5, RunningMax: 5.0},

			PresenceGapMinutes:   30,
			DensityWindowMinutes: 20,
			MinDensityPerMinute:  0.5,
			HighDensityPerMinute: 1.0,
			MinSessionHours:      2.0,
			MinWalkingShare:      0.4,
			HighWalkingShare:     0.55,
			MinStationaryShare:   0.1,
			MaxFastShare:         0.1,

			ClusterGapMinutes:  15,
			MinClusterSegments: 10,
			MinFallbackHours:   1.5,
			MaxFallbackHours:   6.0,
			NineHoleMinHours:   1.5,
			NineHoleMaxHours:   2.75,
			FullRoundMinHours:  3.5,
			FullRoundMaxHours:  5.5,
			MinDistanceKm:      4,
			MaxDistanceKm:      12,

			MinScore: 0.4,
			Weights: GolfWeights{
				DurationFit:      30,
				DistanceFit:      25,
				WalkingRatio:     25,
				LowContamination: 20,
			},
		},
		Parkrun: ParkrunConfig{
			Bands: movement.VelocityBands{StationaryMax: 0.5, WalkingMax: 2.0, RunningMax: 5.0},

			ClusterGapMinutes:  5,
			MinClusterSegments: 5,

			MinMinutes:           12,
			MaxMinutes:           50,
			IdealMinMinutes:      15,
			IdealMaxMinutes:      40,
			TargetDistanceMeters: 5000,
			MinDistanceMeters:    4500,
			MaxDistanceMeters:    5800,

			Day:         int(time.Saturday),
			StartWindow: HourWindow{StartMinute: 8*60 + 30, EndMinute: 10*60 + 30},

			MinRunningShare:        0.5,
			FullCreditRunningShare: 0.7,

			Weights: ParkrunWeights{
				Location:   25,
				DayTime:    25,
				Duration:   20,
				Distance:   15,
				RunningPct: 15,
			},
		},
		DogWalk: DogWalkConfig{
			Bands: movement.VelocityBands{StationaryMax: 0.5, WalkingMax: 2.0, RunningMax: 4.0},

			ClusterGapMinutes:  10,
			MinClusterSegments: 5,

			MinDurationMinutes:  15,
			MaxDurationMinutes:  120,
			IdealMinMinutes:     20,
			IdealMaxMinutes:     75,
			HomeProximityMeters: 2000,
			MinWalkingShare:     0.5,
			MinStationaryShare:  0.05,
			MaxStationaryShare:  0.35,

			MinScore: 0.4,
			Weights: DogWalkWeights{
				HomeProximity:   20,
				KnownLocation:   30,
				WalkingShare:    20,
				Duration:        15,
				StationaryShare: 15,
			},
		},
		Snowboard: SnowboardConfig{
			Bands: movement.SlopeBands{
				StationaryMaxMPS:   0.5,
				LiftMinMPS:         1.0,
				LiftMaxMPS:         8.0,
				LiftMinSlopeDeg:    3.0,
				DescentMaxSlopeDeg: -8.0,
				DescentMinMPS:      3.0,
			},

			MinLiftGainMeters: 100,
			PairingGapMinutes: 10,
			RunGapMinutes:     45,

			DescentMinMPS:      5,
			DescentMaxMPS:      20,
			FullCreditRuns:     3,
			FullCreditVertical: 1000,
			MinSessionHours:    1,
			MaxSessionHours:    8,

			Weights: SnowboardWeights{
				KnownResort:     25,
				RunCount:        20,
				DescentVelocity: 20,
				Vertical:        20,
				Duration:        15,
			},
		},
		Daily: DailyConfig{
			MinVisitMinutes:     5,
			StayRadiusMeters:    150,
			StayGapMinutes:      30,
			MinStayMinutes:      10,
			PrimaryMinHours:     1.0,
			OfficeDayHours:      4.0,
			HomeWFHHours:        6.0,
			WeekendHomeHours:    6.0,
			TravelMaxKnownHours: 2.0,
			GeocodeTimeoutSecs:  10,
		},
	}
}

// LoadThresholds returns the defaults overlaid with values from an optional
// JSON file. A missing or malformed file logs a warning and keeps the
// defaults; loading failure never corrupts behavior.
func LoadThresholds(path string) Thresholds {
	thresholds := DefaultThresholds()
	if path == "" {
		return thresholds
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[Config] Warning: could not read thresholds file %s: %v (using defaults)", path, err)
		return thresholds
	}

	if err := json.Unmarshal(data, &thresholds); err != nil {
		log.Printf("[Config] Warning: malformed thresholds file %s: %v (using defaults)", path, err)
		return DefaultThresholds()
	}

	log.Printf("[Config] Loaded threshold overrides from %s", path)
	return thresholds
}
