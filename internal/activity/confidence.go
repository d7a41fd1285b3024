package activity

import (
	"github.com/gavraq/activity-backend-go/internal/models"
)

// Factor is one weighted input to an activity's confidence score. Satisfied
// is the degree to which the factor holds, in [0, 1]; Weight is the
// activity's configured weight for it (weights sum to 100 per activity).
type Factor struct {
	Name      string
	Weight    float64
	Satisfied float64
}

// Score computes the weighted confidence score normalized to [0.0, 1.0]
func Score(factors []Factor) float64 {
	var total, weighted float64
	for _, f := range factors {
		total += f.Weight
		weighted += f.Weight * clamp01(f.Satisfied)
	}
	if total <= 0 {
		return 0
	}
	return weighted / total
}

// LabelForScore maps a normalized score to a confidence label. There is no
// label below LOW; classifiers that want a floor gate emission on a minimum
// score instead.
func LabelForScore(score float64) models.ConfidenceLabel {
	switch {
	case score >= 0.8:
		return models.ConfidenceHigh
	case score >= 0.6:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// boolFactor returns 1 when ok, else 0
func boolFactor(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

// rangeFactor returns 1 when v falls inside [min, max], else partial credit
func rangeFactor(v, min, max, partial float64) float64 {
	if v >= min && v <= max {
		return 1
	}
	return partial
}
