package grades

import "math"

// Component weights for the predicted-grade calculation. When no coursework
// score is available, its weight is redistributed across mocks and the
// teacher assessment.
const (
	mockWeight        = 0.5
	courseworkWeight  = 0.3
	teacherWeight     = 0.2
	mockWeightNoCW    = 0.6
	teacherWeightNoCW = 0.4
)

// Report describes how far a weighted score sits from the target grade's boundary.
type Report struct {
	Gap                float64 `json:"gap"`
	OnTrack            bool    `json:"on_track"`
	PercentageComplete float64 `json:"percentage_complete"`
}

// WeightedScore combines mock exam scores, an optional coursework score and a
// teacher assessment into a single percentage. An empty mock slice contributes
// a zero average rather than failing; the result is not clamped, so inputs
// outside 0-100 produce results outside 0-100.
func WeightedScore(mockScores []float64, courseworkScore *float64, teacherAssessment float64) float64 {
	var mockAverage float64
	if len(mockScores) > 0 {
		var sum float64
		for _, score := range mockScores {
			sum += score
		}
		mockAverage = sum / float64(len(mockScores))
	}

	if courseworkScore != nil {
		return mockAverage*mockWeight + *courseworkScore*courseworkWeight + teacherAssessment*teacherWeight
	}
	return mockAverage*mockWeightNoCW + teacherAssessment*teacherWeightNoCW
}

// Predict returns the highest grade whose boundary the weighted score meets.
// A score exactly on a boundary earns that grade. Scores below every boundary
// yield Ungraded.
func Predict(weightedScore float64, boundaries Boundaries) Grade {
	for _, grade := range boundaries.descending() {
		if weightedScore >= boundaries[grade] {
			return grade
		}
	}
	return Ungraded
}

// Progress reports the gap between the current score and the target grade's
// boundary. A target absent from the table degrades to a zero threshold, which
// reports on-track with zero completion; callers that consider that an input
// error must reject such targets upstream.
func Progress(currentScore float64, target Grade, boundaries Boundaries) Report {
	threshold := boundaries.Threshold(target)

	gap := round2(threshold - currentScore)

	var complete float64
	if threshold > 0 {
		complete = math.Min(100, round2(currentScore/threshold*100))
	}

	return Report{
		Gap:                gap,
		OnTrack:            gap <= 0,
		PercentageComplete: complete,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
