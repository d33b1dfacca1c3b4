package grades

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestWeightedScoreWithCoursework(t *testing.T) {
	score := WeightedScore([]float64{80, 90}, floatPtr(70), 85)
	require.InDelta(t, 80.5, score, 1e-9)
}

func TestWeightedScoreWithoutCoursework(t *testing.T) {
	score := WeightedScore([]float64{50, 60}, nil, 70)
	require.InDelta(t, 61, score, 1e-9)
}

func TestWeightedScoreCourseworkPathsAreIndependent(t *testing.T) {
	mocks := []float64{40, 60}
	with := WeightedScore(mocks, floatPtr(0), 80)
	without := WeightedScore(mocks, nil, 80)

	// 0.5*50 + 0.3*0 + 0.2*80 = 41 vs 0.6*50 + 0.4*80 = 62
	require.InDelta(t, 41, with, 1e-9)
	require.InDelta(t, 62, without, 1e-9)
}

func TestWeightedScoreEmptyMocksDoesNotPanic(t *testing.T) {
	score := WeightedScore(nil, nil, 70)
	require.InDelta(t, 28, score, 1e-9)
}

func TestWeightedScoreNotClamped(t *testing.T) {
	score := WeightedScore([]float64{150}, nil, 120)
	require.Greater(t, score, 100.0)
}

func TestPredictWorkedExamples(t *testing.T) {
	boundaries := DefaultBoundaries()

	require.Equal(t, Grade(8), Predict(80.5, boundaries))
	require.Equal(t, Grade(6), Predict(61, boundaries))
}

func TestPredictExactBoundaryEarnsGrade(t *testing.T) {
	require.Equal(t, Grade(9), Predict(90, DefaultBoundaries()))
	require.Equal(t, Grade(1), Predict(10, DefaultBoundaries()))
}

func TestPredictBelowAllBoundariesIsUngraded(t *testing.T) {
	grade := Predict(9.99, DefaultBoundaries())
	require.Equal(t, Ungraded, grade)
	require.False(t, grade.Graded())
}

func TestPredictMonotonicInScore(t *testing.T) {
	boundaries := DefaultBoundaries()

	previous := Ungraded
	for score := 0.0; score <= 100; score += 0.5 {
		grade := Predict(score, boundaries)
		require.GreaterOrEqual(t, grade, previous, "score %v produced a lower grade", score)
		previous = grade
	}
}

func TestProgressBelowTarget(t *testing.T) {
	report := Progress(80.5, 9, DefaultBoundaries())

	require.InDelta(t, 9.5, report.Gap, 1e-9)
	require.False(t, report.OnTrack)
	require.InDelta(t, 89.44, report.PercentageComplete, 1e-9)
}

func TestProgressExactlyAtTarget(t *testing.T) {
	report := Progress(70, 7, DefaultBoundaries())

	require.Zero(t, report.Gap)
	require.True(t, report.OnTrack)
	require.InDelta(t, 100, report.PercentageComplete, 1e-9)
}

func TestProgressCompletionClampedAt100(t *testing.T) {
	report := Progress(95, 5, DefaultBoundaries())

	require.True(t, report.OnTrack)
	require.InDelta(t, 100, report.PercentageComplete, 1e-9)
}

func TestProgressUnknownTargetDegradesToZeroThreshold(t *testing.T) {
	report := Progress(55, 12, DefaultBoundaries())

	require.InDelta(t, -55, report.Gap, 1e-9)
	require.True(t, report.OnTrack)
	require.Zero(t, report.PercentageComplete)
}

func TestProgressZeroThresholdZeroScore(t *testing.T) {
	report := Progress(0, 3, Boundaries{3: 0})

	require.Zero(t, report.Gap)
	require.True(t, report.OnTrack)
	require.Zero(t, report.PercentageComplete)
}

func TestGradeJSONEncoding(t *testing.T) {
	encoded, err := json.Marshal(Grade(7))
	require.NoError(t, err)
	require.Equal(t, "7", string(encoded))

	encoded, err = json.Marshal(Ungraded)
	require.NoError(t, err)
	require.Equal(t, `"U"`, string(encoded))

	var decoded Grade
	require.NoError(t, json.Unmarshal([]byte(`"U"`), &decoded))
	require.Equal(t, Ungraded, decoded)

	require.NoError(t, json.Unmarshal([]byte("4"), &decoded))
	require.Equal(t, Grade(4), decoded)

	require.Error(t, json.Unmarshal([]byte(`"X"`), &decoded))
}

func TestBoundariesJSONKeysAreDecimalStrings(t *testing.T) {
	encoded, err := json.Marshal(Boundaries{9: 90})
	require.NoError(t, err)
	require.JSONEq(t, `{"9":90}`, string(encoded))

	var decoded Boundaries
	require.NoError(t, json.Unmarshal([]byte(`{"9":90,"1":10}`), &decoded))
	require.Equal(t, 90.0, decoded.Threshold(9))
	require.True(t, decoded.Contains(1))
	require.False(t, decoded.Contains(5))
}
