package models

import (
	"time"

	"github.com/oakfield-edu/gradecast/internal/grades"
)

// StudentRecord is a student's assessment data together with the computed
// prediction. Records are immutable once created; the only mutation the store
// supports is deletion. Field names match the snapshot document layout.
type StudentRecord struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	Subject           string            `json:"subject"`
	TargetGrade       grades.Grade      `json:"target_grade"`
	MockScores        []float64         `json:"mock_scores"`
	CourseworkScore   *float64          `json:"coursework_score"`
	TeacherAssessment float64           `json:"teacher_assessment"`
	GradeBoundaries   grades.Boundaries `json:"grade_boundaries"`
	PredictedGrade    grades.Grade      `json:"predicted_grade"`
	WeightedScore     float64           `json:"weighted_score"`
	Progress          grades.Report     `json:"progress"`
	CreatedAt         time.Time         `json:"created_at"`
}
