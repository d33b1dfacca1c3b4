package dto

import (
	"time"

	"github.com/oakfield-edu/gradecast/internal/grades"
	"github.com/oakfield-edu/gradecast/internal/models"
)

// CreateStudentRequest carries the assessment data needed to predict a grade.
// Teacher assessment uses a pointer so a legitimate score of 0 survives the
// required check.
type CreateStudentRequest struct {
	Name              string          `json:"name" validate:"required"`
	Subject           string          `json:"subject" validate:"required"`
	TargetGrade       int             `json:"target_grade" validate:"required,gte=1,lte=9"`
	MockScores        []float64       `json:"mock_scores" validate:"required,min=1,dive,gte=0,lte=100"`
	CourseworkScore   *float64        `json:"coursework_score" validate:"omitempty,gte=0,lte=100"`
	TeacherAssessment *float64        `json:"teacher_assessment" validate:"required,gte=0,lte=100"`
	GradeBoundaries   map[int]float64 `json:"grade_boundaries" validate:"omitempty,min=1,dive,gte=0,lte=100"`
}

// Boundaries returns the custom boundary table, or the default table when the
// request does not carry one.
func (r CreateStudentRequest) Boundaries() grades.Boundaries {
	if len(r.GradeBoundaries) == 0 {
		return grades.DefaultBoundaries()
	}

	table := make(grades.Boundaries, len(r.GradeBoundaries))
	for grade, threshold := range r.GradeBoundaries {
		table[grades.Grade(grade)] = threshold
	}
	return table
}

// StudentResponse is returned to API clients when viewing student records.
type StudentResponse struct {
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

// StudentListResponse wraps the full student listing.
type StudentListResponse struct {
	Students []StudentResponse `json:"students"`
	Count    int               `json:"count"`
}

// NewStudentResponse maps a stored record into the API shape.
func NewStudentResponse(record models.StudentRecord) StudentResponse {
	return StudentResponse{
		ID:                record.ID,
		Name:              record.Name,
		Subject:           record.Subject,
		TargetGrade:       record.TargetGrade,
		MockScores:        record.MockScores,
		CourseworkScore:   record.CourseworkScore,
		TeacherAssessment: record.TeacherAssessment,
		GradeBoundaries:   record.GradeBoundaries,
		PredictedGrade:    record.PredictedGrade,
		WeightedScore:     record.WeightedScore,
		Progress:          record.Progress,
		CreatedAt:         record.CreatedAt,
	}
}

// NewStudentListResponse maps stored records into the listing shape.
func NewStudentListResponse(records []models.StudentRecord) StudentListResponse {
	students := make([]StudentResponse, 0, len(records))
	for _, record := range records {
		students = append(students, NewStudentResponse(record))
	}
	return StudentListResponse{Students: students, Count: len(students)}
}
