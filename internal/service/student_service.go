package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/oakfield-edu/gradecast/internal/dto"
	"github.com/oakfield-edu/gradecast/internal/grades"
	"github.com/oakfield-edu/gradecast/internal/models"
	"github.com/oakfield-edu/gradecast/internal/store"
)

const listCacheKey = "gradecast:students:list"

// ErrStudentNotFound indicates the requested student record does not exist.
var ErrStudentNotFound = errors.New("student not found")

// ErrTargetOutsideBoundaries indicates the target grade has no configured
// boundary. Without this check a missing boundary degrades to a zero threshold
// and every student reports on-track, which masks the input error.
var ErrTargetOutsideBoundaries = errors.New("target grade has no configured boundary")

// StudentService orchestrates grade prediction and record storage.
type StudentService interface {
	Create(ctx context.Context, payload dto.CreateStudentRequest) (dto.StudentResponse, error)
	Get(ctx context.Context, id int) (dto.StudentResponse, error)
	List(ctx context.Context) (dto.StudentListResponse, error)
	Delete(ctx context.Context, id int) (dto.StudentResponse, error)
	Count(ctx context.Context) int
}

type studentService struct {
	store     store.StudentStore
	validator *validator.Validate
	cache     *redis.Client
	cacheTTL  time.Duration
	events    EventPublisher
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewStudentService constructs the student service. The cache client and event
// publisher may be nil, in which case those concerns are skipped.
func NewStudentService(studentStore store.StudentStore, validate *validator.Validate, cache *redis.Client, cacheTTL time.Duration, events EventPublisher, logger zerolog.Logger) StudentService {
	return &studentService{
		store:     studentStore,
		validator: validate,
		cache:     cache,
		cacheTTL:  cacheTTL,
		events:    events,
		logger:    logger.With().Str("component", "student_service").Logger(),
		tracer:    otel.Tracer("github.com/oakfield-edu/gradecast/internal/service/student"),
	}
}

func (s *studentService) Create(ctx context.Context, payload dto.CreateStudentRequest) (dto.StudentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "students.create")
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.StudentResponse{}, err
	}

	boundaries := payload.Boundaries()
	target := grades.Grade(payload.TargetGrade)
	if !boundaries.Contains(target) {
		span.SetStatus(codes.Error, "target_outside_boundaries")
		return dto.StudentResponse{}, ErrTargetOutsideBoundaries
	}

	weighted := grades.WeightedScore(payload.MockScores, payload.CourseworkScore, *payload.TeacherAssessment)
	predicted := grades.Predict(weighted, boundaries)
	progress := grades.Progress(weighted, target, boundaries)

	record := s.store.Create(models.StudentRecord{
		Name:              payload.Name,
		Subject:           payload.Subject,
		TargetGrade:       target,
		MockScores:        payload.MockScores,
		CourseworkScore:   payload.CourseworkScore,
		TeacherAssessment: *payload.TeacherAssessment,
		GradeBoundaries:   boundaries,
		PredictedGrade:    predicted,
		WeightedScore:     weighted,
		Progress:          progress,
	})

	s.invalidateListCache(ctx)
	s.publish(ctx, EventStudentCreated, record)

	span.SetAttributes(
		attribute.Int("student.id", record.ID),
		attribute.Float64("student.weighted_score", record.WeightedScore),
		attribute.String("student.predicted_grade", record.PredictedGrade.String()),
	)
	s.logger.Info().
		Int("student_id", record.ID).
		Str("subject", record.Subject).
		Str("predicted_grade", record.PredictedGrade.String()).
		Msg("student record created")

	return dto.NewStudentResponse(record), nil
}

func (s *studentService) Get(ctx context.Context, id int) (dto.StudentResponse, error) {
	_, span := s.tracer.Start(ctx, "students.get")
	span.SetAttributes(attribute.Int("student.id", id))
	defer span.End()

	record, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			span.SetStatus(codes.Error, "student_not_found")
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		span.RecordError(err)
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(record), nil
}

func (s *studentService) List(ctx context.Context) (dto.StudentListResponse, error) {
	ctx, span := s.tracer.Start(ctx, "students.list")
	defer span.End()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, listCacheKey).Result(); err == nil {
			var response dto.StudentListResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("student list cache hit")
				span.SetAttributes(attribute.Bool("cache.hit", true))
				return response, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read student list cache")
		}
	}

	response := dto.NewStudentListResponse(s.store.List())
	span.SetAttributes(attribute.Int("students.count", response.Count))

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, listCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store student list cache")
			}
		}
	}

	return response, nil
}

func (s *studentService) Delete(ctx context.Context, id int) (dto.StudentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "students.delete")
	span.SetAttributes(attribute.Int("student.id", id))
	defer span.End()

	record, err := s.store.Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			span.SetStatus(codes.Error, "student_not_found")
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		span.RecordError(err)
		return dto.StudentResponse{}, err
	}

	s.invalidateListCache(ctx)
	s.publish(ctx, EventStudentDeleted, record)

	s.logger.Info().Int("student_id", id).Msg("student record deleted")

	return dto.NewStudentResponse(record), nil
}

func (s *studentService) Count(ctx context.Context) int {
	return s.store.Count()
}

func (s *studentService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, listCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate student list cache")
	}
}

func (s *studentService) publish(ctx context.Context, eventType string, record models.StudentRecord) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, NewStudentEvent(eventType, record)); err != nil {
		s.logger.Warn().Err(err).Str("event", eventType).Msg("failed to publish student event")
	}
}

// IsValidationError reports whether err came from payload validation.
func IsValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return true
	}
	return errors.Is(err, ErrTargetOutsideBoundaries)
}

// ValidationMessage renders a short human-readable description of a
// validation failure for the API response.
func ValidationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		return fmt.Sprintf("invalid field %s: failed %s validation", first.Field(), first.Tag())
	}
	return err.Error()
}
