package mcp

import (
	"context"
	"time"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/catalog"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/programs"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/sessions"
)

type schemaSource interface {
	FitnessColumns(ctx context.Context) ([]SchemaColumn, error)
}

type ExercisesRepo interface {
	ListExercises(ctx context.Context, filter catalog.ExerciseFilter) ([]catalog.Exercise, error)
}

type ProgramsRepo interface {
	GetProgram(ctx context.Context, id string) (*programs.Program, error)
}

type SessionsRepo interface {
	Get(ctx context.Context, sessionID string) (*sessions.Session, error)
}

// contextService is what the tool handlers need; kept small for tests.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	SearchExercises(ctx context.Context, filter catalog.ExerciseFilter) ([]catalog.Exercise, error)
	GetProgram(ctx context.Context, id string) (*programs.Program, error)
	GetWorkoutSummary(ctx context.Context, sessionID string) (*sessions.Summary, error)
}

type ContextService struct {
	schema    schemaSource
	exercises ExercisesRepo
	programs  ProgramsRepo
	sessions  SessionsRepo
	now       func() time.Time
}

func NewContextService(schemaRepo schemaSource, exercisesRepo ExercisesRepo, programsRepo ProgramsRepo, sessionsRepo SessionsRepo) *ContextService {
	return &ContextService{
		schema:    schemaRepo,
		exercises: exercisesRepo,
		programs:  programsRepo,
		sessions:  sessionsRepo,
		now:       time.Now,
	}
}

// GetSchema returns the fitness tables as markdown grouped by app area.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.FitnessColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatFitnessSchema(cols), nil
}

func (s *ContextService) SearchExercises(ctx context.Context, filter catalog.ExerciseFilter) ([]catalog.Exercise, error) {
	return s.exercises.ListExercises(ctx, filter)
}

func (s *ContextService) GetProgram(ctx context.Context, id string) (*programs.Program, error) {
	return s.programs.GetProgram(ctx, id)
}

// GetWorkoutSummary loads any session by id; the MCP surface is operator-only and has no user.
func (s *ContextService) GetWorkoutSummary(ctx context.Context, sessionID string) (*sessions.Summary, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	summary := sessions.Summarize(session, s.now())
	return &summary, nil
}
