package programs

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/events"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=programs_test

type programsRepo interface {
	ListPrograms(ctx context.Context) ([]Program, error)
	GetProgram(ctx context.Context, id string) (*Program, error)
	GetDay(ctx context.Context, programID string, dayOfWeek int) (*Day, error)
	SetActiveProgram(ctx context.Context, userID string, programID *string) error
	ActiveProgramID(ctx context.Context, userID string) (*string, error)
}

type activityRecorder interface {
	Record(ctx context.Context, event events.Event) error
}

type Service struct {
	repo     programsRepo
	activity activityRecorder
}

func NewService(repo programsRepo, activity activityRecorder) *Service {
	return &Service{
		repo:     repo,
		activity: activity,
	}
}

func (s *Service) ListPrograms(ctx context.Context) (_ []Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	list, err := s.repo.ListPrograms(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Program{}
	}
	return list, nil
}

func (s *Service) GetProgram(ctx context.Context, id string) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if strings.TrimSpace(id) == "" {
		return nil, ErrProgramNotFound
	}
	return s.repo.GetProgram(ctx, id)
}

func (s *Service) Enroll(ctx context.Context, userID, programID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.enroll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return pkg.ErrUnauthorized
	}
	programID = strings.TrimSpace(programID)
	if programID == "" {
		return pkg.InvalidInput("programId is required")
	}

	if err := s.repo.SetActiveProgram(ctx, userID, &programID); err != nil {
		return err
	}

	s.record(ctx, events.New(userID, events.TypeProgramEnrolled, map[string]string{"program_id": programID}))
	return nil
}

func (s *Service) Quit(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.quit")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return pkg.ErrUnauthorized
	}
	if err := s.repo.SetActiveProgram(ctx, userID, nil); err != nil {
		return err
	}

	s.record(ctx, events.New(userID, events.TypeProgramQuit, nil))
	return nil
}

// ActiveProgram returns the user's active program and its day for the given ISO weekday.
// Both are nil when the user follows no program; the day alone is nil on rest days.
func (s *Service) ActiveProgram(ctx context.Context, userID string, dayOfWeek int) (_ *Program, _ *Day, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.programs.active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	programID, err := s.repo.ActiveProgramID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if programID == nil {
		return nil, nil, nil
	}

	program, err := s.repo.GetProgram(ctx, *programID)
	if err != nil {
		return nil, nil, err
	}
	day, err := s.repo.GetDay(ctx, *programID, dayOfWeek)
	if err != nil {
		return nil, nil, err
	}
	return program, day, nil
}

func (s *Service) record(ctx context.Context, event events.Event) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, event); err != nil {
		log.Errorf("record %s: %s", event.Type, err)
	}
}
