package dashboard

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/events"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/profile"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/programs"
	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/sessions"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=dashboard_test

type dashboardRepo interface {
	UserName(ctx context.Context, userID string) (string, error)
	CompletedDays(ctx context.Context, userID string) (int, error)
	CountWorkouts(ctx context.Context, userID string) (int, error)
	AddWeight(ctx context.Context, entry WeightEntry) error
	RecentWeights(ctx context.Context, userID string, limit int) ([]WeightEntry, error)
}

type profileReader interface {
	Get(ctx context.Context, userID string) (*profile.Profile, error)
}

type programReader interface {
	ActiveProgram(ctx context.Context, userID string, dayOfWeek int) (*programs.Program, *programs.Day, error)
}

type workoutReader interface {
	Today(ctx context.Context, userID string) (*sessions.Session, error)
}

type activityRecorder interface {
	Record(ctx context.Context, event events.Event) error
}

type Service struct {
	repo     dashboardRepo
	profiles profileReader
	programs programReader
	workouts workoutReader
	activity activityRecorder
	now      func() time.Time
}

func NewService(
	repo dashboardRepo,
	profiles profileReader,
	activePrograms programReader,
	workouts workoutReader,
	activity activityRecorder,
) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		programs: activePrograms,
		workouts: workouts,
		activity: activity,
		now:      time.Now,
	}
}

// Dashboard composes the home screen view. A user who has not finished onboarding
// gets a nil goal rather than an error.
func (s *Service) Dashboard(ctx context.Context, userID string) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, pkg.ErrUnauthorized
	}

	name, err := s.repo.UserName(ctx, userID)
	if err != nil {
		return nil, err
	}
	d := &Dashboard{UserName: name}

	p, err := s.profiles.Get(ctx, userID)
	switch {
	case err == nil:
		d.Goal = &p.Goal
	case !errors.Is(err, profile.ErrProfileNotFound):
		return nil, err
	}

	if d.Streak, err = s.repo.CompletedDays(ctx, userID); err != nil {
		return nil, err
	}
	if d.TodaysWorkout, err = s.workouts.Today(ctx, userID); err != nil {
		return nil, err
	}

	localNow := s.now().In(pkg.LocationFromContext(ctx))
	d.ActiveProgram, d.TodaysProgramDay, err = s.programs.ActiveProgram(ctx, userID, pkg.ISOWeekday(localNow))
	if err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) Progress(ctx context.Context, userID string) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, pkg.ErrUnauthorized
	}

	weights, err := s.repo.RecentWeights(ctx, userID, WeightHistoryLimit)
	if err != nil {
		return nil, err
	}
	if weights == nil {
		weights = []WeightEntry{}
	}
	total, err := s.repo.CountWorkouts(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Progress{
		WeightHistory: weights,
		TotalWorkouts: total,
	}, nil
}

func (s *Service) LogWeight(ctx context.Context, userID string, req LogWeightRequest) (_ *WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.log_weight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, pkg.ErrUnauthorized
	}

	weight, date, err := req.parse(s.now().In(pkg.LocationFromContext(ctx)))
	if err != nil {
		return nil, err
	}
	entry := WeightEntry{
		ID:     uuid.NewString(),
		UserID: userID,
		Weight: weight,
		Date:   date,
	}
	if err := s.repo.AddWeight(ctx, entry); err != nil {
		return nil, err
	}

	if s.activity != nil {
		event := events.New(userID, events.TypeWeightReported, map[string]string{
			"weight": strconv.FormatFloat(weight, 'f', -1, 64),
		})
		if err := s.activity.Record(ctx, event); err != nil {
			log.Errorf("record %s: %s", event.Type, err)
		}
	}

	return &entry, nil
}
