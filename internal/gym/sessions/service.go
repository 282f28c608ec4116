package sessions

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/events"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/metrics"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sessions_test

type sessionsRepo interface {
	Create(ctx context.Context, s Session) (*Session, error)
	AttachExercise(ctx context.Context, userID string, sessionID string, exerciseID string) (*WorkoutExercise, error)
	LogSet(ctx context.Context, userID string, sessionID string, exerciseID string, set SetEntry) (*SetEntry, error)
	Finish(ctx context.Context, userID string, sessionID string, now time.Time) (*Session, bool, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	FirstInRange(ctx context.Context, userID string, from time.Time, to time.Time) (*Session, error)
}

type activityRecorder interface {
	Record(ctx context.Context, event events.Event) error
}

type Service struct {
	repo           sessionsRepo
	activity       activityRecorder
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(repo sessionsRepo, activity activityRecorder, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		activity:       activity,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// localNow is the current time in the caller's time zone.
func (s *Service) localNow(ctx context.Context) time.Time {
	return s.now().In(pkg.LocationFromContext(ctx))
}

func (s *Service) Start(ctx context.Context, userID string, req StartRequest) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, pkg.ErrUnauthorized
	}

	date := s.localNow(ctx)
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		date, err = parseDate(*req.Date, date.Location())
		if err != nil {
			return nil, err
		}
	}

	created, err := s.repo.Create(ctx, Session{
		ID:     uuid.NewString(),
		UserID: userID,
		Date:   date,
		Notes:  req.Notes,
		Status: StatusStarted,
	})
	if err != nil {
		return nil, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterWorkoutsStarted.Inc()
	}
	s.record(ctx, events.New(userID, events.TypeWorkoutStarted, map[string]string{
		"session_id": created.ID,
		"date":       created.Date.Format(time.RFC3339),
	}))

	return created, nil
}

func (s *Service) AttachExercise(ctx context.Context, userID, sessionID, exerciseID string) (_ *WorkoutExercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.attach_exercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, pkg.ErrUnauthorized
	}
	exerciseID = strings.TrimSpace(exerciseID)
	if exerciseID == "" {
		return nil, pkg.InvalidInput("exerciseId is required")
	}

	return s.repo.AttachExercise(ctx, userID, sessionID, exerciseID)
}

func (s *Service) LogSet(ctx context.Context, userID, sessionID string, req LogSetRequest) (_ *SetEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.log_set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, pkg.ErrUnauthorized
	}
	reps, weight, err := req.parse()
	if err != nil {
		return nil, err
	}

	set, err := s.repo.LogSet(ctx, userID, sessionID, strings.TrimSpace(req.ExerciseID), SetEntry{
		Reps:   reps,
		Weight: weight,
		Note:   req.Note,
	})
	if err != nil {
		return nil, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterSetsLogged.Inc()
	}
	s.record(ctx, events.New(userID, events.TypeSetLogged, map[string]string{
		"session_id":  sessionID,
		"exercise_id": strings.TrimSpace(req.ExerciseID),
		"reps":        strconv.Itoa(set.Reps),
		"weight":      strconv.FormatFloat(set.Weight, 'f', -1, 64),
	}))

	return set, nil
}

func (s *Service) Finish(ctx context.Context, userID, sessionID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.finish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, pkg.ErrUnauthorized
	}

	session, finished, err := s.repo.Finish(ctx, userID, sessionID, s.localNow(ctx))
	if err != nil {
		return nil, err
	}
	if !finished {
		return session, nil
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterWorkoutsFinished.Inc()
	}
	data := map[string]string{"session_id": session.ID}
	if session.EndedAt != nil {
		data["ended_at"] = session.EndedAt.Format(time.RFC3339)
	}
	s.record(ctx, events.New(userID, events.TypeWorkoutFinished, data))

	return session, nil
}

func (s *Service) Get(ctx context.Context, userID, sessionID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, pkg.ErrUnauthorized
	}

	session, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(session, userID); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Service) Summary(ctx context.Context, userID, sessionID string) (_ *Summary, err error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	summary := Summarize(session, s.now())
	return &summary, nil
}

// Today returns the user's first session dated within their current local day, nil when none.
func (s *Service) Today(ctx context.Context, userID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.today")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	from := pkg.StartOfDay(s.localNow(ctx))
	return s.repo.FirstInRange(ctx, userID, from, from.AddDate(0, 0, 1))
}

func (s *Service) record(ctx context.Context, event events.Event) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, event); err != nil {
		log.Errorf("record %s: %s", event.Type, err)
	}
}
