package nutrition

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/events"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/metrics"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=nutrition_test

type mealsRepo interface {
	Create(ctx context.Context, meal Meal) error
	ListSince(ctx context.Context, userID string, from time.Time) ([]Meal, error)
	Get(ctx context.Context, id string) (*Meal, error)
	Delete(ctx context.Context, id string, userID string) error
}

type activityRecorder interface {
	Record(ctx context.Context, event events.Event) error
}

type Service struct {
	repo           mealsRepo
	activity       activityRecorder
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(repo mealsRepo, activity activityRecorder, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		activity:       activity,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (s *Service) LogMeal(ctx context.Context, userID string, req LogMealRequest) (_ *Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.log_meal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, pkg.ErrUnauthorized
	}

	meal, err := req.toMeal()
	if err != nil {
		return nil, err
	}
	meal.ID = uuid.NewString()
	meal.UserID = userID
	meal.Date = s.now().UTC()

	if err := s.repo.Create(ctx, *meal); err != nil {
		return nil, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterMealsLogged.Inc()
	}
	s.record(ctx, events.New(userID, events.TypeMealLogged, map[string]string{
		"meal_id":  meal.ID,
		"type":     string(meal.Type),
		"calories": strconv.Itoa(meal.Calories),
		"protein":  strconv.Itoa(meal.Protein),
	}))

	return meal, nil
}

// ListToday returns the meals logged since the start of the caller's local day.
func (s *Service) ListToday(ctx context.Context, userID string) (_ []Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.list_today")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, pkg.ErrUnauthorized
	}

	from := pkg.StartOfDay(s.now().In(pkg.LocationFromContext(ctx)))
	meals, err := s.repo.ListSince(ctx, userID, from)
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []Meal{}
	}
	return meals, nil
}

func (s *Service) DeleteMeal(ctx context.Context, userID, mealID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.nutrition.delete_meal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return pkg.ErrUnauthorized
	}

	meal, err := s.repo.Get(ctx, mealID)
	if err != nil {
		return err
	}
	if meal.UserID != userID {
		return ErrNotMealOwner
	}
	if err := s.repo.Delete(ctx, mealID, userID); err != nil {
		return err
	}

	s.record(ctx, events.New(userID, events.TypeMealDeleted, map[string]string{"meal_id": mealID}))
	return nil
}

func (s *Service) record(ctx context.Context, event events.Event) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, event); err != nil {
		log.Errorf("record %s: %s", event.Type, err)
	}
}
