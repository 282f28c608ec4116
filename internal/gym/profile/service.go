package profile

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/gym/events"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=profile_test

type profileRepo interface {
	Save(ctx context.Context, p Profile) error
	Get(ctx context.Context, userID string) (*Profile, error)
}

type activityRecorder interface {
	Record(ctx context.Context, event events.Event) error
}

type Service struct {
	repo     profileRepo
	activity activityRecorder
}

func NewService(repo profileRepo, activity activityRecorder) *Service {
	return &Service{
		repo:     repo,
		activity: activity,
	}
}

func (s *Service) Save(ctx context.Context, userID string, draft Draft) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return pkg.ErrUnauthorized
	}

	p, err := draft.ToProfile(userID)
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, *p); err != nil {
		return err
	}

	if s.activity != nil {
		event := events.New(userID, events.TypeProfileSaved, map[string]string{
			"goal":  string(p.Goal),
			"level": string(p.Level),
		})
		if err := s.activity.Record(ctx, event); err != nil {
			log.Errorf("record %s: %s", event.Type, err)
		}
	}
	return nil
}

func (s *Service) Get(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if userID == "" {
		return nil, pkg.ErrUnauthorized
	}
	return s.repo.Get(ctx, userID)
}
