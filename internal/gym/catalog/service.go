package catalog

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/media"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=catalog_test

type catalogRepo interface {
	ListExercises(ctx context.Context, filter ExerciseFilter) ([]Exercise, error)
	GetExercise(ctx context.Context, id string) (*Exercise, error)
	ListMuscles(ctx context.Context) ([]Muscle, error)
}

type Service struct {
	repo   catalogRepo
	signer media.Signer
}

func NewService(repo catalogRepo, signer media.Signer) *Service {
	if signer == nil {
		signer = media.PassthroughSigner{}
	}
	return &Service{
		repo:   repo,
		signer: signer,
	}
}

func (s *Service) ListExercises(ctx context.Context, filter ExerciseFilter) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	filter.Search = strings.TrimSpace(filter.Search)
	filter.Muscle = strings.TrimSpace(filter.Muscle)
	filter.Equipment = strings.TrimSpace(filter.Equipment)

	exercises, err := s.repo.ListExercises(ctx, filter)
	if err != nil {
		return nil, err
	}
	if exercises == nil {
		exercises = []Exercise{}
	}
	for i := range exercises {
		s.signVideo(ctx, &exercises[i])
	}
	return exercises, nil
}

func (s *Service) GetExercise(ctx context.Context, id string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.catalog.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if strings.TrimSpace(id) == "" {
		return nil, ErrExerciseNotFound
	}

	exercise, err := s.repo.GetExercise(ctx, id)
	if err != nil {
		return nil, err
	}
	s.signVideo(ctx, exercise)
	return exercise, nil
}

func (s *Service) ListMuscles(ctx context.Context) ([]Muscle, error) {
	muscles, err := s.repo.ListMuscles(ctx)
	if err != nil {
		return nil, err
	}
	if muscles == nil {
		muscles = []Muscle{}
	}
	return muscles, nil
}

// a failed signature leaves the exercise without a video url
func (s *Service) signVideo(ctx context.Context, exercise *Exercise) {
	if exercise.VideoKey == "" {
		return
	}
	videoURL, err := s.signer.VideoURL(ctx, exercise.VideoKey)
	if err != nil {
		log.Errorf("sign video of exercise %s: %s", exercise.ID, err)
		return
	}
	exercise.VideoURL = videoURL
}
