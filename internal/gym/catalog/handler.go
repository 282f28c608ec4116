package catalog

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=catalog_test

type catalogService interface {
	ListExercises(ctx context.Context, filter ExerciseFilter) ([]Exercise, error)
	GetExercise(ctx context.Context, id string) (*Exercise, error)
	ListMuscles(ctx context.Context) ([]Muscle, error)
}

type Handler struct {
	service catalogService
}

func NewHandler(service catalogService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.exercises.list")
	defer span.End()

	query := r.URL.Query()
	exercises, err := h.service.ListExercises(ctx, ExerciseFilter{
		Search:    query.Get("search"),
		Muscle:    query.Get("muscle"),
		Equipment: query.Get("equipment"),
	})
	if err != nil {
		log.Errorf("list exercises: %s", err)
		pkg.WriteError(w, err, "failed to list exercises")
		return
	}

	pkg.WriteJSON(w, exercises, http.StatusOK)
}

func (h *Handler) HandleGetExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.exercises.get")
	defer span.End()

	exercise, err := h.service.GetExercise(ctx, mux.Vars(r)["id"])
	if err != nil {
		log.Errorf("get exercise: %s", err)
		pkg.WriteError(w, err, "failed to get exercise")
		return
	}

	pkg.WriteJSON(w, exercise, http.StatusOK)
}

func (h *Handler) HandleListMuscles(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.muscles.list")
	defer span.End()

	muscles, err := h.service.ListMuscles(ctx)
	if err != nil {
		log.Errorf("list muscles: %s", err)
		pkg.WriteError(w, err, "failed to list muscles")
		return
	}

	pkg.WriteJSON(w, muscles, http.StatusOK)
}
