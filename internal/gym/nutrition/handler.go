package nutrition

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/auth"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=nutrition_test

type nutritionService interface {
	LogMeal(ctx context.Context, userID string, req LogMealRequest) (*Meal, error)
	ListToday(ctx context.Context, userID string) ([]Meal, error)
	DeleteMeal(ctx context.Context, userID string, mealID string) error
}

type Handler struct {
	service nutritionService
}

func NewHandler(service nutritionService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.list")
	defer span.End()

	meals, err := h.service.ListToday(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		log.Errorf("list meals: %s", err)
		pkg.WriteError(w, err, "failed to list meals")
		return
	}

	pkg.WriteJSON(w, meals, http.StatusOK)
}

func (h *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.log")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req LogMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("log meal, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	meal, err := h.service.LogMeal(ctx, auth.UserIDFromContext(ctx), req)
	if err != nil {
		log.Errorf("log meal: %s", err)
		pkg.WriteError(w, err, "failed to log meal")
		return
	}

	pkg.WriteJSON(w, meal, http.StatusCreated)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.delete")
	defer span.End()

	if err := h.service.DeleteMeal(ctx, auth.UserIDFromContext(ctx), mux.Vars(r)["id"]); err != nil {
		log.Errorf("delete meal: %s", err)
		pkg.WriteError(w, err, "failed to delete meal")
		return
	}

	pkg.WriteJSON(w, pkg.SuccessResponse{Success: true}, http.StatusOK)
}
