package dashboard

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/auth"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=dashboard_test

type dashboardService interface {
	Dashboard(ctx context.Context, userID string) (*Dashboard, error)
	Progress(ctx context.Context, userID string) (*Progress, error)
	LogWeight(ctx context.Context, userID string, req LogWeightRequest) (*WeightEntry, error)
}

type Handler struct {
	service dashboardService
}

func NewHandler(service dashboardService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.get")
	defer span.End()

	d, err := h.service.Dashboard(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		log.Errorf("get dashboard: %s", err)
		pkg.WriteError(w, err, "failed to get dashboard")
		return
	}

	pkg.WriteJSON(w, d, http.StatusOK)
}

func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.progress")
	defer span.End()

	p, err := h.service.Progress(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		log.Errorf("get progress: %s", err)
		pkg.WriteError(w, err, "failed to get progress")
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (h *Handler) HandleLogWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard.log_weight")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req LogWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("log weight, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.service.LogWeight(ctx, auth.UserIDFromContext(ctx), req)
	if err != nil {
		log.Errorf("log weight: %s", err)
		pkg.WriteError(w, err, "failed to log weight")
		return
	}

	pkg.WriteJSON(w, entry, http.StatusCreated)
}
