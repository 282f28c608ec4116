package programs

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=programs_test

type programsService interface {
	ListPrograms(ctx context.Context) ([]Program, error)
	GetProgram(ctx context.Context, id string) (*Program, error)
	Enroll(ctx context.Context, userID string, programID string) error
	Quit(ctx context.Context, userID string) error
}

type Handler struct {
	service programsService
}

func NewHandler(service programsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.list")
	defer span.End()

	list, err := h.service.ListPrograms(ctx)
	if err != nil {
		log.Errorf("list programs: %s", err)
		pkg.WriteError(w, err, "failed to list programs")
		return
	}

	pkg.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.get")
	defer span.End()

	program, err := h.service.GetProgram(ctx, mux.Vars(r)["id"])
	if err != nil {
		log.Errorf("get program: %s", err)
		pkg.WriteError(w, err, "failed to get program")
		return
	}

	pkg.WriteJSON(w, program, http.StatusOK)
}

func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.enroll")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("enroll, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Enroll(ctx, auth.UserIDFromContext(ctx), req.ProgramID); err != nil {
		log.Errorf("enroll: %s", err)
		pkg.WriteError(w, err, "failed to enroll")
		return
	}

	pkg.WriteJSON(w, pkg.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) HandleQuit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.quit")
	defer span.End()

	if err := h.service.Quit(ctx, auth.UserIDFromContext(ctx)); err != nil {
		log.Errorf("quit program: %s", err)
		pkg.WriteError(w, err, "failed to quit program")
		return
	}

	pkg.WriteJSON(w, pkg.SuccessResponse{Success: true}, http.StatusOK)
}
