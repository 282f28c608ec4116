package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/auth"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

type sessionsService interface {
	Start(ctx context.Context, userID string, req StartRequest) (*Session, error)
	AttachExercise(ctx context.Context, userID string, sessionID string, exerciseID string) (*WorkoutExercise, error)
	LogSet(ctx context.Context, userID string, sessionID string, req LogSetRequest) (*SetEntry, error)
	Finish(ctx context.Context, userID string, sessionID string) (*Session, error)
	Get(ctx context.Context, userID string, sessionID string) (*Session, error)
	Summary(ctx context.Context, userID string, sessionID string) (*Summary, error)
}

type Handler struct {
	service sessionsService
}

func NewHandler(service sessionsService) *Handler {
	return &Handler{
		service: service,
	}
}

// decodeBody reads an optional JSON body; an empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	if r.ContentLength != 0 && r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		return pkg.InvalidInput("invalid content type")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		log.Tracef("unmarshal json params: %s", err)
		return pkg.InvalidInput("invalid request body")
	}
	return nil
}

func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.start")
	defer span.End()

	var req StartRequest
	if err := decodeBody(r, &req); err != nil {
		pkg.WriteError(w, err, "")
		return
	}

	session, err := h.service.Start(ctx, auth.UserIDFromContext(ctx), req)
	if err != nil {
		log.Errorf("start workout session: %s", err)
		pkg.WriteError(w, err, "failed to start workout session")
		return
	}

	pkg.WriteJSON(w, session, http.StatusCreated)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	session, err := h.service.Get(ctx, auth.UserIDFromContext(ctx), mux.Vars(r)["id"])
	if err != nil {
		log.Errorf("get workout session: %s", err)
		pkg.WriteError(w, err, "failed to get workout session")
		return
	}

	pkg.WriteJSON(w, session, http.StatusOK)
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.summary")
	defer span.End()

	summary, err := h.service.Summary(ctx, auth.UserIDFromContext(ctx), mux.Vars(r)["id"])
	if err != nil {
		log.Errorf("workout session summary: %s", err)
		pkg.WriteError(w, err, "failed to summarize workout session")
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) HandleAttachExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.attach_exercise")
	defer span.End()

	var req AttachRequest
	if err := decodeBody(r, &req); err != nil {
		pkg.WriteError(w, err, "")
		return
	}

	we, err := h.service.AttachExercise(ctx, auth.UserIDFromContext(ctx), mux.Vars(r)["id"], req.ExerciseID)
	if err != nil {
		log.Errorf("attach exercise: %s", err)
		pkg.WriteError(w, err, "failed to add exercise")
		return
	}

	pkg.WriteJSON(w, we, http.StatusOK)
}

func (h *Handler) HandleLogSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.log_set")
	defer span.End()

	var req LogSetRequest
	if err := decodeBody(r, &req); err != nil {
		pkg.WriteError(w, err, "")
		return
	}

	set, err := h.service.LogSet(ctx, auth.UserIDFromContext(ctx), mux.Vars(r)["id"], req)
	if err != nil {
		log.Errorf("log set: %s", err)
		pkg.WriteError(w, err, "failed to log set")
		return
	}

	pkg.WriteJSON(w, set, http.StatusCreated)
}

func (h *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.finish")
	defer span.End()

	session, err := h.service.Finish(ctx, auth.UserIDFromContext(ctx), mux.Vars(r)["id"])
	if err != nil {
		log.Errorf("finish workout session: %s", err)
		pkg.WriteError(w, err, "failed to finish workout session")
		return
	}

	pkg.WriteJSON(w, session, http.StatusOK)
}
