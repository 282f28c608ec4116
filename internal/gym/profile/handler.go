package profile

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/auth"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=profile_test

type profileService interface {
	Save(ctx context.Context, userID string, draft Draft) error
	Get(ctx context.Context, userID string) (*Profile, error)
}

type Handler struct {
	service profileService
}

func NewHandler(service profileService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.save")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var draft Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Tracef("save profile, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Save(ctx, auth.UserIDFromContext(ctx), draft); err != nil {
		log.Errorf("save profile: %s", err)
		pkg.WriteError(w, err, "failed to save profile")
		return
	}

	pkg.WriteJSON(w, pkg.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	p, err := h.service.Get(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		log.Errorf("get profile: %s", err)
		pkg.WriteError(w, err, "failed to get profile")
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}
