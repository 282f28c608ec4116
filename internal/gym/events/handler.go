package events

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/auth"
	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=events_test

type lister interface {
	List(ctx context.Context, userID string, page, size int) (*Page, error)
}

type Handler struct {
	service lister
}

func NewHandler(service lister) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.events.list")
	defer span.End()

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		pkg.WriteJSONError(w, "error, page NaN", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		pkg.WriteJSONError(w, "error, size NaN", http.StatusBadRequest)
		return
	}

	res, err := h.service.List(ctx, auth.UserIDFromContext(ctx), page, size)
	if err != nil {
		log.Errorf("list activity events: %s", err)
		pkg.WriteError(w, err, "failed to list activity")
		return
	}

	pkg.WriteJSON(w, res, http.StatusOK)
}
