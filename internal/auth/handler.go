package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

type accountsService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*AuthResult, error)
	SignIn(ctx context.Context, req SignInRequest) (*AuthResult, error)
	SignOut(ctx context.Context, token string) error
}

type SessionResponse struct {
	User SessionUser `json:"user"`
}

type Handler struct {
	accounts  accountsService
	cookieTTL time.Duration
}

func NewHandler(accounts accountsService, cookieTTL time.Duration) *Handler {
	return &Handler{
		accounts:  accounts,
		cookieTTL: cookieTTL,
	}
}

func (h *Handler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.signup")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("sign up, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.accounts.SignUp(ctx, req)
	if err != nil {
		log.Errorf("sign up [%s]: %s", req.Email, err)
		pkg.WriteError(w, err, "sign up failed")
		return
	}

	h.setSessionCookie(w, res.Token)
	pkg.WriteJSON(w, res, http.StatusCreated)
}

func (h *Handler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.signin")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		pkg.WriteJSONError(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("sign in, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.accounts.SignIn(ctx, req)
	if err != nil {
		log.Warnf("sign in [%s]: %s", req.Email, err)
		pkg.WriteError(w, err, "sign in failed")
		return
	}

	h.setSessionCookie(w, res.Token)
	pkg.WriteJSON(w, res, http.StatusOK)
}

func (h *Handler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.signout")
	defer span.End()

	if err := h.accounts.SignOut(ctx, TokenFromRequest(r)); err != nil {
		log.Errorf("sign out: %s", err)
		pkg.WriteError(w, err, "sign out failed")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	pkg.WriteJSON(w, pkg.SuccessResponse{Success: true}, http.StatusOK)
}

// HandleSession returns the user the auth middleware resolved for this request.
func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.session")
	defer span.End()

	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	pkg.WriteJSON(w, SessionResponse{User: *user}, http.StatusOK)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
