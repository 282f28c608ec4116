package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Yordanos7/gym-app-V2-pro/internal/telemetry/tracing"
	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=accounts_mocks_test.go -package=auth_test

const minPasswordLength = 8

type usersRepo interface {
	Create(ctx context.Context, user User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type sessionStore interface {
	Login(ctx context.Context, user SessionUser, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// Accounts is the sign-up / sign-in flow on top of the users table and the session store.
type Accounts struct {
	users    usersRepo
	sessions sessionStore
	now      func() time.Time
}

func NewAccounts(users usersRepo, sessions sessionStore) *Accounts {
	return &Accounts{
		users:    users,
		sessions: sessions,
		now:      time.Now,
	}
}

func (a *Accounts) SignUp(ctx context.Context, req SignUpRequest) (_ *AuthResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.signup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, pkg.InvalidInput("invalid email")
	}
	if len(req.Password) < minPasswordLength {
		return nil, pkg.InvalidInput(fmt.Sprintf("password must have at least %d characters", minPasswordLength))
	}

	hash, err := pkg.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user, err := a.users.Create(ctx, User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	span.SetAttributes(attribute.String("user.id", user.ID))

	return a.startSession(ctx, user)
}

func (a *Accounts) SignIn(ctx context.Context, req SignInRequest) (_ *AuthResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.signin")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := a.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !pkg.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return a.startSession(ctx, user)
}

func (a *Accounts) SignOut(ctx context.Context, token string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.signout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if token == "" {
		return ErrSessionNotFound
	}
	existed, err := a.sessions.Logout(ctx, token)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if !existed {
		return ErrSessionNotFound
	}
	return nil
}

func (a *Accounts) startSession(ctx context.Context, user *User) (*AuthResult, error) {
	sessionUser := user.SessionUser()
	token, err := a.sessions.Login(ctx, sessionUser, a.now())
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &AuthResult{
		Token: token,
		User:  sessionUser,
	}, nil
}
