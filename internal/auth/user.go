package auth

import (
	"context"
	"time"

	"github.com/Yordanos7/gym-app-V2-pro/pkg"
)

var (
	ErrEmailTaken         = pkg.NewError(pkg.ErrConflict, "email already registered")
	ErrInvalidCredentials = pkg.NewError(pkg.ErrUnauthorized, "invalid email or password")
	ErrSessionNotFound    = pkg.NewError(pkg.ErrUnauthorized, "session not found or expired")
	ErrUserNotFound       = pkg.NewError(pkg.ErrNotFound, "user not found")
)

// User is the stored account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SessionUser is what a valid session token resolves to.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) SessionUser() SessionUser {
	return SessionUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

type userCtxKey struct{}

func ContextWithUser(ctx context.Context, user *SessionUser) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

func UserFromContext(ctx context.Context) (*SessionUser, bool) {
	user, ok := ctx.Value(userCtxKey{}).(*SessionUser)
	if !ok || user == nil || user.ID == "" {
		return nil, false
	}
	return user, true
}

// UserIDFromContext returns the caller id, or "" when the request is anonymous.
func UserIDFromContext(ctx context.Context) string {
	if user, ok := UserFromContext(ctx); ok {
		return user.ID
	}
	return ""
}
