package test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yordanos7/gym-app-V2-pro/internal/auth"
)

func (s *IntegrationTestSuite) TestAuth_SessionLifecycle() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signed := signUp(ctx, t)

	var session auth.SessionResponse
	doJSONInto(ctx, t, http.MethodGet, "/api/auth/session", signed.Token, nil, http.StatusOK, &session)
	assert.Equal(t, signed.User.ID, session.User.ID)
	assert.Equal(t, signed.User.Email, session.User.Email)

	// second sign-in gets its own token
	var signedIn auth.AuthResult
	doJSONInto(ctx, t, http.MethodPost, "/api/auth/sign-in", "", auth.SignInRequest{
		Email:    signed.User.Email,
		Password: testPassword,
	}, http.StatusOK, &signedIn)
	assert.NotEqual(t, signed.Token, signedIn.Token)
	assert.Equal(t, signed.User.ID, signedIn.User.ID)

	doJSONInto(ctx, t, http.MethodPost, "/api/auth/sign-out", signed.Token, nil, http.StatusOK, nil)

	status, _ := doJSON(ctx, t, http.MethodGet, "/api/auth/session", signed.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// the other token is untouched
	doJSONInto(ctx, t, http.MethodGet, "/api/auth/session", signedIn.Token, nil, http.StatusOK, nil)
}

func (s *IntegrationTestSuite) TestAuth_Rejections() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signed := signUp(ctx, t)

	status, body := doJSON(ctx, t, http.MethodPost, "/api/auth/sign-in", "", auth.SignInRequest{
		Email:    signed.User.Email,
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"error":"invalid email or password"}`, string(body))

	status, _ = doJSON(ctx, t, http.MethodPost, "/api/auth/sign-up", "", auth.SignUpRequest{
		Email:    signed.User.Email,
		Password: testPassword,
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doJSON(ctx, t, http.MethodGet, "/api/dashboard", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	var count int
	require.NoError(t, s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = $1`, signed.User.Email).Scan(&count))
	assert.Equal(t, 1, count)
}
