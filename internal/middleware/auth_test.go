package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/learnhub-backend/internal/api/httpx"
	"github.com/baharkarakas/learnhub-backend/internal/auth"
	"github.com/baharkarakas/learnhub-backend/internal/logger"
	"github.com/baharkarakas/learnhub-backend/internal/models"
	"github.com/baharkarakas/learnhub-backend/internal/repository/memory"
)

type gateFixture struct {
	store  *memory.Store
	tokens *auth.TokenService
	gate   *AuthMiddleware
	acc    models.Account
}

func newGate(t *testing.T) gateFixture {
	t.Helper()
	store := memory.New()
	tokens, err := auth.NewTokenService("gate-secret", "learnhub", time.Hour)
	require.NoError(t, err)
	acc, err := store.Accounts().Create(context.Background(), models.NewAccount{
		Username: "alice1", Email: "alice@x.com", PasswordHash: "$2a$04$placeholder",
	})
	require.NoError(t, err)
	return gateFixture{
		store:  store,
		tokens: tokens,
		gate:   NewAuthMiddleware(tokens, store.Accounts(), logger.Discard(), false),
		acc:    acc,
	}
}

func (f gateFixture) token(t *testing.T, acc models.Account) string {
	t.Helper()
	tok, _, err := f.tokens.Issue(acc)
	require.NoError(t, err)
	return tok
}

func (f gateFixture) serve(header string) *httptest.ResponseRecorder {
	h := f.gate.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acc, ok := AccountFrom(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"id": acc.ID, "hash": acc.PasswordHash})
	}))
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeErr(t *testing.T, rr *httptest.ResponseRecorder) httpx.APIError {
	t.Helper()
	var body httpx.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestAuthGateAccepts(t *testing.T) {
	f := newGate(t)
	tok := f.token(t, f.acc)

	for _, scheme := range []string{"Bearer ", "bearer ", "BEARER "} {
		rr := f.serve(scheme + tok)
		require.Equal(t, http.StatusOK, rr.Code, scheme)
		var got map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, f.acc.ID, got["id"])
		assert.Empty(t, got["hash"])
	}
}

func TestAuthGateRejects(t *testing.T) {
	f := newGate(t)
	tok := f.token(t, f.acc)

	other, err := auth.NewTokenService("other-secret", "learnhub", time.Hour)
	require.NoError(t, err)
	forged, _, err := other.Issue(f.acc)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", "no_token"},
		{"wrong scheme", "Basic " + tok, "no_token"},
		{"empty token", "Bearer ", "no_token"},
		{"scheme only", "Bearer", "no_token"},
		{"garbage", "Bearer not-a-jwt", "invalid_token"},
		{"wrong key", "Bearer " + forged, "invalid_token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := f.serve(tc.header)
			require.Equal(t, http.StatusUnauthorized, rr.Code)
			body := decodeErr(t, rr)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, "not authorized", body.Error)
		})
	}
}

func TestAuthGateExpiredToken(t *testing.T) {
	f := newGate(t)
	past, err := auth.NewTokenService("gate-secret", "learnhub", time.Hour,
		auth.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }))
	require.NoError(t, err)
	tok, _, err := past.Issue(f.acc)
	require.NoError(t, err)

	rr := f.serve("Bearer " + tok)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	body := decodeErr(t, rr)
	assert.Equal(t, "invalid_token", body.Code)
	assert.NotContains(t, rr.Body.String(), "expired")
}

func TestAuthGateDeletedAccount(t *testing.T) {
	f := newGate(t)
	tok := f.token(t, f.acc)
	f.store.Delete(f.acc.ID)

	rr := f.serve("Bearer " + tok)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "user_not_found", decodeErr(t, rr).Code)
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Bearer abc", "abc", true},
		{"bEaReR abc", "abc", true},
		{"  Bearer   abc  ", "abc", true},
		{"Bearer a b", "", false},
		{"Token abc", "", false},
		{"Bearerabc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := bearerToken(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
