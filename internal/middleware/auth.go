package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/baharkarakas/learnhub-backend/internal/api/httpx"
	"github.com/baharkarakas/learnhub-backend/internal/apperr"
	"github.com/baharkarakas/learnhub-backend/internal/auth"
	"github.com/baharkarakas/learnhub-backend/internal/metrics"
	"github.com/baharkarakas/learnhub-backend/internal/models"
	"github.com/baharkarakas/learnhub-backend/internal/repository"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AccountResolver interface {
	FindByID(ctx context.Context, id string) (models.Account, error)
}

// AuthMiddleware is the gate in front of every protected route. It keeps
// no state between requests.
type AuthMiddleware struct {
	tokens   TokenVerifier
	accounts AccountResolver
	log      *slog.Logger
	expose   bool
}

func NewAuthMiddleware(tokens TokenVerifier, accounts AccountResolver, log *slog.Logger, exposeInternal bool) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, accounts: accounts, log: log, expose: exposeInternal}
}

func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acc, err := m.Authenticate(r)
		if err != nil {
			m.reject(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), acc)))
	})
}

// Authenticate extracts the bearer token, verifies it and resolves the
// account it names.
func (m *AuthMiddleware) Authenticate(r *http.Request) (models.Account, error) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return models.Account{}, apperr.New(apperr.KindNoToken)
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindInvalidToken {
			err = apperr.InvalidToken(apperr.TokenMalformed, err)
		}
		return models.Account{}, err
	}

	acc, err := m.accounts.FindByID(r.Context(), claims.AccountID())
	if errors.Is(err, repository.ErrNotFound) {
		return models.Account{}, apperr.New(apperr.KindUserNotFound)
	}
	if err != nil {
		return models.Account{}, apperr.Wrap(apperr.KindInternal, err)
	}
	return acc.WithoutHash(), nil
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, err error) {
	reason := apperr.KindOf(err).String()
	if e, ok := apperr.As(err); ok && e.Subkind != "" {
		reason = string(e.Subkind)
	}
	if apperr.KindOf(err) == apperr.KindInternal {
		m.log.ErrorContext(r.Context(), "auth gate", "err", err, "request_id", RequestIDFrom(r.Context()))
	} else {
		metrics.AuthRejections.WithLabelValues(reason).Inc()
		m.log.InfoContext(r.Context(), "request rejected", "reason", reason, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()))
	}
	httpx.WriteAppError(w, err, m.expose)
}

// bearerToken accepts "Bearer <token>" with a case-insensitive scheme.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
