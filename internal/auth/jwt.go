package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/baharkarakas/learnhub-backend/internal/apperr"
	"github.com/baharkarakas/learnhub-backend/internal/models"
)

// SigningAlg is the only algorithm issued or accepted.
const SigningAlg = "HS256"

var ErrNoSigningKey = errors.New("auth: signing key not configured")

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AccountID is the subject the token was issued to.
func (c *Claims) AccountID() string { return c.Subject }

type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*TokenService)

// WithClock replaces time.Now for issuing and checking expiry.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService fails when the secret is empty so a misconfigured
// process dies at startup instead of on the first login.
func NewTokenService(secret, issuer string, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, ErrNoSigningKey
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}
	s := &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a token for a. expiresAt = issuedAt + ttl.
func (s *TokenService) Issue(a models.Account) (string, time.Time, error) {
	if a.ID == "" {
		return "", time.Time{}, apperr.Internalf("auth: issue token for account without id")
	}
	now := s.now()
	exp := now.Add(s.ttl)
	claims := Claims{
		Email: a.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   a.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperr.Wrap(apperr.KindInternal, err)
	}
	return tok, exp, nil
}

// Verify checks signature first and expiry second, with no leeway. The
// returned error is always an *apperr.Error of KindInvalidToken.
func (s *TokenService) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{SigningAlg}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperr.InvalidToken(failureOf(err), err)
	}
	if claims.Subject == "" {
		return nil, apperr.InvalidToken(apperr.TokenMalformed, errors.New("token has no subject"))
	}
	return claims, nil
}

func failureOf(err error) apperr.TokenFailure {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperr.TokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperr.TokenExpired
	default:
		return apperr.TokenMalformed
	}
}
