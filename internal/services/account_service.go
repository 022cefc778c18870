package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/baharkarakas/learnhub-backend/internal/api/validate"
	"github.com/baharkarakas/learnhub-backend/internal/apperr"
	"github.com/baharkarakas/learnhub-backend/internal/metrics"
	"github.com/baharkarakas/learnhub-backend/internal/models"
	repo "github.com/baharkarakas/learnhub-backend/internal/repository"
)

type PasswordHasher interface {
	Hash(ctx context.Context, raw string) (string, error)
	Verify(ctx context.Context, raw, hash string) (bool, error)
	VerifyDummy(ctx context.Context, raw string)
	NeedsRehash(hash string) bool
	Rehash(ctx context.Context, raw, current string) (string, bool, error)
}

type TokenIssuer interface {
	Issue(a models.Account) (string, time.Time, error)
}

// AuthResult is what signup and login hand back: a session token and the
// account it was issued for (never carrying the hash).
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Account   models.Account
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

func NormalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (in RegisterInput) normalized() RegisterInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = NormalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	return in
}

func (in RegisterInput) validate() error {
	f := validate.Fields{}
	f.Check(
		validate.Required("username", in.Username),
		validate.LengthBetween("username", in.Username, 3, 30),
		validate.Username("username", in.Username),
	)
	f.Check(
		validate.Required("email", in.Email),
		validate.Email("email", in.Email),
	)
	f.Check(
		validate.Required("password", in.Password),
		validate.Password("password", in.Password),
	)
	return f.Err()
}

type AccountService struct {
	accounts repo.Accounts
	hasher   PasswordHasher
	tokens   TokenIssuer
	log      *slog.Logger
}

func NewAccountService(accounts repo.Accounts, hasher PasswordHasher, tokens TokenIssuer, log *slog.Logger) *AccountService {
	return &AccountService{accounts: accounts, hasher: hasher, tokens: tokens, log: log}
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		metrics.AuthEvents.WithLabelValues("signup", "invalid").Inc()
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return AuthResult{}, internal(err)
	}

	acc, err := s.accounts.Create(ctx, models.NewAccount{
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: hash,
	})
	if err != nil {
		switch k := apperr.KindOf(err); k {
		case apperr.KindDuplicateEmail, apperr.KindDuplicateUsername:
			metrics.AuthEvents.WithLabelValues("signup", "duplicate").Inc()
			s.log.InfoContext(ctx, "signup rejected", "reason", k.String())
			return AuthResult{}, err
		case apperr.KindValidation:
			metrics.AuthEvents.WithLabelValues("signup", "invalid").Inc()
			return AuthResult{}, err
		default:
			return AuthResult{}, internal(err)
		}
	}

	res, err := s.issue(acc)
	if err != nil {
		return AuthResult{}, err
	}
	metrics.AuthEvents.WithLabelValues("signup", "success").Inc()
	s.log.InfoContext(ctx, "account registered", "account_id", acc.ID, "username", acc.Username)
	return res, nil
}

// Login answers every credential failure with the same InvalidCredentials
// error so callers cannot tell an unknown email from a wrong password.
func (s *AccountService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = NormalizeEmail(email)
	f := validate.Fields{}
	f.Add(validate.Required("email", email), validate.Required("password", password))
	if err := f.Err(); err != nil {
		return AuthResult{}, err
	}

	acc, err := s.accounts.FindByEmail(ctx, email, true)
	if errors.Is(err, repo.ErrNotFound) {
		s.hasher.VerifyDummy(ctx, password)
		return AuthResult{}, s.loginFailed(ctx, "unknown_email")
	}
	if err != nil {
		return AuthResult{}, internal(err)
	}

	ok, err := s.hasher.Verify(ctx, password, acc.PasswordHash)
	if err != nil {
		return AuthResult{}, internal(err)
	}
	if !ok {
		return AuthResult{}, s.loginFailed(ctx, "wrong_password")
	}

	s.upgradeHash(ctx, acc, password)

	res, err := s.issue(acc.WithoutHash())
	if err != nil {
		return AuthResult{}, err
	}
	metrics.AuthEvents.WithLabelValues("login", "success").Inc()
	s.log.InfoContext(ctx, "login", "account_id", acc.ID)
	return res, nil
}

// upgradeHash re-hashes at the configured cost when the stored hash was made
// with another one. Failure never blocks the login.
func (s *AccountService) upgradeHash(ctx context.Context, acc models.Account, password string) {
	if !s.hasher.NeedsRehash(acc.PasswordHash) {
		return
	}
	hash, changed, err := s.hasher.Rehash(ctx, password, acc.PasswordHash)
	if err == nil && changed {
		err = s.accounts.UpdatePasswordHash(ctx, acc.ID, hash)
	}
	if err != nil {
		s.log.WarnContext(ctx, "password rehash failed", "account_id", acc.ID, "err", err)
		return
	}
	s.log.InfoContext(ctx, "password rehashed", "account_id", acc.ID)
}

func (s *AccountService) loginFailed(ctx context.Context, reason string) error {
	metrics.AuthEvents.WithLabelValues("login", "failure").Inc()
	s.log.DebugContext(ctx, "login rejected", "reason", reason)
	return apperr.New(apperr.KindInvalidCredentials)
}

func (s *AccountService) issue(acc models.Account) (AuthResult, error) {
	tok, exp, err := s.tokens.Issue(acc)
	if err != nil {
		return AuthResult{}, internal(err)
	}
	return AuthResult{Token: tok, ExpiresAt: exp, Account: acc}, nil
}

// internal keeps an existing *apperr.Error and wraps anything else.
func internal(err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	return apperr.Wrap(apperr.KindInternal, err)
}
