package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/baharkarakas/learnhub-backend/internal/apperr"
	"github.com/baharkarakas/learnhub-backend/internal/models"
	"github.com/baharkarakas/learnhub-backend/internal/repository"
)

type accountsRepo struct{ db DBTX }

func NewAccounts(db DBTX) repository.Accounts {
	return &accountsRepo{db: db}
}

const accountCols = `id, username, email, COALESCE(full_name, ''), created_at, updated_at`

// Create is a single INSERT; the unique indexes on username and email
// decide which of two racing signups wins.
func (r *accountsRepo) Create(ctx context.Context, in models.NewAccount) (models.Account, error) {
	var a models.Account
	err := r.db.QueryRow(ctx,
		`INSERT INTO accounts (id, username, email, full_name, password_hash)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		 RETURNING `+accountCols,
		uuid.NewString(), in.Username, in.Email, in.FullName, in.PasswordHash,
	).Scan(&a.ID, &a.Username, &a.Email, &a.FullName, &a.CreatedAt, &a.UpdatedAt)
	if err == nil {
		return a, nil
	}

	if name, ok := uniqueViolation(err); ok {
		switch name {
		case accountsUsernameKey:
			return models.Account{}, apperr.Wrap(apperr.KindDuplicateUsername, err)
		case accountsEmailKey:
			return models.Account{}, apperr.Wrap(apperr.KindDuplicateEmail, err)
		}
	}
	if name, ok := checkViolation(err); ok {
		switch name {
		case accountsUsernameCheck:
			return models.Account{}, apperr.Validation(map[string]string{"username": "must be between 3 and 30 characters"})
		case accountsEmailCheck:
			return models.Account{}, apperr.Validation(map[string]string{"email": "must be lowercase and trimmed"})
		}
	}
	return models.Account{}, oops.Code("ACCOUNT_CREATE_FAILED").
		With("operation", "insert account").
		With("username", in.Username).
		Wrap(err)
}

func (r *accountsRepo) FindByEmail(ctx context.Context, email string, withHash bool) (models.Account, error) {
	var a models.Account
	q := `SELECT ` + accountCols + ` FROM accounts WHERE email = $1`
	dest := []any{&a.ID, &a.Username, &a.Email, &a.FullName, &a.CreatedAt, &a.UpdatedAt}
	if withHash {
		q = `SELECT ` + accountCols + `, password_hash FROM accounts WHERE email = $1`
		dest = append(dest, &a.PasswordHash)
	}
	if err := r.db.QueryRow(ctx, q, email).Scan(dest...); err != nil {
		return models.Account{}, notFound(err, "find account by email")
	}
	return a, nil
}

func (r *accountsRepo) FindByID(ctx context.Context, id string) (models.Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Account{}, repository.ErrNotFound
	}
	var a models.Account
	err := r.db.QueryRow(ctx,
		`SELECT `+accountCols+` FROM accounts WHERE id = $1`, id,
	).Scan(&a.ID, &a.Username, &a.Email, &a.FullName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return models.Account{}, notFound(err, "find account by id")
	}
	return a, nil
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return oops.Code("STORE_QUERY_FAILED").With("operation", "update password hash").Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func notFound(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return oops.Code("STORE_QUERY_FAILED").With("operation", op).Wrap(err)
}
