package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	repo "github.com/baharkarakas/learnhub-backend/internal/repository"
)

// DBTX is the slice of *pgxpool.Pool the repositories use. pgxmock pools
// satisfy it too.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repositories struct {
	Accounts repo.Accounts
	Profiles repo.Profiles
}

func NewRepositories(db DBTX) Repositories {
	return Repositories{
		Accounts: NewAccounts(db),
		Profiles: NewProfiles(db),
	}
}
