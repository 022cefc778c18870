package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names from migrations/000001_init.up.sql.
const (
	accountsUsernameKey      = "accounts_username_key"
	accountsEmailKey         = "accounts_email_key"
	accountsUsernameCheck    = "accounts_username_check"
	accountsEmailCheck       = "accounts_email_check"
	profilesUsernameKey      = "education_profiles_username_key"
	profilesEducationCheck   = "education_profiles_education_level_check"
	profilesCodingLevelCheck = "education_profiles_coding_level_check"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	ok := errors.As(err, &pgErr)
	return pgErr, ok
}

// violated returns the constraint name when err is a violation of the
// given SQLSTATE class.
func violated(err error, code string) (string, bool) {
	pgErr, ok := pgError(err)
	if !ok || pgErr.Code != code {
		return "", false
	}
	return pgErr.ConstraintName, true
}

func uniqueViolation(err error) (string, bool) { return violated(err, pgerrcode.UniqueViolation) }

func checkViolation(err error) (string, bool) { return violated(err, pgerrcode.CheckViolation) }
