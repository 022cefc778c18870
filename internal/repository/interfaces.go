package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/learnhub-backend/internal/models"
)

// ErrNotFound is returned by lookups that match nothing.
var ErrNotFound = errors.New("not found")

// Accounts is the credential store. Create must decide uniqueness of
// username and email in the same step that inserts the row.
type Accounts interface {
	Create(ctx context.Context, a models.NewAccount) (models.Account, error)
	FindByEmail(ctx context.Context, email string, withHash bool) (models.Account, error)
	FindByID(ctx context.Context, id string) (models.Account, error)
	// UpdatePasswordHash swaps the stored hash, e.g. after a cost change.
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

// Profiles stores at most one education profile per username.
type Profiles interface {
	Create(ctx context.Context, p models.EducationProfile) (models.EducationProfile, error)
	GetByUsername(ctx context.Context, username string) (models.EducationProfile, error)
}
