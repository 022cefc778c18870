package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/learnhub-backend/internal/apperr"
	"github.com/baharkarakas/learnhub-backend/internal/models"
	"github.com/baharkarakas/learnhub-backend/internal/repository"
)

func newAccount(username, email string) models.NewAccount {
	return models.NewAccount{Username: username, Email: email, PasswordHash: "$2a$04$hash"}
}

func TestAccountsCreate(t *testing.T) {
	ctx := context.Background()
	repo := New().Accounts()

	a, err := repo.Create(ctx, newAccount("alice1", "alice@x.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Empty(t, a.PasswordHash)
	assert.False(t, a.CreatedAt.IsZero())

	_, err = repo.Create(ctx, newAccount("alice1", "other@x.com"))
	assert.Equal(t, apperr.KindDuplicateUsername, apperr.KindOf(err))

	_, err = repo.Create(ctx, newAccount("bob", "alice@x.com"))
	assert.Equal(t, apperr.KindDuplicateEmail, apperr.KindOf(err))

	_, err = repo.Create(ctx, newAccount("alice1", "alice@x.com"))
	assert.Equal(t, apperr.KindDuplicateEmail, apperr.KindOf(err))

	_, err = repo.Create(ctx, models.NewAccount{Username: "x"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAccountsCreateConcurrentSameEmail(t *testing.T) {
	ctx := context.Background()
	repo := New().Accounts()

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, newAccount(fmt.Sprintf("user%d", i), "same@x.com"))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.Equal(t, apperr.KindDuplicateEmail, apperr.KindOf(err))
	}
	assert.Equal(t, 1, ok)
}

func TestAccountsFind(t *testing.T) {
	ctx := context.Background()
	repo := New().Accounts()
	created, err := repo.Create(ctx, newAccount("alice1", "alice@x.com"))
	require.NoError(t, err)

	withHash, err := repo.FindByEmail(ctx, "alice@x.com", true)
	require.NoError(t, err)
	assert.Equal(t, "$2a$04$hash", withHash.PasswordHash)

	noHash, err := repo.FindByEmail(ctx, "alice@x.com", false)
	require.NoError(t, err)
	assert.Empty(t, noHash.PasswordHash)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice1", byID.Username)
	assert.Empty(t, byID.PasswordHash)

	_, err = repo.FindByEmail(ctx, "nobody@x.com", true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.UpdatePasswordHash(ctx, created.ID, "$2a$12$new"))
	withHash, err = repo.FindByEmail(ctx, "alice@x.com", true)
	require.NoError(t, err)
	assert.Equal(t, "$2a$12$new", withHash.PasswordHash)
	assert.ErrorIs(t, repo.UpdatePasswordHash(ctx, "missing", "h"), repository.ErrNotFound)
}

func TestProfilesOnePerUsername(t *testing.T) {
	ctx := context.Background()
	s := New()
	a, err := s.Accounts().Create(ctx, newAccount("alice1", "alice@x.com"))
	require.NoError(t, err)

	p := models.EducationProfile{
		Username:       "alice1",
		EducationLevel: models.EduCollege,
		Standard:       "2nd Year",
		CodingLevel:    models.CodingIntermediate,
	}
	created, err := s.Profiles().Create(ctx, p)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotNil(t, created.StrongLanguages)

	_, err = s.Profiles().Create(ctx, p)
	assert.Equal(t, apperr.KindProfileAlreadyExists, apperr.KindOf(err))

	got, err := s.Profiles().GetByUsername(ctx, "alice1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	s.Delete(a.ID)
	_, err = s.Profiles().GetByUsername(ctx, "alice1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.Accounts().FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfilesRejectUnknownLevels(t *testing.T) {
	ctx := context.Background()
	s := New()
	_, err := s.Accounts().Create(ctx, newAccount("alice1", "alice@x.com"))
	require.NoError(t, err)

	_, err = s.Profiles().Create(ctx, models.EducationProfile{
		Username: "alice1", EducationLevel: "phd", Standard: "x", CodingLevel: models.CodingBeginner,
	})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "educationLevel")

	_, err = s.Profiles().Create(ctx, models.EducationProfile{
		Username: "alice1", EducationLevel: models.EduOther, Standard: "x", CodingLevel: "guru",
	})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = s.Profiles().GetByUsername(ctx, "alice1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProfilesRequireAccount(t *testing.T) {
	_, err := New().Profiles().Create(context.Background(), models.EducationProfile{Username: "ghost"})
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
