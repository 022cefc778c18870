// Package memory is an in-process record store with the same uniqueness
// guarantees as the postgres store. Used for STORE_DRIVER=memory and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/learnhub-backend/internal/apperr"
	"github.com/baharkarakas/learnhub-backend/internal/models"
	"github.com/baharkarakas/learnhub-backend/internal/repository"
)

type Store struct {
	mu         sync.RWMutex
	accounts   map[string]models.Account // by id
	byUsername map[string]string
	byEmail    map[string]string
	profiles   map[string]models.EducationProfile // by username
	now        func() time.Time
}

func New() *Store {
	return &Store{
		accounts:   map[string]models.Account{},
		byUsername: map[string]string{},
		byEmail:    map[string]string{},
		profiles:   map[string]models.EducationProfile{},
		now:        time.Now,
	}
}

func (s *Store) Accounts() repository.Accounts { return accountsRepo{s} }
func (s *Store) Profiles() repository.Profiles { return profilesRepo{s} }

type accountsRepo struct{ s *Store }

func (r accountsRepo) Create(_ context.Context, in models.NewAccount) (models.Account, error) {
	if in.Username == "" || in.Email == "" || in.PasswordHash == "" {
		return models.Account{}, apperr.Validation(map[string]string{"account": "username, email and password hash are required"})
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	// email wins when both collide
	if _, ok := s.byEmail[in.Email]; ok {
		return models.Account{}, apperr.New(apperr.KindDuplicateEmail)
	}
	if _, ok := s.byUsername[in.Username]; ok {
		return models.Account{}, apperr.New(apperr.KindDuplicateUsername)
	}
	now := s.now().UTC()
	a := models.Account{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: in.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.accounts[a.ID] = a
	s.byUsername[a.Username] = a.ID
	s.byEmail[a.Email] = a.ID
	return a.WithoutHash(), nil
}

func (r accountsRepo) FindByEmail(_ context.Context, email string, withHash bool) (models.Account, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return models.Account{}, repository.ErrNotFound
	}
	a := s.accounts[id]
	if !withHash {
		a = a.WithoutHash()
	}
	return a, nil
}

func (r accountsRepo) FindByID(_ context.Context, id string) (models.Account, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return models.Account{}, repository.ErrNotFound
	}
	return a.WithoutHash(), nil
}

func (r accountsRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.PasswordHash = hash
	a.UpdatedAt = s.now().UTC()
	s.accounts[id] = a
	return nil
}

// Delete removes an account and its profile. Admin/test path only.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return
	}
	delete(s.accounts, id)
	delete(s.byUsername, a.Username)
	delete(s.byEmail, a.Email)
	delete(s.profiles, a.Username)
}

type profilesRepo struct{ s *Store }

func (r profilesRepo) Create(_ context.Context, p models.EducationProfile) (models.EducationProfile, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byUsername[p.Username]; !ok {
		return models.EducationProfile{}, apperr.Internalf("memory: no account with username %q", p.Username)
	}
	if _, ok := s.profiles[p.Username]; ok {
		return models.EducationProfile{}, apperr.New(apperr.KindProfileAlreadyExists)
	}
	// same answers as the postgres CHECK constraints
	if !p.EducationLevel.Valid() {
		return models.EducationProfile{}, apperr.Validation(map[string]string{"educationLevel": "invalid value"})
	}
	if !p.CodingLevel.Valid() {
		return models.EducationProfile{}, apperr.Validation(map[string]string{"codingLevel": "invalid value"})
	}
	p.ID = uuid.NewString()
	p.CreatedAt = s.now().UTC()
	p.StrongLanguages = append([]string{}, p.StrongLanguages...)
	s.profiles[p.Username] = p
	return p, nil
}

func (r profilesRepo) GetByUsername(_ context.Context, username string) (models.EducationProfile, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[username]
	if !ok {
		return models.EducationProfile{}, repository.ErrNotFound
	}
	p.StrongLanguages = append([]string{}, p.StrongLanguages...)
	return p, nil
}
