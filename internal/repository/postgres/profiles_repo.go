package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/baharkarakas/learnhub-backend/internal/apperr"
	"github.com/baharkarakas/learnhub-backend/internal/models"
	"github.com/baharkarakas/learnhub-backend/internal/repository"
)

type profilesRepo struct{ db DBTX }

func NewProfiles(db DBTX) repository.Profiles {
	return &profilesRepo{db: db}
}

// Create relies on the unique index on username; there is no prior lookup.
func (r *profilesRepo) Create(ctx context.Context, p models.EducationProfile) (models.EducationProfile, error) {
	p.ID = uuid.NewString()
	if p.StrongLanguages == nil {
		p.StrongLanguages = []string{}
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO education_profiles (id, username, education_level, standard, coding_level, strong_languages)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		p.ID, p.Username, string(p.EducationLevel), p.Standard, string(p.CodingLevel), p.StrongLanguages,
	).Scan(&p.CreatedAt)
	if err == nil {
		return p, nil
	}

	if name, ok := uniqueViolation(err); ok && name == profilesUsernameKey {
		return models.EducationProfile{}, apperr.Wrap(apperr.KindProfileAlreadyExists, err)
	}
	if name, ok := checkViolation(err); ok {
		switch name {
		case profilesEducationCheck:
			return models.EducationProfile{}, apperr.Validation(map[string]string{"educationLevel": "invalid value"})
		case profilesCodingLevelCheck:
			return models.EducationProfile{}, apperr.Validation(map[string]string{"codingLevel": "invalid value"})
		}
	}
	return models.EducationProfile{}, oops.Code("PROFILE_CREATE_FAILED").
		With("operation", "insert education profile").
		With("username", p.Username).
		Wrap(err)
}

func (r *profilesRepo) GetByUsername(ctx context.Context, username string) (models.EducationProfile, error) {
	var (
		p           models.EducationProfile
		level, code string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, username, education_level, standard, coding_level, strong_languages, created_at
		   FROM education_profiles
		  WHERE username = $1`, username,
	).Scan(&p.ID, &p.Username, &level, &p.Standard, &code, &p.StrongLanguages, &p.CreatedAt)
	if err != nil {
		return models.EducationProfile{}, notFound(err, "get education profile")
	}
	p.EducationLevel = models.EducationLevel(level)
	p.CodingLevel = models.CodingLevel(code)
	if p.StrongLanguages == nil {
		p.StrongLanguages = []string{}
	}
	return p, nil
}
