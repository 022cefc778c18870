package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/baharkarakas/learnhub-backend/internal/api/validate"
	"github.com/baharkarakas/learnhub-backend/internal/apperr"
	"github.com/baharkarakas/learnhub-backend/internal/models"
	repo "github.com/baharkarakas/learnhub-backend/internal/repository"
)

type ProfileInput struct {
	EducationLevel  string
	Standard        string
	CodingLevel     string
	StrongLanguages []string
}

var (
	educationLevels = names(models.EducationLevels)
	codingLevels    = names(models.CodingLevels)
)

func names[T ~string](levels []T) []string {
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = string(l)
	}
	return out
}

func (in ProfileInput) validate() error {
	f := validate.Fields{}
	f.Check(
		validate.Required("educationLevel", in.EducationLevel),
		validate.OneOf("educationLevel", in.EducationLevel, educationLevels...),
	)
	f.Check(validate.Required("standard", in.Standard))
	f.Check(
		validate.Required("codingLevel", in.CodingLevel),
		validate.OneOf("codingLevel", in.CodingLevel, codingLevels...),
	)
	return f.Err()
}

// languageSet trims, drops blanks and duplicates, and keeps first-seen order.
func languageSet(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, l := range in {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

type ProfileService struct {
	profiles repo.Profiles
	log      *slog.Logger
}

func NewProfileService(profiles repo.Profiles, log *slog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, log: log}
}

// Create stores the onboarding survey for owner. owner comes from the auth
// gate; a second call for the same username fails with ProfileAlreadyExists.
func (s *ProfileService) Create(ctx context.Context, owner models.Account, in ProfileInput) (models.EducationProfile, error) {
	if owner.Username == "" {
		return models.EducationProfile{}, apperr.Internalf("profile: create without resolved account")
	}
	in.EducationLevel = strings.TrimSpace(in.EducationLevel)
	in.Standard = strings.TrimSpace(in.Standard)
	in.CodingLevel = strings.TrimSpace(in.CodingLevel)
	if err := in.validate(); err != nil {
		return models.EducationProfile{}, err
	}

	p, err := s.profiles.Create(ctx, models.EducationProfile{
		Username:        owner.Username,
		EducationLevel:  models.EducationLevel(in.EducationLevel),
		Standard:        in.Standard,
		CodingLevel:     models.CodingLevel(in.CodingLevel),
		StrongLanguages: languageSet(in.StrongLanguages),
	})
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindProfileAlreadyExists, apperr.KindValidation:
			return models.EducationProfile{}, err
		default:
			return models.EducationProfile{}, internal(err)
		}
	}
	s.log.InfoContext(ctx, "education profile created", "username", owner.Username)
	return p, nil
}

func (s *ProfileService) Get(ctx context.Context, owner models.Account) (models.EducationProfile, error) {
	if owner.Username == "" {
		return models.EducationProfile{}, apperr.Internalf("profile: get without resolved account")
	}
	p, err := s.profiles.GetByUsername(ctx, owner.Username)
	if errors.Is(err, repo.ErrNotFound) {
		return models.EducationProfile{}, apperr.New(apperr.KindProfileNotFound)
	}
	if err != nil {
		return models.EducationProfile{}, internal(err)
	}
	return p, nil
}
