package models

import (
	"slices"
	"time"
)

type EducationLevel string

const (
	EduSchool     EducationLevel = "school"
	EduCollege    EducationLevel = "college"
	EduUniversity EducationLevel = "university"
	EduOther      EducationLevel = "other"
)

var EducationLevels = []EducationLevel{EduSchool, EduCollege, EduUniversity, EduOther}

func (l EducationLevel) Valid() bool { return slices.Contains(EducationLevels, l) }

type CodingLevel string

const (
	CodingBeginner     CodingLevel = "beginner"
	CodingIntermediate CodingLevel = "intermediate"
	CodingAdvanced     CodingLevel = "advanced"
	CodingProfessional CodingLevel = "professional"
)

var CodingLevels = []CodingLevel{CodingBeginner, CodingIntermediate, CodingAdvanced, CodingProfessional}

func (l CodingLevel) Valid() bool { return slices.Contains(CodingLevels, l) }

// EducationProfile is the onboarding survey answer, one per account,
// linked by username.
type EducationProfile struct {
	ID              string         `json:"id"`
	Username        string         `json:"username"`
	EducationLevel  EducationLevel `json:"educationLevel"`
	Standard        string         `json:"standard"`
	CodingLevel     CodingLevel    `json:"codingLevel"`
	StrongLanguages []string       `json:"strongLanguages"`
	CreatedAt       time.Time      `json:"createdAt"`
}
