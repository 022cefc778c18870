// Package validate holds the field checks run before anything reaches the
// store. Each helper returns nil when the value is acceptable.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/baharkarakas/learnhub-backend/internal/apperr"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Fields collects one message per field; the first failure wins.
type Fields map[string]string

func (f Fields) Add(errs ...*ErrField) {
	for _, e := range errs {
		if e == nil {
			continue
		}
		if _, ok := f[e.Field]; !ok {
			f[e.Field] = e.Msg
		}
	}
}

// Check runs checks in order and records only the first failure, so a
// missing value is not also reported as too short.
func (f Fields) Check(checks ...*ErrField) {
	for _, e := range checks {
		if e != nil {
			f.Add(e)
			return
		}
	}
}

func (f Fields) Err() error {
	if len(f) == 0 {
		return nil
	}
	return apperr.Validation(map[string]string(f))
}

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
)

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func LengthBetween(field, value string, min, max int) *ErrField {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return &ErrField{Field: field, Msg: "must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max) + " characters"}
	}
	return nil
}

func Username(field, value string) *ErrField {
	if !usernameRe.MatchString(value) {
		return &ErrField{Field: field, Msg: "can only contain letters, numbers, and underscores"}
	}
	return nil
}

func Email(field, value string) *ErrField {
	if !emailRe.MatchString(value) {
		return &ErrField{Field: field, Msg: "must be a valid email address"}
	}
	return nil
}

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

func Password(field, value string) *ErrField {
	if utf8.RuneCountInString(value) < 8 {
		return &ErrField{Field: field, Msg: "must be at least 8 characters"}
	}
	if len(value) > maxPasswordBytes {
		return &ErrField{Field: field, Msg: "must be at most 72 bytes"}
	}
	var upper, lower, digit bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return &ErrField{Field: field, Msg: "must contain at least one uppercase letter, one lowercase letter, and one number"}
	}
	return nil
}

func OneOf(field, value string, allowed ...string) *ErrField {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &ErrField{Field: field, Msg: "must be one of: " + strings.Join(allowed, ", ")}
}
