// Package apperr defines the error kinds surfaced by the account and
// profile operations. Handlers switch on Kind; nothing else is inspected.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicateUsername
	KindDuplicateEmail
	KindInvalidCredentials
	KindNoToken
	KindInvalidToken
	KindUserNotFound
	KindProfileAlreadyExists
	KindProfileNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindDuplicateUsername:
		return "duplicate_username"
	case KindDuplicateEmail:
		return "duplicate_email"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindNoToken:
		return "no_token"
	case KindInvalidToken:
		return "invalid_token"
	case KindUserNotFound:
		return "user_not_found"
	case KindProfileAlreadyExists:
		return "profile_already_exists"
	case KindProfileNotFound:
		return "profile_not_found"
	default:
		return "internal_error"
	}
}

// TokenFailure says why a token was refused. Logged only.
type TokenFailure string

const (
	TokenMalformed        TokenFailure = "malformed"
	TokenSignatureInvalid TokenFailure = "signature_invalid"
	TokenExpired          TokenFailure = "expired"
)

type Error struct {
	Kind    Kind
	Fields  map[string]string
	Subkind TokenFailure
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Subkind != "" {
		b.WriteString(" (" + string(e.Subkind) + ")")
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i == 0 {
				b.WriteString(": ")
			} else {
				b.WriteString("; ")
			}
			b.WriteString(k + ": " + e.Fields[k])
		}
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so callers can write errors.Is(err, apperr.New(KindX)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func New(kind Kind) *Error { return &Error{Kind: kind} }

func Wrap(kind Kind, err error) *Error { return &Error{Kind: kind, Err: err} }

func Internalf(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Err: fmt.Errorf(format, args...)}
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

func InvalidToken(sub TokenFailure, err error) *Error {
	return &Error{Kind: KindInvalidToken, Subkind: sub, Err: err}
}

// KindOf reports the kind carried by err. Anything that is not an *Error
// is Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As is errors.As for *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
