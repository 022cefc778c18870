package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/baharkarakas/learnhub-backend/internal/apperr"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// Status is the HTTP status for an error kind.
func Status(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation, apperr.KindDuplicateEmail, apperr.KindDuplicateUsername:
		return http.StatusBadRequest
	case apperr.KindInvalidCredentials, apperr.KindNoToken, apperr.KindInvalidToken, apperr.KindUserNotFound:
		return http.StatusUnauthorized
	case apperr.KindProfileAlreadyExists:
		return http.StatusConflict
	case apperr.KindProfileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError renders err for the client. Authentication failures get a
// generic message and never their subkind. Internal detail is included only
// when exposeInternal is set.
func WriteAppError(w http.ResponseWriter, err error, exposeInternal bool) {
	e, ok := apperr.As(err)
	if !ok {
		e = apperr.Wrap(apperr.KindInternal, err)
	}
	status := Status(e.Kind)
	code := e.Kind.String()

	switch e.Kind {
	case apperr.KindValidation:
		WriteError(w, status, code, "validation failed", e.Fields)
	case apperr.KindDuplicateEmail:
		WriteError(w, status, code, "email already registered", map[string]string{"field": "email"})
	case apperr.KindDuplicateUsername:
		WriteError(w, status, code, "username already taken", map[string]string{"field": "username"})
	case apperr.KindInvalidCredentials:
		WriteError(w, status, code, "invalid credentials", nil)
	case apperr.KindNoToken, apperr.KindInvalidToken, apperr.KindUserNotFound:
		WriteError(w, status, code, "not authorized", nil)
	case apperr.KindProfileAlreadyExists:
		WriteError(w, status, code, "education profile already exists", nil)
	case apperr.KindProfileNotFound:
		WriteError(w, status, code, "education profile not found", nil)
	default:
		var details interface{}
		if exposeInternal {
			details = err.Error()
		}
		WriteError(w, status, code, "internal error", details)
	}
}

const maxBodyBytes = 1 << 20

// DecodeJSON reads one JSON object from r into v. Bad input is a
// validation error on the "body" field.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		msg := "invalid JSON"
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			msg = "empty body"
		case errors.As(err, &tooBig):
			msg = "body too large"
		}
		return apperr.Validation(map[string]string{"body": msg})
	}
	return nil
}
