package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/learnhub-backend/internal/apperr"
)

func TestPassword(t *testing.T) {
	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"valid", "Passw0rd", true},
		{"too short", "Pa0rd", false},
		{"no upper", "passw0rd", false},
		{"no lower", "PASSW0RD", false},
		{"no digit", "Password", false},
		{"too long for bcrypt", "Aa1" + strings.Repeat("x", 70), false},
		{"exactly 72 bytes", "Aa1" + strings.Repeat("x", 69), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password("password", tt.value)
			if tt.ok {
				assert.Nil(t, err)
			} else {
				require.NotNil(t, err)
				assert.Equal(t, "password", err.Field)
			}
		})
	}
}

func TestUsernameAndEmail(t *testing.T) {
	assert.Nil(t, Username("username", "alice_1"))
	assert.NotNil(t, Username("username", "alice-1"))
	assert.NotNil(t, Username("username", "al ice"))

	assert.Nil(t, Email("email", "alice@x.com"))
	assert.Nil(t, Email("email", "first.last@mail.example.org"))
	assert.NotNil(t, Email("email", "alice"))
	assert.NotNil(t, Email("email", "alice@x"))
	assert.NotNil(t, Email("email", "@x.com"))
}

func TestFieldsCheckStopsAtFirstFailure(t *testing.T) {
	f := Fields{}
	f.Check(Required("username", ""), LengthBetween("username", "", 3, 30))
	assert.Equal(t, "required", f["username"])

	f.Add(Email("email", "nope"), Email("email", "still-nope"))
	assert.Len(t, f, 2)

	err := f.Err()
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Equal(t, "required", e.Fields["username"])
}

func TestFieldsErrEmpty(t *testing.T) {
	assert.NoError(t, Fields{}.Err())
}

func TestOneOf(t *testing.T) {
	assert.Nil(t, OneOf("codingLevel", "advanced", "beginner", "advanced"))
	e := OneOf("codingLevel", "guru", "beginner", "advanced")
	require.NotNil(t, e)
	assert.Equal(t, "must be one of: beginner, advanced", e.Msg)
}
