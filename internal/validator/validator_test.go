package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		password string
		problems int
	}{
		{"valid", "Secret1234", 0},
		{"too short", "Ab1", 1},
		{"missing uppercase", "secret1234", 1},
		{"missing lowercase", "SECRET1234", 1},
		{"missing digit", "SecretMotDePasse", 1},
		{"empty", "", 4},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			problems := ValidatePassword(tc.password)
			assert.Len(t, problems, tc.problems)
		})
	}
}

func TestValidateUsesJSONFieldNames(t *testing.T) {
	t.Parallel()

	// Arrange
	v := New()
	type payload struct {
		Email     string `json:"email" validate:"required,email"`
		FirstName string `json:"first_name" validate:"required"`
	}

	// Act
	err := v.Validate(&payload{Email: "pas-un-email"})

	// Assert: field keys come from the json tags, not the Go names.
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Errors, "email")
	assert.Contains(t, verr.Errors, "first_name")
	assert.NotContains(t, verr.Errors, "FirstName")
}

func TestCustomEnumRules(t *testing.T) {
	t.Parallel()

	v := New()
	type payload struct {
		Role   string `json:"role" validate:"omitempty,is-user-role"`
		Status string `json:"status" validate:"omitempty,is-job-status"`
	}

	assert.NoError(t, v.Validate(&payload{Role: "candidate", Status: "active"}))
	assert.NoError(t, v.Validate(&payload{}), "empty values are left to the required tag")

	err := v.Validate(&payload{Role: "superuser"})
	require.Error(t, err)

	err = v.Validate(&payload{Status: "archived"})
	require.Error(t, err)
}

func TestValidateResetCodeShape(t *testing.T) {
	t.Parallel()

	v := New()
	type payload struct {
		Code string `json:"code" validate:"required,len=6,numeric"`
	}

	assert.NoError(t, v.Validate(&payload{Code: "042137"}))
	assert.Error(t, v.Validate(&payload{Code: "1234"}))
	assert.Error(t, v.Validate(&payload{Code: "abcdef"}))
	assert.Error(t, v.Validate(&payload{}))
}
