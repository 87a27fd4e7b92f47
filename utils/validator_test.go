package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes present", "Passw0rd!", true},
		{"too short", "Pa0!", false},
		{"missing uppercase", "passw0rd!", false},
		{"missing lowercase", "PASSW0RD!", false},
		{"missing digit", "Password!", false},
		{"missing symbol", "Passw0rd1", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrongPassword(tt.password))
		})
	}
}

func TestValidateStruct(t *testing.T) {
	type registerBody struct {
		Username string `validate:"required,min=3,max=13"`
		Email    string `validate:"required,email"`
		Password string `validate:"required,strongpassword"`
	}

	t.Run("valid body", func(t *testing.T) {
		errs := ValidateStruct(registerBody{Username: "alice", Email: "alice@example.com", Password: "Passw0rd!"})
		assert.Nil(t, errs)
	})

	t.Run("collects one entry per failed field", func(t *testing.T) {
		errs := ValidateStruct(registerBody{Username: "al", Email: "not-an-email", Password: "weak"})
		require.Len(t, errs, 3)

		byField := map[string]string{}
		for _, entry := range errs {
			for field, message := range entry {
				byField[field] = message
			}
		}
		assert.Equal(t, "username should be atleast 3 chars", byField["username"])
		assert.Equal(t, "invalid email", byField["email"])
		assert.Contains(t, byField["password"], "one uppercase")
	})

	t.Run("missing required fields", func(t *testing.T) {
		errs := ValidateStruct(registerBody{})
		require.Len(t, errs, 3)
	})
}
