package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qkart/backend/pkg/apperr"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(sample{Email: "a@b.com", Password: "pass1234"}))
}

func TestStruct_Violations(t *testing.T) {
	tests := []struct {
		name string
		in   sample
	}{
		{"missing email", sample{Password: "pass1234"}},
		{"malformed email", sample{Email: "nope", Password: "pass1234"}},
		{"short password", sample{Email: "a@b.com", Password: "a1"}},
		{"password without digit", sample{Email: "a@b.com", Password: "lettersonly"}},
		{"password without letter", sample{Email: "a@b.com", Password: "123456789"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			require.Error(t, err)
			require.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
		})
	}
}
