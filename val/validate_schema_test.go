package val_test

import (
	"testing"

	"github.com/code19m/errx"
	"github.com/crudkit-go/crudkit/val"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin member"`
	Age      int    `json:"age"      validate:"omitempty,gte=18"`
}

func TestValidateSchema(t *testing.T) {
	t.Parallel()

	t.Run("valid struct passes", func(t *testing.T) {
		t.Parallel()

		err := val.ValidateSchema(signupForm{
			Email:    "a@b.co",
			Password: "longenough",
			Role:     "member",
			Age:      30,
		})
		require.NoError(t, err)
	})

	t.Run("failures carry code and per-field messages", func(t *testing.T) {
		t.Parallel()

		err := val.ValidateSchema(signupForm{
			Email:    "not-an-email",
			Password: "short",
			Role:     "root",
			Age:      12,
		})
		require.Error(t, err)

		e := errx.AsErrorX(err)
		assert.Equal(t, val.CodeValidationFailed, e.Code())
		assert.Equal(t, errx.T_Validation, e.Type())

		fields := e.Fields()
		assert.Equal(t, "Invalid email format", fields["email"])
		assert.Equal(t, "Must be at least 8 characters", fields["password"])
		assert.Equal(t, "Must be one of: admin, member", fields["role"])
		assert.Equal(t, "Must be greater than or equal to 18", fields["age"])
	})

	t.Run("field names come from json tags", func(t *testing.T) {
		t.Parallel()

		err := val.ValidateSchema(signupForm{})
		require.Error(t, err)

		fields := errx.AsErrorX(err).Fields()
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
		assert.NotContains(t, fields, "Email")
	})
}
