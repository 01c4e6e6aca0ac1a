package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signInForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(signInForm{Username: "admin", Password: "admin123"}))
}

func TestValidate_CollectsPerFieldMessages(t *testing.T) {
	v := New()

	err := v.Validate(signInForm{})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, []string{"Username field is required"}, fields["username"])
	assert.Equal(t, []string{"Password field is required"}, fields["password"])
}

func TestValidate_TagSpecificMessages(t *testing.T) {
	v := New()

	err := v.Validate(signInForm{Username: "admin", Password: "abc"})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, []string{"Password is too short"}, fields["password"])
	assert.NotContains(t, fields, "username")
}

func TestFieldErrors_ErrorString(t *testing.T) {
	fields := FieldErrors{"username": {"Username field is required"}}

	assert.Contains(t, fields.Error(), "username: Username field is required")
}
