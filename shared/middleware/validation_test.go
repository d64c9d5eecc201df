package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidateRequest(t *testing.T) {
	assert.Nil(t, ValidateRequest(sampleRequest{Name: "Alice"}))
	assert.Nil(t, ValidateRequest(sampleRequest{Name: "Alice", Email: "alice@example.com"}))

	errs := ValidateRequest(sampleRequest{Email: "nope"})
	require.Len(t, errs, 2)
	assert.Equal(t, "Name", errs[0].Field)
	assert.Equal(t, "required", errs[0].Type)
	assert.Equal(t, "This field is required", errs[0].Message)
	assert.Equal(t, "Email", errs[1].Field)
	assert.Equal(t, "Invalid email format", errs[1].Message)
}

type passwordRequest struct {
	Password string `json:"password" validate:"required,maxbytes=72"`
}

func TestMaxBytesCountsBytesNotRunes(t *testing.T) {
	assert.Nil(t, ValidateRequest(passwordRequest{Password: strings.Repeat("a", 72)}))
	assert.Nil(t, ValidateRequest(passwordRequest{Password: strings.Repeat("é", 36)}))

	errs := ValidateRequest(passwordRequest{Password: strings.Repeat("é", 40)})
	require.Len(t, errs, 1)
	assert.Equal(t, "Password", errs[0].Field)
	assert.Equal(t, "maxbytes", errs[0].Type)
	assert.Equal(t, "Value must be at most 72 bytes", errs[0].Message)
}
