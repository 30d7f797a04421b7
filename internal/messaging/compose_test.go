package messaging

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterNotBlank(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerNotBlank(v))

	type form struct {
		Field string `validate:"notblank"`
	}
	assert.Error(t, v.Struct(form{Field: " \t\n"}))
	assert.NoError(t, v.Struct(form{Field: " x "}))
}

func TestNewValidator_TagsResolve(t *testing.T) {
	require.NotPanics(t, func() { _ = newValidator() })

	var verr *ValidationError
	require.ErrorAs(t, ComposeInput{RecipientID: "u", Subject: "  ", Content: ""}.Validate(), &verr)
	assert.Equal(t, []string{"subject", "content"}, verr.Fields)
	assert.NoError(t, ComposeInput{RecipientID: "u", Subject: "s", Content: "c"}.Validate())
}
