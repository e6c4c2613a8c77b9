package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/feliperussi/medwrite-server/internal/errors"
	"github.com/feliperussi/medwrite-server/internal/validation"
)

type evaluationRequest struct {
	Text   string `json:"text" validate:"required,min=1"`
	Format string `json:"format" validate:"omitempty,oneof=json text"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := evaluationRequest{
		Text:   "The patient has a chronic disease.",
		Format: "json",
	}

	assert.NoError(t, v.Validate(req))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name       string
		req        evaluationRequest
		wantErrMsg string
	}{
		{
			name:       "missing required text",
			req:        evaluationRequest{Format: "json"},
			wantErrMsg: "text",
		},
		{
			name:       "invalid format enum",
			req:        evaluationRequest{Text: "hello", Format: "xml"},
			wantErrMsg: "format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.wantErrMsg)
		})
	}
}
