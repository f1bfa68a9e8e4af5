package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(&samplePayload{Name: "Ada", Email: "ada@example.com"}))

	err := Validate(&samplePayload{Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Name")
	assert.Contains(t, err.Error(), "Email")
}

func TestValidateAndDecode(t *testing.T) {
	t.Run("bad json", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		appErr := ValidateAndDecode(r, &samplePayload{})
		if assert.NotNil(t, appErr) {
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
			assert.Equal(t, "Invalid request body", appErr.Message)
		}
	})

	t.Run("fails validation", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada"}`))
		appErr := ValidateAndDecode(r, &samplePayload{})
		if assert.NotNil(t, appErr) {
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
		}
	})

	t.Run("ok", func(t *testing.T) {
		var p samplePayload
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ada","email":"ada@example.com"}`))
		assert.Nil(t, ValidateAndDecode(r, &p))
		assert.Equal(t, "Ada", p.Name)
	})
}

func TestAppError_Send(t *testing.T) {
	rr := httptest.NewRecorder()
	appErr := NewAppError(http.StatusNotFound, "account not found", errors.New("lookup miss"))

	appErr.Send(rr)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":404,"message":"account not found"}`, rr.Body.String())
	assert.ErrorContains(t, appErr.Unwrap(), "lookup miss")
}
