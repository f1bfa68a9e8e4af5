package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrValidation wraps every struct validation failure.
var ErrValidation = errors.New("validation failed")

var validate = validator.New()

// Validate checks payload against its validate tags.
func Validate(payload interface{}) error {
	if err := validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return fmt.Errorf("%w: %s", ErrValidation, validationErrors.Error())
		}
		return err
	}
	return nil
}

// ValidateAndDecode decodes a JSON body into payload and validates it.
func ValidateAndDecode(r *http.Request, payload interface{}) *AppError {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return NewAppError(http.StatusBadRequest, "Invalid request body", err)
	}

	if err := Validate(payload); err != nil {
		return NewAppError(http.StatusBadRequest, err.Error(), nil)
	}

	return nil
}
