package service

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// validateStruct runs the `validate` tags of v and maps any failure to a
// ValidationError carrying message.
func validateStruct(v any, message string) error {
	if err := validatorInstance().Struct(v); err != nil {
		return NewValidationError(message)
	}
	return nil
}
