// Package validator adapts the shared validation rules to echo.
package validator

import (
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/util"

	"github.com/go-playground/validator/v10"
)

// EchoValidator implements echo.Validator.
type EchoValidator struct {
	validate *validator.Validate
}

// New returns a validator carrying the storefront rules.
func New() *EchoValidator {
	return &EchoValidator{validate: util.NewValidator()}
}

// Validate returns ErrValidationFailed listing the failing fields.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(util.ValidationDetails(err))
	}

	return nil
}
