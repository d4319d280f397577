// Package validator adapts go-playground/validator to Echo's Validator
// interface.
package validator

import (
	domainerrors "careerconnect/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// echoValidator wraps a playground validator instance for Echo.
type echoValidator struct {
	validate *playground.Validate
}

// New constructs the validator used by the Echo server.
func New() *echoValidator {
	return &echoValidator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator. Violations surface as the shared
// validation AppError so the error handler renders them uniformly.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
