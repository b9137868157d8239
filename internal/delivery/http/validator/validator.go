// Package validator wraps go-playground/validator so Echo can call
// c.Validate(req) on bound request structs.
package validator

import (
	"fmt"
	"strings"

	domainerrors "novacommerce/internal/domain/errors"
	"novacommerce/internal/errors"

	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	v *validator.Validate
}

// New returns an echoValidator ready to be assigned to echo.Echo.Validator.
func New() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface. Failures surface as the
// validation domain error so the error handler maps them to 400.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}

		return domainerrors.ErrValidationFailed.WithDetails(strings.Join(msgs, "; "))
	}

	return errors.WithStack(err)
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
