// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/cryptokit/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// KeyName validates a logical key name: non-blank, no surrounding whitespace
// and no field separators that would break stored references.
var KeyName = validation.NewStringRuleWithError(
	func(s string) bool {
		if strings.TrimSpace(s) == "" || s != strings.TrimSpace(s) {
			return false
		}
		return !strings.ContainsAny(s, ",+")
	},
	validation.NewError("validation_key_name", "must be a non-blank name without ',' or '+'"),
)
