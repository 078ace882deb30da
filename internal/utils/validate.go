package util

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"note-slides/internal/utils/sanitize"
)

// MaxGradientLen bounds the stored gradient string.
const MaxGradientLen = 256

// IsGradient reports whether s may be stored as a gradient. Any CSS value is
// accepted as long as it is short enough, cannot close a declaration or rule
// and carries no markup. The empty string is accepted so an explicit "" in a
// patch can clear the field.
func IsGradient(s string) bool {
	if len(s) > MaxGradientLen {
		return false
	}
	return !strings.ContainsAny(s, ";{}") && !sanitize.HasMarkup(s)
}

func gradientRule(fl validator.FieldLevel) bool {
	return IsGradient(fl.Field().String())
}

// RegisterGradientValidator registers the "gradient" validation tag with the validator
// Safely handles duplicate registration by checking if already registered
func RegisterGradientValidator(v *validator.Validate) error {
	err := v.RegisterValidation("gradient", gradientRule)
	if err != nil && err.Error() == "validator: tag 'gradient' already exists" {
		return nil
	}
	return err
}

// NewValidator returns a validator that reports JSON field names and knows
// the "gradient" tag.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := RegisterGradientValidator(v); err != nil {
		return nil, err
	}
	return v, nil
}
