// Package validator runs go-playground/validator struct validation behind a
// single Validate function, so `validate:"..."` tags stay the only
// validation surface in the codebase.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed marks every error produced by Validate. Callers test
// for it with errors.Is without caring which fields were rejected.
var ErrValidationFailed = errors.New("struct validation failed")

// validate is the shared validator instance. It compiles tag rules once and
// is safe for concurrent use.
var validate = gvalidator.New(gvalidator.WithRequiredStructEnabled())

// Validate checks v against its `validate:"..."` tags. It returns nil when
// every rule passes, and otherwise an error joining ErrValidationFailed
// with one entry per rejected field, e.g.:
//
//	struct validation failed
//	field 'Address' with value '' failed on the 'required' rule
//
// Errors unrelated to field rules, such as passing a non-struct value, are
// returned as is.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors gvalidator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	errs := make([]error, 0, len(fieldErrors)+1)
	errs = append(errs, ErrValidationFailed)
	for _, fieldErr := range fieldErrors {
		errs = append(errs, fmt.Errorf("field '%s' with value '%v' failed on the '%s' rule",
			fieldErr.Field(),
			fieldErr.Value(),
			fieldErr.Tag(),
		))
	}

	return errors.Join(errs...)
}
