package model

import (
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

// required reports a missing or empty required string field.
func required(field string, v *string) error {
	if utility.FromStringPtr(v) == "" {
		return errors.Errorf("missing required field '%s'", field)
	}
	return nil
}

// requiredNumber only checks presence; zero is a valid value.
func requiredNumber[T int | float64](field string, v *T) error {
	if v == nil {
		return errors.Errorf("missing required field '%s'", field)
	}
	return nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return utility.ToStringPtr(s)
}

// copyPtr keeps an explicitly given zero apart from an absent value
// without sharing the pointer between the API and service models.
func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
