// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var retryStatus = regexp.MustCompile(`^([1-5]xx|[1-5][0-9]{2})$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("retrystatus", validateRetryStatus); err != nil {
		panic("retryhttp/config: " + err.Error())
	}
	return v
}

// validateRetryStatus accepts a status class ("4xx") or a three-digit
// status code ("429").
func validateRetryStatus(fl validator.FieldLevel) bool {
	return retryStatus.MatchString(fl.Field().String())
}

// A ValidationError lists every configuration key which failed
// validation.
type ValidationError struct {
	Errors []FieldError
}

// FieldError describes one invalid configuration key.
type FieldError struct {
	Key     string
	Message string
	Value   string
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return fmt.Sprintf("validation failed: %s", ve.Errors[0].Message)
	default:
		msgs := make([]string, len(ve.Errors))
		for i := range ve.Errors {
			msgs[i] = ve.Errors[i].Message
		}
		return fmt.Sprintf("validation failed: %d errors: %s", len(ve.Errors), strings.Join(msgs, "; "))
	}
}

// Validate checks every field of cfg against its constraints. If any
// fail, the error is a *ValidationError.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			return newValidationError(errs)
		}
		return err
	}
	return nil
}

func newValidationError(errs validator.ValidationErrors) *ValidationError {
	fieldErrors := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		key := fe.Namespace()
		if _, rest, ok := strings.Cut(key, "."); ok {
			key = rest
		}
		fieldErrors = append(fieldErrors, FieldError{
			Key:     key,
			Message: errorMessage(key, fe),
			Value:   fmt.Sprintf("%v", fe.Value()),
		})
	}
	return &ValidationError{Errors: fieldErrors}
}

func errorMessage(key string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "retrystatus":
		return fmt.Sprintf("%s must be a status class like 5xx or a status code like 429, got %q", key, fe.Value())
	default:
		return fmt.Sprintf("%s failed validation", key)
	}
}
