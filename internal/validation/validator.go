// TalentMatch - Candidate and Job Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/talentmatch

package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/talentmatch/internal/models"
)

// CodeValidation is the API error code for rejected input.
const CodeValidation = "VALIDATION_ERROR"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed constraint, named by the field's json name.
type FieldError struct {
	field   string
	tag     string
	message string
}

// Field returns the json name of the offending field.
func (e *FieldError) Field() string { return e.field }

// Tag returns the validate tag that failed, e.g. "gte" or "finite".
func (e *FieldError) Tag() string { return e.tag }

func (e *FieldError) Error() string { return e.message }

// RequestValidationError collects every failed constraint of one value.
type RequestValidationError struct {
	errors []FieldError
}

// Errors returns the individual failures in struct field order.
func (ve *RequestValidationError) Errors() []FieldError {
	return ve.errors
}

// Field returns the first offending field, or "" when there is none.
func (ve *RequestValidationError) Field() string {
	if len(ve.errors) == 0 {
		return ""
	}
	return ve.errors[0].field
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.errors))
	for i := range ve.errors {
		messages[i] = ve.errors[i].message
	}
	return strings.Join(messages, "; ")
}

// ToAPIError renders the failures as an API error body. A single failure
// reports details.field; several report details.fields.
func (ve *RequestValidationError) ToAPIError() *models.APIError {
	switch len(ve.errors) {
	case 0:
		return &models.APIError{Code: CodeValidation, Message: "Validation failed"}
	case 1:
		fe := ve.errors[0]
		return &models.APIError{
			Code:    CodeValidation,
			Message: fe.message,
			Details: map[string]interface{}{"field": fe.field, "tag": fe.tag},
		}
	}

	fields := make([]map[string]interface{}, len(ve.errors))
	for i, fe := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   fe.field,
			"tag":     fe.tag,
			"message": fe.message,
		}
	}
	return &models.APIError{
		Code:    CodeValidation,
		Message: ve.Error(),
		Details: map[string]interface{}{"fields": fields},
	}
}

// GetValidator returns the shared validator with the "finite" tag
// registered and json field names in errors.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)

		// Registration only fails for an empty tag or nil func.
		if err := validate.RegisterValidation("finite", validateFinite); err != nil {
			panic(fmt.Sprintf("validation: register finite: %v", err))
		}
	})
	return validate
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	default:
		return name
	}
}

// validateFinite rejects NaN and ±Inf scores and weights. Non-float kinds pass.
func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		v := f.Float()
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	default:
		return true
	}
}

// ValidateStruct checks the validate tags on s. It returns nil when s is
// valid.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// s was not a struct.
		return &RequestValidationError{errors: []FieldError{{
			field:   "unknown",
			tag:     "unknown",
			message: err.Error(),
		}}}
	}

	out := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = FieldError{field: fe.Field(), tag: fe.Tag(), message: message(fe)}
	}
	return &RequestValidationError{errors: out}
}

var (
	plainMessages = map[string]string{
		"required": "%s is required",
		"finite":   "%s must be a finite number",
		"datetime": "%s must be a valid date/time in RFC3339 format",
		"dive":     "%s contains an invalid element",
	}
	paramMessages = map[string]string{
		"oneof": "%s must be one of: %s",
		"gte":   "%s must be greater than or equal to %s",
		"lte":   "%s must be less than or equal to %s",
		"gt":    "%s must be greater than %s",
		"lt":    "%s must be less than %s",
	}
)

func message(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()
	if tmpl, ok := plainMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}
	if tag != "min" && tag != "max" {
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}

	bound := "at least"
	if tag == "max" {
		bound = "at most"
	}
	switch fe.Kind() {
	case reflect.String:
		return fmt.Sprintf("%s must be %s %s characters", field, bound, param)
	case reflect.Slice, reflect.Map, reflect.Array:
		return fmt.Sprintf("%s must contain %s %s items", field, bound, param)
	default:
		return fmt.Sprintf("%s must be %s %s", field, bound, param)
	}
}
