// Package validation validates request structs with go-playground/validator.
//
// Example:
//
//	type toggleRequest struct {
//	    EntryID   uint64 `json:"entryId" validate:"required"`
//	    EntryType string `json:"entryType" validate:"required,entrykind"`
//	    UserID    string `json:"userId" validate:"required,max=255"`
//	}
//
//	if err := validation.Struct(&req); err != nil {
//	    return nil, svcErr.InvalidArgument(err.Error())
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/oggyb/movie-social/internal/reaction"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// Error collects every failed rule of one struct.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Get returns the shared validator. Field names in messages follow json tags.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		// entrykind accepts anything reaction.ParseKind accepts
		_ = validate.RegisterValidation("entrykind", func(fl validator.FieldLevel) bool {
			_, err := reaction.ParseKind(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Struct validates s. It returns nil or an *Error.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := &Error{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "entrykind":
		return fmt.Sprintf("%s must be one of favorites, watched, top10, watch-later", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "dive":
		return fmt.Sprintf("%s is invalid", field)
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
