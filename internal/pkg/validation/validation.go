// Package validation wraps go-playground/validator and turns its errors into
// *domain.ValidationError values that list every violated field.
//
// Field names come from the json tag. A `msg` struct tag overrides the
// generated message for that field:
//
//	Status string `json:"status" validate:"required" msg:"Status is required"`
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/davixiao/MeetTheDev/internal/core/domain"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return strings.ToLower(f.Name)
			}
			return name
		})
	})
	return validate
}

// Struct validates s. It returns nil, a *domain.ValidationError, or the
// validator's own error when s is not a struct.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := make([]domain.FieldError, 0, len(ve))
	seen := make(map[string]struct{}, len(ve))
	for _, fe := range ve {
		if _, dup := seen[fe.Field()]; dup {
			continue
		}
		seen[fe.Field()] = struct{}{}
		out = append(out, domain.FieldError{Param: fe.Field(), Msg: message(t, fe)})
	}
	return domain.NewValidationError(out...)
}

func message(t reflect.Type, fe validator.FieldError) string {
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		if m := sf.Tag.Get("msg"); m != "" {
			return m
		}
	}
	return fieldError(fe)
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "url":
		return field + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
