package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-fin-tracker/models"
)

// UserValidator checks registration and login requests using the
// `validate` struct tags declared on the request models.
type UserValidator struct {
	validate *validator.Validate
}

// NewUserValidator returns a [Validator] for [models.RegisterRequest] and
// [models.LoginRequest].
func NewUserValidator() Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &UserValidator{validate: validate}
}

// Validate checks obj. The optional field names are json names of the
// request; when given, only those fields are validated.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest, *models.RegisterRequest, models.LoginRequest, *models.LoginRequest:
		return v.validateStruct(ctx, value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateStruct(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) == 0 {
		err = v.validate.StructCtx(ctx, obj)
	} else {
		err = v.validate.StructPartialCtx(ctx, obj, structFieldNames(obj, fields)...)
	}
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}

	// report the first failing field, in declaration order
	return fieldError(validationErrors[0])
}

func fieldError(fe validator.FieldError) error {
	switch fe.Field() {
	case "username":
		return ErrInvalidUsername
	case "email":
		return ErrInvalidEmail
	case "password":
		if fe.Tag() == "required" {
			return ErrEmptyPassword
		}
		return ErrInvalidPassword
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, fe.Field())
	}
}

// structFieldNames maps json names onto the Go field names StructPartial
// expects.
func structFieldNames(obj any, jsonNames []string) []string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	names := make([]string, 0, len(jsonNames))
	for _, jsonName := range jsonNames {
		for i := range t.NumField() {
			field := t.Field(i)
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == jsonName {
				names = append(names, field.Name)
			}
		}
	}
	return names
}
