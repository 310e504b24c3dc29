// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

// Package validate wraps go-playground/validator with the site's custom rules.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern is a basic local@domain.tld shape check, not RFC 5322.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator validates structs using `validate` tags. Field names in errors are
// taken from the json tag. It satisfies echo.Validator.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the basic_email rule registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// only fails on programmer error, the tag and func are fixed
	if err := v.RegisterValidation("basic_email", basicEmail); err != nil {
		panic("registering basic_email: " + err.Error())
	}
	return &Validator{v: v}
}

// Validate checks a struct. Errors are validator.ValidationErrors.
func (v *Validator) Validate(i any) error {
	return v.v.Struct(i)
}

// IsEmail reports whether s has the basic email shape.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func basicEmail(fl validator.FieldLevel) bool {
	return IsEmail(fl.Field().String())
}

// Failed reports whether err contains a failure of tag on the named field.
// An empty field matches any field.
func Failed(err error, field, tag string) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == tag && (field == "" || fe.Field() == field) {
			return true
		}
	}
	return false
}
