// Package validate checks struct fields hold values declared in Enumerations
// using [github.com/go-playground/validator/v10].
//
// Two forms of the "enum" tag are registered:
//
//	type Person struct {
//		Status Status `json:"status" validate:"enum"`                     // Status implements enumerate.Enumerable
//		Tier   string `json:"tier" validate:"required,enum=tier"`         // "tier" is registered in the *enumerate.Registry
//	}
//
// Fields associated with an Enumeration through the *enumerate.Registry are validated as well.
package validate

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/enumerate"
)

// A Validator validates structs against the rules set in "validate" struct tags
// and the Associations recorded in a *enumerate.Registry.
type Validator struct {
	reg   *enumerate.Registry
	valid *v10.Validate
}

// New constructs a *Validator, which applies default configuration.
// If reg is nil, enumerate.Default is used.
func New(reg *enumerate.Registry) *Validator {
	if reg == nil {
		reg = enumerate.Default
	}

	v := &Validator{reg: reg, valid: v10.New()}
	v.valid.RegisterValidation("enum", v.validateEnum)
	v.valid.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			name = ""
		}

		if name == "" {
			name = strings.SplitN(field.Tag.Get("schema"), ",", 2)[0]
		}

		if name == "-" {
			name = ""
		}

		return name
	})

	return v
}

// Struct checks the fields on structPtr match the rules set by "validate" struct tags
// and any Associations recorded for its type.
// On success, Struct returns no error.
// On failure, Struct translates each issue to a ValidationError,
// returning them all as ValidationErrors.
func (v *Validator) Struct(structPtr any) error {
	var validateErrs ValidationErrors

	err := v.valid.Struct(structPtr)
	var invalid *v10.InvalidValidationError
	if errors.As(err, &invalid) {
		return err
	}

	var errs v10.ValidationErrors
	if errors.As(err, &errs) {
		for _, ve := range errs {
			field := ve.Namespace()

			ns := strings.SplitN(field, ".", 2)
			if len(ns) == 2 {
				field = ns[1]
			}

			rule := ve.Tag()
			if ve.Param() != "" {
				rule += "=" + ve.Param()
			}
			rule += "; " + ve.Type().String()

			validateErrs = append(validateErrs, ValidationError{
				Field: field,
				Got:   ve.Value(),
				Rule:  rule,
			})
		}
	}

	validateErrs = append(validateErrs, v.associations(structPtr)...)
	if len(validateErrs) == 0 {
		return nil
	}

	return validateErrs
}

// associations validates the fields of structPtr associated with Enumerations.
func (v *Validator) associations(structPtr any) ValidationErrors {
	rv := reflect.ValueOf(structPtr)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil
	}

	var errs ValidationErrors
	for _, a := range v.reg.Associations(rv.Type()) {
		got := enumerate.FieldValue(rv, a.Field())
		if err := a.ValidateAny(got); err != nil {
			rule := "enum=" + a.Enumeration().Name()
			if errors.Is(err, enumerate.ErrMissingData) {
				rule = "required"
			}

			errs = append(errs, ValidationError{Field: a.Field(), Got: got, Rule: rule})
		}
	}

	return errs
}

// validateEnum validates whether the field is a valid Enumerable or slice of valid Enumerable
// or, given a parameter, is declared in the Enumeration registered under that name.
func (v *Validator) validateEnum(fl v10.FieldLevel) bool {
	field := fl.Field()

	items := []reflect.Value{field}
	if field.Kind() == reflect.Slice {
		items = items[:0]
		for i := 0; i < field.Len(); i++ {
			items = append(items, field.Index(i))
		}
	}

	if name := fl.Param(); name != "" {
		d, err := v.reg.Lookup(name)
		if err != nil {
			return false
		}

		return checkDescribed(d, items...)
	}

	return checkEnums(items...)
}

// checkEnums asserts each [reflect.Value] is an Enumerable and valid.
func checkEnums(items ...reflect.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		enum, ok := item.Interface().(enumerate.Enumerable)
		if !ok || enum.Valid() != nil {
			return false
		}
	}

	return true
}

// checkDescribed asserts each [reflect.Value] is declared in d.
func checkDescribed(d enumerate.Describer, items ...reflect.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		if d.ValidAny(item.Interface()) != nil {
			return false
		}
	}

	return true
}
