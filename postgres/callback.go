package postgres

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/xy-planning-network/enumerate"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const validateCallback = "enumerate:validate"

// RegisterValidation installs GORM callbacks on db validating enumerated fields
// before records are created or updated.
// Fields are validated through the Associations recorded in reg;
// if reg is nil, enumerate.Default is used.
//
// A record failing validation is not written
// and the *DB finisher method returns the validation error.
//
// When updating from a map of columns, only the columns present are validated.
func RegisterValidation(db *DB, reg *enumerate.Registry) error {
	if db == nil {
		return fmt.Errorf("%w: no database to register callbacks on", enumerate.ErrMissingData)
	}

	if reg == nil {
		reg = enumerate.Default
	}

	v := validation{reg: reg}
	cb := db.DB().Callback()
	if err := cb.Create().Before("gorm:create").Register(validateCallback, v.validate); err != nil {
		return fmt.Errorf("%w: registering create callback: %s", enumerate.ErrUnexpected, err)
	}

	if err := cb.Update().Before("gorm:update").Register(validateCallback, v.validate); err != nil {
		return fmt.Errorf("%w: registering update callback: %s", enumerate.ErrUnexpected, err)
	}

	return nil
}

type validation struct {
	reg *enumerate.Registry
}

func (v validation) validate(tx *gorm.DB) {
	if tx.Error != nil || tx.Statement == nil {
		return
	}

	var err error
	switch dest := tx.Statement.Dest.(type) {
	case map[string]any:
		err = v.validateColumns(tx.Statement.Model, dest)
	case Updates:
		err = v.validateColumns(tx.Statement.Model, dest)
	default:
		err = v.validateValue(reflect.ValueOf(dest))
	}

	if err != nil {
		_ = tx.AddError(err)
	}
}

// validateColumns validates the values in cols keyed by
// either the column or the field of an Association on model.
func (v validation) validateColumns(model any, cols map[string]any) error {
	if model == nil {
		return nil
	}

	var errs []error
	for _, a := range v.reg.Associations(model) {
		val, ok := cols[a.Column()]
		if !ok {
			val, ok = cols[a.Field()]
		}

		if !ok {
			continue
		}

		if _, ok := val.(clause.Expression); ok {
			continue
		}

		if err := a.ValidateAny(val); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (v validation) validateValue(rv reflect.Value) error {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		var errs []error
		for i := 0; i < rv.Len(); i++ {
			if err := v.validateValue(rv.Index(i)); err != nil {
				errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			}
		}

		return errors.Join(errs...)

	case reflect.Struct:
		return v.reg.ValidateModel(rv.Interface())

	default:
		return nil
	}
}
