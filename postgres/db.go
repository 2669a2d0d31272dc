package postgres

import (
	"errors"
	"fmt"

	"github.com/xy-planning-network/enumerate"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type DB struct {
	// *gorm.DB's methods are generally unsafe to use.
	// Specifically, some *gorm.DB methods are not thread-safe
	// and mutate the state of the *gorm.DB backing DB.
	//
	// If a *gorm.DB method calls *gorm.DB.getInstance,
	// this appears to render a method "safe" since it creates a new pointer.
	//
	// If a *gorm.DB method does not, be aware.
	// One solution is to use *gorm.DB.Session to force a clean pointer.
	db *gorm.DB
}

// NewDB constructs a *DB from a *gorm.DB.
func NewDB(db *gorm.DB) *DB { return &DB{db: db} }

// DB exposes the underlying *gorm.DB backing DB.
//
// NB: use in exceptional circumstances only.
func (db *DB) DB() *gorm.DB { return db.db }

// **************************************************************************
// FINISHER METHODS
//
// These methods close out a current query, executing it.
// All finisher methods are terminal and cannot be chained.
// They return any errors occuring within the query chain
// or when executing the query.
//
// Validation errors raised by the callbacks RegisterValidation installs
// return unwrapped so callers can errors.Is them against
// enumerate.ErrNotValid and enumerate.ErrMissingData.
//
// **************************************************************************

// Count returns the number of records matching the current query or an error.
func (db *DB) Count() (int64, error) {
	if db.db.Error != nil {
		return 0, db.db.Error
	}

	var count int64
	if err := db.db.Count(&count).Error; err != nil {
		if isSentinel(err) {
			return 0, err
		}

		err = fmt.Errorf("%w: %s", enumerate.ErrUnexpected, err)
		return 0, err
	}

	return count, nil
}

// Create inserts value into the database, updating value with new data yielding from that insertion.
// Accordingly, almost always, value is a pointer to a struct that is a database table.
//
// If value holds a field outside its Enumeration, the validation error returns.
// If value violates a CHECK constraint, such as one made by CheckConstraint, ErrNotValid returns.
// If value violates a unique constraint defined by the database, ErrExists returns.
func (db *DB) Create(value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %T must be a non-nil pointer or slice", enumerate.ErrNotValid, value)
		}
	}()

	if db.db.Error != nil {
		return db.db.Error
	}

	if v, ok := value.(Updates); ok {
		if err = v.valid(); err != nil {
			return err
		}

		value = map[string]any(v)
	}

	err = db.db.Session(&gorm.Session{FullSaveAssociations: false}).Create(value).Error
	switch {
	case err == nil:
		return nil

	case isSentinel(err):
		return err

	case errors.Is(err, schema.ErrUnsupportedDataType), errors.Is(err, gorm.ErrInvalidData):
		return fmt.Errorf("%w: %T is not a database table", enumerate.ErrMissingData, value)

	case errCheckViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", enumerate.ErrNotValid, err)

	case errUniqViolation.MatchString(err.Error()):
		return fmt.Errorf("%w: %s", enumerate.ErrExists, err)

	default:
		return fmt.Errorf("%w: failed creating %T: %s", enumerate.ErrUnexpected, value, err)
	}
}

// Exec executes SQL query sql, passing values to it.
//
// Exec does not write any data resulting from the query into Go values.
func (db *DB) Exec(sql string, values ...any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	var err error
	values, err = unwrap(values...)
	if err != nil && !errors.Is(err, errNilArg) {
		return err
	}

	if err := db.db.Exec(sql, values...).Error; err != nil {
		if errSQLSyntax.MatchString(err.Error()) {
			return fmt.Errorf("%w: %s", enumerate.ErrNotValid, err)
		}

		return fmt.Errorf("%w: %s", enumerate.ErrUnexpected, err)
	}

	return nil
}

// Find retrieves all records matching the current query
// and stores them in dest.
//
// If dest is not a valid type for the table queried,
// then ErrNotValid returns.
// If no matches are found, Find returns ErrNotExist.
func (db *DB) Find(dest any) (err error) {
	badDest := fmt.Errorf("%w: %T cannot be scanned into", enumerate.ErrNotValid, dest)
	defer func() {
		if r := recover(); r != nil {
			err = badDest
		}
	}()

	if db.db.Error != nil {
		return db.db.Error
	}

	res := db.db.Find(dest)
	err = res.Error
	if err != nil && isSentinel(err) {
		return err
	}

	if err != nil && errSQLScan.MatchString(err.Error()) {
		return badDest
	}

	if err != nil && errSQLSyntax.MatchString(err.Error()) {
		return fmt.Errorf("%w: %s", enumerate.ErrNotValid, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", enumerate.ErrUnexpected, err)
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: no records", enumerate.ErrNotExist)
	}

	return nil
}

// First retrieves a single record from the database matching the query
// and stores it in dest.
//
// If no matches are found, First returns ErrNotExist.
func (db *DB) First(dest any) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	err := db.db.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %T", enumerate.ErrNotExist, dest)
	}

	if err != nil && isSentinel(err) {
		return err
	}

	if err != nil && errSQLSyntax.MatchString(err.Error()) {
		return fmt.Errorf("%w: %s", enumerate.ErrNotValid, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %s", enumerate.ErrUnexpected, err)
	}

	return nil
}

// Update replaces existing data on all records matching the query with values.
//
// If no records are updated, ErrNotExist returns.
// The caller ought to specifically handle this error
// when its expected a query may not mutate records.
func (db *DB) Update(values Updates) error {
	if db.db.Error != nil {
		return db.db.Error
	}

	if err := values.valid(); err != nil {
		return err
	}

	res := db.db.Updates(map[string]any(values))
	switch {
	case res.RowsAffected == 0 && res.Error == nil:
		return fmt.Errorf("%w: no records updated", enumerate.ErrNotExist)

	case res.Error == nil:
		return nil

	case isSentinel(res.Error):
		return res.Error

	case errCheckViolation.MatchString(res.Error.Error()):
		return fmt.Errorf("%w: %s", enumerate.ErrNotValid, res.Error)

	case errUniqViolation.MatchString(res.Error.Error()):
		return fmt.Errorf("%w: %s", enumerate.ErrExists, res.Error)

	default:
		return fmt.Errorf("%w: %s", enumerate.ErrUnexpected, res.Error)
	}
}

// **************************************************************************
// QUERY BUILDING METHODS
//
// Query building methods initiate a query and then add clauses to it
// until a finisher method is called.
// The caller can chain methods.
//
// **************************************************************************

// Model declares the table used for the query.
//
// Model computes the name for the database table from the type of model,
// taking the plural of the table, for example:
// - Person -> people
// - Subscription -> subscriptions
//
// Unless, model implements: func TableName() string
// The value returned from that function is used instead.
func (db *DB) Model(model any) *DB { return &DB{db: db.db.Model(model)} }

// Order applies an ORDER BY clause to the current query.
func (db *DB) Order(order string) *DB { return &DB{db: db.db.Order(order)} }

// Scope applies the scope to the existing query.
// Review [Scope] for more details.
func (db *DB) Scope(scope Scope) *DB {
	return &DB{db: db.db.Scopes(func(dbx *gorm.DB) *gorm.DB {
		return scope(NewDB(dbx)).DB()
	})}
}

// Table defines which database table to query for the current query.
// Table is similar to Model but allows for explicit definition of the table.
func (db *DB) Table(name string) *DB { return &DB{db: db.db.Table(name)} }

// Where applies the query fragment or subquery to the current query
// as a WHERE or AND clause.
//
// Where supports one or none args.
// If more than one arg is passed, finisher methods will return ErrNotValid.
func (db *DB) Where(query any, args ...any) *DB {
	if len(args) > 1 {
		return db.withError(fmt.Errorf("%w: Where supports one or none args", enumerate.ErrNotValid))
	}

	var err error
	args, err = unwrap(args...)
	if err != nil && !errors.Is(err, errNilArg) {
		return db.withError(err)
	}

	q, err := unwrap(query)
	if err != nil {
		return db.withError(err)
	}

	return &DB{db.db.Where(q[0], args...)}
}

// **************************************************************************
// HELPERS
//
// **************************************************************************

// withError returns a *DB in an error state,
// so the finisher method ending the chain returns err.
func (db *DB) withError(err error) *DB {
	gdb := db.DB().Session(safeGORMSession)
	_ = gdb.AddError(err)
	return &DB{db: gdb}
}

// unwrap converts any custom postgres types that are troublesome for GORM into types it can handle.
// unwrap ought to be applied to parameters of any type.
// unwrap returns an error in exceptional circumstances.
//
// If unwrapping a parameter uncovers some error, unwrap returns the error.
// Notably, if a *DB is passed as a parameter,
// and that *DB is in an error state, that fact is surfaced.
// This enables a *DB method to return early and prevent partial queries from running.
func unwrap(args ...any) ([]any, error) {
	var err error
	res := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case *DB:
			gdb := v.DB()
			if gdb.Error != nil {
				err = errors.Join(err, gdb.Error)
			}
			res[i] = gdb

		case nil:
			res[i] = arg
			err = errors.Join(err, enumerate.ErrNotValid, errNilArg)

		default:
			res[i] = arg
		}
	}

	return res, err
}
