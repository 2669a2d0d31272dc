package postgres

import (
	"errors"
	"regexp"

	"github.com/xy-planning-network/enumerate"
	"gorm.io/gorm"
)

var (
	// These errors originate from the std lib database/sql package.
	//
	// Cf., https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=3395;drc=3dbef65bf37f1b7ccd1f884761341a5a15456ffa
	errSQLScan = regexp.MustCompile(`sql: expected \d+ destination arguments in Scan, not \d+`)

	// errSQLSyntax is a very loose aggregation of error codes
	// originating from PostgreSQL itself
	// that are some sort of syntax issue in the statement or datatype mismatch.
	//
	// Cf., https://www.postgresql.org/docs/current/errcodes-appendix.html
	errSQLSyntax = regexp.MustCompile(`SQLSTATE (42601|22P02)|syntax error|no such column`)

	errCheckViolation = regexp.MustCompile(`SQLSTATE 23514|CHECK constraint failed`)
	errUniqViolation  = regexp.MustCompile(`SQLSTATE 23505|UNIQUE constraint failed`)

	errNilArg = errors.New("nil argument")
)

// safeGORMSession forces a clean *gorm.DB when modifying a query in an error state.
var safeGORMSession = &gorm.Session{}

// isSentinel asserts whether err already wraps an enumerate error,
// as errors from validating an enumerated field or from a Scope do,
// in which case it is returned as is instead of wrapped in ErrUnexpected.
func isSentinel(err error) bool {
	return errors.Is(err, enumerate.ErrNotValid) ||
		errors.Is(err, enumerate.ErrMissingData) ||
		errors.Is(err, enumerate.ErrNotExist) ||
		errors.Is(err, enumerate.ErrExists)
}
