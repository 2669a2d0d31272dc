package postgres

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/xy-planning-network/enumerate"
	"gorm.io/gorm"
)

// Migration is used to hold the database key and function for creating the migration.
type Migration struct {
	Executor func(*DB) error
	Key      string
}

func (m Migration) execute(db *DB) error {
	return db.DB().Transaction(func(tx *gorm.DB) error {
		if err := m.Executor(NewDB(tx)); err != nil {
			return err
		}

		return tx.Create(&migrationRecord{Key: m.Key, RanAt: time.Now().Unix()}).Error
	})
}

type migrationRecord struct {
	ID    int64
	Key   string `gorm:"uniqueIndex"`
	RanAt int64
}

func (migrationRecord) TableName() string { return "migrations" }

// MigrateUp runs every Migration in migrations that has not run yet, in order,
// recording each in the migrations table.
//
// Each Migration runs in its own transaction.
// MigrateUp stops at the first Migration failing and returns its error.
func MigrateUp(db *DB, migrations []Migration) error {
	if err := db.DB().AutoMigrate(&migrationRecord{}); err != nil {
		return fmt.Errorf("%w: creating migrations table: %s", enumerate.ErrUnexpected, err)
	}

	var ran []string
	if err := db.DB().Model(&migrationRecord{}).Pluck("key", &ran).Error; err != nil {
		return fmt.Errorf("%w: fetching ran migrations: %s", enumerate.ErrUnexpected, err)
	}

	for _, m := range migrations {
		if m.Key == "" || m.Executor == nil {
			return fmt.Errorf("%w: migration needs a key and an executor", enumerate.ErrMissingData)
		}

		if slices.Contains(ran, m.Key) {
			continue
		}

		if err := m.execute(db); err != nil {
			return fmt.Errorf("migration %s: %w", m.Key, err)
		}

		ran = append(ran, m.Key)
	}

	return nil
}

// CheckConstraint builds a Migration adding a CHECK constraint to table
// restricting the column backing a to the codes a's Enumeration declares.
//
// Unless a is Required, the zero value of the codes is allowed as well;
// NULL always is.
func CheckConstraint(table string, a enumerate.Association) Migration {
	key := "check"
	if a != nil {
		key = fmt.Sprintf("check_%s_%s_%s", table, a.Column(), a.Enumeration().Name())
	}

	return Migration{
		Key: key,
		Executor: func(db *DB) error {
			stmt, err := CheckConstraintSQL(table, a)
			if err != nil {
				return err
			}

			return db.Exec(stmt)
		},
	}
}

// CheckConstraintSQL is the ALTER TABLE statement CheckConstraint executes.
func CheckConstraintSQL(table string, a enumerate.Association) (string, error) {
	if table == "" || a == nil {
		return "", fmt.Errorf("%w: a check constraint needs a table and an attribute", enumerate.ErrMissingData)
	}

	check, err := CheckClause(a)
	if err != nil {
		return "", err
	}

	name := quoteIdent(fmt.Sprintf("%s_%s_check", table, a.Column()))
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s %s", quoteIdent(table), name, check), nil
}

// CheckClause renders the CHECK clause for the column backing a,
// usable inline in a CREATE TABLE statement.
func CheckClause(a enumerate.Association) (string, error) {
	if a == nil {
		return "", fmt.Errorf("%w: no attribute to check", enumerate.ErrMissingData)
	}

	entries := a.Enumeration().Entries(enumerate.SortValue)
	vals := make([]any, 0, len(entries)+1)
	for _, e := range entries {
		vals = append(vals, e.Value)
	}

	if !a.Flags().Required && len(vals) > 0 {
		zero := reflect.Zero(reflect.TypeOf(vals[0])).Interface()
		if !slices.Contains(vals, zero) {
			vals = append([]any{zero}, vals...)
		}
	}

	lits := make([]string, len(vals))
	for i, v := range vals {
		lit, err := literal(v)
		if err != nil {
			return "", err
		}
		lits[i] = lit
	}

	return fmt.Sprintf("CHECK (%s IN (%s))", quoteIdent(a.Column()), strings.Join(lits, ", ")), nil
}

// CreateEnumType builds a Migration creating a PostgreSQL ENUM type named name
// whose labels are the codes of d.
// Only Enumerations of string codes can back an ENUM type.
func CreateEnumType(name string, d enumerate.Describer) Migration {
	return Migration{
		Key: "create_type_" + name,
		Executor: func(db *DB) error {
			stmt, err := CreateEnumTypeSQL(name, d)
			if err != nil {
				return err
			}

			return db.Exec(stmt)
		},
	}
}

// CreateEnumTypeSQL is the CREATE TYPE statement CreateEnumType executes.
// Labels follow d's configured sort.
func CreateEnumTypeSQL(name string, d enumerate.Describer) (string, error) {
	if name == "" || d == nil {
		return "", fmt.Errorf("%w: an enum type needs a name and an enumeration", enumerate.ErrMissingData)
	}

	entries := d.Entries(d.SortBy())
	labels := make([]string, len(entries))
	for i, e := range entries {
		rv := reflect.ValueOf(e.Value)
		if rv.Kind() != reflect.String {
			return "", fmt.Errorf("%w: %s has %T codes, enum types need strings", enumerate.ErrNotValid, d.Name(), e.Value)
		}
		labels[i] = quoteLiteral(rv.String())
	}

	return fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)", quoteIdent(name), strings.Join(labels, ", ")), nil
}

func literal(v any) (string, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return quoteLiteral(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("%w: %T cannot be a SQL literal", enumerate.ErrNotValid, v)
	}
}

func quoteIdent(s string) string { return `"` + strings.ReplaceAll(s, `"`, `""`) + `"` }

func quoteLiteral(s string) string { return "'" + strings.ReplaceAll(s, "'", "''") + "'" }
