package postgres

import (
	"fmt"

	"github.com/xy-planning-network/enumerate"
	"gorm.io/gorm/clause"
)

// A Scope applies a fragment of a query to a *DB.
// Scopes compose: db.Scope(a).Scope(b) narrows the query by both.
type Scope func(*DB) *DB

// EnumScope filters the query to records whose column backing a
// holds the code declared for key.
//
// If key is not declared in a's Enumeration,
// the finisher method ending the chain returns ErrNotExist.
func EnumScope(a enumerate.Association, key string) Scope {
	return func(db *DB) *DB {
		if a == nil {
			return db.withError(fmt.Errorf("%w: no attribute to scope by", enumerate.ErrMissingData))
		}

		code, err := a.CodeAny(key)
		if err != nil {
			return db.withError(err)
		}

		return &DB{db: db.db.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: a.Column()}, Value: code})}
	}
}

// In filters the query to records whose column backing a
// holds any of the codes declared for keys.
func In(a enumerate.Association, keys ...string) Scope {
	return func(db *DB) *DB {
		if a == nil {
			return db.withError(fmt.Errorf("%w: no attribute to scope by", enumerate.ErrMissingData))
		}

		if len(keys) == 0 {
			return db.withError(fmt.Errorf("%w: no keys to scope %s by", enumerate.ErrMissingData, a.Field()))
		}

		codes := make([]any, 0, len(keys))
		for _, key := range keys {
			code, err := a.CodeAny(key)
			if err != nil {
				return db.withError(err)
			}
			codes = append(codes, code)
		}

		return &DB{db: db.db.Where(clause.IN{Column: clause.Column{Table: clause.CurrentTable, Name: a.Column()}, Values: codes})}
	}
}

// Scopes builds a Scope per declared value of a's Enumeration,
// named by a.ScopeName, for example:
//
//	db.Model(&Person{}).Scope(postgres.Scopes(status)["Married"]).Find(&people)
//
// Scopes is empty unless a was built with enumerate.WithScopes.
func Scopes(a enumerate.Association) map[string]Scope {
	if a == nil {
		return map[string]Scope{}
	}

	codes := a.ScopeCodes()
	scopes := make(map[string]Scope, len(codes))
	for name, code := range codes {
		scopes[name] = func(db *DB) *DB {
			return &DB{db: db.db.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: a.Column()}, Value: code})}
		}
	}

	return scopes
}
