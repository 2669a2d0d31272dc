/*
Package postgres wires Enumerations into GORM.

An *enumerate.Attribute configured WithScopes turns into a Scope per Value:

	scopes := postgres.Scopes(status)
	err := db.Model(new(Person)).Scope(scopes["Married"]).Find(&people)

RegisterValidation installs GORM callbacks validating every field associated
through an *enumerate.Registry before records are created or updated,
so values outside an Enumeration never reach the database.

CheckConstraint and CreateEnumType derive Migrations from Enumerations,
keeping the database aware of the same values as the code.

There is a small *DB wrapper around *gorm.DB as well, translating errors into enumerate's sentinel errors.
PostgreSQL is the database connected to in production; tests run against SQLite through the same *DB.
*/
package postgres
