package enumerate

import "cmp"

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// Implementing a new Enumerable or adding a new constant value ought to include updating the database with the same
// types and values. Cf. postgres.CheckConstraint.
type Enumerable interface {
	String() string
	Valid() error
}

// A Code is the type of the value an Enumeration stores for each of its keys.
// Codes must be ordered so listings can be sorted.
type Code interface {
	cmp.Ordered
}

// A Value is a single member of an Enumeration.
type Value[C Code] struct {
	// Key is the symbolic name of the Value, such as "not_started".
	Key string

	// Code is what gets stored, for example, in a database column.
	Code C

	// Label is the human-readable form of the Value.
	// When empty, the Label is resolved through a Translator
	// or derived from Key.
	Label string

	// Behavior is an optional object implementing per-value behavior.
	Behavior any
}
