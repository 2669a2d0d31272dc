package enumerate

import (
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm/schema"
)

// DefaultPolymorphicSuffix is appended to the field name of a polymorphic Attribute
// to name the accessor for its behavior object.
const DefaultPolymorphicSuffix = "Object"

// Flags configure how an Attribute decorates the field it is associated with.
type Flags struct {
	// Helpers creates a predicate per Value, e.g. IsMarried.
	Helpers bool

	// Prefix prefixes helper and scope names with the field name,
	// e.g. IsRelationshipStatusMarried.
	Prefix bool

	// Scopes creates a query scope per Value.
	Scopes bool

	// Required rejects blank values.
	Required bool

	// SkipValidation disables validating the field altogether.
	SkipValidation bool

	// Polymorphic exposes the behavior object of the current Value.
	Polymorphic bool

	// Suffix names the behavior object accessor for a Polymorphic Attribute.
	Suffix string
}

// An AttributeOption sets Flags on an Attribute.
type AttributeOption func(*attributeConfig)

type attributeConfig struct {
	flags  Flags
	column string
}

// WithHelpers creates a predicate for each Value of the Enumeration.
func WithHelpers() AttributeOption {
	return func(c *attributeConfig) { c.flags.Helpers = true }
}

// WithPrefix prefixes helper and scope names with the field name.
// WithPrefix implies WithHelpers.
func WithPrefix() AttributeOption {
	return func(c *attributeConfig) {
		c.flags.Helpers = true
		c.flags.Prefix = true
	}
}

// WithScopes creates a query scope for each Value of the Enumeration.
func WithScopes() AttributeOption {
	return func(c *attributeConfig) { c.flags.Scopes = true }
}

// Required rejects blank values when validating.
func Required() AttributeOption {
	return func(c *attributeConfig) { c.flags.Required = true }
}

// SkipValidation disables validation of the field.
func SkipValidation() AttributeOption {
	return func(c *attributeConfig) { c.flags.SkipValidation = true }
}

// WithPolymorphic exposes the behavior objects declared on the Enumeration's Values.
// suffix names the accessor; when empty, DefaultPolymorphicSuffix is used.
func WithPolymorphic(suffix string) AttributeOption {
	return func(c *attributeConfig) {
		if suffix == "" {
			suffix = DefaultPolymorphicSuffix
		}

		c.flags.Polymorphic = true
		c.flags.Suffix = suffix
	}
}

// WithColumn sets the database column backing the field.
func WithColumn(name string) AttributeOption {
	return func(c *attributeConfig) { c.column = name }
}

// An Association is the view of an Attribute that does not depend on the type of its codes.
type Association interface {
	Field() string
	Column() string
	Enumeration() Describer
	Flags() Flags

	// CodeAny returns the code declared for key.
	CodeAny(key string) (any, error)

	// HumanizeAny humanizes the value stored in the field.
	HumanizeAny(v any) string

	// ScopeCodes maps scope names to the code each scope filters by.
	// ScopeCodes is empty unless scopes are enabled.
	ScopeCodes() map[string]any

	// ValidateAny validates the value stored in the field.
	ValidateAny(v any) error
}

var _ Association = (*Attribute[string])(nil)

// An Attribute associates an Enumeration with a field of a struct.
type Attribute[C Code] struct {
	field  string
	column string
	enum   *Enumeration[C]
	flags  Flags
}

// NewAttribute associates the struct field named field with enum.
//
// If field is empty or enum is nil, ErrMissingData returns.
func NewAttribute[C Code](field string, enum *Enumeration[C], opts ...AttributeOption) (*Attribute[C], error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, fmt.Errorf("%w: attribute has no field", ErrMissingData)
	}

	if enum == nil {
		return nil, fmt.Errorf("%w: attribute %s has no enumeration", ErrMissingData, field)
	}

	var cfg attributeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.column == "" {
		cfg.column = schema.NamingStrategy{}.ColumnName("", field)
	}

	return &Attribute[C]{field: field, column: cfg.column, enum: enum, flags: cfg.flags}, nil
}

// MustAttribute is like NewAttribute but panics if the *Attribute cannot be constructed.
func MustAttribute[C Code](field string, enum *Enumeration[C], opts ...AttributeOption) *Attribute[C] {
	a, err := NewAttribute(field, enum, opts...)
	if err != nil {
		panic(err)
	}

	return a
}

// Field returns the name of the struct field.
func (a *Attribute[C]) Field() string { return a.field }

// Column returns the database column backing the field.
func (a *Attribute[C]) Column() string { return a.column }

// Enum returns the Enumeration a is associated with.
func (a *Attribute[C]) Enum() *Enumeration[C] { return a.enum }

// Enumeration returns the Enumeration a is associated with as a Describer.
func (a *Attribute[C]) Enumeration() Describer { return a.enum }

// Flags returns the Flags a was configured with.
func (a *Attribute[C]) Flags() Flags { return a.flags }

// Validate checks v may be stored in the field.
//
// A blank v, the zero value of C when it is not itself declared,
// passes unless a is Required; then ErrMissingData returns.
// Any other v not declared in the Enumeration returns ErrNotValid.
func (a *Attribute[C]) Validate(v C) error {
	if a.flags.SkipValidation {
		return nil
	}

	var zero C
	if v == zero && !a.enum.Has(v) {
		if a.flags.Required {
			return fmt.Errorf("%w: %s can't be blank", ErrMissingData, a.field)
		}

		return nil
	}

	if !a.enum.Has(v) {
		return fmt.Errorf("%w: %s %v is not included in %s", ErrNotValid, a.field, v, a.enum.name)
	}

	return nil
}

// ValidateAny is like Validate but accepts any value convertible into a C.
// nil is blank.
//
// ValidateAny implements Association.
func (a *Attribute[C]) ValidateAny(v any) error {
	if a.flags.SkipValidation {
		return nil
	}

	if isNil(v) {
		var zero C
		return a.Validate(zero)
	}

	c, ok := convert[C](v)
	if !ok {
		return fmt.Errorf("%w: %s %T cannot be a code of %s", ErrNotValid, a.field, v, a.enum.name)
	}

	return a.Validate(c)
}

// Humanize returns the label of the Value stored as v.
// Review Enumeration.Humanize for the fallback.
func (a *Attribute[C]) Humanize(v C) string { return a.enum.Humanize(v) }

// HumanizeAny implements Association.
func (a *Attribute[C]) HumanizeAny(v any) string {
	if isNil(v) {
		return ""
	}

	return a.enum.HumanizeAny(v)
}

// Is asserts whether v is the Code declared for key.
// If key is not declared, Is is false.
func (a *Attribute[C]) Is(v C, key string) bool {
	code, err := a.enum.CodeFor(key)
	return err == nil && code == v
}

// Set returns the Code to store in the field for key.
func (a *Attribute[C]) Set(key string) (C, error) { return a.enum.CodeFor(key) }

// CodeAny implements Association.
func (a *Attribute[C]) CodeAny(key string) (any, error) { return a.enum.CodeFor(key) }

// Predicate returns a function asserting whether its argument is the Code declared for key.
func (a *Attribute[C]) Predicate(key string) (func(C) bool, error) {
	code, err := a.enum.CodeFor(key)
	if err != nil {
		return nil, err
	}

	return func(v C) bool { return v == code }, nil
}

// Predicates maps the HelperName of each Value to its predicate.
// If helpers are not enabled, Predicates returns nil.
func (a *Attribute[C]) Predicates() map[string]func(C) bool {
	if !a.flags.Helpers {
		return nil
	}

	preds := make(map[string]func(C) bool, a.enum.Len())
	for _, v := range a.enum.values {
		code := v.Code
		preds[a.HelperName(v.Key)] = func(c C) bool { return c == code }
	}

	return preds
}

// HelperName names the predicate for key:
//
//	"married" => "IsMarried"
//	"married" => "IsRelationshipStatusMarried" when prefixed
func (a *Attribute[C]) HelperName(key string) string {
	return "Is" + a.ScopeName(key)
}

// ScopeName names the query scope for key:
//
//	"married" => "Married"
//	"married" => "RelationshipStatusMarried" when prefixed
func (a *Attribute[C]) ScopeName(key string) string {
	name := Camelize(key)
	if a.flags.Prefix {
		name = Camelize(a.field) + name
	}

	return name
}

// ScopeCodes implements Association.
func (a *Attribute[C]) ScopeCodes() map[string]any {
	if !a.flags.Scopes {
		return map[string]any{}
	}

	codes := make(map[string]any, a.enum.Len())
	for _, v := range a.enum.values {
		codes[a.ScopeName(v.Key)] = v.Code
	}

	return codes
}

// ObjectName names the accessor for the behavior object,
// e.g. "RelationshipStatusObject".
// If a is not polymorphic, ObjectName is empty.
func (a *Attribute[C]) ObjectName() string {
	if !a.flags.Polymorphic {
		return ""
	}

	return Camelize(a.field) + Camelize(a.flags.Suffix)
}

// Object returns the behavior object declared for the Value stored as v.
//
// If a is not polymorphic, ErrNotValid returns.
func (a *Attribute[C]) Object(v C) (any, error) {
	if !a.flags.Polymorphic {
		return nil, fmt.Errorf("%w: %s is not polymorphic", ErrNotValid, a.field)
	}

	return a.enum.Behavior(v)
}

// Camelize joins the words of s, capitalizing the first letter of each:
//
//	"relationship_status" => "RelationshipStatus"
//	"RelationshipStatus" => "RelationshipStatus"
func Camelize(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})

	var b strings.Builder
	for _, w := range words {
		r := []rune(w)
		b.WriteString(strings.ToUpper(string(r[0])))
		b.WriteString(string(r[1:]))
	}

	return b.String()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
