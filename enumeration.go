package enumerate

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// An Entry is a row listing a member of an Enumeration
// without exposing the type of its Code.
type Entry struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	Label string `json:"label"`
}

// A Describer is the view of an Enumeration that does not depend on the type of its codes.
//
// Registries, validators and HTTP handlers work with Describers.
type Describer interface {
	Name() string
	Len() int
	Keys() []string
	SortBy() SortBy

	// Entries lists the members in the order sort dictates,
	// labeled in the Describer's locale.
	Entries(sort SortBy) []Entry

	// EntriesIn lists the members in the order sort dictates,
	// labeled in the locale tag.
	EntriesIn(tag language.Tag, sort SortBy) []Entry

	// HumanizeAny humanizes code if it is convertible into the Describer's Code type.
	HumanizeAny(code any) string

	// HumanizeAnyIn is like HumanizeAny but labels in the locale tag.
	HumanizeAnyIn(tag language.Tag, code any) string

	// ValidAny asserts code is convertible into the Describer's Code type
	// and declared.
	ValidAny(code any) error
}

var _ Describer = (*Enumeration[int])(nil)

// An Enumeration is a closed, ordered set of Values.
//
// An Enumeration is immutable once constructed and safe for concurrent use.
type Enumeration[C Code] struct {
	name       string
	values     []Value[C]
	byKey      map[string]int
	byCode     map[C]int
	sort       SortBy
	locale     language.Tag
	translator Translator
}

// An Option configures an Enumeration when constructing one with New.
type Option func(*options)

type options struct {
	sort       SortBy
	locale     language.Tag
	translator Translator
}

// WithSort sets the order Entries and MarshalJSON list members in.
// The default is SortNone, that is, declaration order.
func WithSort(sort SortBy) Option {
	return func(o *options) { o.sort = sort }
}

// WithLocale sets the locale labels are resolved in.
// The default is DefaultLocale.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// WithTranslator sets the Translator resolving labels for Values declared without one.
func WithTranslator(t Translator) Option {
	return func(o *options) { o.translator = t }
}

// New constructs an *Enumeration named name from values.
// Declaration order is preserved.
//
// If name is empty, values is empty or a Value has no Key, ErrMissingData returns.
// If two Values share a Key or a Code, ErrExists returns.
// If the configured SortBy is unknown, ErrNotValid returns.
func New[C Code](name string, values []Value[C], opts ...Option) (*Enumeration[C], error) {
	o := options{sort: SortNone, locale: DefaultLocale}
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.sort.Valid(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: enumeration has no name", ErrMissingData)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%w: enumeration %s has no values", ErrMissingData, name)
	}

	e := &Enumeration[C]{
		name:       name,
		values:     make([]Value[C], len(values)),
		byKey:      make(map[string]int, len(values)),
		byCode:     make(map[C]int, len(values)),
		sort:       o.sort,
		locale:     o.locale,
		translator: o.translator,
	}

	for i, v := range values {
		if v.Key == "" {
			return nil, fmt.Errorf("%w: enumeration %s has a value without a key", ErrMissingData, name)
		}

		if _, ok := e.byKey[v.Key]; ok {
			return nil, fmt.Errorf("%w: enumeration %s declares key %q twice", ErrExists, name, v.Key)
		}

		if j, ok := e.byCode[v.Code]; ok {
			return nil, fmt.Errorf(
				"%w: enumeration %s declares code %v for both %q and %q",
				ErrExists, name, v.Code, values[j].Key, v.Key,
			)
		}

		e.values[i] = v
		e.byKey[v.Key] = i
		e.byCode[v.Code] = i
	}

	return e, nil
}

// MustNew is like New but panics if the *Enumeration cannot be constructed.
// MustNew simplifies initializing package-level variables.
func MustNew[C Code](name string, values []Value[C], opts ...Option) *Enumeration[C] {
	e, err := New(name, values, opts...)
	if err != nil {
		panic(err)
	}

	return e
}

// Name returns the name of e.
func (e *Enumeration[C]) Name() string { return e.name }

// Len returns the number of Values in e.
func (e *Enumeration[C]) Len() int { return len(e.values) }

// SortBy returns the order Entries are listed in by default.
func (e *Enumeration[C]) SortBy() SortBy { return e.sort }

// Locale returns the locale labels are resolved in.
func (e *Enumeration[C]) Locale() language.Tag { return e.locale }

// List returns every declared Code, sorted ascending.
func (e *Enumeration[C]) List() []C {
	codes := make([]C, len(e.values))
	for i, v := range e.values {
		codes[i] = v.Code
	}
	slices.Sort(codes)

	return codes
}

// Keys returns every declared Key in declaration order.
func (e *Enumeration[C]) Keys() []string {
	keys := make([]string, len(e.values))
	for i, v := range e.values {
		keys[i] = v.Key
	}

	return keys
}

// Values returns a copy of every Value in declaration order.
// Labels are resolved.
func (e *Enumeration[C]) Values() []Value[C] {
	vals := make([]Value[C], len(e.values))
	for i, v := range e.values {
		v.Label = e.label(e.locale, v)
		vals[i] = v
	}

	return vals
}

// Sorted returns a copy of every Value in the order e is configured to sort by.
// Labels are resolved.
func (e *Enumeration[C]) Sorted() []Value[C] {
	return e.sorted(e.locale, e.sort)
}

// Entries lists the Values of e in the order sort dictates.
func (e *Enumeration[C]) Entries(sort SortBy) []Entry {
	return e.EntriesIn(e.locale, sort)
}

// EntriesIn lists the Values of e in the order sort dictates,
// resolving labels in the locale tag.
// An unknown sort lists in declaration order.
func (e *Enumeration[C]) EntriesIn(tag language.Tag, sort SortBy) []Entry {
	vals := e.sorted(tag, sort)
	entries := make([]Entry, len(vals))
	for i, v := range vals {
		entries[i] = Entry{Key: v.Key, Value: v.Code, Label: v.Label}
	}

	return entries
}

func (e *Enumeration[C]) sorted(tag language.Tag, sort SortBy) []Value[C] {
	vals := make([]Value[C], len(e.values))
	for i, v := range e.values {
		v.Label = e.label(tag, v)
		vals[i] = v
	}

	switch sort {
	case SortValue:
		slices.SortStableFunc(vals, func(a, b Value[C]) int {
			switch {
			case a.Code < b.Code:
				return -1
			case a.Code > b.Code:
				return 1
			default:
				return 0
			}
		})

	case SortKey:
		slices.SortStableFunc(vals, func(a, b Value[C]) int { return strings.Compare(a.Key, b.Key) })

	case SortLabel:
		col := collate.New(tag)
		slices.SortStableFunc(vals, func(a, b Value[C]) int { return col.CompareString(a.Label, b.Label) })
	}

	return vals
}

// Lookup retrieves the Value declared for key.
// Its Label is resolved.
func (e *Enumeration[C]) Lookup(key string) (Value[C], error) {
	i, ok := e.byKey[key]
	if !ok {
		return Value[C]{}, fmt.Errorf("%w: %s has no key %q", ErrNotExist, e.name, key)
	}

	v := e.values[i]
	v.Label = e.label(e.locale, v)
	return v, nil
}

// ValueOf retrieves the Value declared with code.
// Its Label is resolved.
func (e *Enumeration[C]) ValueOf(code C) (Value[C], error) {
	i, ok := e.byCode[code]
	if !ok {
		return Value[C]{}, fmt.Errorf("%w: %s has no code %v", ErrNotExist, e.name, code)
	}

	v := e.values[i]
	v.Label = e.label(e.locale, v)
	return v, nil
}

// CodeFor returns the Code declared for key.
func (e *Enumeration[C]) CodeFor(key string) (C, error) {
	i, ok := e.byKey[key]
	if !ok {
		var zero C
		return zero, fmt.Errorf("%w: %s has no key %q", ErrNotExist, e.name, key)
	}

	return e.values[i].Code, nil
}

// CodesFor returns the Codes declared for keys, in the same order.
// If any key is not declared, CodesFor returns ErrNotExist.
func (e *Enumeration[C]) CodesFor(keys ...string) ([]C, error) {
	codes := make([]C, 0, len(keys))
	for _, key := range keys {
		code, err := e.CodeFor(key)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}

	return codes, nil
}

// KeyFor returns the Key declared for code.
func (e *Enumeration[C]) KeyFor(code C) (string, error) {
	i, ok := e.byCode[code]
	if !ok {
		return "", fmt.Errorf("%w: %s has no code %v", ErrNotExist, e.name, code)
	}

	return e.values[i].Key, nil
}

// Has asserts whether code is declared in e.
func (e *Enumeration[C]) Has(code C) bool {
	_, ok := e.byCode[code]
	return ok
}

// Valid returns ErrNotValid if code is not declared in e.
func (e *Enumeration[C]) Valid(code C) error {
	if !e.Has(code) {
		return fmt.Errorf("%w: %v is not included in %s", ErrNotValid, code, e.name)
	}

	return nil
}

// ValidAny asserts whether code converts into a C and is declared in e.
//
// ValidAny implements Describer.
func (e *Enumeration[C]) ValidAny(code any) error {
	c, ok := convert[C](code)
	if !ok {
		return fmt.Errorf("%w: %T cannot be a code of %s", ErrNotValid, code, e.name)
	}

	return e.Valid(c)
}

// Humanize returns the label declared for code.
// If code is not declared, Humanize falls back to formatting code with fmt.Sprint.
func (e *Enumeration[C]) Humanize(code C) string {
	return e.HumanizeIn(e.locale, code)
}

// HumanizeIn is like Humanize but resolves the label in the locale tag.
func (e *Enumeration[C]) HumanizeIn(tag language.Tag, code C) string {
	i, ok := e.byCode[code]
	if !ok {
		return fmt.Sprint(code)
	}

	return e.label(tag, e.values[i])
}

// HumanizeAny humanizes code when it converts into a C,
// otherwise it formats code with fmt.Sprint.
//
// HumanizeAny implements Describer.
func (e *Enumeration[C]) HumanizeAny(code any) string {
	c, ok := convert[C](code)
	if !ok {
		return fmt.Sprint(code)
	}

	return e.Humanize(c)
}

// HumanizeAnyIn is like HumanizeAny but resolves the label in the locale tag.
//
// HumanizeAnyIn implements Describer.
func (e *Enumeration[C]) HumanizeAnyIn(tag language.Tag, code any) string {
	c, ok := convert[C](code)
	if !ok {
		return fmt.Sprint(code)
	}

	return e.HumanizeIn(tag, c)
}

// Label returns the label of the Value declared for key.
func (e *Enumeration[C]) Label(key string) (string, error) {
	i, ok := e.byKey[key]
	if !ok {
		return "", fmt.Errorf("%w: %s has no key %q", ErrNotExist, e.name, key)
	}

	return e.label(e.locale, e.values[i]), nil
}

// label resolves the label of v:
// first the declared Label, then the Translator, last the humanized Key.
func (e *Enumeration[C]) label(tag language.Tag, v Value[C]) string {
	if v.Label != "" {
		return v.Label
	}

	if e.translator != nil {
		if l, ok := e.translator.Translate(tag, e.name, v.Key); ok {
			return l
		}
	}

	return Humanize(v.Key)
}

// Index returns the position key was declared at.
// If key is not declared, Index returns -1.
func (e *Enumeration[C]) Index(key string) int {
	i, ok := e.byKey[key]
	if !ok {
		return -1
	}

	return i
}

// Next returns the Code declared after code.
// If code is not declared or is the last declared, ok is false.
func (e *Enumeration[C]) Next(code C) (next C, ok bool) {
	i, found := e.byCode[code]
	if !found || i == len(e.values)-1 {
		return next, false
	}

	return e.values[i+1].Code, true
}

// Prev returns the Code declared before code.
// If code is not declared or is the first declared, ok is false.
func (e *Enumeration[C]) Prev(code C) (prev C, ok bool) {
	i, found := e.byCode[code]
	if !found || i == 0 {
		return prev, false
	}

	return e.values[i-1].Code, true
}

// Bounds returns the lowest and highest Codes declared in e.
func (e *Enumeration[C]) Bounds() (lo, hi C) {
	lo, hi = e.values[0].Code, e.values[0].Code
	for _, v := range e.values[1:] {
		lo = min(lo, v.Code)
		hi = max(hi, v.Code)
	}

	return lo, hi
}

// Behavior returns the behavior object declared with code.
//
// If code is not declared, ErrNotExist returns.
// If no behavior was declared with code, ErrMissingData returns.
func (e *Enumeration[C]) Behavior(code C) (any, error) {
	i, ok := e.byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no code %v", ErrNotExist, e.name, code)
	}

	b := e.values[i].Behavior
	if b == nil {
		return nil, fmt.Errorf("%w: %s.%s has no behavior", ErrMissingData, e.name, e.values[i].Key)
	}

	return b, nil
}

// BehaviorAs returns the behavior object declared with code as a B.
// If the behavior is not a B, ErrNotValid returns.
func BehaviorAs[B any, C Code](e *Enumeration[C], code C) (B, error) {
	var zero B
	b, err := e.Behavior(code)
	if err != nil {
		return zero, err
	}

	typed, ok := b.(B)
	if !ok {
		return zero, fmt.Errorf("%w: behavior %T is not %T", ErrNotValid, b, zero)
	}

	return typed, nil
}

// MarshalJSON renders the Entries of e in its configured sort.
//
// MarshalJSON implements json.Marshaler.
func (e *Enumeration[C]) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Entries(e.sort))
}

// String stringifies e as its name.
func (e *Enumeration[C]) String() string { return e.name }
