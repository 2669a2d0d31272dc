package enumerate

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/xy-planning-network/enumerate/logger"
)

// A Registry holds Enumerations by name
// and the Associations made between struct types and Enumerations.
//
// Registration generally happens once, when a program initializes;
// lookups happen for the rest of its life.
// A Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	enums  map[string]Describer
	assocs map[reflect.Type][]Association
	log    logger.Logger
}

// A RegistryOption configures a *Registry.
type RegistryOption func(*Registry)

// WithLogger sets the Logger a *Registry logs registrations with.
// By default, a *Registry discards logs.
func WithLogger(l logger.Logger) RegistryOption {
	return func(r *Registry) {
		if sl, ok := l.(logger.SkipLogger); ok {
			// NOTE: log the call site of Register or Associate, not the Registry.
			l = sl.AddSkip(sl.Skip() + 1)
		}

		r.log = l
	}
}

// NewRegistry constructs an empty *Registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		enums:  make(map[string]Describer),
		assocs: make(map[reflect.Type][]Association),
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Default is the *Registry used by the package-level Register, Lookup and Associate.
var Default = NewRegistry()

// Register adds d to Default.
func Register(d Describer) error { return Default.Register(d) }

// Lookup retrieves the Describer named name from Default.
func Lookup(name string) (Describer, error) { return Default.Lookup(name) }

// Associate records the Association of a field on model's struct type in Default.
func Associate(model any, a Association) error { return Default.Associate(model, a) }

// Register adds d, under its name.
//
// If d is nil, ErrMissingData returns.
// If a Describer with the same name is already registered, ErrExists returns.
func (r *Registry) Register(d Describer) error {
	if v := reflect.ValueOf(d); d == nil || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return fmt.Errorf("%w: cannot register a nil enumeration", ErrMissingData)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.enums[d.Name()]; ok {
		return fmt.Errorf("%w: enumeration %s already registered", ErrExists, d.Name())
	}

	r.enums[d.Name()] = d
	r.log.Debug("registered enumeration", &logger.LogContext{
		Data: map[string]any{"name": d.Name(), "values": d.Len()},
	})

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(ds ...Describer) {
	for _, d := range ds {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
}

// Lookup retrieves the Describer registered as name.
//
// If none is, ErrNotExist returns.
func (r *Registry) Lookup(name string) (Describer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.enums[name]
	if !ok {
		return nil, fmt.Errorf("%w: enumeration %s", ErrNotExist, name)
	}

	return d, nil
}

// Names lists the names of every registered Describer, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.enums))
	for name := range r.enums {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Associate records that the field a names on model's struct type
// is backed by a's Enumeration.
// model may be a struct, a pointer to one or a reflect.Type of either.
//
// If model is not a struct, or a's field does not exist or is unexported on it, ErrNotValid returns.
// If the field is already associated, ErrExists returns.
func (r *Registry) Associate(model any, a Association) error {
	if a == nil {
		return fmt.Errorf("%w: cannot associate a nil attribute", ErrMissingData)
	}

	t, err := structType(model)
	if err != nil {
		return err
	}

	sf, ok := t.FieldByName(a.Field())
	if !ok {
		return fmt.Errorf("%w: %s has no field %s", ErrNotValid, t, a.Field())
	}

	if !sf.IsExported() {
		return fmt.Errorf("%w: %s.%s is unexported", ErrNotValid, t, a.Field())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.assocs[t] {
		if existing.Field() == a.Field() {
			return fmt.Errorf("%w: %s.%s already associated", ErrExists, t, a.Field())
		}
	}

	r.assocs[t] = append(r.assocs[t], a)
	slices.SortStableFunc(r.assocs[t], func(x, y Association) int {
		xf, _ := t.FieldByName(x.Field())
		yf, _ := t.FieldByName(y.Field())
		return slices.Compare(xf.Index, yf.Index)
	})

	r.log.Debug("associated enumeration", &logger.LogContext{
		Data: map[string]any{
			"type":        t.String(),
			"field":       a.Field(),
			"enumeration": a.Enumeration().Name(),
		},
	})

	return nil
}

// Associations lists the Associations recorded for model's struct type, in field order.
func (r *Registry) Associations(model any) []Association {
	t, err := structType(model)
	if err != nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.assocs[t])
}

// Association retrieves the Association recorded for field on model's struct type.
//
// If none is, ErrNotExist returns.
func (r *Registry) Association(model any, field string) (Association, error) {
	for _, a := range r.Associations(model) {
		if a.Field() == field {
			return a, nil
		}
	}

	return nil, fmt.Errorf("%w: no association for %T.%s", ErrNotExist, model, field)
}

// ValidateModel validates every associated field on model,
// which must be a struct or a pointer to one.
// All failures are joined into the returned error.
func (r *Registry) ValidateModel(model any) error {
	rv := reflect.ValueOf(model)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("%w: cannot validate a nil %T", ErrMissingData, model)
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T is not a struct", ErrNotValid, model)
	}

	var errs []error
	for _, a := range r.Associations(rv.Type()) {
		if err := a.ValidateAny(FieldValue(rv, a.Field())); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Humanize humanizes the value of field on model through its Association.
func (r *Registry) Humanize(model any, field string) (string, error) {
	a, err := r.Association(model, field)
	if err != nil {
		return "", err
	}

	rv := reflect.ValueOf(model)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", fmt.Errorf("%w: cannot humanize a nil %T", ErrMissingData, model)
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return "", fmt.Errorf("%w: %T is not a struct", ErrNotValid, model)
	}

	return a.HumanizeAny(FieldValue(rv, field)), nil
}

// FieldValue reads field off the struct rv.
// A field promoted through a nil embedded pointer reads as nil,
// as does a field rv does not have.
func FieldValue(rv reflect.Value, field string) any {
	sf, ok := rv.Type().FieldByName(field)
	if !ok {
		return nil
	}

	fv, err := rv.FieldByIndexErr(sf.Index)
	if err != nil {
		return nil
	}

	return fv.Interface()
}

func structType(model any) (reflect.Type, error) {
	t, ok := model.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(model)
	}

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v is not a struct", ErrNotValid, t)
	}

	return t, nil
}
