// Package definition declares Enumerations in YAML.
//
//	enumerations:
//	  - name: relationship_status
//	    type: integer
//	    sort: label
//	    values:
//	      - {key: married, code: 1, label: Married}
//	      - {key: single, code: 2}
//	  - name: tier
//	    values: [{key: gold}, {key: silver}]
//
// String Enumerations may omit codes; the key is used instead.
package definition

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xy-planning-network/enumerate"
	"gopkg.in/yaml.v3"
)

const (
	TypeInteger = "integer"
	TypeString  = "string"
)

// Types enumerates the kinds of codes a Definition may declare.
var Types = enumerate.MustNew("definition_type", []enumerate.Value[string]{
	{Key: TypeInteger, Code: TypeInteger},
	{Key: TypeString, Code: TypeString},
})

// A File is a set of Definitions.
type File struct {
	Enumerations []Definition `yaml:"enumerations"`
}

// A Definition declares one Enumeration.
type Definition struct {
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`
	Sort   string  `yaml:"sort"`
	Values []Value `yaml:"values"`
}

// A Value declares one member of an Enumeration.
type Value struct {
	Key   string    `yaml:"key"`
	Code  yaml.Node `yaml:"code"`
	Label string    `yaml:"label"`
}

// Parse decodes a File from r.
func Parse(r io.Reader) (File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("%w: decoding definitions: %s", enumerate.ErrNotValid, err)
	}

	return f, nil
}

// ParseFile decodes the File at path.
func ParseFile(path string) (File, error) {
	fd, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("%w: %s", enumerate.ErrNotExist, err)
	}
	defer fd.Close()

	return Parse(fd)
}

// Build constructs every Enumeration f declares.
// opts apply to each; a Definition's sort overrides any WithSort in opts.
func (f File) Build(opts ...enumerate.Option) ([]enumerate.Describer, error) {
	ds := make([]enumerate.Describer, 0, len(f.Enumerations))
	for _, def := range f.Enumerations {
		d, err := def.Build(opts...)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}

	return ds, nil
}

// Register builds every Enumeration f declares and adds them to reg.
func (f File) Register(reg *enumerate.Registry, opts ...enumerate.Option) error {
	ds, err := f.Build(opts...)
	if err != nil {
		return err
	}

	for _, d := range ds {
		if err := reg.Register(d); err != nil {
			return err
		}
	}

	return nil
}

// Build constructs the Enumeration def declares:
// an *enumerate.Enumeration[int] for TypeInteger,
// an *enumerate.Enumeration[string] otherwise.
func (def Definition) Build(opts ...enumerate.Option) (enumerate.Describer, error) {
	typ := def.Type
	if typ == "" {
		typ = TypeString
	}

	if err := Types.Valid(typ); err != nil {
		return nil, fmt.Errorf("%w: enumeration %s has type %q", enumerate.ErrNotValid, def.Name, def.Type)
	}

	if def.Sort != "" {
		sort, err := enumerate.ParseSortBy(def.Sort)
		if err != nil {
			return nil, fmt.Errorf("enumeration %s: %w", def.Name, err)
		}
		opts = append(opts, enumerate.WithSort(sort))
	}

	if typ == TypeInteger {
		return build[int](def, opts)
	}

	return build[string](def, opts)
}

func build[C enumerate.Code](def Definition, opts []enumerate.Option) (enumerate.Describer, error) {
	vals := make([]enumerate.Value[C], len(def.Values))
	for i, v := range def.Values {
		code, err := decodeCode[C](v)
		if err != nil {
			return nil, fmt.Errorf("enumeration %s: %w", def.Name, err)
		}

		vals[i] = enumerate.Value[C]{Key: v.Key, Code: code, Label: v.Label}
	}

	return enumerate.New(def.Name, vals, opts...)
}

// decodeCode reads the code of v.
// An omitted code of a string Enumeration is its key.
func decodeCode[C enumerate.Code](v Value) (C, error) {
	var code C
	if v.Code.Kind == 0 {
		if s, ok := any(v.Key).(C); ok {
			return s, nil
		}

		return code, fmt.Errorf("%w: %q has no code", enumerate.ErrMissingData, v.Key)
	}

	if err := v.Code.Decode(&code); err != nil {
		return code, fmt.Errorf("%w: %q has code %q: %s", enumerate.ErrNotValid, v.Key, v.Code.Value, err)
	}

	return code, nil
}

// Attribute associates field with d, an Enumeration Build constructed.
//
// If d is not an Enumeration of one of the Types, ErrNotValid returns.
func Attribute(field string, d enumerate.Describer, opts ...enumerate.AttributeOption) (enumerate.Association, error) {
	switch e := d.(type) {
	case *enumerate.Enumeration[int]:
		return enumerate.NewAttribute(field, e, opts...)
	case *enumerate.Enumeration[string]:
		return enumerate.NewAttribute(field, e, opts...)
	default:
		return nil, fmt.Errorf("%w: %T is not a defined enumeration", enumerate.ErrNotValid, d)
	}
}
