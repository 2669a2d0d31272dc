package template

import (
	"fmt"
	html "html/template"
	"net/url"

	"github.com/xy-planning-network/enumerate"
	"github.com/xy-planning-network/enumerate/config"
	"golang.org/x/text/language"
)

// An Option is one <option> of a <select> built from an Enumeration.
type Option struct {
	Value    any
	Label    string
	Selected bool
}

// Funcs builds the function map for rendering enumerated values,
// labelled for tag, drawing Enumerations from reg.
// If reg is nil, enumerate.Default is used.
// If tag is language.Und, each Enumeration's own locale is used.
//
//	{{ humanize "relationship_status" .Person.RelationshipStatus }}
//
//	<select name="tier">
//	{{ range enumOptions "tier" .Person.Tier }}
//		<option value="{{ .Value }}" {{ if .Selected }}selected{{ end }}>{{ .Label }}</option>
//	{{ end }}
//	</select>
//
// enumOptions matches the selected value by its printed form,
// so a code matches the string submitted for it in a form.
func Funcs(reg *enumerate.Registry, tag language.Tag) html.FuncMap {
	if reg == nil {
		reg = enumerate.Default
	}

	entries := func(d enumerate.Describer) []enumerate.Entry {
		if tag == language.Und {
			return d.Entries(d.SortBy())
		}

		return d.EntriesIn(tag, d.SortBy())
	}

	return html.FuncMap{
		"humanize": func(name string, v any) (string, error) {
			d, err := reg.Lookup(name)
			if err != nil {
				return "", err
			}

			if tag == language.Und {
				return d.HumanizeAny(v), nil
			}

			return d.HumanizeAnyIn(tag, v), nil
		},
		"enumOptions": func(name string, selected any) ([]Option, error) {
			d, err := reg.Lookup(name)
			if err != nil {
				return nil, err
			}

			es := entries(d)
			opts := make([]Option, len(es))
			for i, e := range es {
				opts[i] = Option{
					Value:    e.Value,
					Label:    e.Label,
					Selected: selected != nil && fmt.Sprint(e.Value) == fmt.Sprint(selected),
				}
			}

			return opts, nil
		},
	}
}

// Env encloses some string representing an environment.
// It returns "env" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func Env(e config.Environment) (string, func() string) {
	return "env", func() string { return e.String() }
}

// RootUrl encloses the *url.URL representing the base URL of the web app.
// It returns "rootUrl" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning its *url.URL.String().
// If u is nil, that function will always return an empty string.
func RootUrl(u *url.URL) (string, func() string) {
	if u == nil {
		return "rootUrl", func() string { return "" }
	}

	s := u.String()
	return "rootUrl", func() string { return s }
}
