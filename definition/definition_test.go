package definition_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/enumerate"
	"github.com/xy-planning-network/enumerate/definition"
)

func TestParseFile(t *testing.T) {
	// Arrange + Act
	f, err := definition.ParseFile("testdata/enumerations.yml")

	// Assert
	require.Nil(t, err)
	require.Len(t, f.Enumerations, 2)
	require.Equal(t, "relationship_status", f.Enumerations[0].Name)
	require.Len(t, f.Enumerations[1].Values, 3)

	// Arrange + Act
	_, err = definition.ParseFile("testdata/missing.yml")

	// Assert
	require.ErrorIs(t, err, enumerate.ErrNotExist)
}

func TestFileRegister(t *testing.T) {
	// Arrange
	f, err := definition.ParseFile("testdata/enumerations.yml")
	require.Nil(t, err)
	reg := enumerate.NewRegistry()

	// Act
	err = f.Register(reg)

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"relationship_status", "tier"}, reg.Names())

	d, err := reg.Lookup("relationship_status")
	require.Nil(t, err)

	status, ok := d.(*enumerate.Enumeration[int])
	require.True(t, ok)
	require.Equal(t, []int{1, 2, 3}, status.List())
	require.Equal(t, enumerate.SortLabel, status.SortBy())
	require.Equal(t, "Divorced", status.Humanize(2))

	d, err = reg.Lookup("tier")
	require.Nil(t, err)

	tier, ok := d.(*enumerate.Enumeration[string])
	require.True(t, ok)
	require.Equal(t, []string{"BRZ", "gold", "silver"}, tier.List())
	require.Equal(t, "Gold", tier.Humanize("gold"))
	require.Equal(t, "Bronze", tier.Humanize("BRZ"))

	// Act
	err = f.Register(reg)

	// Assert
	require.ErrorIs(t, err, enumerate.ErrExists)
}

func TestDefinitionBuildErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		yaml string
		err  error
	}{
		{"not-yaml", "enumerations: [", enumerate.ErrNotValid},
		{"bad-type", "enumerations:\n  - {name: a, type: float, values: [{key: x, code: 1}]}", enumerate.ErrNotValid},
		{"bad-sort", "enumerations:\n  - {name: a, sort: up, values: [{key: x}]}", enumerate.ErrNotValid},
		{"int-without-code", "enumerations:\n  - {name: a, type: integer, values: [{key: x}]}", enumerate.ErrMissingData},
		{"int-bad-code", "enumerations:\n  - {name: a, type: integer, values: [{key: x, code: one}]}", enumerate.ErrNotValid},
		{"no-values", "enumerations:\n  - {name: a}", enumerate.ErrMissingData},
		{"duplicate-key", "enumerations:\n  - {name: a, values: [{key: x}, {key: x}]}", enumerate.ErrExists},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			f, err := definition.Parse(strings.NewReader(tc.yaml))
			if err == nil {
				_, err = f.Build()
			}

			// Assert
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	// Arrange + Act
	f, err := definition.Parse(strings.NewReader(""))

	// Assert
	require.Nil(t, err)
	require.Empty(t, f.Enumerations)
}

func TestAttribute(t *testing.T) {
	// Arrange
	f, err := definition.ParseFile("testdata/enumerations.yml")
	require.Nil(t, err)
	ds, err := f.Build()
	require.Nil(t, err)

	// Act
	status, err := definition.Attribute("RelationshipStatus", ds[0], enumerate.Required())

	// Assert
	require.Nil(t, err)
	require.Equal(t, "relationship_status", status.Column())
	require.Nil(t, status.ValidateAny(3))
	require.ErrorIs(t, status.ValidateAny(0), enumerate.ErrMissingData)

	// Act
	tier, err := definition.Attribute("Tier", ds[1])

	// Assert
	require.Nil(t, err)
	require.Nil(t, tier.ValidateAny("BRZ"))

	// Act
	_, err = definition.Attribute("Tier", nil)

	// Assert
	require.ErrorIs(t, err, enumerate.ErrNotValid)
}
