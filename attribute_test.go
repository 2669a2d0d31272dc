package enumerate_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/enumerate"
)

func TestNewAttribute(t *testing.T) {
	// Arrange
	e := newRelationshipStatus(t)

	// Act
	_, err := enumerate.NewAttribute("", e)

	// Assert
	require.ErrorIs(t, err, enumerate.ErrMissingData)

	// Act
	_, err = enumerate.NewAttribute[int]("RelationshipStatus", nil)

	// Assert
	require.ErrorIs(t, err, enumerate.ErrMissingData)

	// Act
	a, err := enumerate.NewAttribute("RelationshipStatus", e)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "RelationshipStatus", a.Field())
	require.Equal(t, "relationship_status", a.Column())
	require.Equal(t, e, a.Enum())
	require.Equal(t, enumerate.Flags{}, a.Flags())

	// Act
	a, err = enumerate.NewAttribute("RelationshipStatus", e, enumerate.WithColumn("status_cd"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, "status_cd", a.Column())
	require.Panics(t, func() { enumerate.MustAttribute("", e) })
}

func TestAttributeValidate(t *testing.T) {
	e := newRelationshipStatus(t)
	for _, tc := range []struct {
		name string
		opts []enumerate.AttributeOption
		v    int
		err  error
	}{
		{"declared", nil, 1, nil},
		{"not-declared", nil, 9, enumerate.ErrNotValid},
		{"blank-allowed", nil, 0, nil},
		{"blank-required", []enumerate.AttributeOption{enumerate.Required()}, 0, enumerate.ErrMissingData},
		{"declared-required", []enumerate.AttributeOption{enumerate.Required()}, 4, nil},
		{"skipped", []enumerate.AttributeOption{enumerate.SkipValidation()}, 9, nil},
		{"skipped-required", []enumerate.AttributeOption{enumerate.Required(), enumerate.SkipValidation()}, 0, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			a := enumerate.MustAttribute("RelationshipStatus", e, tc.opts...)

			// Act
			err := a.Validate(tc.v)

			// Assert
			require.ErrorIs(t, err, tc.err)
			if err != nil {
				require.Contains(t, err.Error(), "RelationshipStatus")
			}
		})
	}
}

func TestAttributeValidateDeclaredZero(t *testing.T) {
	// Arrange
	e := enumerate.MustNew("priority", []enumerate.Value[int]{
		{Key: "low", Code: 0},
		{Key: "high", Code: 1},
	})
	a := enumerate.MustAttribute("Priority", e, enumerate.Required())

	// Act + Assert
	require.Nil(t, a.Validate(0))
}

func TestAttributeValidateAny(t *testing.T) {
	e := newRelationshipStatus(t)
	one := 1
	var nilPtr *int
	for _, tc := range []struct {
		name     string
		required bool
		v        any
		err      error
	}{
		{"int64", false, int64(2), nil},
		{"pointer", false, &one, nil},
		{"nil", false, nil, nil},
		{"nil-pointer", false, nilPtr, nil},
		{"nil-required", true, nil, enumerate.ErrMissingData},
		{"wrong-type", false, "married", enumerate.ErrNotValid},
		{"overflow", false, uint64(1 << 63), enumerate.ErrNotValid},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var opts []enumerate.AttributeOption
			if tc.required {
				opts = append(opts, enumerate.Required())
			}
			a := enumerate.MustAttribute("RelationshipStatus", e, opts...)

			// Act
			err := a.ValidateAny(tc.v)

			// Assert
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestAttributeHumanize(t *testing.T) {
	// Arrange
	a := enumerate.MustAttribute("RelationshipStatus", newRelationshipStatus(t))

	// Act + Assert
	require.Equal(t, "Casado", a.Humanize(1))
	require.Equal(t, "12", a.Humanize(12))
	require.Equal(t, "Solteiro", a.HumanizeAny(int16(3)))
	require.Equal(t, "", a.HumanizeAny(nil))
}

func TestAttributeIs(t *testing.T) {
	a := enumerate.MustAttribute("RelationshipStatus", newRelationshipStatus(t))
	for _, tc := range []struct {
		name     string
		stored   int
		key      string
		expected bool
	}{
		{"match", 1, "married", true},
		{"other-value", 2, "married", false},
		{"blank", 0, "married", false},
		{"undeclared-value", 9, "married", false},
		{"unknown-key", 1, "engaged", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, a.Is(tc.stored, tc.key))
		})
	}
}

func TestAttributeSet(t *testing.T) {
	// Arrange
	a := enumerate.MustAttribute("RelationshipStatus", newRelationshipStatus(t))

	// Act
	code, err := a.Set("widowed")

	// Assert
	require.Nil(t, err)
	require.Equal(t, 4, code)

	// Act
	_, err = a.Set("engaged")

	// Assert
	require.ErrorIs(t, err, enumerate.ErrNotExist)

	// Act
	anyCode, err := a.CodeAny("single")

	// Assert
	require.Nil(t, err)
	require.Equal(t, 3, anyCode)
}

func TestAttributePredicates(t *testing.T) {
	// Arrange
	e := newRelationshipStatus(t)
	a := enumerate.MustAttribute("RelationshipStatus", e)

	// Act + Assert
	require.Nil(t, a.Predicates())

	isMarried, err := a.Predicate("married")
	require.Nil(t, err)
	require.True(t, isMarried(1))
	require.False(t, isMarried(3))

	_, err = a.Predicate("engaged")
	require.ErrorIs(t, err, enumerate.ErrNotExist)

	// Arrange
	a = enumerate.MustAttribute("RelationshipStatus", e, enumerate.WithHelpers())

	// Act
	preds := a.Predicates()

	// Assert
	require.Len(t, preds, 4)
	for _, code := range e.List() {
		key, err := e.KeyFor(code)
		require.Nil(t, err)

		pred, ok := preds[a.HelperName(key)]
		require.True(t, ok)
		for _, other := range e.List() {
			require.Equal(t, code == other, pred(other))
		}
	}
}

func TestAttributeNames(t *testing.T) {
	e := newRelationshipStatus(t)
	for _, tc := range []struct {
		name   string
		opts   []enumerate.AttributeOption
		helper string
		scope  string
		object string
	}{
		{"plain", nil, "IsMarried", "Married", ""},
		{"prefixed", []enumerate.AttributeOption{enumerate.WithPrefix()}, "IsRelationshipStatusMarried", "RelationshipStatusMarried", ""},
		{"polymorphic", []enumerate.AttributeOption{enumerate.WithPolymorphic("")}, "IsMarried", "Married", "RelationshipStatusObject"},
		{"polymorphic-suffix", []enumerate.AttributeOption{enumerate.WithPolymorphic("behavior")}, "IsMarried", "Married", "RelationshipStatusBehavior"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			a := enumerate.MustAttribute("RelationshipStatus", e, tc.opts...)

			// Act + Assert
			require.Equal(t, tc.helper, a.HelperName("married"))
			require.Equal(t, tc.scope, a.ScopeName("married"))
			require.Equal(t, tc.object, a.ObjectName())
		})
	}

	require.True(t, enumerate.MustAttribute("RelationshipStatus", e, enumerate.WithPrefix()).Flags().Helpers)
}

func TestAttributeScopeCodes(t *testing.T) {
	// Arrange
	e := newRelationshipStatus(t)

	// Act + Assert
	require.Empty(t, enumerate.MustAttribute("RelationshipStatus", e).ScopeCodes())
	require.Equal(
		t,
		map[string]any{"Single": 3, "Married": 1, "Divorced": 2, "Widowed": 4},
		enumerate.MustAttribute("RelationshipStatus", e, enumerate.WithScopes()).ScopeCodes(),
	)
}

func TestAttributeObject(t *testing.T) {
	// Arrange
	e := newRelationshipStatus(t)
	a := enumerate.MustAttribute("RelationshipStatus", e)

	// Act
	_, err := a.Object(1)

	// Assert
	require.ErrorIs(t, err, enumerate.ErrNotValid)

	// Arrange
	a = enumerate.MustAttribute("RelationshipStatus", e, enumerate.WithPolymorphic(""))

	// Act
	obj, err := a.Object(3)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "Hello, Miss", obj.(greeter).Greeting())
}

func TestCamelize(t *testing.T) {
	for _, tc := range []struct {
		val      string
		expected string
	}{
		{"", ""},
		{"married", "Married"},
		{"relationship_status", "RelationshipStatus"},
		{"RelationshipStatus", "RelationshipStatus"},
		{"in-progress", "InProgress"},
		{"état_civil", "ÉtatCivil"},
	} {
		t.Run(tc.val, func(t *testing.T) {
			require.Equal(t, tc.expected, enumerate.Camelize(tc.val))
		})
	}
}
