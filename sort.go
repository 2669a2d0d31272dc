package enumerate

import "fmt"

// SortBy names the order an Enumeration lists its Entries in.
type SortBy string

const (
	SortNone  SortBy = "none"
	SortValue SortBy = "value"
	SortKey   SortBy = "key"
	SortLabel SortBy = "label"
)

// String stringifies the SortBy.
//
// String implements fmt.Stringer.
func (s SortBy) String() string { return string(s) }

// Valid asserts whether s is a known SortBy.
func (s SortBy) Valid() error {
	switch s {
	case SortNone, SortValue, SortKey, SortLabel:
		return nil
	default:
		return fmt.Errorf("%w: sort %q", ErrNotValid, string(s))
	}
}

// ParseSortBy casts s into a SortBy.
// An empty string is SortNone.
func ParseSortBy(s string) (SortBy, error) {
	if s == "" {
		return SortNone, nil
	}

	sb := SortBy(s)
	if err := sb.Valid(); err != nil {
		return "", err
	}

	return sb, nil
}
