package req

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/enumerate"
	"github.com/xy-planning-network/enumerate/validate"
)

// translateDecoderError converts an error returned by *schema.Decoder into standardized errors.
// Some *schema.Decoder errors are issues with calling code;
// still some are issues with mismatches between a request's query params and the expected shape.
func translateDecoderError(err error) error {
	var pkgErrs schema.MultiError
	if !errors.As(err, &pkgErrs) {
		return fmt.Errorf("%w: %s", enumerate.ErrNotValid, err)
	}

	var validErrs validate.ValidationErrors
	for _, pkgErr := range pkgErrs {
		switch err := pkgErr.(type) {
		case schema.ConversionError:
			validErrs = append(validErrs, validate.ValidationError{
				Field: err.Key,
				Got:   fmt.Sprintf("bad value at index %d", max(0, err.Index)),
				Rule:  "must be " + err.Type.String(),
			})

		case schema.UnknownKeyError:
			validErrs = append(validErrs, validate.ValidationError{
				Field: err.Key,
				Got:   "value is set",
				Rule:  "unexpected key should not be set",
			})

		default:
			// NOTE: anything else is a struct misconfigured for decoding; a programming error.
			return fmt.Errorf("%w: %s", enumerate.ErrUnexpected, err)
		}
	}

	// NOTE: MultiError is a map.
	sort.Slice(validErrs, func(i, j int) bool { return validErrs[i].Field < validErrs[j].Field })

	return validErrs
}
