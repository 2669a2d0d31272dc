package enumerate

import "reflect"

// convert casts v into a C.
// Besides v being a C, convert accepts values of the same kind family,
// e.g. an int64 read from a database for an Enumeration[int]
// or a named string type for an Enumeration[string].
// Conversions that would overflow or cross families, like int to string, fail.
func convert[C Code](v any) (C, bool) {
	var zero C
	if c, ok := v.(C); ok {
		return c, true
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return zero, false
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}

	dest := reflect.New(reflect.TypeOf(zero)).Elem()
	switch {
	case isInt(rv.Kind()) && isInt(dest.Kind()):
		if dest.OverflowInt(rv.Int()) {
			return zero, false
		}
		dest.SetInt(rv.Int())

	case isUint(rv.Kind()) && isUint(dest.Kind()):
		if dest.OverflowUint(rv.Uint()) {
			return zero, false
		}
		dest.SetUint(rv.Uint())

	case isInt(rv.Kind()) && isUint(dest.Kind()):
		if rv.Int() < 0 || dest.OverflowUint(uint64(rv.Int())) {
			return zero, false
		}
		dest.SetUint(uint64(rv.Int()))

	case isUint(rv.Kind()) && isInt(dest.Kind()):
		if rv.Uint() > 1<<63-1 || dest.OverflowInt(int64(rv.Uint())) {
			return zero, false
		}
		dest.SetInt(int64(rv.Uint()))

	case isFloat(rv.Kind()) && isFloat(dest.Kind()):
		dest.SetFloat(rv.Float())

	case rv.Kind() == reflect.String && dest.Kind() == reflect.String:
		dest.SetString(rv.String())

	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 && dest.Kind() == reflect.String:
		// NOTE: some database drivers scan text columns as []byte.
		dest.SetString(string(rv.Bytes()))

	default:
		return zero, false
	}

	c, ok := dest.Interface().(C)
	return c, ok
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUint(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func isFloat(k reflect.Kind) bool { return k == reflect.Float32 || k == reflect.Float64 }
