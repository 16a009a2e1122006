package cast

import "fmt"

// Integer is the set of fixed width integer types handled by this package.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Exact converts v to the target type, failing when the numeric value is not
// exactly representable instead of silently truncating or changing sign.
func Exact[To, From Integer](v From) (To, error) {
	converted := To(v)
	if From(converted) != v || (converted < 0) != (v < 0) {
		var zero To
		return zero, fmt.Errorf("value %d is not exactly representable in %T", v, zero)
	}
	return converted, nil
}

// MustExact is Exact for conversions the caller asserts to be lossless.
// It panics on a conversion that would not preserve the value.
func MustExact[To, From Integer](v From) To {
	converted, err := Exact[To](v)
	if err != nil {
		panic("cast: " + err.Error())
	}
	return converted
}
