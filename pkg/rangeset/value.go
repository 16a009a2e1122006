package rangeset

import "math"

// Value is the contract an element type must satisfy to be usable as a set
// element: a strict total order over a discrete domain with inclusive bounds.
// All methods are pure. MinValue and MaxValue ignore their receiver.
type Value[T any] interface {
	// MinValue returns the inclusive lower bound of the domain.
	MinValue() T
	// MaxValue returns the inclusive upper bound of the domain.
	MaxValue() T
	// Next returns the value following the receiver.
	// The receiver must be less than MaxValue.
	Next() T
	// Prev returns the value before the receiver.
	// The receiver must be greater than MinValue.
	Prev() T
	// Less reports whether the receiver sorts before the given value.
	Less(T) bool
	// Distance returns the number of values in [receiver, v).
	// The receiver must not be greater than v.
	Distance(v T) uint64
}

func equal[T Value[T]](a, b T) bool {
	return !a.Less(b) && !b.Less(a)
}

func inDomain[T Value[T]](v T) bool {
	return !v.Less(v.MinValue()) && !v.MaxValue().Less(v)
}

// Int32 is a set element covering the full int32 range.
type Int32 int32

func (Int32) MinValue() Int32 { return math.MinInt32 }
func (Int32) MaxValue() Int32 { return math.MaxInt32 }

func (v Int32) Next() Int32 {
	check(v < math.MaxInt32, "Int32.Next: no successor for the domain maximum")
	return v + 1
}

func (v Int32) Prev() Int32 {
	check(v > math.MinInt32, "Int32.Prev: no predecessor for the domain minimum")
	return v - 1
}

func (v Int32) Less(o Int32) bool { return v < o }

func (v Int32) Distance(o Int32) uint64 {
	check(v <= o, "Int32.Distance: receiver exceeds the argument")
	return uint64(int64(o) - int64(v))
}

// Int64 is a set element covering the full int64 range.
type Int64 int64

func (Int64) MinValue() Int64 { return math.MinInt64 }
func (Int64) MaxValue() Int64 { return math.MaxInt64 }

func (v Int64) Next() Int64 {
	check(v < math.MaxInt64, "Int64.Next: no successor for the domain maximum")
	return v + 1
}

func (v Int64) Prev() Int64 {
	check(v > math.MinInt64, "Int64.Prev: no predecessor for the domain minimum")
	return v - 1
}

func (v Int64) Less(o Int64) bool { return v < o }

// Distance relies on two's complement wraparound: the unsigned difference is
// exact even when o-v overflows int64.
func (v Int64) Distance(o Int64) uint64 {
	check(v <= o, "Int64.Distance: receiver exceeds the argument")
	return uint64(o) - uint64(v)
}

// Uint16 is a set element covering the full uint16 range.
type Uint16 uint16

func (Uint16) MinValue() Uint16 { return 0 }
func (Uint16) MaxValue() Uint16 { return math.MaxUint16 }

func (v Uint16) Next() Uint16 {
	check(v < math.MaxUint16, "Uint16.Next: no successor for the domain maximum")
	return v + 1
}

func (v Uint16) Prev() Uint16 {
	check(v > 0, "Uint16.Prev: no predecessor for the domain minimum")
	return v - 1
}

func (v Uint16) Less(o Uint16) bool { return v < o }

func (v Uint16) Distance(o Uint16) uint64 {
	check(v <= o, "Uint16.Distance: receiver exceeds the argument")
	return uint64(o) - uint64(v)
}

// Uint32 is a set element covering the full uint32 range.
type Uint32 uint32

func (Uint32) MinValue() Uint32 { return 0 }
func (Uint32) MaxValue() Uint32 { return math.MaxUint32 }

func (v Uint32) Next() Uint32 {
	check(v < math.MaxUint32, "Uint32.Next: no successor for the domain maximum")
	return v + 1
}

func (v Uint32) Prev() Uint32 {
	check(v > 0, "Uint32.Prev: no predecessor for the domain minimum")
	return v - 1
}

func (v Uint32) Less(o Uint32) bool { return v < o }

func (v Uint32) Distance(o Uint32) uint64 {
	check(v <= o, "Uint32.Distance: receiver exceeds the argument")
	return uint64(o) - uint64(v)
}

// Uint64 is a set element covering the full uint64 range.
type Uint64 uint64

func (Uint64) MinValue() Uint64 { return 0 }
func (Uint64) MaxValue() Uint64 { return math.MaxUint64 }

func (v Uint64) Next() Uint64 {
	check(v < math.MaxUint64, "Uint64.Next: no successor for the domain maximum")
	return v + 1
}

func (v Uint64) Prev() Uint64 {
	check(v > 0, "Uint64.Prev: no predecessor for the domain minimum")
	return v - 1
}

func (v Uint64) Less(o Uint64) bool { return v < o }

func (v Uint64) Distance(o Uint64) uint64 {
	check(v <= o, "Uint64.Distance: receiver exceeds the argument")
	return uint64(o) - uint64(v)
}

type (
	Int32Set  = RangeSet[Int32]
	Int64Set  = RangeSet[Int64]
	Uint16Set = RangeSet[Uint16]
	Uint32Set = RangeSet[Uint32]
	Uint64Set = RangeSet[Uint64]
)
