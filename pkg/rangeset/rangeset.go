package rangeset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/henderiw/rangeset/pkg/cast"
)

// RangeSet is a subset of the domain of T, stored as the minimal union of
// disjoint half-open spans. A RangeSet is immutable after construction: every
// operation returns a new set and copies are plain value copies, so concurrent
// reads need no coordination.
type RangeSet[T Value[T]] struct {
	// endpoints is strictly ascending. Endpoints at even indices are
	// inclusive span starts, endpoints at odd indices are exclusive span
	// ends. An odd length means the final span runs through MaxValue
	// inclusive, as an end beyond MaxValue is not representable.
	endpoints []T
}

// fromEndpoints wraps a raw endpoint sequence, asserting the representation
// invariants: every endpoint in domain, strictly ascending order.
func fromEndpoints[T Value[T]](endpoints []T) RangeSet[T] {
	if checksEnabled {
		for i, ep := range endpoints {
			check(inDomain(ep), "endpoint outside the domain")
			if i > 0 {
				check(endpoints[i-1].Less(ep), "endpoints are not strictly ascending")
			}
		}
	}
	return RangeSet[T]{endpoints: endpoints}
}

// New returns the empty set.
func New[T Value[T]]() RangeSet[T] {
	return RangeSet[T]{}
}

// All returns the set containing every value of the domain.
func All[T Value[T]]() RangeSet[T] {
	var zero T
	return RangeSet[T]{endpoints: []T{zero.MinValue()}}
}

// Single returns the set containing only the given value.
func Single[T Value[T]](v T) RangeSet[T] {
	check(inDomain(v), "Single: value outside the domain")
	if v.Less(v.MaxValue()) {
		return fromEndpoints([]T{v, v.Next()})
	}
	return fromEndpoints([]T{v})
}

// AtLeast returns the set of all values greater than or equal to v.
func AtLeast[T Value[T]](v T) RangeSet[T] {
	check(inDomain(v), "AtLeast: value outside the domain")
	return fromEndpoints([]T{v})
}

// Above returns the set of all values greater than v.
func Above[T Value[T]](v T) RangeSet[T] {
	check(inDomain(v), "Above: value outside the domain")
	if v.Less(v.MaxValue()) {
		return fromEndpoints([]T{v.Next()})
	}
	return New[T]()
}

// Below returns the set of all values less than v.
func Below[T Value[T]](v T) RangeSet[T] {
	check(inDomain(v), "Below: value outside the domain")
	if v.MinValue().Less(v) {
		return fromEndpoints([]T{v.MinValue(), v})
	}
	return New[T]()
}

// AtMost returns the set of all values less than or equal to v.
func AtMost[T Value[T]](v T) RangeSet[T] {
	check(inDomain(v), "AtMost: value outside the domain")
	if v.Less(v.MaxValue()) {
		return fromEndpoints([]T{v.MinValue(), v.Next()})
	}
	return All[T]()
}

// Interval returns the set of all values between lo and hi, including or
// excluding either bound. lo must not be greater than hi. An interval that
// degenerates to nothing, such as (v, v], yields the empty set.
func Interval[T Value[T]](lo T, loIncl bool, hi T, hiIncl bool) RangeSet[T] {
	check(inDomain(lo), "Interval: lower bound outside the domain")
	check(inDomain(hi), "Interval: upper bound outside the domain")
	check(!hi.Less(lo), "Interval: lower bound exceeds the upper bound")

	// An included upper bound at the domain maximum is encoded open ended.
	if hiIncl && !hi.Less(hi.MaxValue()) {
		if loIncl {
			return fromEndpoints([]T{lo})
		}
		if !lo.Less(hi) {
			return New[T]()
		}
		return fromEndpoints([]T{lo.Next()})
	}

	first := lo
	if !loIncl {
		first = lo.Next()
	}
	second := hi
	if hiIncl {
		second = hi.Next()
	}
	if !first.Less(second) {
		return New[T]()
	}
	return fromEndpoints([]T{first, second})
}

// Combine returns the set of all values for which op(lhs.Contains(v),
// rhs.Contains(v)) is true, built in one merge pass over both endpoint
// sequences. The result is in canonical form.
func Combine[T Value[T]](lhs, rhs RangeSet[T], op func(lhs, rhs bool) bool) RangeSet[T] {
	endpoints := make([]T, 0, len(lhs.endpoints)+len(rhs.endpoints))
	inside := false

	li, insideL := 0, false
	ri, insideR := 0, false
	for li < len(lhs.endpoints) || ri < len(rhs.endpoints) {
		var value T
		switch {
		case ri == len(rhs.endpoints) || (li < len(lhs.endpoints) && lhs.endpoints[li].Less(rhs.endpoints[ri])):
			insideL = !insideL
			value = lhs.endpoints[li]
			li++
		case li == len(lhs.endpoints) || rhs.endpoints[ri].Less(lhs.endpoints[li]):
			insideR = !insideR
			value = rhs.endpoints[ri]
			ri++
		default:
			// Exact tie, consume both sides at once.
			insideL = !insideL
			insideR = !insideR
			value = lhs.endpoints[li]
			li++
			ri++
		}
		if newInside := op(insideL, insideR); newInside != inside {
			inside = newInside
			endpoints = append(endpoints, value)
		}
	}
	return RangeSet[T]{endpoints: endpoints}
}

// Union returns the set of values contained in lhs or rhs.
func Union[T Value[T]](lhs, rhs RangeSet[T]) RangeSet[T] {
	return Combine(lhs, rhs, func(a, b bool) bool { return a || b })
}

// Intersection returns the set of values contained in both lhs and rhs.
func Intersection[T Value[T]](lhs, rhs RangeSet[T]) RangeSet[T] {
	return Combine(lhs, rhs, func(a, b bool) bool { return a && b })
}

// Difference returns the set of values contained in lhs but not in rhs.
func Difference[T Value[T]](lhs, rhs RangeSet[T]) RangeSet[T] {
	return Combine(lhs, rhs, func(a, b bool) bool { return a && !b })
}

// SymmetricDifference returns the set of values contained in exactly one of
// lhs and rhs.
func SymmetricDifference[T Value[T]](lhs, rhs RangeSet[T]) RangeSet[T] {
	return Combine(lhs, rhs, func(a, b bool) bool { return a != b })
}

// Complement returns the set of all domain values not contained in s.
func (s RangeSet[T]) Complement() RangeSet[T] {
	var zero T
	min := zero.MinValue()
	if len(s.endpoints) == 0 || min.Less(s.endpoints[0]) {
		endpoints := make([]T, 0, len(s.endpoints)+1)
		endpoints = append(endpoints, min)
		endpoints = append(endpoints, s.endpoints...)
		return RangeSet[T]{endpoints: endpoints}
	}
	return RangeSet[T]{endpoints: s.endpoints[1:]}
}

// IsEmpty reports whether the set contains no values.
func (s RangeSet[T]) IsEmpty() bool {
	return len(s.endpoints) == 0
}

// IsAll reports whether the set contains every value of the domain.
func (s RangeSet[T]) IsAll() bool {
	var zero T
	return len(s.endpoints) == 1 && equal(s.endpoints[0], zero.MinValue())
}

// Contains reports whether the set contains v.
func (s RangeSet[T]) Contains(v T) bool {
	check(inDomain(v), "Contains: value outside the domain")
	pos := sort.Search(len(s.endpoints), func(i int) bool {
		return v.Less(s.endpoints[i])
	})
	return pos%2 == 1
}

// Min returns the smallest value contained in the set.
// The set must not be empty.
func (s RangeSet[T]) Min() T {
	check(!s.IsEmpty(), "Min: set is empty")
	return s.endpoints[0]
}

// Max returns the largest value contained in the set.
// The set must not be empty.
func (s RangeSet[T]) Max() T {
	check(!s.IsEmpty(), "Max: set is empty")
	if len(s.endpoints)%2 == 0 {
		return s.endpoints[len(s.endpoints)-1].Prev()
	}
	var zero T
	return zero.MaxValue()
}

// Size returns the number of values contained in the set. The one set whose
// cardinality is not representable, the full 64 bit domain, wraps to zero.
func (s RangeSet[T]) Size() uint64 {
	var size uint64
	for i := 0; i+1 < len(s.endpoints); i += 2 {
		size += s.endpoints[i].Distance(s.endpoints[i+1])
	}
	if len(s.endpoints)%2 == 1 {
		last := s.endpoints[len(s.endpoints)-1]
		size += last.Distance(last.MaxValue()) + 1
	}
	return size
}

// Count returns Size as an int, failing loudly when the cardinality does not
// fit rather than truncating.
func (s RangeSet[T]) Count() int {
	return cast.MustExact[int](s.Size())
}

// Equal reports whether both sets contain the same values. Constructors only
// ever produce the canonical endpoint sequence, so equal sets have identical
// endpoints and structural comparison suffices.
func (s RangeSet[T]) Equal(other RangeSet[T]) bool {
	if len(s.endpoints) != len(other.endpoints) {
		return false
	}
	for i := range s.endpoints {
		if !equal(s.endpoints[i], other.endpoints[i]) {
			return false
		}
	}
	return true
}

// String renders the spans of the set as a comma separated list of "from-to"
// pairs, single values as the bare value.
func (s RangeSet[T]) String() string {
	var b strings.Builder
	spans := s.Spans()
	for i := 0; i < spans.Len(); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		sp := spans.At(i)
		if equal(sp.From, sp.To) {
			fmt.Fprintf(&b, "%v", sp.From)
		} else {
			fmt.Fprintf(&b, "%v-%v", sp.From, sp.To)
		}
	}
	return b.String()
}
