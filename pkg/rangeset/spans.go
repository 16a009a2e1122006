package rangeset

import "iter"

// Span is a maximal run of contained values. Both bounds are inclusive.
type Span[T Value[T]] struct {
	From T
	To   T
}

// Spans is a read-only random access view over the maximal disjoint spans of
// a set, backed directly by the set's endpoint sequence. The owning set must
// outlive the view.
type Spans[T Value[T]] struct {
	endpoints []T
}

// Spans returns the view of all continuous spans in the set.
func (s RangeSet[T]) Spans() Spans[T] {
	return Spans[T]{endpoints: s.endpoints}
}

// Len returns the number of spans.
func (v Spans[T]) Len() int {
	return (len(v.endpoints) + 1) / 2
}

// At returns the i-th span. The end of an open ended final span is
// synthesized as MaxValue.
func (v Spans[T]) At(i int) Span[T] {
	check(i >= 0 && i < v.Len(), "Spans.At: index out of range")
	from := v.endpoints[2*i]
	if 2*i+1 == len(v.endpoints) {
		return Span[T]{From: from, To: from.MaxValue()}
	}
	return Span[T]{From: from, To: v.endpoints[2*i+1].Prev()}
}

// Iterate returns a cursor positioned at the first span.
func (v Spans[T]) Iterate() *SpanIterator[T] {
	return &SpanIterator[T]{endpoints: v.endpoints}
}

// All returns an indexed forward iterator over the spans, usable with range.
func (v Spans[T]) All() iter.Seq2[int, Span[T]] {
	return func(yield func(int, Span[T]) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(i, v.At(i)) {
				return
			}
		}
	}
}

// SpanIterator is a bidirectional random access cursor over the spans of a
// set. The zero value is not usable; obtain one from Spans.Iterate.
type SpanIterator[T Value[T]] struct {
	endpoints []T
	// index is the position of the current span start in endpoints, i.e.
	// the span index doubled. index == endIndex() marks past the end.
	index int
}

// Valid reports whether the cursor points at a span.
func (it *SpanIterator[T]) Valid() bool {
	return it.index < len(it.endpoints)
}

// Span returns the current span. The cursor must be valid.
func (it *SpanIterator[T]) Span() Span[T] {
	check(it.Valid(), "SpanIterator.Span: cursor is past the end")
	from := it.endpoints[it.index]
	if it.index == len(it.endpoints)-1 {
		return Span[T]{From: from, To: from.MaxValue()}
	}
	return Span[T]{From: from, To: it.endpoints[it.index+1].Prev()}
}

// endIndex is the smallest even index not less than the sequence length.
func (it *SpanIterator[T]) endIndex() int {
	return ((len(it.endpoints) + 1) / 2) * 2
}

// Seek moves the cursor n spans forward, or backward for negative n. The
// target position must lie between the first span and past-the-end.
func (it *SpanIterator[T]) Seek(n int) {
	next := it.index + 2*n
	check(next >= 0 && next <= it.endIndex(), "SpanIterator.Seek: position out of range")
	it.index = next
}

// Next advances the cursor and reports whether it is still valid.
func (it *SpanIterator[T]) Next() bool {
	it.Seek(1)
	return it.Valid()
}

// Prev moves the cursor one span back and reports whether it is valid.
func (it *SpanIterator[T]) Prev() bool {
	it.Seek(-1)
	return it.Valid()
}

// At returns the span n positions away without moving the cursor.
func (it SpanIterator[T]) At(n int) Span[T] {
	it.Seek(n)
	return it.Span()
}

// Sub returns the distance in spans between two cursors over the same set.
func (it SpanIterator[T]) Sub(other SpanIterator[T]) int {
	check(sameSequence(it.endpoints, other.endpoints), "SpanIterator.Sub: cursors from different sets")
	return (it.index - other.index) / 2
}

// Compare orders two cursors over the same set.
func (it SpanIterator[T]) Compare(other SpanIterator[T]) int {
	check(sameSequence(it.endpoints, other.endpoints), "SpanIterator.Compare: cursors from different sets")
	switch {
	case it.index < other.index:
		return -1
	case it.index > other.index:
		return 1
	default:
		return 0
	}
}

// Equal reports whether two cursors over the same set point at the same span.
func (it SpanIterator[T]) Equal(other SpanIterator[T]) bool {
	return it.Compare(other) == 0
}

// sameSequence reports whether both cursors borrow the same endpoint slice.
// Cursors over empty sets are indistinguishable and compare as related.
func sameSequence[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
