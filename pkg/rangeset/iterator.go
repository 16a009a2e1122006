package rangeset

import "iter"

// Iterator is a bidirectional cursor over the individual values of a set,
// advancing one value at a time within the current span. Past the end the
// current value is pinned at MaxValue, which serves as the end sentinel for
// equality.
type Iterator[T Value[T]] struct {
	span SpanIterator[T]
	item T
}

// Iterate returns a cursor positioned at the smallest value of the set, or
// past the end when the set is empty.
func (s RangeSet[T]) Iterate() *Iterator[T] {
	it := &Iterator[T]{span: SpanIterator[T]{endpoints: s.endpoints}}
	it.item = it.seed()
	return it
}

// seed returns the start of the current span, or the end sentinel when the
// span cursor is past the end.
func (it *Iterator[T]) seed() T {
	if it.span.Valid() {
		return it.span.Span().From
	}
	var zero T
	return zero.MaxValue()
}

// Valid reports whether the cursor points at a value.
func (it *Iterator[T]) Valid() bool {
	return it.span.Valid()
}

// Value returns the current value. The cursor must be valid.
func (it *Iterator[T]) Value() T {
	check(it.Valid(), "Iterator.Value: cursor is past the end")
	return it.item
}

// Next advances the cursor and reports whether it is still valid. The cursor
// must be valid.
func (it *Iterator[T]) Next() bool {
	check(it.Valid(), "Iterator.Next: cursor is past the end")
	if it.item.Less(it.span.Span().To) {
		it.item = it.item.Next()
	} else {
		it.span.Seek(1)
		it.item = it.seed()
	}
	return it.Valid()
}

// Prev moves the cursor one value back, crossing from past the end to the
// largest value of the set and from a span start to the previous span's end.
// Moving before the smallest value is a contract violation.
func (it *Iterator[T]) Prev() bool {
	if it.span.Valid() && it.span.Span().From.Less(it.item) {
		it.item = it.item.Prev()
	} else {
		it.span.Seek(-1)
		it.item = it.span.Span().To
	}
	return it.Valid()
}

// Equal reports whether two cursors over the same set point at the same
// value. Both the span position and the value must match: during backward
// traversal two cursors can reference the same boundary through different
// span states.
func (it *Iterator[T]) Equal(other *Iterator[T]) bool {
	return it.span.Equal(other.span) && equal(it.item, other.item)
}

// Elements returns a forward iterator over all values of the set, usable
// with range.
func (s RangeSet[T]) Elements() iter.Seq[T] {
	return func(yield func(T) bool) {
		spans := s.Spans()
		for i := 0; i < spans.Len(); i++ {
			sp := spans.At(i)
			for v := sp.From; ; v = v.Next() {
				if !yield(v) {
					return
				}
				if !v.Less(sp.To) {
					break
				}
			}
		}
	}
}

// Backward returns a reverse iterator over all values of the set, usable
// with range.
func (s RangeSet[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		spans := s.Spans()
		for i := spans.Len() - 1; i >= 0; i-- {
			sp := spans.At(i)
			for v := sp.To; ; v = v.Prev() {
				if !yield(v) {
					return
				}
				if !sp.From.Less(v) {
					break
				}
			}
		}
	}
}
