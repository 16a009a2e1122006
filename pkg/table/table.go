package table

import (
	"errors"
	"fmt"
	"sync"

	"github.com/henderiw/rangeset/pkg/cast"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"k8s.io/apimachinery/pkg/labels"
)

// ID constrains table keys to comparable rangeset elements.
type ID[T any] interface {
	comparable
	rangeset.Value[T]
}

// Table claims values out of an inclusive window of a discrete domain and
// attaches labels to them. The free pool is tracked as a RangeSet, so claim
// and release cost is bounded by the number of free spans, not the window
// size.
type Table[T ID[T]] interface {
	Get(id T) (labels.Set, error)
	Claim(id T, d labels.Set) error
	ClaimFree(d labels.Set) (T, error)
	ClaimRange(from, to T, d labels.Set) error
	Release(id T) error
	Update(id T, d labels.Set) error

	Count() int
	FreeCount() (int, error)
	Has(id T) bool

	IsFree(id T) bool
	FindFree() (T, error)

	Free() rangeset.RangeSet[T]
	Claimed() rangeset.RangeSet[T]

	GetAll() map[T]labels.Set
	GetByLabel(selector labels.Selector) map[T]labels.Set
}

// New returns a table over the inclusive window from-to. Initial entries are
// claimed up front; failures are joined and returned alongside the table.
func New[T ID[T]](from, to T, initEntries map[T]labels.Set) (Table[T], error) {
	if to.Less(from) {
		return nil, fmt.Errorf("invalid window, from %v is bigger than to %v", from, to)
	}
	window := rangeset.Interval(from, true, to, true)
	r := &table[T]{
		m:       new(sync.RWMutex),
		window:  window,
		free:    window,
		entries: map[T]labels.Set{},
	}

	var errm error
	for id, d := range initEntries {
		if err := r.claim(id, d); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	return r, errm
}

type table[T ID[T]] struct {
	m       *sync.RWMutex
	window  rangeset.RangeSet[T]
	free    rangeset.RangeSet[T]
	entries map[T]labels.Set
}

func (r *table[T]) validate(id T) error {
	if !r.window.Contains(id) {
		return fmt.Errorf("id %v is outside the window %s", id, r.window)
	}
	return nil
}

func (r *table[T]) Get(id T) (labels.Set, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	if err := r.validate(id); err != nil {
		return nil, err
	}
	d, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("no match found for: %v", id)
	}
	return d, nil
}

func (r *table[T]) Claim(id T, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.claim(id, d)
}

func (r *table[T]) claim(id T, d labels.Set) error {
	if err := r.validate(id); err != nil {
		return err
	}
	if !r.free.Contains(id) {
		return fmt.Errorf("entry %v already exists", id)
	}
	r.free = rangeset.Difference(r.free, rangeset.Single(id))
	r.entries[id] = d
	return nil
}

func (r *table[T]) ClaimFree(d labels.Set) (T, error) {
	r.m.Lock()
	defer r.m.Unlock()

	var zero T
	if r.free.IsEmpty() {
		return zero, fmt.Errorf("no free entry found")
	}
	id := r.free.Min()
	if err := r.claim(id, d); err != nil {
		return zero, err
	}
	return id, nil
}

func (r *table[T]) ClaimRange(from, to T, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	if to.Less(from) {
		return fmt.Errorf("invalid range, from %v is bigger than to %v", from, to)
	}
	want := rangeset.Interval(from, true, to, true)
	if !rangeset.Intersection(r.free, want).Equal(want) {
		return fmt.Errorf("entry in use in range %s", want)
	}
	r.free = rangeset.Difference(r.free, want)
	for id := range want.Elements() {
		r.entries[id] = d
	}
	return nil
}

func (r *table[T]) Release(id T) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.validate(id); err != nil {
		return err
	}
	if _, ok := r.entries[id]; !ok {
		return fmt.Errorf("entry %v not found", id)
	}
	delete(r.entries, id)
	r.free = rangeset.Union(r.free, rangeset.Single(id))
	return nil
}

func (r *table[T]) Update(id T, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.validate(id); err != nil {
		return err
	}
	if _, ok := r.entries[id]; !ok {
		return fmt.Errorf("entry %v not found", id)
	}
	r.entries[id] = d
	return nil
}

func (r *table[T]) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.entries)
}

// FreeCount returns the number of free entries, failing when the window is
// too large for the count to fit an int.
func (r *table[T]) FreeCount() (int, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return cast.Exact[int](r.free.Size())
}

func (r *table[T]) Has(id T) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.entries[id]
	return ok
}

func (r *table[T]) IsFree(id T) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.window.Contains(id) && r.free.Contains(id)
}

func (r *table[T]) FindFree() (T, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	var zero T
	if r.free.IsEmpty() {
		return zero, fmt.Errorf("no free entry found")
	}
	return r.free.Min(), nil
}

func (r *table[T]) Free() rangeset.RangeSet[T] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.free
}

func (r *table[T]) Claimed() rangeset.RangeSet[T] {
	r.m.RLock()
	defer r.m.RUnlock()

	return rangeset.Difference(r.window, r.free)
}

func (r *table[T]) GetAll() map[T]labels.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(map[T]labels.Set, len(r.entries))
	for id, d := range r.entries {
		entries[id] = d
	}
	return entries
}

func (r *table[T]) GetByLabel(selector labels.Selector) map[T]labels.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := map[T]labels.Set{}
	for id, d := range r.entries {
		if selector.Matches(d) {
			entries[id] = d
		}
	}
	return entries
}
