package idset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/henderiw/rangeset/pkg/hash"
	"github.com/henderiw/rangeset/pkg/rangeset"
)

// IDSet is a set of 64 bit identifiers.
type IDSet = rangeset.Uint64Set

// Builder assembles an IDSet from individual ids and inclusive ranges.
// Invalid input is accumulated and reported by Set.
type Builder struct {
	add  []rangeset.Span[rangeset.Uint64]
	del  []rangeset.Span[rangeset.Uint64]
	errs error
}

// AddID adds a single id to the set under construction.
func (b *Builder) AddID(id uint64) {
	b.AddRange(id, id)
}

// RemoveID removes a single id from the set under construction.
func (b *Builder) RemoveID(id uint64) {
	b.RemoveRange(id, id)
}

// AddRange adds the inclusive range from-to.
func (b *Builder) AddRange(from, to uint64) {
	if from > to {
		b.errs = errors.Join(b.errs, fmt.Errorf("addRange(%d-%d): invalid range", from, to))
		return
	}
	b.add = append(b.add, span(from, to))
}

// RemoveRange removes the inclusive range from-to.
func (b *Builder) RemoveRange(from, to uint64) {
	if from > to {
		b.errs = errors.Join(b.errs, fmt.Errorf("removeRange(%d-%d): invalid range", from, to))
		return
	}
	b.del = append(b.del, span(from, to))
}

// AddSet adds all ids in s.
func (b *Builder) AddSet(s IDSet) {
	for _, sp := range s.Spans().All() {
		b.add = append(b.add, sp)
	}
}

// RemoveSet removes all ids in s.
func (b *Builder) RemoveSet(s IDSet) {
	for _, sp := range s.Spans().All() {
		b.del = append(b.del, sp)
	}
}

// Set folds the accumulated additions and removals into a canonical IDSet.
// Removals win over additions. If any input was invalid, the joined errors
// are returned alongside an empty set.
func (b *Builder) Set() (IDSet, error) {
	if b.errs != nil {
		return rangeset.New[rangeset.Uint64](), b.errs
	}
	set := rangeset.New[rangeset.Uint64]()
	for _, sp := range b.add {
		set = rangeset.Union(set, rangeset.Interval(sp.From, true, sp.To, true))
	}
	for _, sp := range b.del {
		set = rangeset.Difference(set, rangeset.Interval(sp.From, true, sp.To, true))
	}
	return set, nil
}

func span(from, to uint64) rangeset.Span[rangeset.Uint64] {
	return rangeset.Span[rangeset.Uint64]{
		From: rangeset.Uint64(from),
		To:   rangeset.Uint64(to),
	}
}

// Parse parses a comma separated list of ids and inclusive ranges, e.g.
// "100-199,250,300-310". The inverse of IDSet.String.
func Parse(s string) (IDSet, error) {
	var b Builder
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		h := strings.IndexByte(part, '-')
		if h == -1 {
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return IDSet{}, fmt.Errorf("invalid id %q in set %q", part, s)
			}
			b.AddID(id)
			continue
		}
		from, err := strconv.ParseUint(part[:h], 10, 64)
		if err != nil {
			return IDSet{}, fmt.Errorf("invalid from id %q in range %q", part[:h], part)
		}
		to, err := strconv.ParseUint(part[h+1:], 10, 64)
		if err != nil {
			return IDSet{}, fmt.Errorf("invalid to id %q in range %q", part[h+1:], part)
		}
		b.AddRange(from, to)
	}
	return b.Set()
}

// Format renders the set in the form accepted by Parse.
func Format(s IDSet) string {
	return s.String()
}

// Fingerprint returns a stable content hash of the set, derived from its
// canonical span sequence.
func Fingerprint(s IDSet) uint64 {
	h := hash.New()
	for _, sp := range s.Spans().All() {
		h.WriteUint64(uint64(sp.From))
		h.WriteUint64(uint64(sp.To))
	}
	return h.Sum64()
}
