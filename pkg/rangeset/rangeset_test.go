package rangeset

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tj/assert"
)

func TestFactories(t *testing.T) {
	cases := map[string]struct {
		set       Int32Set
		wantEmpty bool
		wantAll   bool
		contains  []Int32
		excludes  []Int32
	}{
		"Empty": {
			set:       New[Int32](),
			wantEmpty: true,
			excludes:  []Int32{math.MinInt32, -1, 0, 1, math.MaxInt32},
		},
		"All": {
			set:      All[Int32](),
			wantAll:  true,
			contains: []Int32{math.MinInt32, -1, 0, 1, math.MaxInt32},
		},
		"Below": {
			set:      Below(Int32(0)),
			contains: []Int32{math.MinInt32, -1},
			excludes: []Int32{0, 1, math.MaxInt32},
		},
		"BelowMin": {
			set:       Below(Int32(math.MinInt32)),
			wantEmpty: true,
			excludes:  []Int32{math.MinInt32, 0, math.MaxInt32},
		},
		"BelowMax": {
			set:      Below(Int32(math.MaxInt32)),
			contains: []Int32{math.MinInt32, -1, 0, 1},
			excludes: []Int32{math.MaxInt32},
		},
		"AtMost": {
			set:      AtMost(Int32(0)),
			contains: []Int32{math.MinInt32, -1, 0},
			excludes: []Int32{1, math.MaxInt32},
		},
		"AtMostMin": {
			set:      AtMost(Int32(math.MinInt32)),
			contains: []Int32{math.MinInt32},
			excludes: []Int32{-1, 0, 1, math.MaxInt32},
		},
		"AtMostMax": {
			set:      AtMost(Int32(math.MaxInt32)),
			wantAll:  true,
			contains: []Int32{math.MinInt32, 0, math.MaxInt32},
		},
		"Single": {
			set:      Single(Int32(0)),
			contains: []Int32{0},
			excludes: []Int32{math.MinInt32, -1, 1, math.MaxInt32},
		},
		"SingleMin": {
			set:      Single(Int32(math.MinInt32)),
			contains: []Int32{math.MinInt32},
			excludes: []Int32{-1, 0, 1, math.MaxInt32},
		},
		"SingleMax": {
			set:      Single(Int32(math.MaxInt32)),
			contains: []Int32{math.MaxInt32},
			excludes: []Int32{math.MinInt32, -1, 0, 1},
		},
		"AtLeast": {
			set:      AtLeast(Int32(0)),
			contains: []Int32{0, 1, math.MaxInt32},
			excludes: []Int32{math.MinInt32, -1},
		},
		"AtLeastMin": {
			set:      AtLeast(Int32(math.MinInt32)),
			wantAll:  true,
			contains: []Int32{math.MinInt32, 0, math.MaxInt32},
		},
		"AtLeastMax": {
			set:      AtLeast(Int32(math.MaxInt32)),
			contains: []Int32{math.MaxInt32},
			excludes: []Int32{math.MinInt32, 0, math.MaxInt32 - 1},
		},
		"Above": {
			set:      Above(Int32(0)),
			contains: []Int32{1, math.MaxInt32},
			excludes: []Int32{math.MinInt32, -1, 0},
		},
		"AboveMax": {
			set:       Above(Int32(math.MaxInt32)),
			wantEmpty: true,
			excludes:  []Int32{math.MinInt32, 0, math.MaxInt32},
		},
		"IntervalClosed": {
			set:      Interval(Int32(-2), true, Int32(2), true),
			contains: []Int32{-2, -1, 0, 1, 2},
			excludes: []Int32{math.MinInt32, -3, 3, math.MaxInt32},
		},
		"IntervalOpen": {
			set:      Interval(Int32(-2), false, Int32(2), false),
			contains: []Int32{-1, 0, 1},
			excludes: []Int32{-2, 2},
		},
		"IntervalDegenerate": {
			set:       Interval(Int32(5), false, Int32(5), true),
			wantEmpty: true,
			excludes:  []Int32{5},
		},
		"IntervalDegenerateAtMax": {
			set:       Interval(Int32(math.MaxInt32), false, Int32(math.MaxInt32), true),
			wantEmpty: true,
			excludes:  []Int32{math.MaxInt32},
		},
		"IntervalFull": {
			set:      Interval(Int32(math.MinInt32), true, Int32(math.MaxInt32), true),
			wantAll:  true,
			contains: []Int32{math.MinInt32, 0, math.MaxInt32},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.wantEmpty, tc.set.IsEmpty())
			assert.Equal(t, tc.wantAll, tc.set.IsAll())

			for _, v := range tc.contains {
				if !tc.set.Contains(v) {
					t.Errorf("%s: expecting %d in set %s", name, v, tc.set)
				}
			}
			for _, v := range tc.excludes {
				if tc.set.Contains(v) {
					t.Errorf("%s: not expecting %d in set %s", name, v, tc.set)
				}
			}
		})
	}
}

func TestSize(t *testing.T) {
	cases := map[string]struct {
		set  Int32Set
		want uint64
	}{
		"Empty":     {set: New[Int32](), want: 0},
		"Single":    {set: Single(Int32(0)), want: 1},
		"HalfOpen":  {set: Interval(Int32(2), true, Int32(5), false), want: 3},
		"OpenEnded": {set: AtLeast(Int32(math.MaxInt32 - 10)), want: 11},
		"All":       {set: All[Int32](), want: 1 << 32},
		"TwoSpans": {
			set:  Union(Interval(Int32(-5), true, Int32(-1), false), Interval(Int32(1), false, Int32(5), true)),
			want: 8,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.set.Size())
		})
	}
}

func TestMinMax(t *testing.T) {
	cases := map[string]struct {
		set     Int32Set
		wantMin Int32
		wantMax Int32
	}{
		"Single":    {set: Single(Int32(5)), wantMin: 5, wantMax: 5},
		"HalfOpen":  {set: Interval(Int32(2), true, Int32(5), false), wantMin: 2, wantMax: 4},
		"OpenEnded": {set: AtLeast(Int32(7)), wantMin: 7, wantMax: math.MaxInt32},
		"All":       {set: All[Int32](), wantMin: math.MinInt32, wantMax: math.MaxInt32},
		"TwoSpans": {
			set:     Union(Interval(Int32(-5), true, Int32(-1), false), Single(Int32(9))),
			wantMin: -5,
			wantMax: 9,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.wantMin, tc.set.Min())
			assert.Equal(t, tc.wantMax, tc.set.Max())
		})
	}

	assert.Panics(t, func() { New[Int32]().Min() })
	assert.Panics(t, func() { New[Int32]().Max() })
}

func TestCanonicalForm(t *testing.T) {
	cases := map[string]struct {
		a Int32Set
		b Int32Set
	}{
		"IntervalVsIntersection": {
			a: Interval(Int32(-3), true, Int32(7), true),
			b: Intersection(AtLeast(Int32(-3)), AtMost(Int32(7))),
		},
		"UnionOfAdjacent": {
			a: Union(Interval(Int32(0), true, Int32(4), false), Interval(Int32(4), true, Int32(8), false)),
			b: Interval(Int32(0), true, Int32(8), false),
		},
		"UnionOfOverlapping": {
			a: Union(Interval(Int32(0), true, Int32(6), true), Interval(Int32(4), true, Int32(8), true)),
			b: Interval(Int32(0), true, Int32(8), true),
		},
		"SingleVsInterval": {
			a: Single(Int32(42)),
			b: Interval(Int32(42), true, Int32(42), true),
		},
		"IntersectionAroundPoint": {
			a: Intersection(AtMost(Int32(42)), AtLeast(Int32(42))),
			b: Single(Int32(42)),
		},
		"DifferenceSplitsSpan": {
			a: Difference(Interval(Int32(0), true, Int32(9), true), Single(Int32(5))),
			b: Union(Interval(Int32(0), true, Int32(4), true), Interval(Int32(6), true, Int32(9), true)),
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.a, tc.b); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

func TestComplement(t *testing.T) {
	palette := map[string]Int32Set{
		"Empty":     New[Int32](),
		"All":       All[Int32](),
		"Single":    Single(Int32(0)),
		"OpenEnded": AtLeast(Int32(5)),
		"TwoSpans":  Union(Interval(Int32(-5), true, Int32(-1), false), Interval(Int32(1), false, Int32(5), true)),
	}
	for name, set := range palette {
		t.Run(name, func(t *testing.T) {
			assert.True(t, set.Complement().Complement().Equal(set))
		})
	}

	assert.True(t, New[Int32]().Complement().IsAll())
	assert.True(t, All[Int32]().Complement().IsEmpty())
}

func TestDeMorgan(t *testing.T) {
	palette := []Int32Set{
		New[Int32](),
		All[Int32](),
		Single(Int32(0)),
		AtMost(Int32(-3)),
		AtLeast(Int32(3)),
		Interval(Int32(-10), true, Int32(10), false),
		Union(Interval(Int32(-5), true, Int32(-1), false), Interval(Int32(1), false, Int32(5), true)),
	}
	for _, a := range palette {
		for _, b := range palette {
			if !Difference(a, b).Equal(Intersection(a, b.Complement())) {
				t.Errorf("difference law violated for %q and %q", a, b)
			}
			want := Union(Difference(a, b), Difference(b, a))
			if !SymmetricDifference(a, b).Equal(want) {
				t.Errorf("symmetric difference law violated for %q and %q", a, b)
			}
		}
	}
}

func TestUnionScenario(t *testing.T) {
	set := Union(Interval(Int32(-5), true, Int32(-1), false), Interval(Int32(1), false, Int32(5), true))

	for _, v := range []Int32{-5, -4, -3, -2, 2, 3, 4, 5} {
		if !set.Contains(v) {
			t.Errorf("expecting %d in set %s", v, set)
		}
	}
	for _, v := range []Int32{-1, 0, 1, 6} {
		if set.Contains(v) {
			t.Errorf("not expecting %d in set %s", v, set)
		}
	}
	assert.Equal(t, 2, set.Spans().Len())
	assert.Equal(t, 8, set.Count())
}

func TestCoverage(t *testing.T) {
	assert.True(t, Union(AtMost(Int32(0)), Above(Int32(0))).IsAll())
	assert.True(t, Intersection(AtMost(Int32(0)), Above(Int32(0))).IsEmpty())
}

func TestMembershipSizeConsistency(t *testing.T) {
	palette := map[string]Int32Set{
		"Single":   Single(Int32(7)),
		"Closed":   Interval(Int32(-3), true, Int32(3), true),
		"TwoSpans": Union(Interval(Int32(0), true, Int32(9), false), Interval(Int32(20), true, Int32(29), true)),
		"Punched":  Difference(Interval(Int32(0), true, Int32(99), true), Interval(Int32(10), true, Int32(89), true)),
	}
	for name, set := range palette {
		t.Run(name, func(t *testing.T) {
			n := 0
			for v := range set.Elements() {
				if !set.Contains(v) {
					t.Errorf("%s: enumerated %d not contained", name, v)
				}
				n++
			}
			assert.Equal(t, set.Count(), n)
		})
	}
}

func TestString(t *testing.T) {
	cases := map[string]struct {
		set  Int32Set
		want string
	}{
		"Empty":    {set: New[Int32](), want: ""},
		"Single":   {set: Single(Int32(7)), want: "7"},
		"HalfOpen": {set: Interval(Int32(2), true, Int32(5), false), want: "2-4"},
		"TwoSpans": {
			set:  Union(Interval(Int32(2), true, Int32(5), false), Single(Int32(9))),
			want: "2-4,9",
		},
		"OpenEnded": {set: AtLeast(Int32(math.MaxInt32 - 1)), want: "2147483646-2147483647"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.set.String())
		})
	}
}

func TestEqual(t *testing.T) {
	a := Union(Single(Int32(1)), Single(Int32(3)))
	b := Difference(Interval(Int32(1), true, Int32(3), true), Single(Int32(2)))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Interval(Int32(1), true, Int32(3), true)))
	assert.True(t, New[Int32]().Equal(New[Int32]()))
}
