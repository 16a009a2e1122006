package iprange_test

import (
	"net/netip"
	"testing"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/rangeset/pkg/iprange"
	"github.com/tj/assert"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

func mustRange(t *testing.T, s string) netipx.IPRange {
	t.Helper()
	r, err := netipx.ParseIPRange(s)
	assert.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	cases := map[string]struct {
		from    string
		to      string
		wantErr bool
	}{
		"IPv4":     {from: "10.0.0.10", to: "10.0.0.20"},
		"Single":   {from: "10.0.0.10", to: "10.0.0.10"},
		"Inverted": {from: "10.0.0.20", to: "10.0.0.10", wantErr: true},
		"IPv6":     {from: "2000::1", to: "2000::ff", wantErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := iprange.New(netip.MustParseAddr(tc.from), netip.MustParseAddr(tc.to))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClaim(t *testing.T) {
	cases := map[string]struct {
		claims  []string
		addr    string
		wantErr bool
	}{
		"InRange":      {addr: "10.0.0.15"},
		"RangeStart":   {addr: "10.0.0.10"},
		"RangeEnd":     {addr: "10.0.0.20"},
		"OutOfRange":   {addr: "10.0.0.21", wantErr: true},
		"Invalid":      {addr: "not-an-ip", wantErr: true},
		"AlreadyInUse": {claims: []string{"10.0.0.15"}, addr: "10.0.0.15", wantErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := mustRange(t, "10.0.0.10-10.0.0.20")
			tbl, err := iprange.New(r.From(), r.To())
			assert.NoError(t, err)
			for _, addr := range tc.claims {
				assert.NoError(t, tbl.Claim(addr, table.Route{}))
			}

			err = tbl.Claim(tc.addr, table.Route{})
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tbl.Has(tc.addr))
			assert.False(t, tbl.IsFree(tc.addr))

			_, err = tbl.Get(tc.addr)
			assert.NoError(t, err)
		})
	}
}

func TestReleaseUpdate(t *testing.T) {
	r := mustRange(t, "10.0.0.10-10.0.0.20")
	tbl, err := iprange.New(r.From(), r.To())
	assert.NoError(t, err)

	assert.Error(t, tbl.Release("10.0.0.15"))
	assert.Error(t, tbl.Update("10.0.0.15", table.Route{}))

	assert.NoError(t, tbl.Claim("10.0.0.15", table.Route{}))
	assert.NoError(t, tbl.Update("10.0.0.15", table.Route{}))
	assert.NoError(t, tbl.Release("10.0.0.15"))
	assert.True(t, tbl.IsFree("10.0.0.15"))
	assert.False(t, tbl.Has("10.0.0.15"))
	assert.Equal(t, 0, tbl.Count())
}

func TestFindFree(t *testing.T) {
	r := mustRange(t, "10.0.0.10-10.0.0.12")
	tbl, err := iprange.New(r.From(), r.To())
	assert.NoError(t, err)

	// Lowest free address first.
	for _, want := range []string{"10.0.0.10", "10.0.0.11", "10.0.0.12"} {
		addr, err := tbl.FindFree()
		assert.NoError(t, err)
		assert.Equal(t, want, addr.String())
		assert.NoError(t, tbl.Claim(addr.String(), table.Route{}))
	}
	assert.Equal(t, 3, tbl.Count())
	_, err = tbl.FindFree()
	assert.Error(t, err)
}

func TestFreeSet(t *testing.T) {
	r := mustRange(t, "10.0.0.10-10.0.0.20")
	tbl, err := iprange.New(r.From(), r.To())
	assert.NoError(t, err)
	assert.NoError(t, tbl.Claim("10.0.0.15", table.Route{}))

	set, err := tbl.FreeSet()
	assert.NoError(t, err)
	assert.True(t, set.Contains(netip.MustParseAddr("10.0.0.10")))
	assert.True(t, set.Contains(netip.MustParseAddr("10.0.0.14")))
	assert.False(t, set.Contains(netip.MustParseAddr("10.0.0.15")))
	assert.True(t, set.Contains(netip.MustParseAddr("10.0.0.16")))
	assert.True(t, set.Contains(netip.MustParseAddr("10.0.0.20")))
	assert.False(t, set.Contains(netip.MustParseAddr("10.0.0.21")))
}

func TestFingerprint(t *testing.T) {
	r := mustRange(t, "10.0.0.10-10.0.0.20")
	tbl, err := iprange.New(r.From(), r.To())
	assert.NoError(t, err)

	empty := tbl.Fingerprint()
	assert.NoError(t, tbl.Claim("10.0.0.15", table.Route{}))
	claimed := tbl.Fingerprint()
	assert.NotEqual(t, empty, claimed)

	assert.NoError(t, tbl.Release("10.0.0.15"))
	assert.Equal(t, empty, tbl.Fingerprint())
}

func TestGetAll(t *testing.T) {
	r := mustRange(t, "10.0.0.10-10.0.0.20")
	tbl, err := iprange.New(r.From(), r.To())
	assert.NoError(t, err)

	assert.NoError(t, tbl.Claim("10.0.0.11", table.Route{}))
	assert.NoError(t, tbl.Claim("10.0.0.12", table.Route{}))

	assert.Equal(t, 2, len(tbl.GetAll()))
	assert.Equal(t, 2, len(tbl.GetByLabel(labels.Everything())))
	assert.Equal(t, 2, tbl.Count())
}
