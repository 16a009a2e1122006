package iprange

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"sort"
	"sync"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/rangeset/pkg/cast"
	"github.com/henderiw/rangeset/pkg/hash"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

// IPTable claims IPv4 addresses out of an inclusive address range and stores
// a route per claimed address. The free pool is tracked as a Uint32Set over
// the big endian address value.
type IPTable interface {
	Get(addr string) (table.Route, error)
	Claim(addr string, d table.Route) error
	Release(addr string) error
	Update(addr string, d table.Route) error

	Count() int
	Has(addr string) bool

	IsFree(addr string) bool
	FindFree() (netip.Addr, error)

	FreeSet() (*netipx.IPSet, error)
	Fingerprint() uint64

	GetAll() table.Routes
	GetByLabel(selector labels.Selector) table.Routes
}

// New returns an IPTable over the inclusive range from-to. Only IPv4 ranges
// are supported.
func New(from, to netip.Addr) (IPTable, error) {
	if !from.Is4() || !to.Is4() {
		return nil, fmt.Errorf("only ipv4 addresses are supported, got %s-%s", from, to)
	}
	if to.Less(from) {
		return nil, fmt.Errorf("invalid range, from %s is bigger than to %s", from, to)
	}
	return &ipTable{
		m:       new(sync.RWMutex),
		ipRange: netipx.IPRangeFrom(from, to),
		free:    rangeset.Interval(addrToID(from), true, addrToID(to), true),
		routes:  map[rangeset.Uint32]table.Route{},
	}, nil
}

type ipTable struct {
	m       *sync.RWMutex
	ipRange netipx.IPRange
	free    rangeset.Uint32Set
	routes  map[rangeset.Uint32]table.Route
}

func (r *ipTable) Get(addr string) (table.Route, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	var route table.Route
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return route, err
	}
	route, ok := r.routes[addrToID(claimIP)]
	if !ok {
		return route, fmt.Errorf("no match found for: %s", addr)
	}
	return route, nil
}

func (r *ipTable) Claim(addr string, d table.Route) error {
	r.m.Lock()
	defer r.m.Unlock()

	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	id := addrToID(claimIP)
	if !r.free.Contains(id) {
		return fmt.Errorf("claim failed ip %s already claimed", addr)
	}
	r.free = rangeset.Difference(r.free, rangeset.Single(id))
	r.routes[id] = d
	return nil
}

func (r *ipTable) Release(addr string) error {
	r.m.Lock()
	defer r.m.Unlock()

	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	id := addrToID(claimIP)
	if _, ok := r.routes[id]; !ok {
		return fmt.Errorf("release failed ip %s not claimed", addr)
	}
	delete(r.routes, id)
	r.free = rangeset.Union(r.free, rangeset.Single(id))
	return nil
}

func (r *ipTable) Update(addr string, d table.Route) error {
	r.m.Lock()
	defer r.m.Unlock()

	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	id := addrToID(claimIP)
	if _, ok := r.routes[id]; !ok {
		return fmt.Errorf("update failed ip %s not claimed", addr)
	}
	r.routes[id] = d
	return nil
}

// Count returns the number of claimed addresses, derived from the free pool.
func (r *ipTable) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	window := rangeset.Interval(addrToID(r.ipRange.From()), true, addrToID(r.ipRange.To()), true)
	return cast.MustExact[int](rangeset.Difference(window, r.free).Size())
}

func (r *ipTable) Has(addr string) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	_, ok := r.routes[addrToID(claimIP)]
	return ok
}

func (r *ipTable) IsFree(addr string) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.free.Contains(addrToID(claimIP))
}

func (r *ipTable) FindFree() (netip.Addr, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	var addr netip.Addr
	if r.free.IsEmpty() {
		return addr, fmt.Errorf("no free ip found")
	}
	return idToAddr(r.free.Min()), nil
}

// FreeSet exports the free pool as an IPSet.
func (r *ipTable) FreeSet() (*netipx.IPSet, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	var b netipx.IPSetBuilder
	for _, sp := range r.free.Spans().All() {
		b.AddRange(netipx.IPRangeFrom(idToAddr(sp.From), idToAddr(sp.To)))
	}
	return b.IPSet()
}

// Fingerprint returns a stable content hash of the claimed addresses, for
// cheap change detection.
func (r *ipTable) Fingerprint() uint64 {
	r.m.RLock()
	defer r.m.RUnlock()

	ids := make([]rangeset.Uint32, 0, len(r.routes))
	for id := range r.routes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	h := hash.New()
	for _, id := range ids {
		h.WriteUint64(uint64(id))
	}
	return h.Sum64()
}

func (r *ipTable) GetAll() table.Routes {
	r.m.RLock()
	defer r.m.RUnlock()

	var routes table.Routes
	for _, route := range r.routes {
		routes = append(routes, route)
	}
	return routes
}

func (r *ipTable) GetByLabel(selector labels.Selector) table.Routes {
	r.m.RLock()
	defer r.m.RUnlock()

	var routes table.Routes
	for _, route := range r.routes {
		if selector.Matches(route.Labels()) {
			routes = append(routes, route)
		}
	}
	return routes
}

func (r *ipTable) validateIP(addr string) (netip.Addr, error) {
	claimIP, err := netip.ParseAddr(addr)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("ip address %s is invalid", addr)
	}
	if !claimIP.Is4() || !r.ipRange.Contains(claimIP) {
		return netip.Addr{}, fmt.Errorf("ip address %s, does not fit in the range from %s to %s", addr, r.ipRange.From(), r.ipRange.To())
	}
	return claimIP, nil
}

func addrToID(addr netip.Addr) rangeset.Uint32 {
	b := addr.As4()
	return rangeset.Uint32(binary.BigEndian.Uint32(b[:]))
}

func idToAddr(id rangeset.Uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(id))
	return netip.AddrFrom4(b)
}
