package main

import (
	"fmt"
	"net/netip"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/rangeset/pkg/idset"
	"github.com/henderiw/rangeset/pkg/iprange"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/henderiw/rangeset/pkg/vlantable"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"
)

func main() {
	a := rangeset.Union(
		rangeset.Interval(rangeset.Uint32(100), true, rangeset.Uint32(199), true),
		rangeset.Single(rangeset.Uint32(250)),
	)
	b := rangeset.AtLeast(rangeset.Uint32(150))
	fmt.Println("a", a)
	fmt.Println("a and b", rangeset.Intersection(a, b))
	fmt.Println("a minus b", rangeset.Difference(a, b))
	fmt.Println("complement of a", a.Complement())

	ids, err := idset.Parse("1000-2000,4000")
	if err != nil {
		panic(err)
	}
	fmt.Println("ids", ids, "size", ids.Size(), "fingerprint", idset.Fingerprint(ids))

	vt, err := vlantable.New()
	if err != nil {
		panic(err)
	}
	if err := vt.ClaimRange(1000, 2000, map[string]string{"range": "test"}); err != nil {
		panic(err)
	}
	handleVLAN(vt, 1000)
	handleVLAN(vt, 100)

	sel, err := getLabelSelector(map[string]string{"range": "test"})
	if err != nil {
		panic(err)
	}
	fmt.Println("by label", len(vt.GetByLabel(sel)))

	ipt, err := iprange.New(netip.MustParseAddr("10.0.0.10"), netip.MustParseAddr("10.0.0.20"))
	if err != nil {
		panic(err)
	}
	if err := ipt.Claim("10.0.0.15", table.Route{}); err != nil {
		panic(err)
	}
	free, err := ipt.FreeSet()
	if err != nil {
		panic(err)
	}
	fmt.Println("free ranges", free.Ranges())
}

func handleVLAN(vt vlantable.VLANTable, id uint16) {
	if _, err := vt.Get(id); err != nil {
		fmt.Println(err)
		if err := vt.Claim(id, nil); err != nil {
			fmt.Println(err)
		}
		return
	}
	fmt.Println("vlan", id, "already claimed")
}

func getLabelSelector(l map[string]string) (labels.Selector, error) {
	fullselector := labels.NewSelector()
	for k, v := range l {
		req, err := labels.NewRequirement(k, selection.Equals, []string{v})
		if err != nil {
			return nil, err
		}
		fullselector = fullselector.Add(*req)
	}
	return fullselector, nil
}
