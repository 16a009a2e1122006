package vxlantable

import (
	"fmt"

	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/henderiw/rangeset/pkg/table"
	"k8s.io/apimachinery/pkg/labels"
)

type VNITable interface {
	Get(id uint32) (labels.Set, error)
	Claim(id uint32, d labels.Set) error
	ClaimDynamic(d labels.Set) (uint32, error)
	Release(id uint32) error
	Update(id uint32, d labels.Set) error

	Count() int
	Has(id uint32) bool

	IsFree(id uint32) bool
	FindFree() (uint32, error)

	GetAll() map[uint32]labels.Set
	GetByLabel(selector labels.Selector) map[uint32]labels.Set
}

// The VNI field in a VXLAN header is 24 bit.
const maxVNI = 1<<24 - 1

func New(from, to uint32) (VNITable, error) {
	if from > maxVNI || to > maxVNI {
		return nil, fmt.Errorf("invalid vni range %d-%d, the vni space runs to %d", from, to, maxVNI)
	}
	t, err := table.New(rangeset.Uint32(from), rangeset.Uint32(to), nil)
	if err != nil {
		return nil, err
	}
	return &vniTable{table: t}, nil
}

type vniTable struct {
	table table.Table[rangeset.Uint32]
}

func (r *vniTable) Get(id uint32) (labels.Set, error) {
	return r.table.Get(rangeset.Uint32(id))
}

func (r *vniTable) Claim(id uint32, d labels.Set) error {
	return r.table.Claim(rangeset.Uint32(id), d)
}

func (r *vniTable) ClaimDynamic(d labels.Set) (uint32, error) {
	id, err := r.table.ClaimFree(d)
	return uint32(id), err
}

func (r *vniTable) Release(id uint32) error {
	return r.table.Release(rangeset.Uint32(id))
}

func (r *vniTable) Update(id uint32, d labels.Set) error {
	return r.table.Update(rangeset.Uint32(id), d)
}

func (r *vniTable) Count() int {
	return r.table.Count()
}

func (r *vniTable) Has(id uint32) bool {
	return r.table.Has(rangeset.Uint32(id))
}

func (r *vniTable) IsFree(id uint32) bool {
	return r.table.IsFree(rangeset.Uint32(id))
}

func (r *vniTable) FindFree() (uint32, error) {
	id, err := r.table.FindFree()
	return uint32(id), err
}

func (r *vniTable) GetAll() map[uint32]labels.Set {
	entries := map[uint32]labels.Set{}
	for id, d := range r.table.GetAll() {
		entries[uint32(id)] = d
	}
	return entries
}

func (r *vniTable) GetByLabel(selector labels.Selector) map[uint32]labels.Set {
	entries := map[uint32]labels.Set{}
	for id, d := range r.table.GetByLabel(selector) {
		entries[uint32(id)] = d
	}
	return entries
}
