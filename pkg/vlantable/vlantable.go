package vlantable

import (
	"fmt"

	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/henderiw/rangeset/pkg/table"
	"k8s.io/apimachinery/pkg/labels"
)

type VLANTable interface {
	Get(id uint16) (labels.Set, error)
	Claim(id uint16, d labels.Set) error
	ClaimDynamic(d labels.Set) (uint16, error)
	ClaimRange(from, to uint16, d labels.Set) error
	Release(id uint16) error
	Update(id uint16, d labels.Set) error

	Count() int
	Has(id uint16) bool

	IsFree(id uint16) bool
	FindFree() (uint16, error)

	GetAll() map[uint16]labels.Set
	GetByLabel(selector labels.Selector) map[uint16]labels.Set
}

const maxVLAN = 4095

var initEntries = map[rangeset.Uint16]labels.Set{
	0:       map[string]string{"type": "untagged", "status": "reserved"},
	1:       map[string]string{"type": "untagged", "status": "reserved"},
	maxVLAN: map[string]string{"type": "untagged", "status": "reserved"},
}

func New() (VLANTable, error) {
	t, err := table.New(rangeset.Uint16(0), rangeset.Uint16(maxVLAN), initEntries)
	if err != nil {
		return nil, err
	}
	return &vlanTable{table: t}, nil
}

type vlanTable struct {
	table table.Table[rangeset.Uint16]
}

func validate(id uint16) error {
	switch id {
	case 0:
		return fmt.Errorf("VLAN %d is the untagged VLAN, cannot be added to the database", id)
	case 1:
		return fmt.Errorf("VLAN %d is the default VLAN, cannot be added to the database", id)
	case maxVLAN:
		return fmt.Errorf("VLAN %d is reserved, cannot be added to the database", id)
	}
	if id > maxVLAN {
		return fmt.Errorf("VLAN %d is invalid, the VLAN id space runs to %d", id, maxVLAN)
	}
	return nil
}

func (r *vlanTable) Get(id uint16) (labels.Set, error) {
	return r.table.Get(rangeset.Uint16(id))
}

func (r *vlanTable) Claim(id uint16, d labels.Set) error {
	if err := validate(id); err != nil {
		return err
	}
	return r.table.Claim(rangeset.Uint16(id), d)
}

func (r *vlanTable) ClaimDynamic(d labels.Set) (uint16, error) {
	id, err := r.table.ClaimFree(d)
	return uint16(id), err
}

func (r *vlanTable) ClaimRange(from, to uint16, d labels.Set) error {
	if err := validate(from); err != nil {
		return err
	}
	if err := validate(to); err != nil {
		return err
	}
	return r.table.ClaimRange(rangeset.Uint16(from), rangeset.Uint16(to), d)
}

func (r *vlanTable) Release(id uint16) error {
	if err := validate(id); err != nil {
		return err
	}
	return r.table.Release(rangeset.Uint16(id))
}

func (r *vlanTable) Update(id uint16, d labels.Set) error {
	if err := validate(id); err != nil {
		return err
	}
	return r.table.Update(rangeset.Uint16(id), d)
}

func (r *vlanTable) Count() int {
	return r.table.Count()
}

func (r *vlanTable) Has(id uint16) bool {
	return r.table.Has(rangeset.Uint16(id))
}

func (r *vlanTable) IsFree(id uint16) bool {
	return r.table.IsFree(rangeset.Uint16(id))
}

func (r *vlanTable) FindFree() (uint16, error) {
	id, err := r.table.FindFree()
	return uint16(id), err
}

func (r *vlanTable) GetAll() map[uint16]labels.Set {
	entries := map[uint16]labels.Set{}
	for id, d := range r.table.GetAll() {
		entries[uint16(id)] = d
	}
	return entries
}

func (r *vlanTable) GetByLabel(selector labels.Selector) map[uint16]labels.Set {
	entries := map[uint16]labels.Set{}
	for id, d := range r.table.GetByLabel(selector) {
		entries[uint16(id)] = d
	}
	return entries
}
