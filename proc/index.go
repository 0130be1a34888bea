package proc

import (
	"golang.org/x/exp/slices"
)

// Index answers which mapping covers a virtual address. Lookups run against
// a copy of the input sorted by start address.
type Index struct {
	ms []*Mapping
}

func NewIndex(maps []*Mapping) *Index {
	ms := slices.Clone(maps)
	slices.SortFunc(ms, func(a, b *Mapping) int {
		switch {
		case a.StartAddr < b.StartAddr:
			return -1
		case a.StartAddr > b.StartAddr:
			return 1
		}
		return 0
	})
	return &Index{ms: ms}
}

// Find returns the mapping whose range contains addr, or nil.
func (ix *Index) Find(addr uint64) *Mapping {
	i, ok := slices.BinarySearchFunc(ix.ms, addr, func(m *Mapping, addr uint64) int {
		switch {
		case m.EndAddr <= addr:
			return -1
		case m.StartAddr > addr:
			return 1
		}
		return 0
	})
	if !ok {
		return nil
	}
	return ix.ms[i]
}

// Mappings returns the indexed records in ascending start order.
func (ix *Index) Mappings() []*Mapping { return ix.ms }
