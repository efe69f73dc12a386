// Package store implements the order-invariant, address-keyed write store
// that every configuration pass accumulates into, and the section grouper
// that turns it into contiguous runs for the AIRBIN emitter.
package store

import (
	"fmt"
	"sort"

	"airbingen/model"
)

// PreconditionError reports a violated invariant in the write store — a
// programmer error in the caller, not a malformed device description.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("store: %s: %s", e.Op, e.Reason)
}

// WriteStore is an address-keyed, last-writer-wins mapping of the register
// writes produced by one translation. It lives only for the duration of one
// translation (see translator.Translator) and is never a package-level
// global.
type WriteStore struct {
	writes map[uint64]uint32
}

// New constructs an empty WriteStore.
func New() *WriteStore {
	return &WriteStore{writes: make(map[uint64]uint32)}
}

// Write32 upserts value at addr. addr must belong to a tile whose column is
// greater than 0 (column 0 addresses are never legal write targets).
func (s *WriteStore) Write32(addr model.Address, value uint32) error {
	if addr.Tile.Column() == 0 {
		return &PreconditionError{Op: "Write32", Reason: "column 0 is not a writable tile"}
	}
	s.writes[addr.Full()] = value
	return nil
}

// MustWrite32 is Write32 but panics on a violated precondition. It exists for
// call sites deep in a configuration pass where a column-0 address can only
// arise from a bug in this package's own address arithmetic, not from
// attacker- or operator-controlled input.
func (s *WriteStore) MustWrite32(addr model.Address, value uint32) {
	if err := s.Write32(addr, value); err != nil {
		panic(err)
	}
}

// Read32 returns the stored value at addr, or 0 if nothing has been written
// there yet.
func (s *WriteStore) Read32(addr model.Address) uint32 {
	return s.writes[addr.Full()]
}

// ClearRange zeroes every 4-byte-aligned address in [start, start+length)
// within tile.
func (s *WriteStore) ClearRange(tile model.TileAddress, start, length uint32) error {
	if start%4 != 0 {
		return &PreconditionError{Op: "ClearRange", Reason: "start must be 4-byte aligned"}
	}
	if length%4 != 0 {
		return &PreconditionError{Op: "ClearRange", Reason: "length must be a multiple of 4"}
	}
	for off := start; off < start+length; off += 4 {
		if err := s.Write32(model.NewAddress(tile, off), 0); err != nil {
			return err
		}
	}
	return nil
}

// Len reports the number of distinct addresses currently written.
func (s *WriteStore) Len() int {
	return len(s.writes)
}

// IterAscending calls fn once per (address, value) pair in strictly
// increasing address order.
func (s *WriteStore) IterAscending(fn func(addr uint64, value uint32)) {
	addrs := s.sortedAddrs()
	for _, addr := range addrs {
		fn(addr, s.writes[addr])
	}
}

func (s *WriteStore) sortedAddrs() []uint64 {
	addrs := make([]uint64, 0, len(s.writes))
	for addr := range s.writes {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}
