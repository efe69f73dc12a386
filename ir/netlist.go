package ir

import "fmt"

// NetlistAnalysis stands in for the buffer base-address allocator the
// generator delegates to (spec.md §1: buffer placement is out of scope).
// It is a plain map lookup built once from the device's declared buffers.
type NetlistAnalysis struct {
	bases map[string]uint64
}

// NewNetlistAnalysis builds a NetlistAnalysis from a device's buffer list.
func NewNetlistAnalysis(buffers []BufferDef) *NetlistAnalysis {
	bases := make(map[string]uint64, len(buffers))
	for _, b := range buffers {
		bases[b.Name] = b.BaseAddress
	}
	return &NetlistAnalysis{bases: bases}
}

// BufferBaseAddress resolves a buffer reference to its pre-allocated base
// address.
func (n *NetlistAnalysis) BufferBaseAddress(ref BufferRef) (uint64, error) {
	addr, ok := n.bases[ref.Name]
	if !ok {
		return 0, fmt.Errorf("ir: unknown buffer %q", ref.Name)
	}
	return addr, nil
}
