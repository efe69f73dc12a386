package dma

import (
	"fmt"

	"airbingen/ir"
	"airbingen/store"
)

// bdInfo is the transient per-block scan result feeding the BD register
// encoding: at most one A-side and one B-side descriptor, at most one lock
// reference, and an optional packet header.
type bdInfo struct {
	hasA, hasB     bool
	baseA, baseB   uint64
	lenA, lenB     int
	bytesA, bytesB int
	offsetA        int
	offsetB        int
	abMode         bool
	fifoMode       bool

	lockSeen  bool
	lockID    int
	acqEnable bool
	acqValue  int
	relEnable bool
	relValue  int

	foundPacket bool
	packetType  int
	packetID    int
}

// scanBlock derives a bdInfo for one basic block by walking its BD ops,
// lock uses, and packet op, resolving buffer base addresses through nl.
func scanBlock(block ir.Block, nl *ir.NetlistAnalysis, strict bool, warn func(string)) (bdInfo, error) {
	var info bdInfo

	for _, bd := range block.BDs {
		base, err := nl.BufferBaseAddress(bd.Buffer)
		if err != nil {
			return bdInfo{}, err
		}
		if bd.IsA {
			info.hasA = true
			info.baseA = base
			info.lenA = bd.Len
			info.bytesA = bd.ElemBits / 8
			info.offsetA = bd.Offset
		}
		if bd.IsB {
			info.hasB = true
			info.baseB = base
			info.lenB = bd.Len
			info.bytesB = bd.ElemBits / 8
			info.offsetB = bd.Offset
		}
	}

	if info.hasA && info.hasB {
		info.abMode = true
		if info.lenA != info.lenB {
			warn("A/B mode length mismatch")
			if strict {
				return bdInfo{}, fmt.Errorf("dma: A/B mode length mismatch (a=%d b=%d)", info.lenA, info.lenB)
			}
		}
		if info.bytesA != info.bytesB {
			warn("A/B mode element size mismatch")
			if strict {
				return bdInfo{}, fmt.Errorf("dma: A/B mode element size mismatch (a=%d b=%d)", info.bytesA, info.bytesB)
			}
		}
	}

	for _, use := range block.LockUses {
		info.lockSeen = true
		info.lockID = use.LockID
		if use.Acquire {
			info.acqEnable = true
			info.acqValue = use.Value
		} else {
			info.relEnable = true
			info.relValue = use.Value
		}
	}
	if info.lockSeen == (!info.acqEnable && !info.relEnable) {
		return bdInfo{}, &store.PreconditionError{
			Op:     "scanBlock",
			Reason: "exactly one lock observed xor both enables disabled must hold",
		}
	}

	if block.Packet != nil {
		info.foundPacket = true
		info.packetType = block.Packet.Type
		info.packetID = block.Packet.ID
	}

	if info.hasB {
		return bdInfo{}, &store.PreconditionError{
			Op:     "scanBlock",
			Reason: "B-side descriptor encoding is not implemented",
		}
	}

	return info, nil
}

// effectiveLen is the length used for the control register's length field:
// the A-side length when an A-side descriptor is present, otherwise the
// B-side length.
func (b bdInfo) effectiveLen() int {
	if b.hasA {
		return b.lenA
	}
	return b.lenB
}
