package switchbox

import (
	"fmt"

	"airbingen/ir"
	"airbingen/model"
	"airbingen/store"
)

const (
	shimMuxOffset   = model.ShimMuxReg
	shimDemuxOffset = model.ShimDemuxReg
)

// demuxShift and muxShift are the shim mux/demux shift tables: they cover
// exactly the four source/destination indices (2, 3, 6, 7) observed in the
// original implementation. Any other index is a programmer error.
var demuxShift = map[uint8]uint32{2: 4, 3: 6, 6: 8, 7: 10}
var muxShift = map[uint8]uint32{2: 8, 3: 10, 6: 12, 7: 14}

// configureShimMuxes accumulates the shim mux/demux masks for every
// shim-mux entity. Later connects OR into whatever mask is already present
// at the register, via a read-modify-write through the write store.
func configureShimMuxes(s *store.WriteStore, muxes []ir.ShimMux) error {
	for _, mux := range muxes {
		tile := model.NewTileAddress(mux.Col, 0)
		for _, c := range mux.Connects {
			if err := shimConnect(s, tile, c); err != nil {
				return fmt.Errorf("switchbox: shim mux col %d: %w", mux.Col, err)
			}
		}
	}
	return nil
}

func shimConnect(s *store.WriteStore, tile model.TileAddress, c ir.ConnectOp) error {
	switch {
	case Bundle(c.SrcBundle) == BundleNorth:
		shift, ok := demuxShift[c.SrcIndex]
		if !ok {
			return &store.PreconditionError{Op: "shimConnect", Reason: fmt.Sprintf("demux index %d not in shift table", c.SrcIndex)}
		}
		code, err := inputMaskCode(Bundle(c.DstBundle))
		if err != nil {
			return err
		}
		return orIntoRegister(s, tile, shimDemuxOffset, code<<shift)

	case Bundle(c.DstBundle) == BundleNorth:
		shift, ok := muxShift[c.DstIndex]
		if !ok {
			return &store.PreconditionError{Op: "shimConnect", Reason: fmt.Sprintf("mux index %d not in shift table", c.DstIndex)}
		}
		code, err := inputMaskCode(Bundle(c.SrcBundle))
		if err != nil {
			return err
		}
		return orIntoRegister(s, tile, shimMuxOffset, code<<shift)

	default:
		return nil
	}
}

func inputMaskCode(bundle Bundle) (uint32, error) {
	switch bundle {
	case BundlePLIO:
		return 0, nil
	case BundleDMA:
		return 1, nil
	case BundleNOC:
		return 2, nil
	default:
		return 0, fmt.Errorf("switchbox: shim mux/demux bundle %q is not PLIO/DMA/NOC", bundle)
	}
}

func orIntoRegister(s *store.WriteStore, tile model.TileAddress, offset uint32, bits uint32) error {
	addr := model.NewAddress(tile, offset)
	current := s.Read32(addr)
	return s.Write32(addr, current|bits)
}
