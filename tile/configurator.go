// Package tile implements the per-tile reset pass: clearing register
// ranges for shim and compute tiles, and invoking the core executable
// loader for compute tiles that carry a core.
package tile

import (
	"fmt"

	"go.uber.org/zap"

	"airbingen/ir"
	"airbingen/loader"
	"airbingen/model"
	"airbingen/store"
)

// Configure resets every tile in the device and loads compute-tile
// executables. It implements configure_cores, the first pass of the fixed
// pass order (translator.Translator runs configure_cores before
// configure_switchboxes and configure_dmas).
func Configure(s *store.WriteStore, device *ir.Device, log *zap.Logger) error {
	for _, t := range device.Tiles {
		addr := model.NewTileAddress(t.Col, t.Row)
		log.Debug("configuring tile", zap.Uint8("col", t.Col), zap.Uint8("row", t.Row))

		if t.IsShimTile || t.IsShimNOCTile {
			if err := configureShim(s, addr, t); err != nil {
				return fmt.Errorf("tile: shim <%d,%d>: %w", t.Col, t.Row, err)
			}
			continue
		}
		if err := configureCompute(s, addr, t, log); err != nil {
			return fmt.Errorf("tile: compute <%d,%d>: %w", t.Col, t.Row, err)
		}
	}
	return nil
}

// configureShim clears shim-only register ranges. Locks and resets beyond
// this are the runtime's responsibility.
func configureShim(s *store.WriteStore, addr model.TileAddress, t ir.Tile) error {
	if t.IsShimNOCTile {
		if err := s.ClearRange(addr, model.ShimDmaBdBase, model.ShimDmaBdBlockSize*model.ShimDmaBdCount); err != nil {
			return err
		}
	}
	if err := s.ClearRange(addr, model.StreamSwitchMasterBase, model.ShimStreamSwitchMasterSize); err != nil {
		return err
	}
	if err := s.ClearRange(addr, model.StreamSwitchSlaveBase, model.ShimStreamSwitchSlaveSize); err != nil {
		return err
	}
	return s.ClearRange(addr, model.StreamSwitchSlotBase, model.StreamSwitchSlotClearBlockSize*model.ShimStreamSwitchSlotCount)
}

// configureCompute clears program/data memory, DMA BD/channel blocks, and
// stream-switch regions using ME block sizes, then loads the tile's core
// executable if it has one.
func configureCompute(s *store.WriteStore, addr model.TileAddress, t ir.Tile, log *zap.Logger) error {
	if err := s.ClearRange(addr, model.ProgMemOffset, model.ProgMemSize); err != nil {
		return err
	}
	if err := s.ClearRange(addr, model.DataMemOffset, model.DataMemSize); err != nil {
		return err
	}
	if err := s.ClearRange(addr, model.DmaBdBase, model.DmaBdBlockSize*model.DmaBdCount); err != nil {
		return err
	}
	if err := s.ClearRange(addr, model.DmaS2mmCtrlBase, model.DmaChannelStride*model.DmaS2mmChannels); err != nil {
		return err
	}
	if err := s.ClearRange(addr, model.DmaMm2sCtrlBase, model.DmaChannelStride*model.DmaMm2sChannels); err != nil {
		return err
	}
	if err := s.ClearRange(addr, model.StreamSwitchMasterBase, model.MeStreamSwitchMasterSize); err != nil {
		return err
	}
	if err := s.ClearRange(addr, model.StreamSwitchSlaveBase, model.MeStreamSwitchSlaveSize); err != nil {
		return err
	}
	if err := s.ClearRange(addr, model.StreamSwitchSlotBase, model.StreamSwitchSlotClearBlockSize*model.MeStreamSwitchSlotCount); err != nil {
		return err
	}

	if t.Core == nil {
		return nil
	}

	fileName := t.Core.ElfFile
	if fileName == "" {
		fileName = fmt.Sprintf("core_%d_%d.elf", t.Col, t.Row)
	}
	if err := loader.LoadCore(s, addr, fileName); err != nil {
		log.Error("failed loading core executable", zap.String("file", fileName), zap.Error(err))
	}
	return nil
}
