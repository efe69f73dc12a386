// Package dma implements the DMA configurator: BD chain assembly, lock
// acquire/release semantics, packet headers, and channel enablement.
package dma

import (
	"fmt"

	"go.uber.org/zap"

	"airbingen/ir"
	"airbingen/model"
	"airbingen/stats"
	"airbingen/store"
)

var (
	bdAddressLockID              = model.NewField(25, 22)
	bdAddressReleaseEnable       = model.Bit(21)
	bdAddressReleaseValue        = model.Bit(20)
	bdAddressReleaseValueEnable  = model.Bit(19)
	bdAddressAcquireEnable       = model.Bit(18)
	bdAddressAcquireValue        = model.Bit(17)
	bdAddressAcquireValueEnable  = model.Bit(16)
	bdAddressBase                = model.NewField(12, 0)
	bdControlLength              = model.NewField(12, 0)
	bdControlABMode              = model.Bit(30)
	bdControlFifo                = model.Bit(28)
	bdControlNextBD              = model.NewField(16, 13)
	bdControlEnableNextBD        = model.Bit(17)
	bdPacketType                 = model.NewField(14, 12)
	bdPacketID                   = model.NewField(4, 0)
	bdControlEnablePacket        = model.Bit(27)
	bdControlValid               = model.Bit(31)
	dmaChannelReset              = model.Bit(1)
	dmaChannelEnable             = model.Bit(0)
	dmaChannelQueueStartBd       = model.NewField(4, 0)
)

// bdDefaults mirrors the hardware's nonzero-in-reset-state X and Y
// registers.
const (
	bdDefaultX = 0x00FF0001
	bdDefaultY = 0xFFFF0100
)

// Configure implements configure_dmas: the third and final pass of the
// fixed pass order. It walks each compute tile's memory-op body, assembles
// BD chains and channel enablement, and records write-only diagnostic
// statistics via the stats package.
func Configure(s *store.WriteStore, device *ir.Device, nl *ir.NetlistAnalysis, strict bool, log *zap.Logger) (map[model.TileAddress]stats.DMA, error) {
	totals := make(map[model.TileAddress]stats.DMA)

	for _, memOp := range device.MemOps {
		tile := model.NewTileAddress(memOp.Col, memOp.Row)
		log.Debug("configuring dma", zap.Uint8("col", memOp.Col), zap.Uint8("row", memOp.Row))

		if err := clearChannels(s, tile); err != nil {
			return nil, fmt.Errorf("dma: tile %s: %w", tile, err)
		}

		blockBD := assignBDNumbers(memOp.Blocks)

		var accum stats.DMA
		for i, block := range memOp.Blocks {
			bdNum, ok := blockBD[i]
			if !ok {
				continue
			}
			warn := func(msg string) { log.Warn(msg, zap.Uint8("col", memOp.Col), zap.Uint8("row", memOp.Row), zap.Int("bd", bdNum)) }
			info, err := scanBlock(block, nl, strict, warn)
			if err != nil {
				return nil, fmt.Errorf("dma: tile %s block %d: %w", tile, i, err)
			}
			if !info.hasA && !info.hasB {
				continue
			}

			successor := -1
			if block.Successor != nil {
				if next, ok := blockBD[*block.Successor]; ok {
					successor = next
				}
			}

			writeBD(s, tile, bdNum, info, successor)
			accum.BDSlotsUsed++
			if successor >= 0 {
				accum.Chains++
			}
			accum.ConfiguredBytes += info.effectiveLen() * effectiveBytes(info)
		}
		totals[tile] = accum

		if err := configureStarts(s, tile, memOp.Blocks, blockBD); err != nil {
			return nil, fmt.Errorf("dma: tile %s: %w", tile, err)
		}

		log.Debug("dma totals", zap.Uint8("col", memOp.Col), zap.Uint8("row", memOp.Row),
			zap.Int("bdSlotsUsed", accum.BDSlotsUsed), zap.Int("chains", accum.Chains),
			zap.Int("configuredBytes", accum.ConfiguredBytes))
	}

	return totals, nil
}

func effectiveBytes(info bdInfo) int {
	if info.hasA {
		return info.bytesA
	}
	return info.bytesB
}

func clearChannels(s *store.WriteStore, tile model.TileAddress) error {
	disabled := model.Compose(dmaChannelReset.EncodeBool(false), dmaChannelEnable.EncodeBool(false))
	for ch := 0; ch < model.DmaS2mmChannels; ch++ {
		if err := s.Write32(model.NewAddress(tile, model.DmaS2mmCtrlOffset(ch)), disabled); err != nil {
			return err
		}
		if err := s.Write32(model.NewAddress(tile, model.DmaS2mmQueueOffset(ch)), 0); err != nil {
			return err
		}
	}
	for ch := 0; ch < model.DmaMm2sChannels; ch++ {
		if err := s.Write32(model.NewAddress(tile, model.DmaMm2sCtrlOffset(ch)), disabled); err != nil {
			return err
		}
		if err := s.Write32(model.NewAddress(tile, model.DmaMm2sQueueOffset(ch)), 0); err != nil {
			return err
		}
	}
	return nil
}

// assignBDNumbers gives every block containing at least one BD op a
// sequential BD number starting at 0, in block order.
func assignBDNumbers(blocks []ir.Block) map[int]int {
	blockBD := make(map[int]int)
	bdNum := 0
	for i, block := range blocks {
		if len(block.BDs) == 0 {
			continue
		}
		blockBD[i] = bdNum
		bdNum++
	}
	return blockBD
}

func writeBD(s *store.WriteStore, tile model.TileAddress, bdNum int, info bdInfo, successor int) {
	addrA := uint32(0)
	if info.hasA {
		addrA = model.Compose(
			bdAddressLockID.Encode(uint32(info.lockID)),
			bdAddressReleaseEnable.EncodeBool(info.relEnable),
			bdAddressAcquireEnable.EncodeBool(info.acqEnable),
		)
		if info.relValue != 0xFF {
			addrA |= model.Compose(bdAddressReleaseValueEnable.EncodeBool(true), bdAddressReleaseValue.Encode(uint32(info.relValue)))
		}
		if info.acqValue != 0xFF {
			addrA |= model.Compose(bdAddressAcquireValueEnable.EncodeBool(true), bdAddressAcquireValue.Encode(uint32(info.acqValue)))
		}
	}
	// B-side lock controls are unimplemented (scanBlock already rejects
	// any block with hasB); addr_b below only ever carries a base address.

	base := info.baseA + uint64(info.offsetA)
	if !info.hasA {
		base = info.baseB + uint64(info.offsetB)
	}
	addrA |= bdAddressBase.Encode(uint32(base >> 2))
	addrB := bdAddressBase.Encode(uint32((info.baseB + uint64(info.offsetB)) >> 2))

	control := model.Compose(
		bdControlLength.Encode(uint32(info.effectiveLen()-1)),
		bdControlFifo.EncodeBool(info.fifoMode),
		bdControlABMode.EncodeBool(info.abMode),
	)
	if successor >= 0 {
		control |= model.Compose(bdControlEnableNextBD.EncodeBool(true), bdControlNextBD.Encode(uint32(successor)))
	}
	if info.foundPacket {
		control |= bdControlEnablePacket.EncodeBool(true)
	}
	control |= bdControlValid.EncodeBool(true)

	packet := uint32(0)
	if info.foundPacket {
		packet = model.Compose(bdPacketID.Encode(uint32(info.packetID)), bdPacketType.Encode(uint32(info.packetType)))
	}

	base32 := model.DmaBdOffset(bdNum)
	s.MustWrite32(model.NewAddress(tile, base32), addrA)
	s.MustWrite32(model.NewAddress(tile, base32+0x04), addrB)
	s.MustWrite32(model.NewAddress(tile, base32+0x08), bdDefaultX)
	s.MustWrite32(model.NewAddress(tile, base32+0x0C), bdDefaultY)
	s.MustWrite32(model.NewAddress(tile, base32+0x10), packet)
	s.MustWrite32(model.NewAddress(tile, base32+0x14), 0)
	s.MustWrite32(model.NewAddress(tile, base32+0x18), control)
}

func configureStarts(s *store.WriteStore, tile model.TileAddress, blocks []ir.Block, blockBD map[int]int) error {
	for _, block := range blocks {
		for _, start := range block.Starts {
			bdNum, ok := blockBD[start.DestBlock]
			if !ok {
				continue
			}
			enabled := model.Compose(dmaChannelEnable.EncodeBool(true), dmaChannelReset.EncodeBool(false))
			startVal := dmaChannelQueueStartBd.Encode(uint32(bdNum))
			var queueOff, ctrlOff uint32
			if start.Dir == "MM2S" {
				queueOff = model.DmaMm2sQueueOffset(start.Channel)
				ctrlOff = model.DmaMm2sCtrlOffset(start.Channel)
			} else {
				queueOff = model.DmaS2mmQueueOffset(start.Channel)
				ctrlOff = model.DmaS2mmCtrlOffset(start.Channel)
			}
			if err := s.Write32(model.NewAddress(tile, queueOff), startVal); err != nil {
				return err
			}
			if err := s.Write32(model.NewAddress(tile, ctrlOff), enabled); err != nil {
				return err
			}
		}
	}
	return nil
}
