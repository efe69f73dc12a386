package switchbox

import (
	"fmt"

	"go.uber.org/zap"

	"airbingen/ir"
	"airbingen/model"
	"airbingen/store"
)

var (
	streamEnable           = model.Bit(31)
	streamPacketEnable     = model.Bit(30)
	streamMasterDropHeader = model.Bit(7)
	streamMasterConfig     = model.NewField(6, 0)
	streamSlotID           = model.NewField(28, 24)
	streamSlotMask         = model.NewField(20, 16)
	streamSlotEnable       = model.Bit(8)
	streamSlotMSel         = model.NewField(5, 4)
	streamSlotArbit        = model.NewField(2, 0)
)

// Configure implements configure_switchboxes: the second pass of the fixed
// pass order. It programs connect, master-set, and packet-rules ops for
// every switchbox, then composes shim mux/demux masks.
func Configure(s *store.WriteStore, device *ir.Device, log *zap.Logger) error {
	for _, sb := range device.Switchboxes {
		tile := model.NewTileAddress(sb.Col, sb.Row)
		isShim := tile.IsShim()
		log.Debug("configuring switchbox", zap.Uint8("col", sb.Col), zap.Uint8("row", sb.Row))

		for _, c := range sb.Connects {
			if err := connect(s, tile, isShim, c); err != nil {
				return fmt.Errorf("switchbox: tile %s: %w", tile, err)
			}
		}
		for _, ms := range sb.MasterSets {
			if err := masterSet(s, tile, isShim, ms); err != nil {
				return fmt.Errorf("switchbox: tile %s: %w", tile, err)
			}
		}
		for _, pr := range sb.PacketRules {
			if err := packetRules(s, tile, isShim, pr); err != nil {
				return fmt.Errorf("switchbox: tile %s: %w", tile, err)
			}
		}
	}

	return configureShimMuxes(s, device.ShimMuxes)
}

func connect(s *store.WriteStore, tile model.TileAddress, isShim bool, c ir.ConnectOp) error {
	slavePort, err := SlavePort(Bundle(c.SrcBundle), c.SrcIndex, isShim)
	if err != nil {
		return err
	}
	masterPort, err := MasterPort(Bundle(c.DstBundle), c.DstIndex, isShim)
	if err != nil {
		return err
	}

	dropHeader := (slavePort & 0x80) >> 7
	masterVal := model.Compose(
		streamEnable.EncodeBool(true),
		streamPacketEnable.EncodeBool(false),
		streamMasterDropHeader.Encode(uint32(dropHeader)),
		streamMasterConfig.Encode(uint32(slavePort)),
	)
	if err := s.Write32(model.NewAddress(tile, model.StreamSwitchMasterOffset(masterPort)), masterVal); err != nil {
		return err
	}

	slaveVal := model.Compose(streamEnable.EncodeBool(true), streamPacketEnable.EncodeBool(false))
	return s.Write32(model.NewAddress(tile, model.StreamSwitchSlaveOffset(slavePort)), slaveVal)
}

// masterSet writes the composite value that OR's streamMasterConfig(config)
// where config already contains the mask and arbiter shifted into place —
// this double-encoding is preserved verbatim from the original
// implementation, not corrected, per the observed-behavior instruction.
func masterSet(s *store.WriteStore, tile model.TileAddress, isShim bool, ms ir.MasterSetOp) error {
	masterPort, err := MasterPort(Bundle(ms.DstBundle), ms.DstIndex, isShim)
	if err != nil {
		return err
	}

	var mask uint32
	arbiter := -1
	for _, amsel := range ms.Amsels {
		arbiter = amsel.Arbiter
		mask |= 1 << uint(amsel.Msel)
	}

	dropHeader := ms.DstBundle == string(BundleDMA)
	config := model.Compose(
		streamMasterDropHeader.EncodeBool(dropHeader),
		mask<<3,
		uint32(arbiter),
	)

	value := model.Compose(
		streamEnable.EncodeBool(true),
		streamPacketEnable.EncodeBool(true),
		streamMasterDropHeader.EncodeBool(dropHeader),
		streamMasterConfig.Encode(config),
	)
	return s.Write32(model.NewAddress(tile, model.StreamSwitchMasterOffset(masterPort)), value)
}

func packetRules(s *store.WriteStore, tile model.TileAddress, isShim bool, pr ir.PacketRulesOp) error {
	slavePort, err := SlavePort(Bundle(pr.SrcBundle), pr.SrcIndex, isShim)
	if err != nil {
		return err
	}

	slaveVal := model.Compose(streamEnable.EncodeBool(true), streamPacketEnable.EncodeBool(true))
	if err := s.Write32(model.NewAddress(tile, model.StreamSwitchSlaveOffset(slavePort)), slaveVal); err != nil {
		return err
	}

	for k, rule := range pr.Rules {
		config := model.Compose(
			streamSlotID.Encode(uint32(rule.SlotID)),
			streamSlotMask.Encode(uint32(rule.SlotMask)),
			streamSlotEnable.EncodeBool(true),
			streamSlotMSel.Encode(uint32(rule.Amsel.Msel)),
			streamSlotArbit.Encode(uint32(rule.Amsel.Arbiter)),
		)
		if err := s.Write32(model.NewAddress(tile, model.StreamSwitchSlotOffset(slavePort, k)), config); err != nil {
			return err
		}
	}
	return nil
}
