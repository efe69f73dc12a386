package model

// SectionKind is the closed enumeration of AIRBIN section kinds. Declaration
// order fixes the ordinal values and the order names are registered into
// .shstrtab.
type SectionKind uint8

const (
	SectionNull SectionKind = iota
	SectionStreamSwitchMaster
	SectionStreamSwitchSlave
	SectionStreamSwitchPacket
	SectionSdmaBd
	SectionShimMux
	SectionSdmaCtl
	SectionProgramMemory
	SectionTdmaBd
	SectionTdmaCtl
	SectionDeprecated
	SectionDataMemory

	sectionKindCount
)

// sectionNames holds the canonical AIRBIN section name for each SectionKind.
// SectionNull has no name of its own beyond the empty string that always
// occupies offset 0 of .shstrtab. SectionTdmaBd and SectionDeprecated are
// never produced by ClassifyAddress — they round out the enumeration (and
// its .shstrtab pre-registration) but no address ever classifies to them.
var sectionNames = [sectionKindCount]string{
	SectionNull:               "",
	SectionStreamSwitchMaster: ".ssmast",
	SectionStreamSwitchSlave:  ".ssslve",
	SectionStreamSwitchPacket: ".sspckt",
	SectionSdmaBd:             ".sdma.bd",
	SectionShimMux:            ".shmmux",
	SectionSdmaCtl:            ".sdma.ctl",
	SectionProgramMemory:      ".prgm.mem",
	SectionTdmaBd:             ".tdma.bd",
	SectionTdmaCtl:            ".tdma.ctl",
	SectionDeprecated:         "deprecated",
	SectionDataMemory:         ".data.mem",
}

// Name returns the canonical AIRBIN section name for this kind.
func (k SectionKind) Name() string {
	if int(k) >= len(sectionNames) {
		return ""
	}
	return sectionNames[k]
}

// AllNamedSectionKinds returns SectionKind 1..11 in declaration order, the
// set pre-registered into .shstrtab ahead of any actual section headers.
func AllNamedSectionKinds() []SectionKind {
	kinds := make([]SectionKind, 0, sectionKindCount-1)
	for k := SectionStreamSwitchMaster; k < sectionKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ClassifyAddress maps a full device address to its AIRBIN section kind by
// inspecting the low TileAddrOffWidth bits, per the classification table.
func ClassifyAddress(addr uint64) SectionKind {
	low := uint32(addr & (1<<TileAddrOffWidth - 1))
	switch low {
	case DataMemOffset:
		return SectionDataMemory
	case ProgMemOffset:
		return SectionProgramMemory
	case DmaBdBase:
		return SectionSdmaBd
	case DmaBdOffset(10):
		return SectionSdmaCtl
	case DmaS2mmCtrlBase:
		return SectionTdmaCtl
	case ShimMuxBase:
		return SectionShimMux
	case StreamSwitchMasterBase:
		return SectionStreamSwitchMaster
	case StreamSwitchSlaveBase:
		return SectionStreamSwitchSlave
	case StreamSwitchSlotBase:
		return SectionStreamSwitchPacket
	default:
		return SectionNull
	}
}
