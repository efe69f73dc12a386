// Package ir defines the device description this generator consumes: a
// YAML/JSON-decodable view of tiles, memory operations, switchboxes, and
// shim muxes standing in for the front-end dialect's in-memory IR.
package ir

// Device is the top-level input view. A nil Device, or one with zero tiles,
// is a structural error (see the translator's Run entry point).
type Device struct {
	Tiles       []Tile      `json:"tiles"`
	MemOps      []MemOp     `json:"memOps,omitempty"`
	Switchboxes []Switchbox `json:"switchboxes,omitempty"`
	ShimMuxes   []ShimMux   `json:"shimMuxes,omitempty"`
	Buffers     []BufferDef `json:"buffers,omitempty"`
}

// Tile describes one grid position and, for compute tiles, the core loaded
// there.
type Tile struct {
	Col           uint8 `json:"col"`
	Row           uint8 `json:"row"`
	IsShimTile    bool  `json:"isShimTile,omitempty"`
	IsShimNOCTile bool  `json:"isShimNocTile,omitempty"`
	Core          *Core `json:"core,omitempty"`
}

// Core carries the optional explicit executable path for a compute tile.
// When ElfFile is empty the tile configurator falls back to
// core_<col>_<row>.elf.
type Core struct {
	ElfFile string `json:"elfFile,omitempty"`
}

// MemOp is the DMA program body for one compute tile.
type MemOp struct {
	Col    uint8   `json:"col"`
	Row    uint8   `json:"row"`
	Blocks []Block `json:"blocks"`
}

// Block is one basic block of a memory-op body: at most one A and one B BD,
// acquire/release uses of at most one lock, an optional packet header, and
// channel-start ops.
// Successor, if set, names the index (within the owning MemOp's Blocks) of
// this block's single successor.
type Block struct {
	Successor *int         `json:"successor,omitempty"`
	BDs       []BDOp       `json:"bds,omitempty"`
	LockUses  []LockUseOp  `json:"lockUses,omitempty"`
	Packet    *PacketOp    `json:"packet,omitempty"`
	Starts    []DMAStartOp `json:"starts,omitempty"`
}

// BDOp describes one side (A or B) of a block descriptor.
type BDOp struct {
	IsA      bool      `json:"isA,omitempty"`
	IsB      bool      `json:"isB,omitempty"`
	Buffer   BufferRef `json:"buffer"`
	Len      int       `json:"len"`
	ElemBits int       `json:"elemBits"`
	Offset   int       `json:"offset,omitempty"`
}

// BufferRef names a buffer whose base address is resolved through the
// device's NetlistAnalysis stand-in (see netlist.go).
type BufferRef struct {
	Name string `json:"name"`
}

// LockUseOp is one acquire or release use of the block's single lock.
type LockUseOp struct {
	LockID  int  `json:"lockId"`
	Acquire bool `json:"acquire"`
	Value   int  `json:"value"`
}

// PacketOp is a block's optional packet header.
type PacketOp struct {
	Type int `json:"type"`
	ID   int `json:"id"`
}

// DMAStartOp enables a DMA channel and points it at a target block.
type DMAStartOp struct {
	Dir       string `json:"dir"` // "MM2S" or "S2MM"
	Channel   int    `json:"channel"`
	DestBlock int    `json:"destBlock"`
}

// Switchbox is one tile's crossbar configuration.
type Switchbox struct {
	Col         uint8           `json:"col"`
	Row         uint8           `json:"row"`
	Connects    []ConnectOp     `json:"connects,omitempty"`
	MasterSets  []MasterSetOp   `json:"masterSets,omitempty"`
	PacketRules []PacketRulesOp `json:"packetRules,omitempty"`
}

// ConnectOp wires a logical source bundle+index to a logical destination
// bundle+index within one switchbox.
type ConnectOp struct {
	SrcBundle string `json:"srcBundle"`
	SrcIndex  uint8  `json:"srcIndex"`
	DstBundle string `json:"dstBundle"`
	DstIndex  uint8  `json:"dstIndex"`
}

// MasterSetOp programs a master port's arbiter/mselect mask.
type MasterSetOp struct {
	DstBundle string     `json:"dstBundle"`
	DstIndex  uint8      `json:"dstIndex"`
	Amsels    []AmselRef `json:"amsels"`
}

// AmselRef is one arbiter+mselect pair.
type AmselRef struct {
	Arbiter int `json:"arbiter"`
	Msel    int `json:"msel"`
}

// PacketRulesOp attaches a sequence of packet-matching rules to a slave
// port.
type PacketRulesOp struct {
	SrcBundle string        `json:"srcBundle"`
	SrcIndex  uint8         `json:"srcIndex"`
	Rules     []PacketRule  `json:"rules"`
}

// PacketRule is one slot rule: match slot_id/slot_mask, route via Amsel.
type PacketRule struct {
	SlotID   int      `json:"slotId"`
	SlotMask int      `json:"slotMask"`
	Amsel    AmselRef `json:"amsel"`
}

// ShimMux is a shim tile's mux/demux configuration, expressed as a set of
// connect ops whose source or destination bundle is North.
type ShimMux struct {
	Col      uint8       `json:"col"`
	Connects []ConnectOp `json:"connects,omitempty"`
}

// BufferDef is one entry of the NetlistAnalysis stand-in: a pre-allocated
// buffer base address (buffer placement itself is out of scope).
type BufferDef struct {
	Name        string `json:"name"`
	BaseAddress uint64 `json:"baseAddress"`
}
