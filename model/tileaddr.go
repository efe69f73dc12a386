// Package model defines the tile address space and bitfield register
// encoding that every configuration pass writes through.
package model

import "fmt"

// Bit widths and shifts for the (array, column, row, offset) address packing.
const (
	TileAddrOffWidth = 18
	RowWidth         = 5
	ColWidth         = 7

	rowShift   = TileAddrOffWidth
	colShift   = rowShift + RowWidth
	arrayShift = colShift + ColWidth
)

// TileAddress identifies a compute or shim tile by array offset, column, and
// row. Row 0 is always a shim.
type TileAddress struct {
	arrayOffset uint64
	column      uint8
	row         uint8
}

// NewTileAddress constructs a TileAddress at array offset 0.
func NewTileAddress(column, row uint8) TileAddress {
	return TileAddress{column: column, row: row}
}

// NewTileAddressInArray constructs a TileAddress within a specific array
// offset (used when a device has more than one AI-engine array tiled
// together).
func NewTileAddressInArray(arrayOffset uint64, column, row uint8) TileAddress {
	return TileAddress{arrayOffset: arrayOffset, column: column, row: row}
}

// FullAddress computes the 64-bit device address of a register at the given
// offset within this tile.
func (t TileAddress) FullAddress(offset uint32) uint64 {
	return (t.arrayOffset << arrayShift) |
		(uint64(t.column) << colShift) |
		(uint64(t.row) << rowShift) |
		uint64(offset)
}

// IsShim reports whether this tile is a shim tile (row 0).
func (t TileAddress) IsShim() bool {
	return t.row == 0
}

// Column returns the tile's column index.
func (t TileAddress) Column() uint8 {
	return t.column
}

// Row returns the tile's row index.
func (t TileAddress) Row() uint8 {
	return t.row
}

// Ident returns the 16-bit (column, row) identity used as a map key when the
// array offset is irrelevant.
func (t TileAddress) Ident() uint16 {
	return (uint16(t.column) << RowWidth) | uint16(t.row)
}

func (t TileAddress) String() string {
	return fmt.Sprintf("<%d,%d>", t.column, t.row)
}

// Address is a fully-resolved register location: a tile plus an
// offset-within-tile.
type Address struct {
	Tile   TileAddress
	Offset uint32
}

// NewAddress builds an Address, masking the offset to the tile's
// offset-address width.
func NewAddress(tile TileAddress, offset uint32) Address {
	return Address{Tile: tile, Offset: offset & ((1 << TileAddrOffWidth) - 1)}
}

// Full returns the 64-bit device address this Address resolves to.
func (a Address) Full() uint64 {
	return a.Tile.FullAddress(a.Offset)
}
