package model

import "testing"

func TestTileAddressFullAddressPacking(t *testing.T) {
	tile := NewTileAddress(3, 5)
	addr := tile.FullAddress(0x100)

	if got := addr & (1<<TileAddrOffWidth - 1); got != 0x100 {
		t.Fatalf("offset bits = %#x, want 0x100", got)
	}
	if got := (addr >> rowShift) & (1<<RowWidth - 1); got != 5 {
		t.Fatalf("row bits = %d, want 5", got)
	}
	if got := (addr >> colShift) & (1<<ColWidth - 1); got != 3 {
		t.Fatalf("column bits = %d, want 3", got)
	}
}

func TestTileAddressIsShim(t *testing.T) {
	if !NewTileAddress(4, 0).IsShim() {
		t.Fatal("row 0 must be a shim tile")
	}
	if NewTileAddress(4, 1).IsShim() {
		t.Fatal("row 1 must not be a shim tile")
	}
}

func TestNewAddressMasksOffset(t *testing.T) {
	tile := NewTileAddress(1, 1)
	addr := NewAddress(tile, 1<<TileAddrOffWidth|0x40)
	if addr.Offset != 0x40 {
		t.Fatalf("Offset = %#x, want 0x40", addr.Offset)
	}
}

func TestTileAddressIdentDistinguishesColumnsAndRows(t *testing.T) {
	a := NewTileAddress(1, 2).Ident()
	b := NewTileAddress(2, 1).Ident()
	if a == b {
		t.Fatalf("Ident collided for distinct (col,row) pairs: %d", a)
	}
}
