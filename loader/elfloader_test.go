package loader

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"airbingen/model"
	"airbingen/store"
)

func writeELF(t *testing.T, vaddr uint32, flags uint32, word uint32) string {
	t.Helper()
	const ehdrSize, phdrSize = 52, 32

	buf := make([]byte, ehdrSize+phdrSize+4)
	buf[0], buf[1], buf[2], buf[3] = 0x7F, 'E', 'L', 'F'
	buf[4], buf[5], buf[6] = 1, 1, 1

	le := binary.LittleEndian
	le.PutUint16(buf[16:], 2)
	le.PutUint16(buf[18:], 0xF3)
	le.PutUint32(buf[20:], 1)
	le.PutUint32(buf[28:], ehdrSize)
	le.PutUint16(buf[40:], ehdrSize)
	le.PutUint16(buf[42:], phdrSize)
	le.PutUint16(buf[44:], 1)

	p := buf[ehdrSize:]
	le.PutUint32(p[0:], 1)
	le.PutUint32(p[4:], ehdrSize+phdrSize)
	le.PutUint32(p[8:], vaddr)
	le.PutUint32(p[12:], vaddr)
	le.PutUint32(p[16:], 4)
	le.PutUint32(p[20:], 4)
	le.PutUint32(p[24:], flags)
	le.PutUint32(p[28:], 4)

	le.PutUint32(buf[ehdrSize+phdrSize:], word)

	path := filepath.Join(t.TempDir(), "seg.elf")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCoreExecutableSegmentGoesToProgramMemory(t *testing.T) {
	path := writeELF(t, 0x10, 5 /* PF_X|PF_R */, 0x11223344)
	s := store.New()
	tile := model.NewTileAddress(1, 1)

	if err := LoadCore(s, tile, path); err != nil {
		t.Fatal(err)
	}
	got := s.Read32(model.NewAddress(tile, model.ProgMemOffset+0x10))
	if got != 0x11223344 {
		t.Fatalf("program memory at +0x10 = %#x, want 0x11223344", got)
	}
}

func TestLoadCoreDataSegmentGoesToDataMemory(t *testing.T) {
	path := writeELF(t, 0x20, 6 /* PF_W|PF_R */, 0x55667788)
	s := store.New()
	tile := model.NewTileAddress(1, 1)

	if err := LoadCore(s, tile, path); err != nil {
		t.Fatal(err)
	}
	got := s.Read32(model.NewAddress(tile, model.DataMemOffset+0x20))
	if got != 0x55667788 {
		t.Fatalf("data memory at +0x20 = %#x, want 0x55667788", got)
	}
}

func TestLoadCoreRejectsMissingFile(t *testing.T) {
	s := store.New()
	tile := model.NewTileAddress(1, 1)
	if err := LoadCore(s, tile, filepath.Join(t.TempDir(), "missing.elf")); err == nil {
		t.Fatal("expected error for a missing ELF file")
	}
}
