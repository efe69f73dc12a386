// Package loader parses a compiled per-core executable and places its
// loadable segments into a tile's program or data memory.
package loader

import (
	"debug/elf"
	"encoding/binary"
	"fmt"

	"airbingen/model"
	"airbingen/store"
)

// LoadCore reads the ELF32LE executable at path and writes its PT_LOAD
// segments into the given tile's program/data memory via the write store.
// Segments flagged executable land in program memory at
// model.ProgMemOffset+p_vaddr; all other loadable segments land in data
// memory at model.DataMemOffset+(p_vaddr mod model.DataMemSize). Bytes past
// p_filesz within p_memsz are left cleared — callers are expected to have
// already zeroed program/data memory via a reset pass.
//
// LoadCore returns an error if the file cannot be opened or is not a
// 32-bit little-endian ELF; callers treat this as a per-tile I/O failure,
// not a fatal one (see the loader's caller in the tile configurator).
func LoadCore(s *store.WriteStore, tile model.TileAddress, path string) error {
	f, err := elf.Open(path)
	if err != nil {
		return fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()

	if f.Class != elf.ELFCLASS32 {
		return fmt.Errorf("loader: %s: expected ELFCLASS32, got %s", path, f.Class)
	}
	if f.Data != elf.ELFDATA2LSB {
		return fmt.Errorf("loader: %s: expected ELFDATA2LSB, got %s", path, f.Data)
	}

	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}

		var dest uint32
		if prog.Flags&elf.PF_X != 0 {
			dest = model.ProgMemOffset + uint32(prog.Vaddr)
		} else {
			dest = model.DataMemOffset + (uint32(prog.Vaddr) % model.DataMemSize)
		}

		if err := loadSegment(s, tile, prog, dest); err != nil {
			return fmt.Errorf("loader: %s: %w", path, err)
		}
	}

	return nil
}

func loadSegment(s *store.WriteStore, tile model.TileAddress, prog *elf.Prog, dest uint32) error {
	buf := make([]byte, prog.Filesz)
	if _, err := prog.ReadAt(buf, 0); err != nil {
		return fmt.Errorf("read segment: %w", err)
	}

	for i := 0; i+4 <= len(buf); i += 4 {
		word := binary.LittleEndian.Uint32(buf[i:])
		if err := s.Write32(model.NewAddress(tile, dest), word); err != nil {
			return err
		}
		dest += 4
	}

	return nil
}
