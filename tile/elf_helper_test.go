package tile

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// writeMinimalELF builds the smallest 32-bit little-endian ELF file
// debug/elf will accept: one executable PT_LOAD segment carrying the single
// word 0xDEADBEEF at virtual address 0, and no section headers at all.
func writeMinimalELF(t *testing.T) string {
	t.Helper()

	const (
		ehdrSize = 52
		phdrSize = 32
	)

	buf := make([]byte, ehdrSize+phdrSize+4)

	// e_ident
	buf[0], buf[1], buf[2], buf[3] = 0x7F, 'E', 'L', 'F'
	buf[4] = 1 // ELFCLASS32
	buf[5] = 1 // ELFDATA2LSB
	buf[6] = 1 // EV_CURRENT

	le := binary.LittleEndian
	le.PutUint16(buf[16:], 2)          // e_type = ET_EXEC
	le.PutUint16(buf[18:], 0xF3)       // e_machine, arbitrary
	le.PutUint32(buf[20:], 1)          // e_version
	le.PutUint32(buf[24:], 0)          // e_entry
	le.PutUint32(buf[28:], ehdrSize)   // e_phoff
	le.PutUint32(buf[32:], 0)          // e_shoff
	le.PutUint32(buf[36:], 0)          // e_flags
	le.PutUint16(buf[40:], ehdrSize)   // e_ehsize
	le.PutUint16(buf[42:], phdrSize)   // e_phentsize
	le.PutUint16(buf[44:], 1)          // e_phnum
	le.PutUint16(buf[46:], 0)          // e_shentsize
	le.PutUint16(buf[48:], 0)          // e_shnum
	le.PutUint16(buf[50:], 0)          // e_shstrndx

	p := buf[ehdrSize:]
	le.PutUint32(p[0:], 1)                       // p_type = PT_LOAD
	le.PutUint32(p[4:], ehdrSize+phdrSize)        // p_offset
	le.PutUint32(p[8:], 0)                        // p_vaddr
	le.PutUint32(p[12:], 0)                       // p_paddr
	le.PutUint32(p[16:], 4)                       // p_filesz
	le.PutUint32(p[20:], 4)                       // p_memsz
	le.PutUint32(p[24:], 5)                       // p_flags = PF_X|PF_R
	le.PutUint32(p[28:], 4)                       // p_align

	le.PutUint32(buf[ehdrSize+phdrSize:], 0xDEADBEEF)

	path := filepath.Join(t.TempDir(), "core.elf")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
