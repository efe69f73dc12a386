package airbin

import (
	"bytes"
	"encoding/binary"
	"testing"

	"airbingen/model"
	"airbingen/store"
)

func TestEmitProducesValidELFHeader(t *testing.T) {
	tile := model.NewTileAddress(1, 1)
	sections := []store.Section{
		{BaseAddress: tile.FullAddress(model.DataMemOffset), Data: []uint32{0x1, 0x2}},
	}

	var out bytes.Buffer
	if err := Emit(&out, sections); err != nil {
		t.Fatal(err)
	}

	data := out.Bytes()
	if len(data) < ehdrSize {
		t.Fatalf("output too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[0:4], []byte{0x7F, 'E', 'L', 'F'}) {
		t.Fatalf("missing ELF magic: %x", data[0:4])
	}
	if data[4] != elfClass64 {
		t.Fatalf("EI_CLASS = %d, want ELFCLASS64", data[4])
	}
	if data[5] != elfData2LSB {
		t.Fatalf("EI_DATA = %d, want ELFDATA2LSB", data[5])
	}

	machine := binary.LittleEndian.Uint16(data[18:20])
	if machine != elfMachineAMDAIR {
		t.Fatalf("e_machine = %#x, want %#x", machine, elfMachineAMDAIR)
	}

	shnum := binary.LittleEndian.Uint16(data[60:62])
	if shnum != 3 { // SHN_UNDEF + .shstrtab + one PROGBITS section
		t.Fatalf("e_shnum = %d, want 3", shnum)
	}
	shstrndx := binary.LittleEndian.Uint16(data[62:64])
	if shstrndx != 1 {
		t.Fatalf("e_shstrndx = %d, want 1", shstrndx)
	}
}

func TestEmitRejectsUnclassifiableSection(t *testing.T) {
	sections := []store.Section{
		{BaseAddress: 0xDEADBEEF00, Data: []uint32{0x1}},
	}
	var out bytes.Buffer
	if err := Emit(&out, sections); err == nil {
		t.Fatal("expected error for a section address that classifies to SectionNull")
	}
}

func TestEmitEmptySectionsStillProducesHeader(t *testing.T) {
	var out bytes.Buffer
	if err := Emit(&out, nil); err != nil {
		t.Fatal(err)
	}
	if out.Len() < ehdrSize {
		t.Fatalf("output too short: %d bytes", out.Len())
	}
}
