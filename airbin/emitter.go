// Package airbin classifies grouped write-store sections by address and
// emits the resulting 64-bit ELF AIRBIN container.
package airbin

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"airbingen/model"
	"airbingen/store"
)

// Emit renders sections into a 64-bit little-endian ELF and writes it to w.
// It never touches disk itself: the image is assembled entirely in memory
// and streamed directly to the caller's sink.
func Emit(w io.Writer, sections []store.Section) error {
	var body bytes.Buffer

	strtab := newStrtabBuilder()
	shstrtabNameOff := strtab.add(".shstrtab")
	namedOffsets := make(map[model.SectionKind]uint32, len(model.AllNamedSectionKinds()))
	for _, kind := range model.AllNamedSectionKinds() {
		namedOffsets[kind] = strtab.add(kind.Name())
	}

	// Section 0 is the mandatory all-zero SHN_UNDEF entry; section 1 is
	// .shstrtab; sections 2.. are the classified PROGBITS payloads.
	shdrs := make([]elf64SectionHeader, 0, 2+len(sections))
	shdrs = append(shdrs, elf64SectionHeader{})

	dataOffset := uint64(ehdrSize)

	shstrtabData := strtab.buf.Bytes()
	shdrs = append(shdrs, elf64SectionHeader{
		Name:      shstrtabNameOff,
		Type:      shtStrtab,
		Flags:     0,
		Addr:      0,
		Offset:    dataOffset,
		Size:      uint64(len(shstrtabData)),
		Link:      shnUndef,
		Info:      shnUndef,
		AddrAlign: 1,
	})
	body.Write(shstrtabData)
	dataOffset += uint64(len(shstrtabData))

	for _, sec := range sections {
		kind := model.ClassifyAddress(sec.BaseAddress)
		nameOff, ok := namedOffsets[kind]
		if !ok {
			return fmt.Errorf("airbin: section at %#x classified to unnamed kind %d", sec.BaseAddress, kind)
		}

		payload := make([]byte, 0, sec.LengthBytes())
		buf := make([]byte, 4)
		for _, word := range sec.Data {
			binary.LittleEndian.PutUint32(buf, word)
			payload = append(payload, buf...)
		}

		shdrs = append(shdrs, elf64SectionHeader{
			Name:      nameOff,
			Type:      shtProgbits,
			Flags:     shfAlloc,
			Addr:      sec.BaseAddress,
			Offset:    dataOffset,
			Size:      uint64(len(payload)),
			Link:      shnUndef,
			Info:      shnUndef,
			AddrAlign: 1,
		})
		body.Write(payload)
		dataOffset += uint64(len(payload))
	}

	header := newElf64Header()
	header.ShOff = dataOffset
	header.ShEntSize = shdrSize
	header.ShNum = uint16(len(shdrs))
	header.ShStrNdx = 1

	var out bytes.Buffer
	if err := writeHeader(&out, header); err != nil {
		return fmt.Errorf("airbin: write ELF header: %w", err)
	}
	out.Write(body.Bytes())
	for _, sh := range shdrs {
		if err := writeSectionHeader(&out, sh); err != nil {
			return fmt.Errorf("airbin: write section header: %w", err)
		}
	}

	_, err := w.Write(out.Bytes())
	return err
}
