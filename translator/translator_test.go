package translator

import (
	"bytes"
	"testing"

	"go.uber.org/zap"

	"airbingen/ir"
)

func TestRunRejectsNilDevice(t *testing.T) {
	tr := New(zap.NewNop(), false, "test-run")
	if _, err := tr.Run(nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for a nil device")
	}
}

func TestRunRejectsDeviceWithNoTiles(t *testing.T) {
	tr := New(zap.NewNop(), false, "test-run")
	if _, err := tr.Run(&ir.Device{}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for a device with zero tiles")
	}
}

func TestRunEmitsAnELFForASingleShimTile(t *testing.T) {
	device := &ir.Device{
		Tiles: []ir.Tile{{Col: 2, Row: 0, IsShimTile: true}},
	}
	tr := New(zap.NewNop(), false, "test-run")

	var out bytes.Buffer
	result, err := tr.Run(device, &out)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() == 0 {
		t.Fatal("expected non-empty AIRBIN output")
	}
	if !bytes.Equal(out.Bytes()[0:4], []byte{0x7F, 'E', 'L', 'F'}) {
		t.Fatal("output does not start with the ELF magic")
	}
	if result.DMAStats == nil {
		t.Fatal("expected a non-nil DMAStats map, even if empty")
	}
}

func TestRunIsDeterministicAcrossRuns(t *testing.T) {
	device := &ir.Device{
		Tiles: []ir.Tile{
			{Col: 1, Row: 1},
			{Col: 2, Row: 0, IsShimTile: true},
		},
		MemOps: []ir.MemOp{
			{
				Col: 1, Row: 1,
				Blocks: []ir.Block{
					{BDs: []ir.BDOp{{IsA: true, Buffer: ir.BufferRef{Name: "buf"}, Len: 8, ElemBits: 32}}},
				},
			},
		},
		Buffers: []ir.BufferDef{{Name: "buf", BaseAddress: 0x1000}},
	}

	var first, second bytes.Buffer
	if _, err := New(zap.NewNop(), false, "run-a").Run(device, &first); err != nil {
		t.Fatal(err)
	}
	if _, err := New(zap.NewNop(), false, "run-b").Run(device, &second); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatal("two runs over the same device description produced different AIRBIN images")
	}
}
