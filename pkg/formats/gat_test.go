package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// createTestGAT creates a minimal valid GAT file for testing.
func createTestGAT(width, height uint32, cellTypes []uint32) []byte {
	buf := new(bytes.Buffer)

	// Magic "GRAT"
	buf.WriteString("GRAT")

	// Version 1.2 (stored as minor, major)
	buf.WriteByte(2) // minor
	buf.WriteByte(1) // major

	// Dimensions
	binary.Write(buf, binary.LittleEndian, width)
	binary.Write(buf, binary.LittleEndian, height)

	// Cells
	cellCount := int(width * height)
	for i := 0; i < cellCount; i++ {
		// Heights (4 floats)
		for j := 0; j < 4; j++ {
			binary.Write(buf, binary.LittleEndian, float32(-1.5))
		}
		var cellType uint32
		if i < len(cellTypes) {
			cellType = cellTypes[i]
		}
		binary.Write(buf, binary.LittleEndian, cellType)
	}

	return buf.Bytes()
}

func TestParseGAT_ValidFile(t *testing.T) {
	grid, err := ParseGAT(createTestGAT(4, 3, nil))
	if err != nil {
		t.Fatalf("ParseGAT failed: %v", err)
	}
	if grid.Width != 4 || grid.Height != 3 {
		t.Errorf("expected 4x3, got %dx%d", grid.Width, grid.Height)
	}
	if len(grid.Cells) != 12 {
		t.Errorf("expected 12 cells, got %d", len(grid.Cells))
	}
	if grid.CountByType()[CellWalkable] != 12 {
		t.Error("expected every cell walkable")
	}
}

func TestParseGAT_CellTypes(t *testing.T) {
	data := createTestGAT(3, 2, []uint32{0, 1, 2, 3, 4, 5})

	grid, err := ParseGAT(data)
	if err != nil {
		t.Fatalf("ParseGAT failed: %v", err)
	}

	expected := []CellType{CellWalkable, CellBlocked, CellWater, CellShallow, CellBlocked, CellBlocked}
	for i, want := range expected {
		if grid.Cells[i] != want {
			t.Errorf("cell %d: expected %v, got %v", i, want, grid.Cells[i])
		}
	}
	if !grid.IsWalkable(0, 1) {
		t.Error("shallow water at (0,1) should be walkable")
	}
	if grid.IsWalkable(2, 0) {
		t.Error("deep water at (2,0) should not be walkable")
	}
}

func TestParseGAT_Errors(t *testing.T) {
	truncated := createTestGAT(2, 2, nil)
	truncated = truncated[:len(truncated)-3]

	badVersion := createTestGAT(1, 1, nil)
	badVersion[5] = 9

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", []byte("GR"), ErrTruncatedGATData},
		{"invalid magic", []byte("XXXX\x02\x01\x04\x00\x00\x00\x04\x00\x00\x00"), ErrInvalidGATMagic},
		{"header only magic", []byte("GRAT"), ErrTruncatedGATData},
		{"truncated cells", truncated, ErrTruncatedGATData},
		{"bad version", badVersion, ErrUnsupportedGATVersion},
		{"unknown type", createTestGAT(1, 1, []uint32{42}), ErrUnknownCell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGAT(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseGAT_ZeroDimensions(t *testing.T) {
	if _, err := ParseGAT(createTestGAT(0, 4, nil)); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestEncodeGAT_RoundTrip(t *testing.T) {
	src, err := ParseNavGrid([]string{
		"..#~",
		",,..",
	})
	if err != nil {
		t.Fatalf("ParseNavGrid failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "room.gat")
	if err := os.WriteFile(path, EncodeGAT(src), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadGAT(path)
	if err != nil {
		t.Fatalf("LoadGAT failed: %v", err)
	}
	if got.Width != src.Width || got.Height != src.Height {
		t.Fatalf("dimensions %dx%d, want %dx%d", got.Width, got.Height, src.Width, src.Height)
	}
	for i := range src.Cells {
		if got.Cells[i] != src.Cells[i] {
			t.Errorf("cell %d: got %v, want %v", i, got.Cells[i], src.Cells[i])
		}
	}
}
