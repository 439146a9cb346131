package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// GAT format errors.
var (
	ErrInvalidGATMagic       = errors.New("invalid GAT magic: expected 'GRAT'")
	ErrUnsupportedGATVersion = errors.New("unsupported GAT version")
	ErrTruncatedGATData      = errors.New("truncated GAT data")
)

const gatMagic = "GRAT"

// gatHeader follows the magic. Version is stored as [minor, major].
type gatHeader struct {
	Minor  uint8
	Major  uint8
	Width  uint32
	Height uint32
}

// gatCell is one record of the altitude table. Corner heights are not used
// for navigation.
type gatCell struct {
	Heights [4]float32
	Type    uint32
}

// gatTypes maps altitude table cell types onto navigation cells. Cliffs that
// can be shot over (4, 5) do not matter for walking and count as blocked.
var gatTypes = map[uint32]CellType{
	0: CellWalkable,
	1: CellBlocked,
	2: CellWater,
	3: CellShallow,
	4: CellBlocked,
	5: CellBlocked,
}

// ParseGAT reads the walkability of a binary ground altitude table.
// Row 0 of the table is the lowest Z, as in NavGrid.
func ParseGAT(data []byte) (*NavGrid, error) {
	if len(data) < 4 {
		return nil, ErrTruncatedGATData
	}
	if string(data[:4]) != gatMagic {
		return nil, ErrInvalidGATMagic
	}

	r := bytes.NewReader(data[4:])
	var hdr gatHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: reading header", ErrTruncatedGATData)
	}

	// 1.2, 1.3, 2.x and 3.x share the cell layout
	if hdr.Major < 1 || hdr.Major > 3 {
		return nil, fmt.Errorf("%w: %d.%d", ErrUnsupportedGATVersion, hdr.Major, hdr.Minor)
	}
	if hdr.Width == 0 || hdr.Height == 0 || hdr.Width > MaxNavGridSize || hdr.Height > MaxNavGridSize {
		return nil, fmt.Errorf("invalid GAT dimensions: %dx%d", hdr.Width, hdr.Height)
	}

	grid := NewNavGrid(int(hdr.Width), int(hdr.Height))
	for i := range grid.Cells {
		var cell gatCell
		if err := binary.Read(r, binary.LittleEndian, &cell); err != nil {
			return nil, fmt.Errorf("%w: cell %d", ErrTruncatedGATData, i)
		}
		t, ok := gatTypes[cell.Type]
		if !ok {
			return nil, fmt.Errorf("%w: GAT type %d at cell %d", ErrUnknownCell, cell.Type, i)
		}
		grid.Cells[i] = t
	}
	return grid, nil
}

// LoadGAT parses a GAT file from disk.
func LoadGAT(path string) (*NavGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GAT file: %w", err)
	}
	return ParseGAT(data)
}

// EncodeGAT writes grid as a version 1.2 altitude table with flat terrain.
func EncodeGAT(grid *NavGrid) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString(gatMagic)
	binary.Write(buf, binary.LittleEndian, gatHeader{
		Minor:  2,
		Major:  1,
		Width:  uint32(grid.Width),
		Height: uint32(grid.Height),
	})

	codes := map[CellType]uint32{
		CellWalkable: 0,
		CellBlocked:  1,
		CellWater:    2,
		CellShallow:  3,
	}
	for _, c := range grid.Cells {
		binary.Write(buf, binary.LittleEndian, gatCell{Type: codes[c]})
	}
	return buf.Bytes()
}
