// Package formats provides parsers for navigation data files.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Navigation grid errors.
var (
	ErrEmptyNavGrid  = errors.New("navigation grid has no rows")
	ErrRaggedNavGrid = errors.New("navigation grid rows differ in width")
	ErrUnknownCell   = errors.New("unknown navigation cell symbol")
)

// MaxNavGridSize bounds either grid dimension.
const MaxNavGridSize = 4096

// CellType represents the walkability type of a cell.
type CellType uint8

// Cell type constants.
const (
	CellWalkable CellType = iota // Normal walkable ground
	CellBlocked                  // Cannot walk through
	CellWater                    // Deep water
	CellShallow                  // Shore/shallow water, walkable
)

// cellSymbols maps grid text symbols to cell types.
var cellSymbols = map[rune]CellType{
	'.': CellWalkable,
	'#': CellBlocked,
	'~': CellWater,
	',': CellShallow,
}

// String returns a human-readable cell type name.
func (t CellType) String() string {
	switch t {
	case CellWalkable:
		return "Walkable"
	case CellBlocked:
		return "Blocked"
	case CellWater:
		return "Water"
	case CellShallow:
		return "Shallow"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// IsWalkable returns true if the cell type allows walking.
func (t CellType) IsWalkable() bool {
	return t == CellWalkable || t == CellShallow
}

// NavGrid is a rectangular walkability grid. Row 0 is the lowest Z.
type NavGrid struct {
	Width  int
	Height int
	Cells  []CellType
}

// NewNavGrid returns a fully walkable grid.
func NewNavGrid(width, height int) *NavGrid {
	return &NavGrid{
		Width:  width,
		Height: height,
		Cells:  make([]CellType, width*height),
	}
}

// Cell returns the cell type at (x, y). Out-of-bounds cells are blocked.
func (g *NavGrid) Cell(x, y int) CellType {
	if !g.InBounds(x, y) {
		return CellBlocked
	}
	return g.Cells[y*g.Width+x]
}

// Set changes the cell type at (x, y). Out-of-bounds writes are ignored.
func (g *NavGrid) Set(x, y int, t CellType) {
	if g.InBounds(x, y) {
		g.Cells[y*g.Width+x] = t
	}
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *NavGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// IsWalkable checks if the cell at (x, y) is walkable.
func (g *NavGrid) IsWalkable(x, y int) bool {
	return g.Cell(x, y).IsWalkable()
}

// CountByType returns the count of cells for each type.
func (g *NavGrid) CountByType() map[CellType]int {
	counts := make(map[CellType]int)
	for _, c := range g.Cells {
		counts[c]++
	}
	return counts
}

// Rows renders the grid as text rows, row 0 first.
func (g *NavGrid) Rows() []string {
	symbols := make(map[CellType]rune, len(cellSymbols))
	for r, t := range cellSymbols {
		symbols[t] = r
	}
	rows := make([]string, g.Height)
	line := make([]rune, g.Width)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			line[x] = symbols[g.Cells[y*g.Width+x]]
		}
		rows[y] = string(line)
	}
	return rows
}

// ParseNavGrid builds a grid from text rows. Blank rows are skipped.
func ParseNavGrid(rows []string) (*NavGrid, error) {
	var kept []string
	for _, row := range rows {
		row = strings.TrimSpace(row)
		if row != "" {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return nil, ErrEmptyNavGrid
	}

	width := len([]rune(kept[0]))
	height := len(kept)
	if width > MaxNavGridSize || height > MaxNavGridSize {
		return nil, fmt.Errorf("invalid navigation grid dimensions: %dx%d", width, height)
	}

	grid := NewNavGrid(width, height)
	for y, row := range kept {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedNavGrid, y, len(runes), width)
		}
		for x, r := range runes {
			t, ok := cellSymbols[r]
			if !ok {
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownCell, r, x, y)
			}
			grid.Cells[y*width+x] = t
		}
	}
	return grid, nil
}

// ParseNavGridData parses newline separated grid text.
func ParseNavGridData(data []byte) (*NavGrid, error) {
	var rows []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		rows = append(rows, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ParseNavGrid(rows)
}

// LoadNavGrid parses a navigation grid file from disk.
func LoadNavGrid(path string) (*NavGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading navigation grid: %w", err)
	}
	return ParseNavGridData(data)
}
