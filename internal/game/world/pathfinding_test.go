package world

import (
	"testing"

	"github.com/Faultbox/midgard-nav/pkg/formats"
)

// mockGrid creates a walkable grid with the given cells blocked.
func mockGrid(width, height int, blocked []Cell) *formats.NavGrid {
	grid := formats.NewNavGrid(width, height)
	for _, b := range blocked {
		grid.Set(b[0], b[1], formats.CellBlocked)
	}
	return grid
}

func TestPathFinder_FindPath_Simple(t *testing.T) {
	pf := NewPathFinder(mockGrid(5, 5, nil))

	path := pf.FindPath(Cell{0, 0}, Cell{4, 4})
	if path == nil {
		t.Fatal("expected path, got nil")
	}
	if path[0] != (Cell{0, 0}) {
		t.Errorf("path should start at (0,0), got %v", path[0])
	}
	if last := path[len(path)-1]; last != (Cell{4, 4}) {
		t.Errorf("path should end at (4,4), got %v", last)
	}
	// Pure diagonal: 5 nodes
	if len(path) != 5 {
		t.Errorf("expected 5 nodes on the diagonal, got %d", len(path))
	}
}

func TestPathFinder_FindPath_WithObstacle(t *testing.T) {
	blocked := []Cell{{2, 0}, {2, 1}, {2, 2}, {2, 3}}
	pf := NewPathFinder(mockGrid(5, 5, blocked))

	path := pf.FindPath(Cell{0, 2}, Cell{4, 2})
	if path == nil {
		t.Fatal("expected path around obstacle, got nil")
	}
	for _, p := range path {
		if p[0] == 2 && p[1] < 4 {
			t.Errorf("path went through blocked cell at %v", p)
		}
	}
}

func TestPathFinder_FindPath_NoCornerCutting(t *testing.T) {
	// A diagonal step between (1,1) and (2,2) would squeeze past (2,1) and (1,2)
	blocked := []Cell{{2, 1}, {1, 2}}
	pf := NewPathFinder(mockGrid(4, 4, blocked))

	path := pf.FindPath(Cell{1, 1}, Cell{2, 2})
	for i := 1; i < len(path); i++ {
		if path[i-1] == (Cell{1, 1}) && path[i] == (Cell{2, 2}) {
			t.Fatal("path cut the corner between blocked cells")
		}
	}
}

func TestPathFinder_FindPath_NoPath(t *testing.T) {
	blocked := []Cell{{2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4}}
	pf := NewPathFinder(mockGrid(5, 5, blocked))

	if path := pf.FindPath(Cell{0, 2}, Cell{4, 2}); path != nil {
		t.Errorf("expected no path, got %v", path)
	}
}

func TestPathFinder_FindPath_SameStartGoal(t *testing.T) {
	pf := NewPathFinder(mockGrid(5, 5, nil))

	path := pf.FindPath(Cell{2, 2}, Cell{2, 2})
	if len(path) != 1 {
		t.Errorf("expected path length 1, got %d", len(path))
	}
}

func TestPathFinder_FindPath_OutOfBounds(t *testing.T) {
	pf := NewPathFinder(mockGrid(5, 5, nil))

	if path := pf.FindPath(Cell{-1, 0}, Cell{4, 4}); path != nil {
		t.Error("expected nil for out of bounds start")
	}
	if path := pf.FindPath(Cell{0, 0}, Cell{10, 10}); path != nil {
		t.Error("expected nil for out of bounds goal")
	}
}

func TestPathFinder_FindPath_BlockedGoal(t *testing.T) {
	pf := NewPathFinder(mockGrid(5, 5, []Cell{{4, 4}}))

	if path := pf.FindPath(Cell{0, 0}, Cell{4, 4}); path != nil {
		t.Error("expected nil for blocked goal")
	}
}

func TestPathFinder_NearestReachable(t *testing.T) {
	// Column 3 walls off the right side
	blocked := []Cell{{3, 0}, {3, 1}, {3, 2}, {3, 3}, {3, 4}}
	pf := NewPathFinder(mockGrid(6, 5, blocked))

	got, ok := pf.NearestReachable(Cell{0, 2}, Cell{5, 2})
	if !ok {
		t.Fatal("expected a reachable cell")
	}
	if got != (Cell{2, 2}) {
		t.Errorf("nearest reachable = %v, want (2,2)", got)
	}

	if _, ok := pf.NearestReachable(Cell{-3, 0}, Cell{1, 1}); ok {
		t.Error("expected failure for start outside grid")
	}
}

func TestPathFinder_IsWalkable(t *testing.T) {
	pf := NewPathFinder(mockGrid(5, 5, []Cell{{2, 2}}))

	if pf.IsWalkable(Cell{2, 2}) {
		t.Error("expected (2,2) to be blocked")
	}
	if !pf.IsWalkable(Cell{0, 0}) {
		t.Error("expected (0,0) to be walkable")
	}
	if pf.IsWalkable(Cell{-1, 0}) {
		t.Error("expected out of bounds to be not walkable")
	}
}

func TestNewPathFinder_NilGrid(t *testing.T) {
	var pf *PathFinder = NewPathFinder(nil)
	if pf != nil {
		t.Fatal("expected nil pathfinder for nil grid")
	}
	if pf.FindPath(Cell{0, 0}, Cell{1, 1}) != nil {
		t.Error("nil pathfinder should find nothing")
	}
}
