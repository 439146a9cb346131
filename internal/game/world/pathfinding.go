// Package world provides grid navigation for the controlled character.
package world

import (
	"container/heap"

	"github.com/Faultbox/midgard-nav/pkg/formats"
)

// Cell is a grid coordinate: X column, Y row.
type Cell [2]int

// searchNode is a node in the A* open set.
type searchNode struct {
	cell   Cell
	g, f   float32
	parent *searchNode
	index  int
}

// openSet is a min-heap of search nodes ordered by f.
type openSet []*searchNode

func (h openSet) Len() int           { return len(h) }
func (h openSet) Less(i, j int) bool { return h[i].f < h[j].f }
func (h openSet) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *openSet) Push(x any) {
	node := x.(*searchNode)
	node.index = len(*h)
	*h = append(*h, node)
}

func (h *openSet) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

// neighbors are the 8-way steps; odd indices are diagonals.
var neighbors = [8]Cell{
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
}

const (
	straightCost = float32(1.0)
	diagonalCost = float32(1.414)
)

// PathFinder searches a navigation grid.
type PathFinder struct {
	grid *formats.NavGrid
}

// NewPathFinder creates a new pathfinder. It returns nil for a nil grid.
func NewPathFinder(grid *formats.NavGrid) *PathFinder {
	if grid == nil {
		return nil
	}
	return &PathFinder{grid: grid}
}

// FindPath finds a path from start to goal using A*, inclusive of both ends.
// Returns nil if no path exists.
func (pf *PathFinder) FindPath(start, goal Cell) []Cell {
	if pf == nil {
		return nil
	}
	if !pf.grid.InBounds(start[0], start[1]) || !pf.IsWalkable(goal) {
		return nil
	}

	open := &openSet{}
	closed := make(map[Cell]bool)
	nodes := make(map[Cell]*searchNode)

	first := &searchNode{cell: start, f: octile(start, goal)}
	heap.Push(open, first)
	nodes[start] = first

	// Bound the search on pathological grids
	budget := pf.grid.Width * pf.grid.Height
	for open.Len() > 0 && budget > 0 {
		budget--

		current := heap.Pop(open).(*searchNode)
		if current.cell == goal {
			return unwind(current)
		}
		closed[current.cell] = true

		for i, step := range neighbors {
			next := Cell{current.cell[0] + step[0], current.cell[1] + step[1]}
			if !pf.IsWalkable(next) || closed[next] {
				continue
			}

			cost := straightCost
			if i%2 == 1 {
				// No cutting corners past blocked cells
				if !pf.IsWalkable(Cell{current.cell[0] + step[0], current.cell[1]}) ||
					!pf.IsWalkable(Cell{current.cell[0], current.cell[1] + step[1]}) {
					continue
				}
				cost = diagonalCost
			}

			g := current.g + cost
			node, seen := nodes[next]
			switch {
			case !seen:
				node = &searchNode{cell: next, g: g, f: g + octile(next, goal), parent: current}
				nodes[next] = node
				heap.Push(open, node)
			case g < node.g:
				node.f += g - node.g
				node.g = g
				node.parent = current
				if node.index >= 0 {
					heap.Fix(open, node.index)
				}
			}
		}
	}

	return nil
}

// NearestReachable returns the walkable cell connected to start that lies
// closest to target. ok is false when start is outside the grid.
func (pf *PathFinder) NearestReachable(start, target Cell) (Cell, bool) {
	if pf == nil || !pf.grid.InBounds(start[0], start[1]) {
		return Cell{}, false
	}

	best := start
	bestDist := octile(start, target)
	visited := map[Cell]bool{start: true}
	queue := []Cell{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if d := octile(cur, target); d < bestDist {
			best, bestDist = cur, d
		}

		for _, step := range neighbors {
			next := Cell{cur[0] + step[0], cur[1] + step[1]}
			if visited[next] || !pf.IsWalkable(next) {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return best, true
}

// IsWalkable checks if a cell is walkable.
func (pf *PathFinder) IsWalkable(c Cell) bool {
	if pf == nil {
		return false
	}
	return pf.grid.IsWalkable(c[0], c[1])
}

// octile is the 8-way distance estimate between two cells.
func octile(a, b Cell) float32 {
	dx := abs(b[0] - a[0])
	dy := abs(b[1] - a[1])
	if dx < dy {
		return float32(dx)*diagonalCost + float32(dy-dx)
	}
	return float32(dy)*diagonalCost + float32(dx-dy)
}

func unwind(node *searchNode) []Cell {
	var path []Cell
	for ; node != nil; node = node.parent {
		path = append(path, node.cell)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
