package game

import (
	"container/heap"
	"math"
)

// ToGrid converts a world position to the grid cell containing it. Callers
// must clamp world positions to the scene bounds first; the pathfinder
// does not validate coordinates.
func ToGrid(w Vec3, tileSize float64) GridCell {
	return GridCell{
		X: int(math.Floor(w.X / tileSize)),
		Y: int(math.Floor(w.Z / tileSize)),
	}
}

// ToWorld converts a grid cell to its world-space centre on the ground plane.
func ToWorld(c GridCell, tileSize float64) Vec3 {
	return Vec3{
		X: float64(c.X)*tileSize + tileSize/2,
		Z: float64(c.Y)*tileSize + tileSize/2,
	}
}

// pathNode is the per-cell search record for one FindPath call. Predecessor
// links are cell keys into the discovered-node map, never pointers.
type pathNode struct {
	g         float64 // best-known cost from start
	parent    GridCell
	hasParent bool
}

// openEntry is one heap element. Entries are never removed when a cell's
// cost improves; stale ones are skipped on pop.
type openEntry struct {
	cell GridCell
	g    float64
	f    float64
}

type openHeap []openEntry

func (oh openHeap) Len() int            { return len(oh) }
func (oh openHeap) Less(i, j int) bool  { return oh[i].f < oh[j].f }
func (oh openHeap) Swap(i, j int)       { oh[i], oh[j] = oh[j], oh[i] }
func (oh *openHeap) Push(x interface{}) { *oh = append(*oh, x.(openEntry)) }
func (oh *openHeap) Pop() interface{} {
	old := *oh
	n := old[len(old)-1]
	*oh = old[:len(old)-1]
	return n
}

var cardinals = [4]GridCell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// FindPath plans a route over a 4-connected uniform-cost grid and returns
// it as world-space waypoints from start to goal inclusive.
//
// The heuristic is Manhattan distance plus a 0.001*(x+y) tie-break, which
// fixes the expansion order among equal-cost cells so equal-length routes
// come out the same every call, without zigzagging.
//
// If the goal cannot be reached (only possible once obstacle support
// exists), the result degrades to a direct two-point line from start to
// goal. That fallback is documented behaviour, not an error.
func FindPath(start, goal GridCell, gridSize int, tileSize float64) []Vec3 {
	if start == goal {
		return []Vec3{ToWorld(start, tileSize)}
	}

	h := func(c GridCell) float64 {
		return float64(manhattan(c, goal)) + 0.001*float64(c.X+c.Y)
	}

	nodes := make(map[GridCell]*pathNode)
	open := make(map[GridCell]float64) // cells awaiting expansion → best-known g
	closed := make(map[GridCell]bool)

	nodes[start] = &pathNode{g: 0}
	open[start] = 0
	oh := &openHeap{{cell: start, g: 0, f: h(start)}}
	heap.Init(oh)

	for oh.Len() > 0 {
		cur := heap.Pop(oh).(openEntry)

		// Lazy deletion: only process an entry that still matches the open
		// set's best cost for its cell. Anything else is a stale duplicate
		// left behind by a later, cheaper discovery.
		pending, ok := open[cur.cell]
		if !ok || pending != cur.g {
			continue
		}
		delete(open, cur.cell)
		closed[cur.cell] = true

		if cur.cell == goal {
			return reconstruct(nodes, start, goal, gridSize, tileSize)
		}

		for _, d := range cardinals {
			nb := GridCell{cur.cell.X + d.X, cur.cell.Y + d.Y}
			if nb.X < 0 || nb.Y < 0 || nb.X >= gridSize || nb.Y >= gridSize {
				continue
			}
			if closed[nb] {
				continue
			}
			ng := cur.g + 1
			if prev, seen := nodes[nb]; seen && ng >= prev.g {
				continue
			}
			nodes[nb] = &pathNode{g: ng, parent: cur.cell, hasParent: true}
			open[nb] = ng
			heap.Push(oh, openEntry{cell: nb, g: ng, f: ng + h(nb)})
		}
	}

	// Open set exhausted without reaching the goal: fall back to a direct
	// two-point route, ignoring the grid.
	return []Vec3{ToWorld(start, tileSize), ToWorld(goal, tileSize)}
}

// reconstruct walks predecessor links backward from goal to start through
// the discovered-node map, reverses the chain and converts it to world
// centres. The walk is capped at the grid area; hitting the cap or a
// missing key truncates to the partial chain built so far.
func reconstruct(nodes map[GridCell]*pathNode, start, goal GridCell, gridSize int, tileSize float64) []Vec3 {
	cells := make([]GridCell, 0, manhattan(start, goal)+1)
	cur := goal
	limit := gridSize * gridSize
	for i := 0; i < limit; i++ {
		if cur == start {
			cells = append(cells, cur)
			break
		}
		// Only cells the search actually discovered may enter the path; a
		// missing record truncates to the partial chain built so far.
		n, ok := nodes[cur]
		if !ok {
			break
		}
		cells = append(cells, cur)
		if !n.hasParent {
			break
		}
		cur = n.parent
	}

	path := make([]Vec3, len(cells))
	for i, c := range cells {
		path[len(cells)-1-i] = ToWorld(c, tileSize)
	}
	return path
}
