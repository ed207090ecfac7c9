package engine

import "sort"

// FallOperation records one tile dropping within its column. ToY < FromY
// always holds; the grid mutation is applied when the operation is
// computed, so the operation itself is purely a notification payload.
type FallOperation struct {
	Tile       *Tile
	X          int
	FromY, ToY int
}

// Distance returns how many rows the tile fell.
func (f FallOperation) Distance() int { return f.FromY - f.ToY }

// ResolveGravity compacts every column toward row 0, preserving the
// relative vertical order of its tiles, and returns the fall operations in
// column order, bottom-up within a column. Mutations are applied
// immediately; the returned slice only drives animation.
func ResolveGravity(g *Grid) []FallOperation {
	var ops []FallOperation
	for x := 0; x < g.Width(); x++ {
		empties := 0
		for y := 0; y < g.Height(); y++ {
			t := g.At(x, y)
			if t == nil {
				empties++
				continue
			}
			if empties == 0 {
				continue
			}
			op := FallOperation{Tile: t, X: x, FromY: y, ToY: y - empties}
			g.Move(t, x, op.ToY)
			ops = append(ops, op)
		}
	}
	return ops
}

// GroupFallsByRow buckets fall operations by source row, lowest first.
// The grouping is a sequencing hint for the animator: higher rows begin
// falling only after lower rows have started. It has no effect on grid
// state, which is already final when this is called.
func GroupFallsByRow(ops []FallOperation) [][]FallOperation {
	byRow := make(map[int][]FallOperation)
	rows := make([]int, 0)
	for _, op := range ops {
		if _, ok := byRow[op.FromY]; !ok {
			rows = append(rows, op.FromY)
		}
		byRow[op.FromY] = append(byRow[op.FromY], op)
	}
	sort.Ints(rows)

	grouped := make([][]FallOperation, 0, len(rows))
	for _, row := range rows {
		grouped = append(grouped, byRow[row])
	}
	return grouped
}
