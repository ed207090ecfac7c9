package engine

// Grid owns the rectangular array of tiles. Every mutation preserves the
// bijection between live tiles and slots: a tile's stored (X, Y) always
// equals the slot that references it, and exactly one slot references any
// live tile.
//
// Out-of-bounds reads return nil (empty) rather than failing, which keeps
// match and gravity scans branch-free at the edges. Callers that need to
// distinguish "empty" from "outside" use IsValid first.
type Grid struct {
	width  int
	height int
	cells  []*Tile // row-major, index = y*width + x
	nextID int64
}

// NewGrid creates an empty grid of the given dimensions.
// The grid is never resized after creation.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]*Tile, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// IsValid reports whether (x, y) lies inside the grid.
func (g *Grid) IsValid(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the tile at (x, y), or nil if the cell is empty or the
// coordinate is out of bounds.
func (g *Grid) At(x, y int) *Tile {
	if !g.IsValid(x, y) {
		return nil
	}
	return g.cells[y*g.width+x]
}

// Spawn creates a new tile of the given type at (x, y) and places it,
// replacing whatever occupied the slot. Returns nil if out of bounds.
func (g *Grid) Spawn(tt TileType, x, y int) *Tile {
	if !g.IsValid(x, y) {
		return nil
	}
	g.nextID++
	t := &Tile{ID: g.nextID, Type: tt, X: x, Y: y}
	g.cells[y*g.width+x] = t
	return t
}

// Move relocates a tile to an empty slot, clearing its previous slot.
// The destination must be in bounds; occupied destinations are overwritten
// only by Spawn, never by Move.
func (g *Grid) Move(t *Tile, x, y int) bool {
	if t == nil || !g.IsValid(x, y) || g.cells[y*g.width+x] != nil {
		return false
	}
	if g.At(t.X, t.Y) == t {
		g.cells[t.Y*g.width+t.X] = nil
	}
	t.X, t.Y = x, y
	g.cells[y*g.width+x] = t
	return true
}

// Remove clears the tile's slot. It is a no-op if the tile is not at its
// recorded slot, which guards against stale references during chain
// resolution.
func (g *Grid) Remove(t *Tile) bool {
	if t == nil || !g.IsValid(t.X, t.Y) {
		return false
	}
	if g.cells[t.Y*g.width+t.X] != t {
		return false
	}
	g.cells[t.Y*g.width+t.X] = nil
	return true
}

// SwapTiles exchanges two tiles' stored positions and their slots in one
// atomic step. Used only for adjacency swaps.
func (g *Grid) SwapTiles(a, b *Tile) {
	ax, ay := a.X, a.Y
	bx, by := b.X, b.Y
	g.cells[ay*g.width+ax] = b
	g.cells[by*g.width+bx] = a
	a.X, a.Y = bx, by
	b.X, b.Y = ax, ay
}

// AreAdjacent reports whether two tiles sit at Manhattan distance exactly 1
// (no diagonals).
func (g *Grid) AreAdjacent(a, b *Tile) bool {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// CountEmptyInColumn returns the number of empty cells in column x.
func (g *Grid) CountEmptyInColumn(x int) int {
	count := 0
	for y := 0; y < g.height; y++ {
		if g.At(x, y) == nil {
			count++
		}
	}
	return count
}

// String dumps the board as one line of type runes per row, top row
// first, '.' for empty cells. Intended for tests and trace output.
func (g *Grid) String() string {
	buf := make([]rune, 0, (g.width+1)*g.height)
	for y := g.height - 1; y >= 0; y-- {
		for x := 0; x < g.width; x++ {
			if t := g.At(x, y); t != nil {
				buf = append(buf, t.Type.Rune())
			} else {
				buf = append(buf, '.')
			}
		}
		if y > 0 {
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}

// Tiles returns all live tiles in row-major order (bottom row first).
func (g *Grid) Tiles() []*Tile {
	tiles := make([]*Tile, 0, len(g.cells))
	for _, t := range g.cells {
		if t != nil {
			tiles = append(tiles, t)
		}
	}
	return tiles
}
