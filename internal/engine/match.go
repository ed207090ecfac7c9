package engine

// MinMatchLength is the minimum run length for a linear match.
const MinMatchLength = 3

// PowerUpThreshold is the linear run length that spawns a rocket.
const PowerUpThreshold = 4

// SquareSize is the edge length of a snitch-spawning square match.
const SquareSize = 2

// Orientation classifies a match shape.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
	Square
)

// String returns a human-readable name for the orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	case Square:
		return "Square"
	default:
		return "Unknown"
	}
}

// Match is a detected run or block of same-typed colored tiles. The pivot
// is the cell designated to receive a spawned power-up: the triggering
// swap cell when detection was seeded, otherwise a canonical cell of the
// shape. Matches are computed per detection pass and consumed once by the
// blast resolver.
type Match struct {
	Tiles       []*Tile
	Orientation Orientation
	Pivot       Point
}

// IsPowerUpMatch reports whether the match spawns a rocket: a linear run
// of at least PowerUpThreshold tiles. Square matches are never
// linear-classified.
func (m Match) IsPowerUpMatch() bool {
	return m.Orientation != Square && len(m.Tiles) >= PowerUpThreshold
}

// IsSnitchMatch reports whether the match spawns a snitch.
func (m Match) IsSnitchMatch() bool {
	return m.Orientation == Square
}

// FindAllMatches scans the whole board. Used at initialization and after
// each cascade step.
func FindAllMatches(g *Grid) []Match {
	return findMatches(g, nil)
}

// FindMatchesAt restricts the scan to runs and squares passing through the
// given seed cells. Used after a swap: O(seeds) instead of O(w*h), and the
// seed becomes the pivot so a spawned power-up lands on the swapped cell.
func FindMatchesAt(g *Grid, seeds ...Point) []Match {
	if len(seeds) == 0 {
		return nil
	}
	return findMatches(g, seeds)
}

// findMatches runs the square pass then the linear pass. Squares take
// precedence: a tile consumed by a square match is excluded from all
// linear scans. A tile that belongs to both a valid horizontal and a valid
// vertical run yields two separate matches; the blast resolver unions them.
func findMatches(g *Grid, seeds []Point) []Match {
	var matches []Match

	inSquare := make(map[int64]bool)   // tiles consumed by a square match
	squareSeen := make(map[Point]bool) // square blocks already emitted, by bottom-left corner

	candidates := seeds
	if candidates == nil {
		candidates = make([]Point, 0, g.Width()*g.Height())
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				candidates = append(candidates, Pt(x, y))
			}
		}
	}

	// Square pass. For a full scan each cell is tested as the bottom-left
	// corner of a 2x2 block; for a seeded scan every block containing the
	// seed is tested so swaps into any corner are detected.
	for _, c := range candidates {
		offsets := []Point{{0, 0}}
		if seeds != nil {
			offsets = []Point{{0, 0}, {-1, 0}, {0, -1}, {-1, -1}}
		}
		for _, off := range offsets {
			corner := Pt(c.X+off.X, c.Y+off.Y)
			block, ok := squareAt(g, corner)
			if !ok || squareSeen[corner] {
				continue
			}
			squareSeen[corner] = true
			pivot := corner
			if seeds != nil {
				pivot = c
			}
			for _, t := range block {
				inSquare[t.ID] = true
			}
			matches = append(matches, Match{Tiles: block, Orientation: Square, Pivot: pivot})
		}
	}

	// Linear pass. Processed sets are per orientation so a run is emitted
	// once no matter which of its cells seeded the scan, while a tile may
	// still appear in one horizontal and one vertical run.
	processedH := make(map[int64]bool)
	processedV := make(map[int64]bool)

	for _, c := range candidates {
		seed := g.At(c.X, c.Y)
		if seed == nil || !seed.Type.IsColored() || inSquare[seed.ID] {
			continue
		}

		if !processedH[seed.ID] {
			run := expandRun(g, seed, inSquare, 1, 0)
			if len(run) >= MinMatchLength {
				for _, t := range run {
					processedH[t.ID] = true
				}
				matches = append(matches, Match{
					Tiles:       run,
					Orientation: Horizontal,
					Pivot:       runPivot(run, c, seeds != nil),
				})
			}
		}

		if !processedV[seed.ID] {
			run := expandRun(g, seed, inSquare, 0, 1)
			if len(run) >= MinMatchLength {
				for _, t := range run {
					processedV[t.ID] = true
				}
				matches = append(matches, Match{
					Tiles:       run,
					Orientation: Vertical,
					Pivot:       runPivot(run, c, seeds != nil),
				})
			}
		}
	}

	return matches
}

// squareAt tests whether corner is the bottom-left of a 2x2 block of four
// colored tiles of identical type. Returns the block in reading order.
func squareAt(g *Grid, corner Point) ([]*Tile, bool) {
	base := g.At(corner.X, corner.Y)
	if base == nil || !base.Type.IsColored() {
		return nil, false
	}
	block := make([]*Tile, 0, SquareSize*SquareSize)
	for dy := 0; dy < SquareSize; dy++ {
		for dx := 0; dx < SquareSize; dx++ {
			t := g.At(corner.X+dx, corner.Y+dy)
			if t == nil || t.Type != base.Type {
				return nil, false
			}
			block = append(block, t)
		}
	}
	return block, true
}

// expandRun grows a maximal same-type run through seed along (dx, dy) and
// its opposite, ordered from the low end. Tiles consumed by a square match
// break the run.
func expandRun(g *Grid, seed *Tile, inSquare map[int64]bool, dx, dy int) []*Tile {
	extends := func(t *Tile) bool {
		return t != nil && t.Type == seed.Type && !inSquare[t.ID]
	}

	start := seed
	for {
		prev := g.At(start.X-dx, start.Y-dy)
		if !extends(prev) {
			break
		}
		start = prev
	}

	run := []*Tile{start}
	for {
		next := g.At(start.X+dx*len(run), start.Y+dy*len(run))
		if !extends(next) {
			break
		}
		run = append(run, next)
	}
	return run
}

// runPivot picks the power-up landing cell for a linear run: the seed cell
// when detection was seeded by a swap, otherwise the run's middle element.
func runPivot(run []*Tile, seed Point, seeded bool) Point {
	if seeded {
		return seed
	}
	return run[len(run)/2].Pos()
}
