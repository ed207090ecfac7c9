package engine

import "math/rand"

// spawnKind is what a pivot cell will receive once the blast queue drains.
// Snitch variants are not decided here: the 50/50 lucky roll happens at
// placement time, not at match time.
type spawnKind uint8

const (
	spawnRocketH spawnKind = iota
	spawnRocketV
	spawnSnitch
)

// spawnTarget is a pending power-up placement. Targets keep insertion
// order for determinism; duplicate cells are dropped (set semantics), so
// two matches nominating the same pivot spawn one power-up.
type spawnTarget struct {
	pos  Point
	kind spawnKind
}

// blastUnit is one work-queue entry: either a detected match or a power-up
// activation with its blast path. Paths are captured when the unit is
// enqueued, against the pre-removal grid.
type blastUnit struct {
	match  *Match
	source *Tile   // the power-up that originated this unit; nil for matches
	path   []*Tile // blast path for activations
}

// BlastResult is the outcome of one full blast episode.
type BlastResult struct {
	// Batches holds the removed-tile sets in removal order, one per
	// drained unit. The host animates each batch's destruction.
	Batches [][]*Tile

	// Replaced are tiles that survived destruction but were removed to
	// make room for a spawned power-up.
	Replaced []*Tile

	// Spawned are the power-up tiles placed after the queue drained.
	Spawned []*Tile
}

// Destroyed returns the total number of removed tiles, including tiles
// replaced by spawns.
func (r BlastResult) Destroyed() int {
	n := len(r.Replaced)
	for _, b := range r.Batches {
		n += len(b)
	}
	return n
}

// BlastResolver converts detected matches and power-up activations into
// the final deduplicated set of destroyed tiles plus the power-ups to
// spawn, chaining through power-ups encountered in blast paths.
//
// It processes a FIFO work queue rather than recursing: a global
// processed set bounds every tile to one destruction, so chains terminate
// even when two paths cross the same cells, and rocket and snitch chains
// need no relative priority — the final destroyed set is the same either
// way.
type BlastResolver struct {
	grid *Grid
	rng  *rand.Rand
}

// NewBlastResolver creates a resolver bound to a grid and random source.
func NewBlastResolver(grid *Grid, rng *rand.Rand) *BlastResolver {
	return &BlastResolver{grid: grid, rng: rng}
}

// Resolve runs one blast episode seeded with matches and/or explicitly
// activated power-ups. Grid removals and spawns happen inside; the result
// describes them for the host.
func (r *BlastResolver) Resolve(matches []Match, activations []*Tile) BlastResult {
	var result BlastResult

	queue := make([]blastUnit, 0, len(matches)+len(activations))
	for i := range matches {
		queue = append(queue, blastUnit{match: &matches[i]})
	}
	for _, t := range activations {
		if t == nil || !t.Type.IsPowerUp() {
			continue
		}
		queue = append(queue, blastUnit{source: t, path: r.blastPath(t)})
	}

	processed := make(map[int64]bool)
	var targets []spawnTarget
	targetSeen := make(map[Point]bool)

	addTarget := func(pos Point, kind spawnKind) {
		if targetSeen[pos] {
			return
		}
		targetSeen[pos] = true
		targets = append(targets, spawnTarget{pos: pos, kind: kind})
	}

	for len(queue) > 0 {
		unit := queue[0]
		queue = queue[1:]

		candidates := r.classify(unit, addTarget)

		// Deduplicate against the whole episode: a tile already destroyed
		// by an earlier unit is skipped, which also breaks chain loops.
		batch := make([]*Tile, 0, len(candidates))
		for _, t := range candidates {
			if processed[t.ID] {
				continue
			}
			processed[t.ID] = true
			batch = append(batch, t)
		}
		if len(batch) == 0 {
			continue
		}

		// Chain detection happens before the batch is removed so the new
		// paths are captured against the pre-removal grid. The unit's own
		// source never re-triggers itself.
		for _, t := range batch {
			if t.Type.IsPowerUp() && t != unit.source {
				queue = append(queue, blastUnit{source: t, path: r.blastPath(t)})
			}
		}

		for _, t := range batch {
			r.grid.Remove(t)
		}
		result.Batches = append(result.Batches, batch)
	}

	// Spawns run after the queue drains. An occupant that escaped
	// destruction is removed to make room.
	for _, tgt := range targets {
		if occupant := r.grid.At(tgt.pos.X, tgt.pos.Y); occupant != nil {
			r.grid.Remove(occupant)
			result.Replaced = append(result.Replaced, occupant)
		}
		tt := tgt.kind.tileType(r.rng)
		result.Spawned = append(result.Spawned, r.grid.Spawn(tt, tgt.pos.X, tgt.pos.Y))
	}

	return result
}

// classify turns one unit into destruction candidates, registering any
// power-up spawn its match shape earns.
func (r *BlastResolver) classify(unit blastUnit, addTarget func(Point, spawnKind)) []*Tile {
	if unit.match == nil {
		return unit.path
	}

	m := unit.match
	switch {
	case m.IsSnitchMatch():
		addTarget(m.Pivot, spawnSnitch)
		// A snitch already sitting in the block is never destroyed by the
		// match that formed around it.
		candidates := make([]*Tile, 0, len(m.Tiles))
		for _, t := range m.Tiles {
			if t.Type.IsSnitch() {
				continue
			}
			candidates = append(candidates, t)
		}
		return candidates

	case m.IsPowerUpMatch():
		kind := spawnRocketH
		if m.Orientation == Vertical {
			kind = spawnRocketV
		}
		addTarget(m.Pivot, kind)
		// The pivot tile becomes the rocket; everything else is destroyed.
		candidates := make([]*Tile, 0, len(m.Tiles))
		for _, t := range m.Tiles {
			if t.Pos() == m.Pivot {
				continue
			}
			candidates = append(candidates, t)
		}
		return candidates

	default:
		return m.Tiles
	}
}

// blastPath computes the cells a power-up clears, against the current grid
// state. Rockets take every occupied cell in their row or column,
// including their own. Snitches take their cell, the 4 orthogonal
// neighbors, and 1 (or 2 for the lucky variant) random additional
// occupied cells not already selected.
func (r *BlastResolver) blastPath(t *Tile) []*Tile {
	switch t.Type {
	case RocketHorizontal:
		path := make([]*Tile, 0, r.grid.Width())
		for x := 0; x < r.grid.Width(); x++ {
			if hit := r.grid.At(x, t.Y); hit != nil {
				path = append(path, hit)
			}
		}
		return path

	case RocketVertical:
		path := make([]*Tile, 0, r.grid.Height())
		for y := 0; y < r.grid.Height(); y++ {
			if hit := r.grid.At(t.X, y); hit != nil {
				path = append(path, hit)
			}
		}
		return path

	case Snitch, SnitchLucky:
		inPath := make(map[int64]bool)
		path := []*Tile{t}
		inPath[t.ID] = true

		for _, d := range [...]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			if hit := r.grid.At(t.X+d.X, t.Y+d.Y); hit != nil {
				path = append(path, hit)
				inPath[hit.ID] = true
			}
		}

		extra := 1
		if t.Type == SnitchLucky {
			extra = 2
		}
		for i := 0; i < extra; i++ {
			pool := make([]*Tile, 0)
			for _, cand := range r.grid.Tiles() {
				if !inPath[cand.ID] {
					pool = append(pool, cand)
				}
			}
			if len(pool) == 0 {
				break
			}
			pick := pool[r.rng.Intn(len(pool))]
			path = append(path, pick)
			inPath[pick.ID] = true
		}
		return path

	default:
		return nil
	}
}

// tileType resolves the concrete tile type for a spawn. Snitch spawns roll
// the 50/50 lucky variant here, at placement time.
func (k spawnKind) tileType(rng *rand.Rand) TileType {
	switch k {
	case spawnRocketH:
		return RocketHorizontal
	case spawnRocketV:
		return RocketVertical
	default:
		if rng.Intn(2) == 0 {
			return SnitchLucky
		}
		return Snitch
	}
}
