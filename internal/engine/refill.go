package engine

import "math/rand"

// SpawnOperation records one refill spawn. SpawnRank orders multiple
// empties in the same column bottom-to-top: rank 0 is the lowest cell and
// the first the animator drops in.
type SpawnOperation struct {
	Tile      *Tile
	X, Y      int
	SpawnRank int
}

// ResolveRefill backfills every empty cell left after gravity with a
// uniformly random colored tile drawn from kinds. Refill never produces
// power-up tiles; the engine validates kinds at construction.
// Columns are processed left to right, cells bottom to top, so the draw
// sequence is deterministic for a given rng state.
func ResolveRefill(g *Grid, rng *rand.Rand, kinds []TileType) []SpawnOperation {
	var ops []SpawnOperation
	for x := 0; x < g.Width(); x++ {
		rank := 0
		for y := 0; y < g.Height(); y++ {
			if g.At(x, y) != nil {
				continue
			}
			tt := kinds[rng.Intn(len(kinds))]
			t := g.Spawn(tt, x, y)
			ops = append(ops, SpawnOperation{Tile: t, X: x, Y: y, SpawnRank: rank})
			rank++
		}
	}
	return ops
}
