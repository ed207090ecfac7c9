package engine

import (
	"math/rand"
	"testing"
)

func newResolver(g *Grid, seed int64) *BlastResolver {
	return NewBlastResolver(g, rand.New(rand.NewSource(seed)))
}

func allDestroyed(r BlastResult) map[int64]int {
	counts := make(map[int64]int)
	for _, batch := range r.Batches {
		for _, t := range batch {
			counts[t.ID]++
		}
	}
	for _, t := range r.Replaced {
		counts[t.ID]++
	}
	return counts
}

func TestResolvePlainMatchDestroysAllTiles(t *testing.T) {
	g := buildGrid(t,
		"GBY",
		"RRR",
	)
	matches := FindAllMatches(g)
	res := newResolver(g, 1).Resolve(matches, nil)

	if got := res.Destroyed(); got != 3 {
		t.Errorf("destroyed = %d, expected 3", got)
	}
	if len(res.Spawned) != 0 {
		t.Errorf("a run of 3 must not spawn power-ups, got %d", len(res.Spawned))
	}
	for x := 0; x < 3; x++ {
		if g.At(x, 0) != nil {
			t.Errorf("cell (%d, 0) should be empty after the blast", x)
		}
	}
}

func TestResolveRocketMatchSpawnsRocketAtPivot(t *testing.T) {
	g := buildGrid(t,
		"GBYB",
		"RRRR",
	)
	matches := FindAllMatches(g)
	if len(matches) != 1 || !matches[0].IsPowerUpMatch() {
		t.Fatalf("expected one power-up match, got %v", matches)
	}
	pivot := matches[0].Pivot

	res := newResolver(g, 1).Resolve(matches, nil)

	if len(res.Spawned) != 1 {
		t.Fatalf("expected 1 spawned rocket, got %d", len(res.Spawned))
	}
	rocket := res.Spawned[0]
	if rocket.Type != RocketHorizontal {
		t.Errorf("horizontal match spawned %v, expected RocketHorizontal", rocket.Type)
	}
	if rocket.Pos() != pivot {
		t.Errorf("rocket at %v, expected pivot %v", rocket.Pos(), pivot)
	}
	// 3 matched tiles plus the pivot occupant removed to place the rocket.
	if got := res.Destroyed(); got != 4 {
		t.Errorf("destroyed = %d, expected 4", got)
	}
}

func TestResolveVerticalMatchSpawnsVerticalRocket(t *testing.T) {
	g := buildGrid(t,
		"GB",
		"GY",
		"GR",
		"GB",
	)
	matches := FindAllMatches(g)
	res := newResolver(g, 1).Resolve(matches, nil)

	if len(res.Spawned) != 1 || res.Spawned[0].Type != RocketVertical {
		t.Fatalf("expected a vertical rocket spawn, got %v", res.Spawned)
	}
}

func TestResolveSquareMatchSpawnsSnitch(t *testing.T) {
	g := buildGrid(t,
		"GGB",
		"GGY",
	)
	matches := FindAllMatches(g)
	res := newResolver(g, 1).Resolve(matches, nil)

	if len(res.Spawned) != 1 {
		t.Fatalf("expected 1 snitch spawn, got %d", len(res.Spawned))
	}
	if !res.Spawned[0].Type.IsSnitch() {
		t.Errorf("square match spawned %v, expected a snitch variant", res.Spawned[0].Type)
	}
	if res.Spawned[0].Pos() != Pt(0, 0) {
		t.Errorf("snitch at %v, expected bottom-left pivot (0,0)", res.Spawned[0].Pos())
	}
}

func TestSnitchVariantRollHappensAtSpawnTime(t *testing.T) {
	// Different rng streams may yield different variants, but both must be
	// snitches and the roll must be reproducible per seed.
	for _, seed := range []int64{1, 2, 3, 4} {
		g := buildGrid(t,
			"GGB",
			"GGY",
		)
		res := newResolver(g, seed).Resolve(FindAllMatches(g), nil)

		g2 := buildGrid(t,
			"GGB",
			"GGY",
		)
		res2 := newResolver(g2, seed).Resolve(FindAllMatches(g2), nil)

		if res.Spawned[0].Type != res2.Spawned[0].Type {
			t.Errorf("seed %d: variant roll not reproducible", seed)
		}
	}
}

func TestRocketActivationClearsRow(t *testing.T) {
	g := buildGrid(t,
		"GBYG",
		"RHGB",
	)
	rocket := tileAt(t, g, 1, 0)

	res := newResolver(g, 1).Resolve(nil, []*Tile{rocket})

	if got := res.Destroyed(); got != 4 {
		t.Errorf("destroyed = %d, expected the full row of 4", got)
	}
	for x := 0; x < 4; x++ {
		if g.At(x, 0) != nil {
			t.Errorf("cell (%d, 0) should be cleared", x)
		}
		if g.At(x, 1) == nil {
			t.Errorf("cell (%d, 1) should be untouched", x)
		}
	}
}

func TestRocketChainReaction(t *testing.T) {
	// A horizontal rocket's row contains a vertical rocket: both paths are
	// destroyed exactly once each and the queue terminates.
	g := buildGrid(t,
		"GBY",
		"RBG",
		"HVG",
	)
	h := tileAt(t, g, 0, 0)

	res := newResolver(g, 1).Resolve(nil, []*Tile{h})

	counts := allDestroyed(res)
	for id, n := range counts {
		if n != 1 {
			t.Errorf("tile %d destroyed %d times, expected exactly once", id, n)
		}
	}

	// Row 0 (H's path) and column 1 (V's path) are gone; everything else stays.
	if g.At(0, 0) != nil || g.At(1, 0) != nil || g.At(2, 0) != nil {
		t.Error("row 0 should be fully cleared")
	}
	if g.At(1, 1) != nil || g.At(1, 2) != nil {
		t.Error("column 1 should be fully cleared")
	}
	if g.At(0, 1) == nil || g.At(2, 1) == nil || g.At(0, 2) == nil || g.At(2, 2) == nil {
		t.Error("cells outside both paths must survive")
	}
	if got := res.Destroyed(); got != 5 {
		t.Errorf("destroyed = %d, expected 5", got)
	}
}

func TestRocketChainCapturesPreRemovalPath(t *testing.T) {
	// The chained vertical rocket's column path is computed before the
	// triggering row is removed, so it includes the cell at the
	// intersection row even though that row is about to be cleared.
	g := buildGrid(t,
		".B.",
		"HVG",
	)
	h := tileAt(t, g, 0, 0)

	res := newResolver(g, 1).Resolve(nil, []*Tile{h})

	if got := res.Destroyed(); got != 4 {
		t.Errorf("destroyed = %d, expected 4 (row of 3 plus B above the chained rocket)", got)
	}
	if g.At(1, 1) != nil {
		t.Error("the chained rocket's column must include (1,1)")
	}
}

func TestSnitchActivationPath(t *testing.T) {
	g := buildGrid(t,
		"GGGGG",
		"GGSGG",
		"GGGGG",
	)
	snitch := tileAt(t, g, 2, 1)

	res := newResolver(g, 1).Resolve(nil, []*Tile{snitch})

	// Cell + 4 orthogonal neighbors + 1 random extra.
	if got := res.Destroyed(); got != 6 {
		t.Errorf("destroyed = %d, expected 6", got)
	}
	for _, p := range []Point{{2, 1}, {1, 1}, {3, 1}, {2, 0}, {2, 2}} {
		if g.At(p.X, p.Y) != nil {
			t.Errorf("cell %v should be cleared by the snitch", p)
		}
	}
}

func TestLuckySnitchTakesTwoExtraCells(t *testing.T) {
	g := buildGrid(t,
		"GGGGG",
		"GGLGG",
		"GGGGG",
	)
	snitch := tileAt(t, g, 2, 1)

	res := newResolver(g, 1).Resolve(nil, []*Tile{snitch})

	if got := res.Destroyed(); got != 7 {
		t.Errorf("destroyed = %d, expected 7 (cell + 4 neighbors + 2 extras)", got)
	}
}

func TestSnitchAtCornerClipsNeighbors(t *testing.T) {
	g := buildGrid(t,
		"GG",
		"SG",
	)
	snitch := tileAt(t, g, 0, 0)

	res := newResolver(g, 1).Resolve(nil, []*Tile{snitch})

	// Corner snitch has 2 in-bounds neighbors; only 1 tile remains for the
	// random extra, so the whole 2x2 board goes.
	if got := res.Destroyed(); got != 4 {
		t.Errorf("destroyed = %d, expected 4", got)
	}
}

func TestTwoMatchesSamePivotSpawnOnePowerUp(t *testing.T) {
	g := buildGrid(t,
		"R.",
		"R.",
		"R.",
		"RR",
	)
	// Hand-craft two matches nominating the same pivot cell.
	col := []*Tile{tileAt(t, g, 0, 0), tileAt(t, g, 0, 1), tileAt(t, g, 0, 2), tileAt(t, g, 0, 3)}
	m1 := Match{Tiles: col, Orientation: Vertical, Pivot: Pt(0, 0)}
	m2 := Match{Tiles: col, Orientation: Vertical, Pivot: Pt(0, 0)}

	res := newResolver(g, 1).Resolve([]Match{m1, m2}, nil)

	if len(res.Spawned) != 1 {
		t.Errorf("expected set semantics on spawn targets, got %d spawns", len(res.Spawned))
	}
}

func TestSpawnReplacesSurvivingOccupant(t *testing.T) {
	g := buildGrid(t,
		"GBYB",
		"RRRR",
	)
	matches := FindAllMatches(g)
	pivot := matches[0].Pivot
	survivor := tileAt(t, g, pivot.X, pivot.Y)

	res := newResolver(g, 1).Resolve(matches, nil)

	if len(res.Replaced) != 1 || res.Replaced[0] != survivor {
		t.Errorf("expected the pivot occupant to be replaced, got %v", res.Replaced)
	}
	if g.At(pivot.X, pivot.Y) != res.Spawned[0] {
		t.Error("spawned rocket should occupy the pivot cell")
	}
}

func TestActivationIgnoresColoredTiles(t *testing.T) {
	g := buildGrid(t,
		"RG",
		"BY",
	)
	res := newResolver(g, 1).Resolve(nil, []*Tile{tileAt(t, g, 0, 0)})

	if res.Destroyed() != 0 || len(res.Batches) != 0 {
		t.Error("activating a colored tile must be a no-op")
	}
}
