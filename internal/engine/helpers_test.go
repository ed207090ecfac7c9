package engine

import "testing"

// buildGrid constructs a grid from row strings, top row first, using the
// same runes Grid.String emits: R/G/B/Y/P/O colored, H/V rockets, S/L
// snitches, '.' empty.
func buildGrid(t *testing.T, rows ...string) *Grid {
	t.Helper()
	if len(rows) == 0 {
		t.Fatal("buildGrid: no rows")
	}
	width := len(rows[0])
	height := len(rows)
	g := NewGrid(width, height)

	for i, row := range rows {
		if len(row) != width {
			t.Fatalf("buildGrid: row %d has width %d, expected %d", i, len(row), width)
		}
		y := height - 1 - i
		for x, r := range row {
			if r == '.' {
				continue
			}
			g.Spawn(runeType(t, r), x, y)
		}
	}
	return g
}

func runeType(t *testing.T, r rune) TileType {
	t.Helper()
	for tt := TileRed; tt <= SnitchLucky; tt++ {
		if tt.Rune() == r {
			return tt
		}
	}
	t.Fatalf("buildGrid: unknown tile rune %q", r)
	return 0
}

// tileAt fails the test if the cell is empty.
func tileAt(t *testing.T, g *Grid, x, y int) *Tile {
	t.Helper()
	tile := g.At(x, y)
	if tile == nil {
		t.Fatalf("expected tile at (%d, %d), cell is empty", x, y)
	}
	return tile
}
