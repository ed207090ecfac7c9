// Package engine implements the deterministic match-3 simulation: grid
// state, match detection, the blast chain-reaction resolver, gravity and
// refill, and the cascade state machine that sequences them.
//
// The engine is UI-agnostic. An external host (the terminal platform)
// issues swap and activation commands, receives events describing what
// changed, animates them, and reports completion through tokens. All
// randomness comes from a single seeded source so a fixed seed reproduces
// the full event sequence.
package engine

// TileType identifies what occupies a grid cell: a colored piece or one of
// the power-ups. Colored kinds participate in matches; power-ups never
// seed or extend a match and are only consumed by blasts.
type TileType uint8

const (
	TileRed TileType = iota
	TileGreen
	TileBlue
	TileYellow
	TilePurple
	TileOrange
	RocketHorizontal // clears its entire row when activated
	RocketVertical   // clears its entire column when activated
	Snitch           // clears its cell, 4 neighbors and 1 random extra cell
	SnitchLucky      // snitch variant with 2 random extra cells
)

// ColoredKinds lists every colored tile type, in palette order. Board
// configurations use a prefix of this slice.
var ColoredKinds = []TileType{TileRed, TileGreen, TileBlue, TileYellow, TilePurple, TileOrange}

// IsColored reports whether the type is a regular matchable piece.
func (t TileType) IsColored() bool { return t <= TileOrange }

// IsRocket reports whether the type is a row- or column-clearing rocket.
func (t TileType) IsRocket() bool { return t == RocketHorizontal || t == RocketVertical }

// IsSnitch reports whether the type is a snitch variant.
func (t TileType) IsSnitch() bool { return t == Snitch || t == SnitchLucky }

// IsPowerUp reports whether activating this tile triggers a blast path.
func (t TileType) IsPowerUp() bool { return t.IsRocket() || t.IsSnitch() }

// String returns a human-readable name for the tile type.
func (t TileType) String() string {
	switch t {
	case TileRed:
		return "Red"
	case TileGreen:
		return "Green"
	case TileBlue:
		return "Blue"
	case TileYellow:
		return "Yellow"
	case TilePurple:
		return "Purple"
	case TileOrange:
		return "Orange"
	case RocketHorizontal:
		return "RocketH"
	case RocketVertical:
		return "RocketV"
	case Snitch:
		return "Snitch"
	case SnitchLucky:
		return "SnitchLucky"
	default:
		return "Unknown"
	}
}

// Rune returns a one-character code for the type, used by board dumps and
// the headless simulator: colored kinds by initial, H/V for rockets, S/L
// for the snitch variants.
func (t TileType) Rune() rune {
	switch t {
	case TileRed:
		return 'R'
	case TileGreen:
		return 'G'
	case TileBlue:
		return 'B'
	case TileYellow:
		return 'Y'
	case TilePurple:
		return 'P'
	case TileOrange:
		return 'O'
	case RocketHorizontal:
		return 'H'
	case RocketVertical:
		return 'V'
	case Snitch:
		return 'S'
	case SnitchLucky:
		return 'L'
	default:
		return '?'
	}
}

// Tile is a single occupant of one grid cell. Tiles have pointer identity:
// the grid, matches and blast batches all reference the same instance.
// Tiles are created by the grid (initial fill, refill, power-up spawn) and
// discarded when blasted or replaced.
type Tile struct {
	ID   int64    // unique per grid, used for dedup sets and logging
	Type TileType // immutable after creation
	X, Y int      // current grid coordinate, kept in sync by the grid

	// Moving is set while an external animation is logically in flight.
	// The engine refuses to start a second structural operation on a tile
	// whose Moving flag is set.
	Moving bool
}

// Pos returns the tile's current coordinate.
func (t *Tile) Pos() Point { return Point{X: t.X, Y: t.Y} }

// Point is a grid coordinate. X grows rightward; Y grows upward, so row 0
// is the bottom edge toward which gravity compacts.
type Point struct {
	X, Y int
}

// Pt is a convenience constructor for Point.
func Pt(x, y int) Point { return Point{X: x, Y: y} }
