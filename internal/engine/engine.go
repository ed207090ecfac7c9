package engine

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Phase is the cascade state machine's current state. Only Idle accepts
// external commands; every other phase silently rejects them, which is the
// backpressure that keeps input out of the resolution pipeline.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseSwapping
	PhaseBlasting
	PhaseGravity
	PhaseRefilling
	PhaseCascading
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseSwapping:
		return "Swapping"
	case PhaseBlasting:
		return "Blasting"
	case PhaseGravity:
		return "Gravity"
	case PhaseRefilling:
		return "Refilling"
	case PhaseCascading:
		return "Cascading"
	default:
		return "Unknown"
	}
}

// DefaultMaxCascadeDepth bounds automatic cascades per player command.
const DefaultMaxCascadeDepth = 50

// Config is the engine's construction surface.
type Config struct {
	Width, Height   int
	TileKinds       []TileType // colored kinds drawn by initial fill and refill
	MaxCascadeDepth int        // 0 means DefaultMaxCascadeDepth
	Seed            int64      // rng seed; 0 is honored as a literal seed
}

// DefaultConfig returns the classic 8x8 board with four colored kinds.
func DefaultConfig() Config {
	return Config{
		Width:           8,
		Height:          8,
		TileKinds:       []TileType{TileRed, TileGreen, TileBlue, TileYellow},
		MaxCascadeDepth: DefaultMaxCascadeDepth,
	}
}

// Stats accumulates session results for the HUD and the score store.
type Stats struct {
	Score          int // 1 point per destroyed tile, multiplied by cascade depth + 1
	Moves          int // accepted swaps
	TilesCleared   int
	DeepestCascade int
}

// Engine is the cascade state machine orchestrating the whole simulation.
// It is single-threaded: commands, Complete calls and event delivery all
// happen on the caller's goroutine, and the Moving flag on tiles is the
// only mutual-exclusion signal needed.
type Engine struct {
	cfg    Config
	grid   *Grid
	rng    *rand.Rand
	blast  *BlastResolver
	sink   EventSink
	logger *log.Logger

	phase   Phase
	pending Token
	lastTok Token
	depth   int
	stats   Stats

	swapA, swapB *Tile // tiles of the in-flight swap, for revert
	falling      []*Tile
}

// New creates an engine with a freshly filled board. The sink may be nil
// for a silent engine; the logger may be nil to discard logs.
func New(cfg Config, sink EventSink, logger *log.Logger) (*Engine, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("engine: invalid board size %dx%d", cfg.Width, cfg.Height)
	}
	if len(cfg.TileKinds) < 2 {
		return nil, fmt.Errorf("engine: need at least 2 tile kinds, got %d", len(cfg.TileKinds))
	}
	for _, tt := range cfg.TileKinds {
		if !tt.IsColored() {
			return nil, fmt.Errorf("engine: %v is not a colored tile kind", tt)
		}
	}
	if cfg.MaxCascadeDepth <= 0 {
		cfg.MaxCascadeDepth = DefaultMaxCascadeDepth
	}
	if sink == nil {
		sink = NopSink{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		cfg:    cfg,
		grid:   NewGrid(cfg.Width, cfg.Height),
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		sink:   sink,
		logger: logger,
		phase:  PhaseIdle,
	}
	e.blast = NewBlastResolver(e.grid, e.rng)

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			e.grid.Spawn(cfg.TileKinds[e.rng.Intn(len(cfg.TileKinds))], x, y)
		}
	}
	return e, nil
}

// Grid exposes the board for rendering. Hosts must treat it as read-only.
func (e *Engine) Grid() *Grid { return e.grid }

// Phase returns the current cascade phase.
func (e *Engine) Phase() Phase { return e.phase }

// Stats returns the accumulated session stats.
func (e *Engine) Stats() Stats { return e.stats }

// PendingToken returns the completion token the engine is waiting on, or 0
// when no animation batch is outstanding.
func (e *Engine) PendingToken() Token { return e.pending }

// Start resolves any matches present on the freshly seeded board through
// the normal blast pipeline. Hosts call it once before accepting input;
// headless callers typically follow with RunToIdle.
func (e *Engine) Start() {
	if e.phase != PhaseIdle {
		return
	}
	if matches := FindAllMatches(e.grid); len(matches) > 0 {
		e.enterBlast(matches, nil)
	}
}

// RequestSwap attempts to exchange the tiles at a and b. Honored only in
// Idle, between adjacent non-moving tiles; anything else is rejected with
// no side effect.
func (e *Engine) RequestSwap(a, b Point) bool {
	if e.phase != PhaseIdle {
		e.logger.Debug("swap rejected: not idle", "phase", e.phase)
		return false
	}
	ta := e.grid.At(a.X, a.Y)
	tb := e.grid.At(b.X, b.Y)
	if ta == nil || tb == nil {
		e.logger.Debug("swap rejected: empty cell", "a", a, "b", b)
		return false
	}
	if ta.Moving || tb.Moving {
		e.logger.Debug("swap rejected: tile in flight", "a", a, "b", b)
		return false
	}
	if !e.grid.AreAdjacent(ta, tb) {
		e.logger.Debug("swap rejected: not adjacent", "a", a, "b", b)
		return false
	}

	e.grid.SwapTiles(ta, tb)
	ta.Moving = true
	tb.Moving = true
	e.swapA, e.swapB = ta, tb
	e.stats.Moves++

	e.setPhase(PhaseSwapping)
	e.sink.SwapStarted(ta, tb, e.issueToken())
	return true
}

// ActivatePowerUp triggers the power-up at (x, y). Honored only in Idle
// and only for rocket or snitch tiles.
func (e *Engine) ActivatePowerUp(x, y int) bool {
	if e.phase != PhaseIdle {
		e.logger.Debug("activation rejected: not idle", "phase", e.phase)
		return false
	}
	t := e.grid.At(x, y)
	if t == nil || !t.Type.IsPowerUp() {
		e.logger.Debug("activation rejected: not a power-up", "x", x, "y", y)
		return false
	}
	if t.Moving {
		e.logger.Debug("activation rejected: tile in flight", "x", x, "y", y)
		return false
	}
	e.enterBlast(nil, []*Tile{t})
	return true
}

// Complete reports that the animation batch identified by tok has
// finished, advancing the state machine. Stale or unknown tokens are
// ignored.
func (e *Engine) Complete(tok Token) bool {
	if tok == 0 || tok != e.pending {
		e.logger.Debug("stale completion token", "token", tok, "pending", e.pending)
		return false
	}
	e.pending = 0

	switch e.phase {
	case PhaseSwapping:
		e.finishSwap()
	case PhaseBlasting:
		e.startGravity()
	case PhaseGravity:
		e.startRefill()
	case PhaseRefilling:
		e.cascade()
	default:
		return false
	}
	return true
}

// RunToIdle drives the state machine without an animator by completing
// every pending batch immediately. Used by headless simulation and tests.
func (e *Engine) RunToIdle() {
	for e.phase != PhaseIdle && e.pending != 0 {
		e.Complete(e.pending)
	}
}

func (e *Engine) issueToken() Token {
	e.lastTok++
	e.pending = e.lastTok
	return e.pending
}

func (e *Engine) setPhase(p Phase) {
	if e.phase == p {
		return
	}
	e.phase = p
	e.sink.PhaseChanged(p)
}

func (e *Engine) toIdle() {
	e.depth = 0
	e.setPhase(PhaseIdle)
}

// finishSwap runs seed-restricted match detection over the two swapped
// cells; a fruitless swap is reverted on the spot.
func (e *Engine) finishSwap() {
	a, b := e.swapA, e.swapB
	e.swapA, e.swapB = nil, nil
	a.Moving = false
	b.Moving = false

	matches := FindMatchesAt(e.grid, a.Pos(), b.Pos())
	if len(matches) == 0 {
		e.grid.SwapTiles(a, b)
		e.sink.SwapReverted(a, b)
		e.toIdle()
		return
	}
	e.enterBlast(matches, nil)
}

// enterBlast runs the blast resolver to completion and hands the host one
// destruction batch per drained unit.
func (e *Engine) enterBlast(matches []Match, activations []*Tile) {
	e.setPhase(PhaseBlasting)

	for _, m := range matches {
		e.sink.MatchFound(m)
	}

	result := e.blast.Resolve(matches, activations)
	for _, batch := range result.Batches {
		e.sink.ItemsBlasted(batch)
	}
	if len(result.Replaced) > 0 {
		e.sink.ItemsBlasted(result.Replaced)
	}

	destroyed := result.Destroyed()
	e.stats.TilesCleared += destroyed
	e.stats.Score += destroyed * (e.depth + 1)

	e.sink.BlastCompleted(e.issueToken())
}

func (e *Engine) startGravity() {
	e.setPhase(PhaseGravity)
	ops := ResolveGravity(e.grid)
	e.sink.GravityStarted()

	e.falling = e.falling[:0]
	for _, group := range GroupFallsByRow(ops) {
		for _, op := range group {
			op.Tile.Moving = true
			e.falling = append(e.falling, op.Tile)
			e.sink.TileFell(op)
		}
	}
	e.sink.GravityCompleted(e.issueToken())
}

func (e *Engine) startRefill() {
	for _, t := range e.falling {
		t.Moving = false
	}
	e.falling = e.falling[:0]

	e.setPhase(PhaseRefilling)
	ops := ResolveRefill(e.grid, e.rng, e.cfg.TileKinds)
	e.sink.RefillStarted()
	for _, op := range ops {
		e.sink.TileSpawned(op)
	}
	e.sink.RefillCompleted(e.issueToken())
}

// cascade re-scans the settled board. New matches feed another blast round
// until the board is stable or the depth bound trips.
func (e *Engine) cascade() {
	e.setPhase(PhaseCascading)

	matches := FindAllMatches(e.grid)
	if len(matches) == 0 {
		e.toIdle()
		return
	}

	e.depth++
	if e.depth > e.cfg.MaxCascadeDepth {
		e.logger.Warn("cascade depth exceeded, forcing idle", "depth", e.depth, "max", e.cfg.MaxCascadeDepth)
		e.toIdle()
		return
	}
	if e.depth > e.stats.DeepestCascade {
		e.stats.DeepestCascade = e.depth
	}
	e.enterBlast(matches, nil)
}
