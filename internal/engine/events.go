package engine

// Token identifies one batch of structural operations handed to the host
// for animation. The engine advances only when Complete is called with the
// currently pending token, which makes the driving loop a plain state
// machine with no engine-side threads or blocking waits.
type Token uint64

// EventSink receives engine events in resolution order. Implementations
// must not call back into the engine from inside an event handler except
// to read state; Complete is called from the host's own loop once the
// corresponding animation has finished.
//
// Within one resolution cycle events fire in this order: SwapStarted (or
// the command's MatchFound set), ItemsBlasted per removal batch,
// BlastCompleted, GravityStarted, TileFell per fall, GravityCompleted,
// RefillStarted, TileSpawned per spawn, RefillCompleted, with
// PhaseChanged marking every state transition.
type EventSink interface {
	// PhaseChanged fires on every cascade state machine transition.
	PhaseChanged(p Phase)

	// SwapStarted fires when an accepted swap has been applied to the
	// grid. The host animates the exchange and calls Complete(tok).
	SwapStarted(a, b *Tile, tok Token)

	// SwapReverted fires when a swap produced no match and was undone.
	// The engine is already Idle; the revert animation is fire-and-forget.
	SwapReverted(a, b *Tile)

	// MatchFound fires once per detected match feeding the blast phase.
	MatchFound(m Match)

	// ItemsBlasted fires once per removal batch with the exact removed
	// tile set, in removal order.
	ItemsBlasted(tiles []*Tile)

	// BlastCompleted fires after the blast queue drained and spawns were
	// placed. The host animates destruction and calls Complete(tok).
	BlastCompleted(tok Token)

	// GravityStarted fires when fall operations have been computed and
	// applied.
	GravityStarted()

	// TileFell fires once per fall operation, grouped by source row so
	// higher rows animate after lower rows.
	TileFell(op FallOperation)

	// GravityCompleted ends the gravity phase; host animates and calls
	// Complete(tok).
	GravityCompleted(tok Token)

	// RefillStarted fires when refill spawns have been computed.
	RefillStarted()

	// TileSpawned fires once per spawn operation, rank order per column.
	TileSpawned(op SpawnOperation)

	// RefillCompleted ends the refill phase; host animates and calls
	// Complete(tok).
	RefillCompleted(tok Token)
}

// NopSink is an EventSink that ignores everything. Embed it to implement
// only the events a host cares about, or use it directly for headless
// simulation.
type NopSink struct{}

func (NopSink) PhaseChanged(Phase)               {}
func (NopSink) SwapStarted(_, _ *Tile, _ Token)  {}
func (NopSink) SwapReverted(_, _ *Tile)          {}
func (NopSink) MatchFound(Match)                 {}
func (NopSink) ItemsBlasted([]*Tile)             {}
func (NopSink) BlastCompleted(Token)             {}
func (NopSink) GravityStarted()                  {}
func (NopSink) TileFell(FallOperation)           {}
func (NopSink) GravityCompleted(Token)           {}
func (NopSink) RefillStarted()                   {}
func (NopSink) TileSpawned(SpawnOperation)       {}
func (NopSink) RefillCompleted(Token)            {}
