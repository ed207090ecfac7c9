package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mubatu/match3-game/internal/config"
	"github.com/mubatu/match3-game/internal/core"
	"github.com/mubatu/match3-game/internal/engine"
	"github.com/mubatu/match3-game/internal/storage"
)

// Animation budgets in ticks, tuned for the default 30 ticks/second.
const (
	swapTicks    = 4
	blastTicks   = 6
	gravityTicks = 5
	refillTicks  = 5
)

// hostSink receives engine events and turns them into animation state. The
// engine calls it synchronously from Update's goroutine, so no locking is
// needed: the model reads the buffered state on the next tick.
type hostSink struct {
	engine.NopSink
	pending engine.Token   // token to complete once wait runs out
	wait    int            // remaining ticks for the current batch
	flash   []engine.Point // cells to highlight while blasting
	status  string
}

func (h *hostSink) SwapStarted(_, _ *engine.Tile, tok engine.Token) {
	h.pending, h.wait = tok, swapTicks
}

func (h *hostSink) SwapReverted(_, _ *engine.Tile) {
	h.status = "no match - swap reverted"
}

func (h *hostSink) ItemsBlasted(tiles []*engine.Tile) {
	for _, t := range tiles {
		h.flash = append(h.flash, t.Pos())
	}
}

func (h *hostSink) BlastCompleted(tok engine.Token) {
	h.pending, h.wait = tok, blastTicks
}

func (h *hostSink) GravityCompleted(tok engine.Token) {
	h.pending, h.wait = tok, gravityTicks
}

func (h *hostSink) RefillCompleted(tok engine.Token) {
	h.pending, h.wait = tok, refillTicks
}

// Model is the Bubble Tea model hosting a match-3 session.
type Model struct {
	eng    *engine.Engine
	sink   *hostSink
	screen *core.Screen
	store  *storage.Store
	game   config.GameConfig
	cfg    core.RuntimeConfig

	keyMapper *KeyMapper
	cursor    engine.Point
	selected  *engine.Point
	highScore int

	quitting   bool
	scoreSaved bool
}

// NewModel creates a new Bubble Tea model for a match-3 session.
func NewModel(game config.GameConfig, store *storage.Store, cfg core.RuntimeConfig) (Model, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	sink := &hostSink{}
	eng, err := engine.New(game.EngineConfig(cfg.Seed), sink, log.New(io.Discard))
	if err != nil {
		return Model{}, err
	}
	eng.Start()

	m := Model{
		eng:       eng,
		sink:      sink,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		game:      game,
		cfg:       cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if high, err := store.HighScore(); err == nil {
			m.highScore = high
		}
	}
	return m, nil
}

// Init starts the animation tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.cfg.ScreenW = msg.Width
		m.cfg.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveScore()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionUp:
		m.moveCursor(0, 1)
	case core.ActionDown:
		m.moveCursor(0, -1)
	case core.ActionLeft:
		m.moveCursor(-1, 0)
	case core.ActionRight:
		m.moveCursor(1, 0)
	case core.ActionSelect:
		m.handleSelect()
	case core.ActionCancel:
		m.selected = nil
	case core.ActionRestart:
		return m.restart()
	}

	return m, nil
}

// moveCursor shifts the cursor, clamped to the board. Y grows upward.
func (m *Model) moveCursor(dx, dy int) {
	g := m.eng.Grid()
	x := m.cursor.X + dx
	y := m.cursor.Y + dy
	if x < 0 {
		x = 0
	}
	if x >= g.Width() {
		x = g.Width() - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= g.Height() {
		y = g.Height() - 1
	}
	m.cursor = engine.Pt(x, y)
}

// handleSelect implements the two-step swap gesture: select a tile, then
// select an adjacent one. Selecting a power-up twice activates it.
func (m *Model) handleSelect() {
	if m.eng.Phase() != engine.PhaseIdle {
		return
	}

	if m.selected == nil {
		sel := m.cursor
		m.selected = &sel
		return
	}

	prev := *m.selected
	if prev == m.cursor {
		// Double-select triggers the power-up under the cursor, if any.
		if m.eng.ActivatePowerUp(m.cursor.X, m.cursor.Y) {
			m.sink.status = ""
		}
		m.selected = nil
		return
	}

	if m.eng.RequestSwap(prev, m.cursor) {
		m.sink.status = ""
	}
	m.selected = nil
}

// restart abandons the current session and starts a fresh board.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.saveScore()

	m.cfg.Seed = time.Now().UnixNano()
	sink := &hostSink{}
	eng, err := engine.New(m.game.EngineConfig(m.cfg.Seed), sink, log.New(io.Discard))
	if err != nil {
		// Config was already validated; keep the old session on failure.
		return m, nil
	}
	eng.Start()

	m.eng = eng
	m.sink = sink
	m.cursor = engine.Pt(0, 0)
	m.selected = nil
	m.scoreSaved = false
	return m, nil
}

// handleTick paces the animation: once the current batch's tick budget runs
// out, the engine is told to advance. Completing one batch may immediately
// issue the next token (gravity after blast, cascade after refill).
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.sink.pending != 0 {
		if m.sink.wait > 0 {
			m.sink.wait--
		} else {
			tok := m.sink.pending
			m.sink.pending = 0
			m.sink.flash = nil
			m.eng.Complete(tok)
		}
	}

	if st := m.eng.Stats(); st.Score > m.highScore {
		m.highScore = st.Score
	}

	return m, tickCmd(m.cfg.TickRate)
}

// saveScore persists the session once, best effort.
func (m *Model) saveScore() {
	if m.scoreSaved || m.store == nil {
		return
	}
	st := m.eng.Stats()
	if st.Moves == 0 {
		return
	}
	//nolint:errcheck // Best-effort save, session continues regardless
	m.store.SaveScore(st.Score, st.Moves, st.DeepestCascade)
	m.scoreSaved = true
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.drawBoard()
	m.drawHUD()
	return RenderScreen(m.screen)
}

// drawBoard renders the grid with cursor and selection markers. Board row 0
// is at the bottom, so the screen Y axis is flipped.
func (m Model) drawBoard() {
	g := m.eng.Grid()
	boxW := g.Width()*2 + 1
	boxH := g.Height() + 2
	ox := (m.screen.Width() - boxW) / 2
	oy := 2
	if ox < 0 {
		ox = 0
	}

	m.screen.DrawTextCentered(0, "MATCH-3", core.ColorBrightWhite)
	m.screen.DrawBox(ox, oy, boxW, boxH, core.ColorGray)

	flashing := make(map[engine.Point]bool, len(m.sink.flash))
	if m.sink.pending != 0 && m.eng.Phase() == engine.PhaseBlasting {
		for _, p := range m.sink.flash {
			flashing[p] = true
		}
	}

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			sx := ox + 1 + x*2
			sy := oy + 1 + (g.Height() - 1 - y)

			if flashing[engine.Pt(x, y)] {
				m.screen.Set(sx, sy, '*', core.ColorBrightWhite)
				continue
			}
			if t := g.At(x, y); t != nil {
				m.screen.Set(sx, sy, t.Type.Rune(), tileColor(t.Type))
			} else {
				m.screen.Set(sx, sy, '·', core.ColorGray)
			}
		}
	}

	// Selection brackets first so the cursor wins when both are on one cell.
	if m.selected != nil {
		m.drawMarker(*m.selected, '(', ')', core.ColorBrightYellow, g, ox, oy)
	}
	m.drawMarker(m.cursor, '[', ']', core.ColorBrightWhite, g, ox, oy)
}

func (m Model) drawMarker(p engine.Point, open, close rune, c core.Color, g *engine.Grid, ox, oy int) {
	sx := ox + 1 + p.X*2
	sy := oy + 1 + (g.Height() - 1 - p.Y)
	m.screen.Set(sx-1, sy, open, c)
	m.screen.Set(sx+1, sy, close, c)
}

// drawHUD renders score, phase and control hints below the board.
func (m Model) drawHUD() {
	g := m.eng.Grid()
	st := m.eng.Stats()
	base := 2 + g.Height() + 3

	m.screen.DrawTextCentered(base, fmt.Sprintf("Score: %d   Best: %d   Moves: %d", st.Score, m.highScore, st.Moves), core.ColorWhite)
	if st.DeepestCascade > 0 {
		m.screen.DrawTextCentered(base+1, fmt.Sprintf("Deepest cascade: %d", st.DeepestCascade), core.ColorCyan)
	}

	if m.sink.status != "" {
		m.screen.DrawTextCentered(base+2, m.sink.status, core.ColorBrightRed)
	} else if phase := m.eng.Phase(); phase != engine.PhaseIdle {
		m.screen.DrawTextCentered(base+2, phase.String()+"...", core.ColorGray)
	}

	m.screen.DrawTextCentered(base+4, "arrows: move  enter: select/swap  esc: cancel  r: restart  q: quit", core.ColorGray)
}

// Run starts the Bubble Tea program with the given session configuration.
func Run(game config.GameConfig, store *storage.Store, cfg core.RuntimeConfig) error {
	model, err := NewModel(game, store, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
