package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mubatu/match3-game/internal/config"
	"github.com/mubatu/match3-game/internal/engine"
)

var (
	flagSimMoves      int
	flagSimConfig     string
	flagSimDifficulty string
	flagSimTrace      bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run a headless session driven by a random agent. Useful for
exercising the engine, measuring cascade behavior and reproducing bugs
with a fixed seed.

The agent probes random adjacent swaps; rejected and fruitless swaps are
part of the run. With --trace every engine event is traced.

Examples:
  match3 sim --moves 200
  match3 sim --moves 50 --seed 42 --trace
  match3 sim --difficulty easy`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 100, "Number of swaps to attempt")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	simCmd.Flags().BoolVar(&flagSimTrace, "trace", false, "Trace every engine event")
}

// traceSink logs engine events through the structured logger.
type traceSink struct {
	engine.NopSink
	logger *log.Logger
}

func (s *traceSink) PhaseChanged(p engine.Phase) {
	s.logger.Debug("phase", "now", p)
}

func (s *traceSink) MatchFound(m engine.Match) {
	s.logger.Info("match", "orientation", m.Orientation, "size", len(m.Tiles), "pivot", m.Pivot)
}

func (s *traceSink) ItemsBlasted(tiles []*engine.Tile) {
	s.logger.Info("blast", "tiles", len(tiles))
}

func (s *traceSink) TileFell(op engine.FallOperation) {
	s.logger.Debug("fall", "x", op.X, "from", op.FromY, "to", op.ToY)
}

func (s *traceSink) TileSpawned(op engine.SpawnOperation) {
	s.logger.Debug("spawn", "x", op.X, "y", op.Y, "kind", op.Tile.Type)
}

func runSim(cmd *cobra.Command, args []string) {
	game, err := config.Load(flagSimConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagSimDifficulty != "" {
		config.ApplyPreset(&game, config.DifficultyPreset(flagSimDifficulty))
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "match3-sim"})
	if flagSimTrace {
		logger.SetLevel(log.DebugLevel)
	}

	var sink engine.EventSink = engine.NopSink{}
	if flagSimTrace {
		sink = &traceSink{logger: logger}
	}

	eng, err := engine.New(game.EngineConfig(seed), sink, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating engine: %v\n", err)
		os.Exit(1)
	}
	eng.Start()
	eng.RunToIdle()

	logger.Info("simulation start", "seed", seed, "board", fmt.Sprintf("%dx%d", game.Board.Width, game.Board.Height), "moves", flagSimMoves)
	start := time.Now()

	// The agent uses its own rng stream so it never perturbs the engine's.
	agent := rand.New(rand.NewSource(seed + 1))
	accepted := 0
	for i := 0; i < flagSimMoves; i++ {
		a := engine.Pt(agent.Intn(game.Board.Width), agent.Intn(game.Board.Height))
		b := a
		if agent.Intn(2) == 0 {
			b.X++
		} else {
			b.Y++
		}

		if eng.RequestSwap(a, b) {
			accepted++
		}
		eng.RunToIdle()
	}

	st := eng.Stats()
	logger.Info("simulation done",
		"elapsed", time.Since(start),
		"attempted", flagSimMoves,
		"accepted", accepted,
	)

	fmt.Printf("Seed:            %d\n", seed)
	fmt.Printf("Swaps accepted:  %d/%d\n", accepted, flagSimMoves)
	fmt.Printf("Score:           %d\n", st.Score)
	fmt.Printf("Tiles cleared:   %d\n", st.TilesCleared)
	fmt.Printf("Deepest cascade: %d\n", st.DeepestCascade)
	fmt.Println()
	fmt.Println("Final board:")
	fmt.Println(eng.Grid().String())
}
