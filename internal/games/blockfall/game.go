// Package blockfall implements the falling-block puzzle game: piece
// spawning, movement, rotation, collision detection, line clearing and
// scoring, driven by the platform's fixed-timestep tick.
package blockfall

import (
	"math/rand"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeMarathon Mode = "marathon"
	ModeSprint   Mode = "sprint"
)

// Phase is the session state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

// Game implements the blockfall game.
type Game struct {
	mode Mode
	cfg  config.BlockfallConfig
	rng  *rand.Rand
	tick uint64

	board *Board
	piece Piece // Falling piece
	next  Piece // Precomputed preview piece

	phase      Phase
	won        bool // Sprint target reached
	score      int
	lines      int
	level      int
	startLevel int
	dropDelay  int // Gravity interval in ticks for the current level
	dropTicker int // Ticks accumulated since the last gravity move

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

// Package-level variables for config/difficulty, set by the CLI before
// the game is created (same pattern as every game in the arcade).
var (
	configPath         string
	difficultyPreset   string
	selectedStartLevel int
)

// SetConfigPath sets the config file path for the next game.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset for the next game.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetStartLevel sets the starting level. 0 means use the preset's level.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// New creates a new marathon mode game.
func New() *Game {
	return &Game{mode: ModeMarathon}
}

// NewSprint creates a new sprint mode game (win at the line target).
func NewSprint() *Game {
	return &Game{mode: ModeSprint}
}

func init() {
	registry.Register("blockfall", func() registry.Game {
		return New()
	})
	registry.Register("blockfall_sprint", func() registry.Game {
		return NewSprint()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeSprint {
		return "blockfall_sprint"
	}
	return "blockfall"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSprint {
		return "Blockfall (Sprint)"
	}
	return "Blockfall"
}

// Reset initializes/restarts the game. The whole session state (board,
// pieces, score, lines, level) resets atomically; the game starts in the
// idle phase and waits for a confirm action.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	gameCfg, err := config.LoadBlockfall(configPath)
	if err != nil {
		gameCfg = config.DefaultBlockfallConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&gameCfg, config.DifficultyPreset(difficultyPreset))
	}
	g.cfg = gameCfg

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.lines = 0
	g.won = false
	g.phase = PhaseIdle

	g.startLevel = config.StartLevelForPreset(config.DifficultyPreset(difficultyPreset))
	if selectedStartLevel > 0 {
		g.startLevel = selectedStartLevel
	}
	g.level = g.startLevel
	g.dropDelay = g.cfg.Gravity.DelayForLevel(g.level)
	g.dropTicker = 0

	g.board = NewBoard(g.cfg.Board.Width, g.cfg.Board.Height)

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize()
}

// checkScreenSize verifies the board plus sidebar fits the screen.
func (g *Game) checkScreenSize() {
	requiredW := g.board.Width()*cellWidth + 2 + sidebarWidth
	requiredH := g.board.Height() + 2 + hudHeight
	g.tooSmall = g.screenW < requiredW || g.screenH < requiredH
}

// start transitions Idle -> Running and spawns the first two pieces.
func (g *Game) start() {
	g.phase = PhaseRunning
	g.next = RandomPiece(g.rng)
	g.spawn()
}

// spawn promotes the preview piece to the falling piece and draws a new
// preview. A spawn that immediately collides ends the session.
func (g *Game) spawn() {
	g.piece = g.next.SpawnAt(g.board.Width())
	g.next = RandomPiece(g.rng)
	g.dropTicker = 0

	if g.board.Collides(g.piece, 0, 0) {
		g.phase = PhaseGameOver
	}
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart after the session ended
	if input.Has(core.ActionRestart) && g.phase == PhaseGameOver {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	switch g.phase {
	case PhaseIdle:
		if input.Has(core.ActionConfirm) && !g.tooSmall {
			g.start()
		}
		return core.StepResult{State: g.State()}

	case PhasePaused:
		if input.Has(core.ActionPause) {
			g.phase = PhaseRunning
		}
		return core.StepResult{State: g.State()}

	case PhaseGameOver:
		return core.StepResult{State: g.State()}
	}

	// Running
	if input.Has(core.ActionPause) {
		g.phase = PhasePaused
		return core.StepResult{State: g.State()}
	}
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)
	if g.phase != PhaseRunning {
		// A drop may have ended the session this tick
		return core.StepResult{State: g.State()}
	}

	// Gravity: one downward move once enough ticks accumulate
	g.dropTicker++
	if g.dropTicker >= g.dropDelay {
		g.dropTicker = 0
		g.moveDown()
	}

	return core.StepResult{State: g.State()}
}

// processInput applies movement, rotation and drop actions. Invalid
// moves are rejected by the collision check and become no-ops.
func (g *Game) processInput(input core.InputFrame) {
	if input.Has(core.ActionLeft) && !g.board.Collides(g.piece, -1, 0) {
		g.piece.X--
	}
	if input.Has(core.ActionRight) && !g.board.Collides(g.piece, 1, 0) {
		g.piece.X++
	}
	if input.Has(core.ActionRotate) {
		g.rotate()
	}

	switch {
	case input.Has(core.ActionHardDrop):
		g.hardDrop()
	case input.Has(core.ActionSoftDrop):
		// Manual down resets the gravity accumulator
		g.dropTicker = 0
		g.moveDown()
	}
}

// rotate attempts a clockwise rotation; a colliding rotation is rejected
// and the prior shape kept. No wall-kick offsetting.
func (g *Game) rotate() {
	rotated := g.piece.RotatedCW()
	if !g.board.Collides(rotated, 0, 0) {
		g.piece = rotated
	}
}

// moveDown moves the falling piece one cell down, or locks it in place
// when the cell below is blocked.
func (g *Game) moveDown() {
	if g.board.Collides(g.piece, 0, 1) {
		g.lock()
		return
	}
	g.piece.Y++
}

// hardDrop bypasses gravity timing: the piece falls instantly to the
// lowest valid position and is placed immediately.
func (g *Game) hardDrop() {
	for !g.board.Collides(g.piece, 0, 1) {
		g.piece.Y++
	}
	g.lock()
}

// lock commits the falling piece into the board, clears any full rows,
// applies scoring and spawns the next piece.
func (g *Game) lock() {
	g.board.Place(g.piece)

	cleared := g.board.ClearFullRows()
	if cleared > 0 {
		// Every cleared row is an independent award at the current
		// level; multi-row clears sum, with no combo multiplier.
		g.score += cleared * g.cfg.Scoring.PerLine * g.level
		g.lines += cleared
		g.updateLevel()
	}

	if g.mode == ModeSprint && g.lines >= g.cfg.Sprint.TargetLines {
		g.won = true
		g.phase = PhaseGameOver
		return
	}

	g.spawn()
}

// updateLevel derives the level from lines cleared and recomputes the
// gravity delay. Level never drops below the configured start level.
func (g *Game) updateLevel() {
	level := g.lines/10 + 1
	if level < g.startLevel {
		level = g.startLevel
	}
	g.level = level
	g.dropDelay = g.cfg.Gravity.DelayForLevel(g.level)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lines:    g.lines,
		Level:    g.level,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.phase == PhasePaused,
	}
}

// Phase returns the current session phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Won reports whether a sprint session reached its line target.
func (g *Game) Won() bool {
	return g.won
}

// Board exposes the playfield for rendering and tests.
func (g *Game) Board() *Board {
	return g.board
}
