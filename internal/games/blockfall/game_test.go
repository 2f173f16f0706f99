package blockfall

import (
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
)

func testRuntimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     7,
	}
}

// newRunningGame returns a marathon game that has been reset and started.
func newRunningGame(t *testing.T) *Game {
	t.Helper()
	resetTuningGlobals()

	g := New()
	g.Reset(testRuntimeConfig())

	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)

	if g.Phase() != PhaseRunning {
		t.Fatalf("game should be running after confirm, phase = %d", g.Phase())
	}
	return g
}

func resetTuningGlobals() {
	SetConfigPath("")
	SetDifficultyPreset("")
	SetStartLevel(0)
}

func stepWith(g *Game, a core.Action) core.StepResult {
	in := core.NewInputFrame()
	if a != core.ActionNone {
		in.Set(a)
	}
	return g.Step(in)
}

func TestResetStartsIdle(t *testing.T) {
	resetTuningGlobals()

	g := New()
	g.Reset(testRuntimeConfig())

	if g.Phase() != PhaseIdle {
		t.Errorf("phase after Reset = %d, expected PhaseIdle", g.Phase())
	}

	state := g.State()
	if state.Score != 0 || state.Lines != 0 {
		t.Errorf("fresh session should have zero score and lines, got %+v", state)
	}
	if state.Level != 1 {
		t.Errorf("fresh session level = %d, expected 1", state.Level)
	}

	// Ticks in idle do not advance the session
	for range 100 {
		stepWith(g, core.ActionNone)
	}
	if g.Phase() != PhaseIdle {
		t.Error("idle game should stay idle without a confirm")
	}
}

func TestStartSpawnsCenteredPiece(t *testing.T) {
	g := newRunningGame(t)

	if g.piece.Y != 0 {
		t.Errorf("spawned piece Y = %d, expected 0", g.piece.Y)
	}
	expectedX := (g.board.Width() - g.piece.Width()) / 2
	if g.piece.X != expectedX {
		t.Errorf("spawned piece X = %d, expected %d", g.piece.X, expectedX)
	}
	if g.next.Width() == 0 {
		t.Error("preview piece should be precomputed at spawn")
	}
}

func TestPauseToggle(t *testing.T) {
	g := newRunningGame(t)

	stepWith(g, core.ActionPause)
	if g.Phase() != PhasePaused {
		t.Fatal("pause should transition Running -> Paused")
	}

	// Gravity is suspended while paused
	y := g.piece.Y
	for range 200 {
		stepWith(g, core.ActionNone)
	}
	if g.piece.Y != y {
		t.Error("paused game should not advance the piece")
	}

	stepWith(g, core.ActionPause)
	if g.Phase() != PhaseRunning {
		t.Error("pause should transition Paused -> Running")
	}
}

func TestGravityMovesPieceAfterDropDelay(t *testing.T) {
	g := newRunningGame(t)

	delay := g.dropDelay
	if delay <= 0 {
		t.Fatalf("drop delay should be positive, got %d", delay)
	}

	for range delay - 1 {
		stepWith(g, core.ActionNone)
	}
	if g.piece.Y != 0 {
		t.Errorf("piece moved after %d ticks, expected no move before the drop delay", delay-1)
	}

	stepWith(g, core.ActionNone)
	if g.piece.Y != 1 {
		t.Errorf("piece Y = %d after the drop delay elapsed, expected 1", g.piece.Y)
	}
}

func TestHorizontalMovesRespectWalls(t *testing.T) {
	g := newRunningGame(t)

	// Walk the piece into the left wall; further moves are no-ops
	for range g.board.Width() {
		stepWith(g, core.ActionLeft)
	}
	if g.piece.X != 0 {
		t.Errorf("piece X = %d at the left wall, expected 0", g.piece.X)
	}

	for range g.board.Width() * 2 {
		stepWith(g, core.ActionRight)
	}
	if g.piece.X+g.piece.Width() != g.board.Width() {
		t.Errorf("piece right edge = %d, expected flush with wall %d",
			g.piece.X+g.piece.Width(), g.board.Width())
	}
}

func TestRotationRejectedAtFloor(t *testing.T) {
	g := newRunningGame(t)
	g.piece = NewPieceFromTemplate(0) // horizontal I
	g.piece.X, g.piece.Y = 3, 17

	// Rotation would extend rows 17-20, past the floor at height 20
	before := g.piece.Shape
	g.rotate()
	if !shapesEqual(g.piece.Shape, before) {
		t.Error("colliding rotation should be rejected and the prior shape kept")
	}

	// Higher up the same rotation is legal
	g.piece.Y = 10
	g.rotate()
	if g.piece.Height() != 4 {
		t.Error("legal rotation should be applied")
	}
}

func TestSoftDropLocksWhenBlocked(t *testing.T) {
	g := newRunningGame(t)
	g.piece = NewPieceFromTemplate(1).SpawnAt(g.board.Width()) // O piece
	g.next = NewPieceFromTemplate(2)

	// Drop to the floor one soft-drop at a time
	for range g.board.Height() {
		stepWith(g, core.ActionSoftDrop)
	}

	// One more soft-drop against the floor places the piece
	if g.board.OccupiedCells() == 0 {
		t.Fatal("piece should lock into the board when soft-dropping against the floor")
	}
	if g.board.Cell(4, 19) == EmptyCell || g.board.Cell(4, 18) == EmptyCell {
		t.Error("locked O piece should fill its two bottom rows")
	}
}

func TestHardDropPlacesImmediately(t *testing.T) {
	g := newRunningGame(t)
	g.piece = NewPieceFromTemplate(0).SpawnAt(g.board.Width()) // I piece
	g.next = NewPieceFromTemplate(2)

	stepWith(g, core.ActionHardDrop)

	// The I piece rests on the bottom row in its four columns
	for x := 3; x < 7; x++ {
		if g.board.Cell(x, 19) == EmptyCell {
			t.Errorf("cell (%d, 19) should be filled after a hard drop", x)
		}
	}
	// A new piece spawned at the top
	if g.piece.Y != 0 {
		t.Errorf("next piece should spawn at the top, Y = %d", g.piece.Y)
	}
}

func TestIPieceDescentFillsOnlyItsColumns(t *testing.T) {
	// Empty board, I piece at spawn, 19 downward moves then placement:
	// row 19 holds exactly the piece's 4 columns and no line clears.
	g := newRunningGame(t)
	g.piece = NewPieceFromTemplate(0).SpawnAt(g.board.Width())
	g.next = NewPieceFromTemplate(2)

	for range 19 {
		g.moveDown()
	}
	if g.piece.Y != 19 {
		t.Fatalf("piece Y = %d after 19 moves, expected 19", g.piece.Y)
	}

	g.moveDown() // blocked by the floor, locks

	filled := 0
	for x := 0; x < g.board.Width(); x++ {
		if g.board.Cell(x, 19) != EmptyCell {
			filled++
		}
	}
	if filled != 4 {
		t.Errorf("row 19 has %d filled cells, expected 4", filled)
	}
	if g.lines != 0 {
		t.Errorf("lines = %d, expected 0 (row not full)", g.lines)
	}
	if g.score != 0 {
		t.Errorf("score = %d, expected 0", g.score)
	}
}

func TestLockIntoGapScoresSingleLine(t *testing.T) {
	// Row 19 filled except column 0; a piece occupying column 0 of
	// row 19 clears it: lines=1, score=100*level at level 1.
	g := newRunningGame(t)
	fillRow(g.board, 19, 0)

	g.piece = NewPieceFromTemplate(1) // O piece at columns 0-1
	g.piece.X, g.piece.Y = 0, 18
	g.next = NewPieceFromTemplate(2)

	g.lock()

	if g.lines != 1 {
		t.Errorf("lines = %d, expected 1", g.lines)
	}
	if g.score != 100 {
		t.Errorf("score = %d, expected 100", g.score)
	}
}

func TestMultiRowClearScoresPerRow(t *testing.T) {
	tests := []struct {
		name  string
		rows  int
		level int
		score int
	}{
		{"single at level 1", 1, 1, 100},
		{"double at level 1", 2, 1, 200},
		{"quad at level 1", 4, 1, 400},
		{"double at level 3", 2, 3, 600},
		{"quad at level 5", 4, 5, 2000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newRunningGame(t)
			g.level = tc.level

			// Fill tc.rows bottom rows except columns 4-5, then
			// complete them with vertical O stacks.
			top := g.board.Height() - tc.rows
			for y := top; y < g.board.Height(); y++ {
				fillRow(g.board, y, 4, 5)
				g.board.SetCell(4, y, core.ColorGray)
				g.board.SetCell(5, y, core.ColorGray)
			}

			// Rows are now full; run the clear+score path directly.
			g.piece = NewPieceFromTemplate(1)
			g.piece.X, g.piece.Y = 4, top-2
			g.next = NewPieceFromTemplate(2)
			g.lock()

			if g.lines != tc.rows {
				t.Errorf("lines = %d, expected %d", g.lines, tc.rows)
			}
			if g.score != tc.score {
				t.Errorf("score = %d, expected %d", g.score, tc.score)
			}
		})
	}
}

func TestLevelDerivedFromLines(t *testing.T) {
	tests := []struct {
		lines    int
		expected int
	}{
		{0, 1},
		{5, 1},
		{9, 1},
		{10, 2},
		{19, 2},
		{20, 3},
		{95, 10},
		{100, 11},
	}

	g := newRunningGame(t)
	for _, tc := range tests {
		g.lines = tc.lines
		g.updateLevel()
		if g.level != tc.expected {
			t.Errorf("level for %d lines = %d, expected %d", tc.lines, g.level, tc.expected)
		}
	}
}

func TestLevelUpShortensDropDelay(t *testing.T) {
	g := newRunningGame(t)

	g.lines = 0
	g.updateLevel()
	slow := g.dropDelay

	g.lines = 50
	g.updateLevel()
	fast := g.dropDelay

	if fast >= slow {
		t.Errorf("drop delay should shrink with level: level 1 = %d, level 6 = %d", slow, fast)
	}

	// Delay bottoms out at the configured floor
	g.lines = 10000
	g.updateLevel()
	if g.dropDelay != g.cfg.Gravity.MinDelayTicks {
		t.Errorf("drop delay = %d at extreme level, expected floor %d",
			g.dropDelay, g.cfg.Gravity.MinDelayTicks)
	}
}

func TestSpawnCollisionEndsSession(t *testing.T) {
	g := newRunningGame(t)

	// Bury the spawn area
	for y := 0; y < 4; y++ {
		fillRow(g.board, y)
	}

	g.next = NewPieceFromTemplate(2)
	g.spawn()

	if g.Phase() != PhaseGameOver {
		t.Error("a freshly spawned piece that collides should end the session")
	}

	// Game over halts the session until restart
	score := g.score
	for range 100 {
		stepWith(g, core.ActionSoftDrop)
	}
	if g.score != score || g.Phase() != PhaseGameOver {
		t.Error("session state should stop advancing after game over")
	}
}

func TestRestartResetsSessionAtomically(t *testing.T) {
	g := newRunningGame(t)
	g.score = 1500
	g.lines = 14
	g.level = 2
	fillRow(g.board, 19)
	g.phase = PhaseGameOver

	stepWith(g, core.ActionRestart)

	state := g.State()
	if state.Score != 0 || state.Lines != 0 || state.Level != 1 {
		t.Errorf("restart should reset score/lines/level, got %+v", state)
	}
	if g.board.OccupiedCells() != 0 {
		t.Error("restart should clear the board")
	}
	if g.Phase() != PhaseIdle {
		t.Error("restart should return to the idle phase")
	}
}

func TestSprintWinsAtTarget(t *testing.T) {
	resetTuningGlobals()

	g := NewSprint()
	g.Reset(testRuntimeConfig())
	stepWith(g, core.ActionConfirm)

	g.lines = g.cfg.Sprint.TargetLines - 1
	fillRow(g.board, 19, 0)

	g.piece = NewPieceFromTemplate(1)
	g.piece.X, g.piece.Y = 0, 18
	g.next = NewPieceFromTemplate(2)
	g.lock()

	if !g.Won() {
		t.Error("sprint should be won at the line target")
	}
	if g.Phase() != PhaseGameOver {
		t.Error("a won sprint ends the session")
	}
}

func TestStartLevelPreset(t *testing.T) {
	resetTuningGlobals()
	SetStartLevel(5)
	defer resetTuningGlobals()

	g := New()
	g.Reset(testRuntimeConfig())

	if g.State().Level != 5 {
		t.Errorf("level = %d with start level 5, expected 5", g.State().Level)
	}

	// Level never drops below the start level as lines accumulate
	g.lines = 10
	g.updateLevel()
	if g.level != 5 {
		t.Errorf("level = %d, expected start level 5 to hold", g.level)
	}
	g.lines = 60
	g.updateLevel()
	if g.level != 7 {
		t.Errorf("level = %d for 60 lines, expected 7", g.level)
	}
}

func TestDeterministicReplay(t *testing.T) {
	resetTuningGlobals()

	run := func() Snapshot {
		g := New()
		g.Reset(testRuntimeConfig())
		stepWith(g, core.ActionConfirm)
		for i := range 600 {
			a := core.ActionNone
			switch {
			case i%37 == 0:
				a = core.ActionLeft
			case i%53 == 0:
				a = core.ActionRotate
			case i%71 == 0:
				a = core.ActionSoftDrop
			}
			stepWith(g, a)
		}
		return g.Snapshot()
	}

	if run() != run() {
		t.Error("identical seeds and inputs should produce identical snapshots")
	}
}
