package blockfall

// Snapshot captures the observable game state for determinism tests.
type Snapshot struct {
	Tick       uint64
	Mode       string
	Phase      Phase
	Won        bool
	Score      int
	Lines      int
	Level      int
	DropDelay  int
	PieceX     int
	PieceY     int
	CellsUsed  int // Occupied board cells
	FilledRows int // Completely full rows (should be 0 after a step)
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Phase:      g.phase,
		Won:        g.won,
		Score:      g.score,
		Lines:      g.lines,
		Level:      g.level,
		DropDelay:  g.dropDelay,
		PieceX:     g.piece.X,
		PieceY:     g.piece.Y,
		CellsUsed:  g.board.OccupiedCells(),
		FilledRows: g.board.FilledRowCount(),
	}
}
