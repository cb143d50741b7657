package main

// Game owns one tic-tac-toe round. The human always plays MarkPlayer and
// always moves first; the opponent's reply is placed by PlayOpponentReply,
// which the controller schedules after the configured delay.
type Game struct {
	state         GameState
	awaitingReply bool
}

func NewGame() Game {
	g := Game{}
	g.Reset()
	return g
}

func (g *Game) Reset() {
	g.state.Reset()
	g.awaitingReply = false
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

// AwaitingReply reports whether an opponent reply is pending. While true no
// human move can be accepted, so a turn can never place two marks.
func (g *Game) AwaitingReply() bool {
	return g.awaitingReply
}

// TryApplyMove places the human mark at the given cell. Rejections leave the
// state untouched and report a reason; they are never errors.
func (g *Game) TryApplyMove(cell int) (bool, string) {
	if g.state.Status != StatusInProgress {
		return false, "game over"
	}
	if g.awaitingReply {
		return false, "waiting for opponent"
	}
	if !g.state.Board.InBounds(cell) {
		return false, "cell out of range"
	}
	if !g.state.Board.IsEmpty(cell) {
		return false, "cell occupied"
	}
	g.placeMark(cell, MarkPlayer)
	if g.state.Status == StatusInProgress {
		g.awaitingReply = true
	}
	return true, ""
}

// PlayOpponentReply places the opponent's mark chosen by SelectOpponentMove
// and clears the awaiting-reply guard. Returns false when no reply is due.
func (g *Game) PlayOpponentReply() bool {
	if !g.awaitingReply || g.state.Status != StatusInProgress {
		g.awaitingReply = false
		return false
	}
	g.awaitingReply = false
	cell, ok := SelectOpponentMove(g.state.Board)
	if !ok {
		return false
	}
	g.placeMark(cell, MarkOpponent)
	return true
}

// placeMark commits a mark and settles the outcome. The win check runs
// before the full-board check: a full board with a completed line is a win,
// not a draw.
func (g *Game) placeMark(cell int, mark Mark) {
	g.state.Board.Set(cell, CellForMark(mark))
	g.state.LastMove = cell
	g.state.HasLastMove = true
	if winner, line := g.state.Board.Winner(); winner != CellEmpty {
		g.state.Status = wonStatus(mark)
		g.state.WinningLine = line[:]
		return
	}
	if g.state.Board.IsFull() {
		g.state.Status = StatusDraw
		return
	}
	g.state.ToMove = otherMark(mark)
}
