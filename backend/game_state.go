package main

type Mark int

type GameStatus int

const (
	MarkPlayer Mark = iota
	MarkOpponent
)

const (
	StatusInProgress GameStatus = iota
	StatusPlayerWon
	StatusOpponentWon
	StatusDraw
)

type GameState struct {
	Board       Board
	ToMove      Mark
	Status      GameStatus
	HasLastMove bool
	LastMove    int
	WinningLine []int
}

func DefaultGameState() GameState {
	state := GameState{}
	state.Reset()
	return state
}

func (s *GameState) Reset() {
	s.Board.Reset()
	s.ToMove = MarkPlayer
	s.Status = StatusInProgress
	s.HasLastMove = false
	s.LastMove = -1
	s.WinningLine = nil
}

func (s GameState) Clone() GameState {
	clone := s
	clone.WinningLine = append([]int(nil), s.WinningLine...)
	return clone
}

func otherMark(mark Mark) Mark {
	if mark == MarkPlayer {
		return MarkOpponent
	}
	return MarkPlayer
}

func wonStatus(mark Mark) GameStatus {
	if mark == MarkPlayer {
		return StatusPlayerWon
	}
	return StatusOpponentWon
}

func (m Mark) String() string {
	if m == MarkPlayer {
		return "player"
	}
	return "opponent"
}

func (s GameStatus) String() string {
	switch s {
	case StatusPlayerWon:
		return "player_won"
	case StatusOpponentWon:
		return "opponent_won"
	case StatusDraw:
		return "draw"
	default:
		return "in_progress"
	}
}
