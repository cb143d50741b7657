package main

const boardCells = 9

type Cell int

const (
	CellEmpty Cell = iota
	CellPlayer
	CellOpponent
)

// winPatterns lists every completed line on a 3x3 board, row-major:
// three rows, three columns, two diagonals.
var winPatterns = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

type Board struct {
	cells [boardCells]Cell
}

func NewBoard() Board {
	return Board{}
}

func (b *Board) Reset() {
	b.cells = [boardCells]Cell{}
}

func (b Board) At(index int) Cell {
	return b.cells[index]
}

func (b *Board) Set(index int, value Cell) {
	b.cells[index] = value
}

func (b Board) InBounds(index int) bool {
	return index >= 0 && index < boardCells
}

func (b Board) IsEmpty(index int) bool {
	return b.InBounds(index) && b.cells[index] == CellEmpty
}

func (b Board) IsFull() bool {
	for _, cell := range b.cells {
		if cell == CellEmpty {
			return false
		}
	}
	return true
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

// Winner returns the mark holding a completed line and the line itself,
// or CellEmpty when no line is complete.
func (b Board) Winner() (Cell, [3]int) {
	for _, pattern := range winPatterns {
		first := b.cells[pattern[0]]
		if first == CellEmpty {
			continue
		}
		if b.cells[pattern[1]] == first && b.cells[pattern[2]] == first {
			return first, pattern
		}
	}
	return CellEmpty, [3]int{}
}

func (c Cell) String() string {
	switch c {
	case CellPlayer:
		return "Player"
	case CellOpponent:
		return "Opponent"
	default:
		return "Empty"
	}
}

func CellForMark(mark Mark) Cell {
	if mark == MarkPlayer {
		return CellPlayer
	}
	return CellOpponent
}
