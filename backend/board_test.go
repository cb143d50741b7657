package main

import "testing"

func boardFromCells(cells [boardCells]Cell) Board {
	b := NewBoard()
	for i, cell := range cells {
		b.Set(i, cell)
	}
	return b
}

func TestWinnerDetectsEveryLine(t *testing.T) {
	for _, pattern := range winPatterns {
		b := NewBoard()
		for _, index := range pattern {
			b.Set(index, CellPlayer)
		}
		winner, line := b.Winner()
		if winner != CellPlayer {
			t.Fatalf("pattern %v: expected player winner, got %v", pattern, winner)
		}
		if line != pattern {
			t.Fatalf("pattern %v: expected matching line, got %v", pattern, line)
		}
	}
}

func TestWinnerNoneWithoutCompletedLine(t *testing.T) {
	b := boardFromCells([boardCells]Cell{
		CellPlayer, CellOpponent, CellPlayer,
		CellPlayer, CellOpponent, CellOpponent,
		CellOpponent, CellPlayer, CellPlayer,
	})
	if winner, _ := b.Winner(); winner != CellEmpty {
		t.Fatalf("expected no winner on drawn board, got %v", winner)
	}
	if !b.IsFull() {
		t.Fatalf("expected drawn board to be full")
	}
}

func TestIsFullRequiresEveryCell(t *testing.T) {
	b := NewBoard()
	for i := 0; i < boardCells-1; i++ {
		b.Set(i, CellPlayer)
		if b.IsFull() {
			t.Fatalf("board reported full with %d empty cells", b.CountEmpty())
		}
	}
	b.Set(boardCells-1, CellOpponent)
	if !b.IsFull() {
		t.Fatalf("expected full board after filling all cells")
	}
}

func TestIsEmptyRejectsOutOfRange(t *testing.T) {
	b := NewBoard()
	if b.IsEmpty(-1) || b.IsEmpty(boardCells) {
		t.Fatalf("out-of-range indices must not be empty")
	}
}
