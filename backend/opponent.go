package main

// preferredCells is the positional fallback order: center first, then
// corners, then sides.
var preferredCells = [boardCells]int{4, 0, 2, 6, 8, 1, 3, 5, 7}

// SelectOpponentMove picks the opponent's cell with a strict three-tier
// priority. Each tier is scanned exhaustively before falling through:
//
//  1. a cell that wins the game for the opponent right now,
//  2. a cell that blocks an immediate win for the player,
//  3. the first empty cell in preferredCells order.
//
// Returns false only when the board has no empty cell left.
func SelectOpponentMove(board Board) (int, bool) {
	if cell, ok := findWinningCell(board, CellOpponent); ok {
		return cell, true
	}
	if cell, ok := findWinningCell(board, CellPlayer); ok {
		return cell, true
	}
	for _, cell := range preferredCells {
		if board.IsEmpty(cell) {
			return cell, true
		}
	}
	return -1, false
}

// findWinningCell scans indices 0 through 8 for an empty cell that would
// complete a line for the given mark.
func findWinningCell(board Board, mark Cell) (int, bool) {
	for i := 0; i < boardCells; i++ {
		if !board.IsEmpty(i) {
			continue
		}
		probe := board
		probe.Set(i, mark)
		if winner, _ := probe.Winner(); winner == mark {
			return i, true
		}
	}
	return -1, false
}
