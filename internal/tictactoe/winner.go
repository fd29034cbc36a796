package tictactoe

import "github.com/rocketscienceinc/tictactoe-history/internal/entity"

// WinCombos lists the winning lines in evaluation order: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Evaluate returns the first line of WinCombos held by a single mark, or nil.
// A full board without such a line is a draw and also yields nil.
func Evaluate(board entity.Board) *entity.WinResult {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return &entity.WinResult{
				Mark: a,
				Line: combo,
			}
		}
	}

	return nil
}

// IsFull reports whether every cell holds a mark.
func IsFull(board entity.Board) bool {
	return board.Filled() == entity.BoardSize
}
