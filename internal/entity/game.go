package entity

import "fmt"

// Mark is the content of a single board cell.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

const (
	BoardSide = 3
	BoardSize = BoardSide * BoardSide
)

// Board is a 3x3 grid stored row by row.
type Board [BoardSize]Mark

// IsEmpty reports whether the cell at index holds no mark.
func (that Board) IsEmpty(index int) bool {
	return that[index] == EmptyCell
}

// Filled returns the number of non-empty cells.
func (that Board) Filled() int {
	count := 0
	for _, cell := range that {
		if cell != EmptyCell {
			count++
		}
	}

	return count
}

// Location is a 0-based (row, col) pair on the board.
type Location struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// LocationOf maps a cell index to its row and column.
func LocationOf(index int) Location {
	return Location{
		Row: index / BoardSide,
		Col: index % BoardSide,
	}
}

// Index is the inverse of LocationOf.
func (that Location) Index() int {
	return that.Row*BoardSide + that.Col
}

// Format renders the location as "(row, col)", shifted to 1-based when oneBased is set.
func (that Location) Format(oneBased bool) string {
	shift := 0
	if oneBased {
		shift = 1
	}

	return fmt.Sprintf("(%d, %d)", that.Row+shift, that.Col+shift)
}

// WinResult is the first winning line found on a board.
type WinResult struct {
	Mark Mark   `json:"mark"`
	Line [3]int `json:"line"`
}

// Contains reports whether index is one of the winning cells.
func (that *WinResult) Contains(index int) bool {
	if that == nil {
		return false
	}

	for _, cell := range that.Line {
		if cell == index {
			return true
		}
	}

	return false
}

type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateDraw       State = "draw"
)

// Status is the derived outcome of the board currently displayed.
type Status struct {
	State  State      `json:"state"`
	Winner *WinResult `json:"winner,omitempty"`
	Next   Mark       `json:"next,omitempty"`
}

func (that Status) IsFinished() bool {
	return that.State == StateWon || that.State == StateDraw
}

func (that Status) String() string {
	switch that.State {
	case StateWon:
		return "Winner: " + string(that.Winner.Mark)
	case StateDraw:
		return "Draw"
	default:
		return "Next player: " + string(that.Next)
	}
}

// MoveEntry is a single row of the move list.
type MoveEntry struct {
	Step     int       `json:"step"`
	Active   bool      `json:"active"`
	Location *Location `json:"location,omitempty"`
}

// Label returns the text shown for the entry in the move list.
func (that MoveEntry) Label() string {
	if that.Step == 0 {
		return "Go to game start"
	}

	return fmt.Sprintf("Go to move #%d", that.Step)
}
