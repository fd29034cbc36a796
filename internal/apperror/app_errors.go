package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidStep  = errors.New("invalid history step")
	ErrNotTerminal  = errors.New("not a terminal")
)
