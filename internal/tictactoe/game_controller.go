package tictactoe

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// GameState is a snapshot of everything the controller owns.
type GameState struct {
	History    []entity.Board     `json:"history"`
	Locations  []*entity.Location `json:"locations"`
	Step       int                `json:"step"`
	ActiveMove int                `json:"active_move"`
	Descending bool               `json:"descending"`
}

// Listener is called after every successful mutation with a copy of the new state.
type Listener func(state GameState)

// GameController owns the game history and the rules for moving through it.
// It is not safe for concurrent use: all calls are expected from the UI loop.
type GameController struct {
	logger *slog.Logger

	history    []entity.Board
	locations  []*entity.Location
	step       int
	activeMove int
	descending bool

	listeners []Listener
}

func NewGameController(logger *slog.Logger, descending bool) *GameController {
	return &GameController{
		logger:     logger.With("component", "game_controller"),
		history:    []entity.Board{{}},
		locations:  []*entity.Location{nil},
		descending: descending,
	}
}

// Subscribe registers a listener for state changes.
func (that *GameController) Subscribe(listener Listener) {
	that.listeners = append(that.listeners, listener)
}

// CheckPlacement reports why a mark cannot be placed at index, or nil if it can.
func (that *GameController) CheckPlacement(index int) error {
	if index < 0 || index >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	current := that.Current()

	if Evaluate(current) != nil {
		return fmt.Errorf("%w: cell %d", apperror.ErrGameFinished, index)
	}

	if !current.IsEmpty(index) {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	return nil
}

// PlaceMark puts the next mark at index on the displayed board, discarding any
// history after it. Illegal placements are ignored and return false.
func (that *GameController) PlaceMark(index int) bool {
	log := that.logger.With("method", "PlaceMark", "cell", index)

	if err := that.CheckPlacement(index); err != nil {
		log.Debug("placement ignored", "reason", err)
		return false
	}

	mark := that.NextMark()
	board := that.history[that.step]
	board[index] = mark
	location := entity.LocationOf(index)

	that.history = append(that.history[:that.step+1], board)
	that.locations = append(that.locations[:that.step+1], &location)
	that.step = len(that.history) - 1
	that.activeMove = that.step

	log.Debug("mark placed", "mark", mark, "step", that.step)
	that.notify()

	return true
}

// JumpTo displays the board after step moves without altering history.
func (that *GameController) JumpTo(step int) error {
	if step < 0 || step >= len(that.history) {
		return fmt.Errorf("%w: step %d of %d", apperror.ErrInvalidStep, step, len(that.history))
	}

	that.step = step
	that.activeMove = step

	that.logger.Debug("jumped", "method", "JumpTo", "step", step)
	that.notify()

	return nil
}

// ToggleOrder flips the move list between ascending and descending order.
func (that *GameController) ToggleOrder() {
	that.descending = !that.descending
	that.notify()
}

// Status derives the outcome of the displayed board. A draw is declared once
// nine moves have been made; since every move fills a distinct cell this is
// the same as the ninth board being full.
func (that *GameController) Status() entity.Status {
	if winner := Evaluate(that.Current()); winner != nil {
		return entity.Status{
			State:  entity.StateWon,
			Winner: winner,
		}
	}

	if len(that.history)-1 == entity.BoardSize {
		return entity.Status{State: entity.StateDraw}
	}

	return entity.Status{
		State: entity.StateInProgress,
		Next:  that.NextMark(),
	}
}

// MoveList returns one entry per history step in display order.
func (that *GameController) MoveList() []entity.MoveEntry {
	moves := make([]entity.MoveEntry, len(that.history))
	for step := range that.history {
		entry := entity.MoveEntry{
			Step:   step,
			Active: step == that.activeMove,
		}

		if location := that.locations[step]; location != nil {
			loc := *location
			entry.Location = &loc
		}

		position := step
		if that.descending {
			position = len(that.history) - 1 - step
		}
		moves[position] = entry
	}

	return moves
}

func (that *GameController) Current() entity.Board {
	return that.history[that.step]
}

func (that *GameController) CurrentStep() int {
	return that.step
}

func (that *GameController) ActiveMove() int {
	return that.activeMove
}

func (that *GameController) Descending() bool {
	return that.descending
}

// NextMark is X on even steps and O on odd ones.
func (that *GameController) NextMark() entity.Mark {
	if that.step%2 == 0 {
		return entity.PlayerX
	}

	return entity.PlayerO
}

// State returns a deep copy of the controller state.
func (that *GameController) State() GameState {
	history := make([]entity.Board, len(that.history))
	copy(history, that.history)

	locations := make([]*entity.Location, len(that.locations))
	for i, location := range that.locations {
		if location != nil {
			loc := *location
			locations[i] = &loc
		}
	}

	return GameState{
		History:    history,
		Locations:  locations,
		Step:       that.step,
		ActiveMove: that.activeMove,
		Descending: that.descending,
	}
}

func (that *GameController) notify() {
	if len(that.listeners) == 0 {
		return
	}

	for _, listener := range that.listeners {
		listener(that.State())
	}
}
