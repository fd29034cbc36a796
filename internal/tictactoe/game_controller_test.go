package tictactoe

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

func newTestController(t *testing.T) *GameController {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return NewGameController(logger, false)
}

func placeAll(t *testing.T, controller *GameController, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		require.True(t, controller.PlaceMark(cell), "cell %d", cell)
	}
}

func TestNewGameController(t *testing.T) {
	// When: a new controller is created
	controller := newTestController(t)

	// Then: history holds only the empty board and X moves first
	state := controller.State()
	assert.Equal(t, []entity.Board{{}}, state.History)
	assert.Equal(t, []*entity.Location{nil}, state.Locations)
	assert.Equal(t, 0, state.Step)
	assert.Equal(t, 0, state.ActiveMove)
	assert.False(t, state.Descending)
	assert.Equal(t, entity.Status{State: entity.StateInProgress, Next: entity.PlayerX}, controller.Status())
}

func TestGameController_PlaceMark(t *testing.T) {
	t.Run("First mark is X and O moves next", func(t *testing.T) {
		// Given: a new game
		controller := newTestController(t)

		// When: placing at cell 0
		placed := controller.PlaceMark(0)

		// Then: history[1][0] is X and the game waits for O
		require.True(t, placed)
		state := controller.State()
		require.Len(t, state.History, 2)
		assert.Equal(t, entity.PlayerX, state.History[1][0])
		assert.Equal(t, &entity.Location{Row: 0, Col: 0}, state.Locations[1])
		assert.Equal(t, entity.Status{State: entity.StateInProgress, Next: entity.PlayerO}, controller.Status())
	})

	t.Run("Marks alternate and each board differs by one cell", func(t *testing.T) {
		// Given: a new game
		controller := newTestController(t)

		// When: placing five marks
		placeAll(t, controller, 4, 0, 8, 2, 1)

		// Then: each step adds exactly one mark of the expected player
		state := controller.State()
		require.Len(t, state.History, 6)
		assert.Equal(t, len(state.History)-1, state.Step)
		assert.Equal(t, entity.Board{}, state.History[0])

		for k := 1; k < len(state.History); k++ {
			diff := 0
			for i := range state.History[k] {
				if state.History[k][i] != state.History[k-1][i] {
					diff++
					assert.Equal(t, entity.EmptyCell, state.History[k-1][i])
					expected := entity.PlayerX
					if k%2 == 0 {
						expected = entity.PlayerO
					}
					assert.Equal(t, expected, state.History[k][i])
				}
			}
			assert.Equal(t, 1, diff, "step %d", k)
		}
	})

	t.Run("Same cell twice is ignored", func(t *testing.T) {
		// Given: a game with X at cell 0
		controller := newTestController(t)
		placeAll(t, controller, 0)
		before := controller.State()

		// When: placing at cell 0 again
		placed := controller.PlaceMark(0)

		// Then: nothing changes
		assert.False(t, placed)
		assert.Equal(t, before, controller.State())
		assert.Len(t, controller.State().History, 2)
	})

	t.Run("Placement after a win is ignored", func(t *testing.T) {
		// Given: X has won on the top row
		controller := newTestController(t)
		placeAll(t, controller, 0, 4, 1, 5, 2)
		before := controller.State()

		// When: O tries to place at cell 8
		placed := controller.PlaceMark(8)

		// Then: nothing changes
		assert.False(t, placed)
		assert.Equal(t, before, controller.State())
	})

	t.Run("Out of range cells are ignored", func(t *testing.T) {
		controller := newTestController(t)

		assert.False(t, controller.PlaceMark(-1))
		assert.False(t, controller.PlaceMark(9))
		assert.Len(t, controller.State().History, 1)
	})

	t.Run("Placing after a jump discards the abandoned future", func(t *testing.T) {
		// Given: two moves were made and the player jumped back to the start
		controller := newTestController(t)
		placeAll(t, controller, 0, 1)
		require.NoError(t, controller.JumpTo(0))

		// When: placing at cell 3
		placed := controller.PlaceMark(3)

		// Then: history is rebuilt from the start with X at cell 3
		require.True(t, placed)
		state := controller.State()
		require.Len(t, state.History, 2)
		assert.Equal(t, entity.PlayerX, state.History[1][3])
		assert.Equal(t, entity.EmptyCell, state.History[1][0])
		assert.Equal(t, &entity.Location{Row: 1, Col: 0}, state.Locations[1])
		assert.Equal(t, 1, state.Step)
		assert.Equal(t, 1, state.ActiveMove)
	})

	t.Run("Branching from a middle step keeps the earlier moves", func(t *testing.T) {
		// Given: four moves and a jump back to step 2
		controller := newTestController(t)
		placeAll(t, controller, 0, 1, 2, 3)
		require.NoError(t, controller.JumpTo(2))

		// When: X places at cell 8
		require.True(t, controller.PlaceMark(8))

		// Then: steps 0..2 survive and step 3 is the new move
		state := controller.State()
		require.Len(t, state.History, 4)
		assert.Equal(t, entity.Board{x, o, e, e, e, e, e, e, e}, state.History[2])
		assert.Equal(t, entity.Board{x, o, e, e, e, e, e, e, x}, state.History[3])
		assert.Len(t, state.Locations, 4)
	})
}

func TestGameController_CheckPlacement(t *testing.T) {
	t.Run("Reports occupied cells", func(t *testing.T) {
		controller := newTestController(t)
		placeAll(t, controller, 4)

		err := controller.CheckPlacement(4)

		assert.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Reports finished games", func(t *testing.T) {
		controller := newTestController(t)
		placeAll(t, controller, 0, 4, 1, 5, 2)

		err := controller.CheckPlacement(8)

		assert.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Contains(t, err.Error(), "cell 8")
	})

	t.Run("Reports invalid cells", func(t *testing.T) {
		controller := newTestController(t)

		assert.ErrorIs(t, controller.CheckPlacement(20), apperror.ErrInvalidCell)
		assert.ErrorIs(t, controller.CheckPlacement(-1), apperror.ErrInvalidCell)
	})

	t.Run("Accepts empty cells", func(t *testing.T) {
		controller := newTestController(t)

		assert.NoError(t, controller.CheckPlacement(0))
	})
}

func TestGameController_JumpTo(t *testing.T) {
	t.Run("Moves the displayed step without touching history", func(t *testing.T) {
		// Given: three moves
		controller := newTestController(t)
		placeAll(t, controller, 0, 4, 8)
		history := controller.State().History

		// When: jumping to step 1
		err := controller.JumpTo(1)

		// Then: the board after move 1 is displayed and O is next
		require.NoError(t, err)
		assert.Equal(t, 1, controller.CurrentStep())
		assert.Equal(t, 1, controller.ActiveMove())
		assert.Equal(t, history, controller.State().History)
		assert.Equal(t, entity.Board{x, e, e, e, e, e, e, e, e}, controller.Current())
		assert.Equal(t, entity.PlayerO, controller.NextMark())
	})

	t.Run("Navigation is allowed after a win", func(t *testing.T) {
		// Given: X has won
		controller := newTestController(t)
		placeAll(t, controller, 0, 4, 1, 5, 2)

		// When: jumping back to step 3
		err := controller.JumpTo(3)

		// Then: the game is in progress again at that step
		require.NoError(t, err)
		assert.Equal(t, entity.Status{State: entity.StateInProgress, Next: entity.PlayerO}, controller.Status())
	})

	t.Run("Out of range steps are rejected", func(t *testing.T) {
		// Given: one move
		controller := newTestController(t)
		placeAll(t, controller, 0)
		before := controller.State()

		// When: jumping outside history
		errHigh := controller.JumpTo(2)
		errLow := controller.JumpTo(-1)

		// Then: both fail and the state is unchanged
		assert.ErrorIs(t, errHigh, apperror.ErrInvalidStep)
		assert.ErrorIs(t, errLow, apperror.ErrInvalidStep)
		assert.Equal(t, before, controller.State())
	})
}

func TestGameController_Status(t *testing.T) {
	t.Run("Winner X on the top row", func(t *testing.T) {
		// Given: X at 0, 1, 2 and O at 4, 5
		controller := newTestController(t)
		placeAll(t, controller, 0, 4, 1, 5, 2)

		// When: reading the status
		status := controller.Status()

		// Then: X wins with line 0, 1, 2
		require.Equal(t, entity.StateWon, status.State)
		assert.Equal(t, &entity.WinResult{Mark: entity.PlayerX, Line: [3]int{0, 1, 2}}, status.Winner)
		assert.True(t, status.IsFinished())
	})

	t.Run("Draw after nine moves without a line", func(t *testing.T) {
		// Given: nine moves ending in X O X / X O O / O X X
		controller := newTestController(t)
		placeAll(t, controller, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// When: reading the status
		status := controller.Status()

		// Then: the game is drawn and the final board is full
		assert.Equal(t, entity.Status{State: entity.StateDraw}, status)
		assert.True(t, IsFull(controller.Current()))
		assert.Equal(t, entity.Board{x, o, x, x, o, o, o, x, x}, controller.Current())
		assert.False(t, controller.PlaceMark(0))
	})

	t.Run("Win on the ninth move is not a draw", func(t *testing.T) {
		// Given: X completes the main diagonal with the last move
		controller := newTestController(t)
		placeAll(t, controller, 0, 1, 2, 5, 3, 6, 4, 7, 8)

		// When: reading the status
		status := controller.Status()

		// Then: X wins
		require.Equal(t, entity.StateWon, status.State)
		assert.Equal(t, entity.PlayerX, status.Winner.Mark)
	})
}

func TestGameController_ToggleOrder(t *testing.T) {
	t.Run("Descending list reverses the steps", func(t *testing.T) {
		// Given: two moves
		controller := newTestController(t)
		placeAll(t, controller, 0, 5)

		// When: toggling the order
		controller.ToggleOrder()

		// Then: the newest move comes first
		moves := controller.MoveList()
		require.Len(t, moves, 3)
		assert.Equal(t, 2, moves[0].Step)
		assert.Equal(t, 0, moves[2].Step)
		assert.True(t, controller.Descending())
	})

	t.Run("Toggling twice restores the list", func(t *testing.T) {
		// Given: three moves and the ascending list
		controller := newTestController(t)
		placeAll(t, controller, 0, 5, 7)
		before := controller.MoveList()

		// When: toggling twice
		controller.ToggleOrder()
		controller.ToggleOrder()

		// Then: order and list are back to the original
		assert.False(t, controller.Descending())
		assert.Equal(t, before, controller.MoveList())
	})

	t.Run("Order does not affect placement", func(t *testing.T) {
		controller := newTestController(t)
		controller.ToggleOrder()

		require.True(t, controller.PlaceMark(0))
		assert.Equal(t, entity.PlayerO, controller.NextMark())
	})
}

func TestGameController_MoveList(t *testing.T) {
	// Given: two moves and a jump back to step 1
	controller := newTestController(t)
	placeAll(t, controller, 4, 6)
	require.NoError(t, controller.JumpTo(1))

	// When: reading the move list
	moves := controller.MoveList()

	// Then: step 0 has no location and step 1 is active
	expected := []entity.MoveEntry{
		{Step: 0, Active: false, Location: nil},
		{Step: 1, Active: true, Location: &entity.Location{Row: 1, Col: 1}},
		{Step: 2, Active: false, Location: &entity.Location{Row: 2, Col: 0}},
	}
	assert.Equal(t, expected, moves)
}

func TestGameController_Subscribe(t *testing.T) {
	// Given: a controller with a recording listener
	controller := newTestController(t)

	var states []GameState
	controller.Subscribe(func(state GameState) {
		states = append(states, state)
	})

	// When: mixing successful calls and ignored ones
	placeAll(t, controller, 0)
	controller.PlaceMark(0)
	require.NoError(t, controller.JumpTo(0))
	require.Error(t, controller.JumpTo(5))
	controller.ToggleOrder()

	// Then: only the three successful mutations were published
	require.Len(t, states, 3)
	assert.Equal(t, 1, states[0].Step)
	assert.Equal(t, 0, states[1].Step)
	assert.True(t, states[2].Descending)

	// Then: published states are copies
	states[0].History[1][0] = entity.PlayerO
	assert.Equal(t, entity.PlayerX, controller.State().History[1][0])
}

func TestGameController_SubscribeIsolatesListeners(t *testing.T) {
	// Given: two listeners where the first one scribbles over its state
	controller := newTestController(t)

	var seen []entity.Mark
	controller.Subscribe(func(state GameState) {
		state.History[1][0] = entity.PlayerO
		state.Locations[1].Row = 2
	})
	controller.Subscribe(func(state GameState) {
		seen = append(seen, state.History[1][0])
		assert.Equal(t, 0, state.Locations[1].Row)
	})

	// When: X places at cell 0
	require.True(t, controller.PlaceMark(0))

	// Then: the second listener still sees the real move
	assert.Equal(t, []entity.Mark{entity.PlayerX}, seen)
	assert.Equal(t, entity.PlayerX, controller.Current()[0])
}
