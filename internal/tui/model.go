// Package tui renders the game in a terminal and turns key presses into
// controller calls. The model keeps no game state of its own: it re-reads
// the controller after every call.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type gameController interface {
	CheckPlacement(index int) error
	PlaceMark(index int) bool
	JumpTo(step int) error
	ToggleOrder()

	Current() entity.Board
	Status() entity.Status
	MoveList() []entity.MoveEntry
}

type focus int

const (
	focusBoard focus = iota
	focusMoves
)

type Options struct {
	ZeroBased bool
}

type Model struct {
	game    gameController
	options Options

	keys   keyMap
	help   help.Model
	styles styles

	focus      focus
	cursor     int
	listCursor int
	message    string
}

func New(game gameController, options Options) Model {
	m := Model{
		game:    game,
		options: options,
		keys:    defaultKeys,
		help:    help.New(),
		styles:  newStyles(),
		cursor:  entity.BoardSize / 2,
	}
	m.followActive()

	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.message = ""

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Focus):
			if m.focus == focusBoard {
				m.focus = focusMoves
			} else {
				m.focus = focusBoard
			}

		case key.Matches(msg, m.keys.Order):
			step := m.selectedStep()
			m.game.ToggleOrder()
			m.selectStep(step)

		case key.Matches(msg, m.keys.Place):
			m.place(int(msg.Runes[0] - '1'))

		case key.Matches(msg, m.keys.Select):
			if m.focus == focusBoard {
				m.place(m.cursor)
			} else {
				m.jump(m.selectedStep())
			}

		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-entity.BoardSide, -1)

		case key.Matches(msg, m.keys.Down):
			m.moveCursor(entity.BoardSide, 1)

		case key.Matches(msg, m.keys.Left):
			if m.focus == focusBoard && m.cursor%entity.BoardSide > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Right):
			if m.focus == focusBoard && m.cursor%entity.BoardSide < entity.BoardSide-1 {
				m.cursor++
			}
		}
	}

	return m, nil
}

func (m *Model) moveCursor(boardDelta, listDelta int) {
	if m.focus == focusBoard {
		if next := m.cursor + boardDelta; next >= 0 && next < entity.BoardSize {
			m.cursor = next
		}
		return
	}

	if next := m.listCursor + listDelta; next >= 0 && next < len(m.game.MoveList()) {
		m.listCursor = next
	}
}

func (m *Model) place(index int) {
	if err := m.game.CheckPlacement(index); err != nil {
		m.message = describeRejection(err)
		return
	}

	if m.game.PlaceMark(index) {
		m.cursor = index
		m.followActive()
	}
}

func (m *Model) jump(step int) {
	if err := m.game.JumpTo(step); err != nil {
		m.message = err.Error()
		return
	}

	m.followActive()
}

func (m *Model) selectedStep() int {
	moves := m.game.MoveList()
	if m.listCursor < 0 || m.listCursor >= len(moves) {
		return 0
	}

	return moves[m.listCursor].Step
}

func (m *Model) selectStep(step int) {
	for i, move := range m.game.MoveList() {
		if move.Step == step {
			m.listCursor = i
			return
		}
	}
}

// followActive points the list cursor at the active move.
func (m *Model) followActive() {
	for i, move := range m.game.MoveList() {
		if move.Active {
			m.listCursor = i
			return
		}
	}
}

func describeRejection(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		return "The game is over. Jump back in the move list to play on."
	case errors.Is(err, apperror.ErrCellOccupied):
		return "That cell is already taken."
	default:
		return err.Error()
	}
}

func (m Model) View() string {
	board := lipgloss.JoinVertical(lipgloss.Left,
		m.renderBoard(),
		"",
		m.styles.status.Render(m.game.Status().String()),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.pane.Render(board),
		m.renderMoves(),
	)

	var sb strings.Builder
	sb.WriteString(m.styles.title.Render("Tic-tac-toe"))
	sb.WriteString("\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	if m.message != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.message.Render(m.message))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

func (m Model) renderBoard() string {
	current := m.game.Current()
	winner := m.game.Status().Winner

	separator := m.styles.grid.Render("│")
	divider := m.styles.grid.Render(strings.Repeat("───┼", entity.BoardSide-1) + "───")

	rows := make([]string, 0, entity.BoardSide*2-1)
	for row := 0; row < entity.BoardSide; row++ {
		if row > 0 {
			rows = append(rows, divider)
		}

		cells := make([]string, entity.BoardSide)
		for col := range cells {
			index := row*entity.BoardSide + col
			cells[col] = m.renderCell(index, current[index], winner)
		}
		rows = append(rows, strings.Join(cells, separator))
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderCell(index int, mark entity.Mark, winner *entity.WinResult) string {
	text := " " + string(mark) + " "
	if mark == entity.EmptyCell {
		text = m.styles.dim.Render(fmt.Sprintf(" %d ", index+1))
	}

	style := m.styles.cell
	if winner.Contains(index) {
		style = m.styles.winning
	}
	if m.focus == focusBoard && index == m.cursor {
		style = style.Inherit(m.styles.cursor)
	}

	return style.Render(text)
}

func (m Model) renderMoves() string {
	moves := m.game.MoveList()

	lines := make([]string, 0, len(moves)+1)
	lines = append(lines, m.styles.dim.Render("Moves"))
	for i, move := range moves {
		pointer := "  "
		if m.focus == focusMoves && i == m.listCursor {
			pointer = m.styles.pointer.Render("> ")
		}

		label := move.Label()
		if move.Location != nil {
			label += " " + move.Location.Format(!m.options.ZeroBased)
		}

		style := m.styles.move
		if move.Active {
			style = m.styles.active
		}

		lines = append(lines, pointer+style.Render(label))
	}

	return strings.Join(lines, "\n")
}
