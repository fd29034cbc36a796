package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/internal/tui"
)

// RunApp - runs the game in the current terminal until the player quits.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return fmt.Errorf("%w: the game needs an interactive terminal", apperror.ErrNotTerminal)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	controller := tictactoe.NewGameController(logger, conf.Display.Descending)
	controller.Subscribe(stateLogger(log))

	options := []tea.ProgramOption{tea.WithContext(ctx)}
	if !conf.Display.Inline {
		options = append(options, tea.WithAltScreen())
	}

	log.Info("Starting game", "descending", conf.Display.Descending, "zero_based", conf.Display.ZeroBased)

	model := tui.New(controller, tui.Options{ZeroBased: conf.Display.ZeroBased})
	if _, err := tea.NewProgram(model, options...).Run(); err != nil {
		if isInterrupt(err) {
			log.Info("Game interrupted")
			return nil
		}

		return fmt.Errorf("game UI failed: %w", err)
	}

	log.Info("Game closed", "moves", len(controller.MoveList())-1, "status", controller.Status().String())

	return nil
}

// stateLogger records every state change published by the controller.
func stateLogger(log *slog.Logger) tictactoe.Listener {
	return func(state tictactoe.GameState) {
		attrs := []any{
			"step", state.Step,
			"moves", len(state.History) - 1,
			"descending", state.Descending,
		}

		if location := state.Locations[state.Step]; location != nil {
			attrs = append(attrs, "row", location.Row, "col", location.Col)
		}

		if winner := tictactoe.Evaluate(state.History[state.Step]); winner != nil {
			attrs = append(attrs, "winner", string(winner.Mark), "line", winner.Line)
		}

		log.Info("game state changed", attrs...)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// isInterrupt reports whether the program stopped because of ctrl+c or a signal.
// On SIGINT bubbletea may return either error depending on which path wins.
// A recovered panic is also wrapped as ErrProgramKilled and is not an interrupt.
func isInterrupt(err error) bool {
	if errors.Is(err, tea.ErrProgramPanic) {
		return false
	}

	return errors.Is(err, tea.ErrInterrupted) || errors.Is(err, tea.ErrProgramKilled)
}
