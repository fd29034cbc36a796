package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	app "github.com/rocketscienceinc/tictactoe-history/internal"
	"github.com/rocketscienceinc/tictactoe-history/internal/config"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the game.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "tictactoe",
		Short:        "Pass-and-play tic-tac-toe with move history",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := config.MustLoad(configPath)

			logger, logFile := initLogger(conf)
			defer logFile.Close()

			if err := app.RunApp(cmd.Context(), logger, conf); err != nil {
				logger.Error("app run failed", "error", err)
				return fmt.Errorf("app run failed: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to the config file")

	return cmd
}

func defaultConfigPath() string {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return filepath.Join(baseDir, "./config.yml")
}

// initialize logger. The terminal belongs to the game, so records go to a rotated log file.
func initLogger(conf *config.Config) (*slog.Logger, io.Closer) {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logFile := &lumberjack.Logger{
		Filename:   conf.LogFile,
		MaxSize:    conf.LogRotation.MaxSize,
		MaxBackups: conf.LogRotation.MaxBackups,
		MaxAge:     conf.LogRotation.MaxAge,
	}

	return slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level})), logFile
}
