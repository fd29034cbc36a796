package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string          `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	LogFile     string          `yaml:"log-file" env:"TICTACTOE_LOG_FILE" env-default:"tictactoe.log"`
	LogRotation LogFileRotation `yaml:"log-rotation"`
	Display     Display         `yaml:"display"`
}

// LogFileRotation sizes are in megabytes, ages in days.
type LogFileRotation struct {
	MaxSize    int `yaml:"max-size" env:"TICTACTOE_LOG_MAX_SIZE" env-default:"1"`
	MaxBackups int `yaml:"max-backups" env:"TICTACTOE_LOG_MAX_BACKUPS" env-default:"2"`
	MaxAge     int `yaml:"max-age" env:"TICTACTOE_LOG_MAX_AGE" env-default:"30"`
}

// Display flags default to false; cleanenv applies env-default to zero values.
type Display struct {
	Descending bool `yaml:"descending" env:"TICTACTOE_DESCENDING"`
	ZeroBased  bool `yaml:"zero-based" env:"TICTACTOE_ZERO_BASED"`
	Inline     bool `yaml:"inline" env:"TICTACTOE_INLINE"`
}

// MustLoad - load configuration from the yml file at path, falling back to
// environment variables and defaults when the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("could not read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	return config, nil
}
