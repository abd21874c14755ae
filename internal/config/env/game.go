package env

import (
	"os"
	"strconv"

	"github.com/igtm/baseball/internal/config"
)

const (
	tuningFileEnvName = "TUNING_FILE"
	debugEnvName      = "DEBUG"

	defaultTuningFile = "tuning.yaml"
)

type gameConfig struct {
	tuningFile string
	debug      bool
}

func NewGameConfig() config.GameConfig {
	cfg := &gameConfig{tuningFile: os.Getenv(tuningFileEnvName)}
	if cfg.tuningFile == "" {
		cfg.tuningFile = defaultTuningFile
	}
	// Any non-empty value turns debug logs on, except an explicit false.
	if v := os.Getenv(debugEnvName); v != "" {
		on, err := strconv.ParseBool(v)
		cfg.debug = err != nil || on
	}
	return cfg
}

func (cfg *gameConfig) TuningFile() string {
	return cfg.tuningFile
}

// Debug enables per-pitch and per-swing session logs.
func (cfg *gameConfig) Debug() bool {
	return cfg.debug
}
