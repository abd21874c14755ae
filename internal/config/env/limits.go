package env

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/igtm/baseball/internal/config"
)

const (
	maxSessionsEnvName      = "MAX_SESSIONS"
	maxSessionsPerIPEnvName = "MAX_SESSIONS_PER_IP"
	inputRateEnvName        = "INPUT_RATE"
	inputWindowEnvName      = "INPUT_WINDOW"
)

type limitsConfig struct {
	maxSessions      int
	maxSessionsPerIP int
	inputRate        int
	inputWindow      time.Duration
}

func NewLimitsConfig() (config.LimitsConfig, error) {
	cfg := &limitsConfig{
		maxSessions:      100,
		maxSessionsPerIP: 4,
		inputRate:        120,
		inputWindow:      time.Second,
	}

	var err error
	if cfg.maxSessions, err = intEnv(maxSessionsEnvName, cfg.maxSessions); err != nil {
		return nil, err
	}
	if cfg.maxSessionsPerIP, err = intEnv(maxSessionsPerIPEnvName, cfg.maxSessionsPerIP); err != nil {
		return nil, err
	}
	if cfg.inputRate, err = intEnv(inputRateEnvName, cfg.inputRate); err != nil {
		return nil, err
	}
	if v := os.Getenv(inputWindowEnvName); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", inputWindowEnvName, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid %s: must be positive", inputWindowEnvName)
		}
		cfg.inputWindow = d
	}
	return cfg, nil
}

// intEnv reads a positive integer, falling back to def when unset.
func intEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", name)
	}
	return n, nil
}

func (cfg *limitsConfig) MaxSessions() int {
	return cfg.maxSessions
}

func (cfg *limitsConfig) MaxSessionsPerIP() int {
	return cfg.maxSessionsPerIP
}

func (cfg *limitsConfig) InputRate() int {
	return cfg.inputRate
}

func (cfg *limitsConfig) InputWindow() time.Duration {
	return cfg.inputWindow
}
