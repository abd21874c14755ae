package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Load reads KEY=VALUE pairs from path into the process environment.
// Variables already set in the environment win.
func Load(path string) error {
	return godotenv.Load(path)
}

type HTTPConfig interface {
	Address() string
	StaticDir() string
	OriginPatterns() []string
	CORSOrigins() []string
}

type GameConfig interface {
	TuningFile() string
	Debug() bool
}

type LimitsConfig interface {
	MaxSessions() int
	MaxSessionsPerIP() int
	InputRate() int
	InputWindow() time.Duration
}
