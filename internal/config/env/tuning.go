package env

import (
	"errors"
	"fmt"
	"os"

	"github.com/igtm/baseball/internal/game"
	"gopkg.in/yaml.v3"
)

// NewTuningFromYAML layers the YAML file at path over game.DefaultTuning.
// A missing file yields the defaults.
func NewTuningFromYAML(path string) (game.Tuning, error) {
	tun := game.DefaultTuning()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return tun, nil
	}
	if err != nil {
		return game.Tuning{}, fmt.Errorf("read tuning %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &tun); err != nil {
		return game.Tuning{}, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := tun.Validate(); err != nil {
		return game.Tuning{}, fmt.Errorf("tuning %s: %w", path, err)
	}
	return tun, nil
}
