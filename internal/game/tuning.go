package game

import (
	"fmt"
	"time"
)

type Tier uint8

const (
	TierLow Tier = iota
	TierMid
	TierHigh
)

var tierNames = [...]string{"low", "mid", "high"}

func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return "unknown"
}

func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTier accepts the names returned by Tier.String.
func ParseTier(s string) (Tier, error) {
	for i, n := range tierNames {
		if n == s {
			return Tier(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// TierTuning is the difficulty curve for one tier.
type TierTuning struct {
	SpeedMultiplier       float64 `yaml:"speed_multiplier" json:"speedMultiplier"`
	IntentionalBallChance float64 `yaml:"intentional_ball_chance" json:"intentionalBallChance"`
	OpponentBase          int     `yaml:"opponent_base" json:"opponentBase"`
	Deficit               int     `yaml:"deficit" json:"deficit"`
}

// Tuning holds every knob the session reads. Durations are converted to
// ticks at PhysicsRate.
type Tuning struct {
	PitchDelayMin   time.Duration `yaml:"pitch_delay_min"`
	PitchDelayMax   time.Duration `yaml:"pitch_delay_max"`
	RoundTransition time.Duration `yaml:"round_transition"`
	Tiers           [3]TierTuning `yaml:"tiers"`
}

func DefaultTuning() Tuning {
	return Tuning{
		PitchDelayMin:   2 * time.Second,
		PitchDelayMax:   4 * time.Second,
		RoundTransition: 3 * time.Second,
		Tiers: [3]TierTuning{
			{SpeedMultiplier: 1.0, IntentionalBallChance: 0.15, OpponentBase: 2, Deficit: 2},
			{SpeedMultiplier: 1.15, IntentionalBallChance: 0.22, OpponentBase: 7, Deficit: 3},
			{SpeedMultiplier: 1.3, IntentionalBallChance: 0.30, OpponentBase: 12, Deficit: 4},
		},
	}
}

func (t Tuning) Tier(tier Tier) TierTuning {
	if int(tier) >= len(t.Tiers) {
		return t.Tiers[len(t.Tiers)-1]
	}
	return t.Tiers[tier]
}

// Validate reports the first inconsistent value.
func (t Tuning) Validate() error {
	if t.PitchDelayMin <= 0 || t.PitchDelayMax < t.PitchDelayMin {
		return fmt.Errorf("pitch delay range %v..%v is invalid", t.PitchDelayMin, t.PitchDelayMax)
	}
	if t.RoundTransition < 0 {
		return fmt.Errorf("round transition %v is negative", t.RoundTransition)
	}
	for i, tt := range t.Tiers {
		if tt.SpeedMultiplier <= 0 {
			return fmt.Errorf("tier %s: speed multiplier must be positive", Tier(i))
		}
		if tt.IntentionalBallChance < 0 || tt.IntentionalBallChance > 1 {
			return fmt.Errorf("tier %s: intentional ball chance %v out of [0,1]", Tier(i), tt.IntentionalBallChance)
		}
		if tt.Deficit < 1 {
			return fmt.Errorf("tier %s: deficit must be at least 1", Tier(i))
		}
		if tt.OpponentBase+1-tt.Deficit < 0 {
			return fmt.Errorf("tier %s: deficit exceeds round 1 opponent score", Tier(i))
		}
		// A new tier opens above the score the previous tier ended on.
		if i > 0 && tt.OpponentBase+1 <= t.Tiers[i-1].OpponentBase+MaxRounds {
			return fmt.Errorf("tier %s: round 1 opponent score %d does not exceed tier %s final %d",
				Tier(i), tt.OpponentBase+1, Tier(i-1), t.Tiers[i-1].OpponentBase+MaxRounds)
		}
	}
	return nil
}

func ticks(d time.Duration) int {
	n := int(d * PhysicsRate / time.Second)
	if n < 1 {
		n = 1
	}
	return n
}
