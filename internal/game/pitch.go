package game

import (
	"math"
	"math/rand"
)

type PitchType uint8

const (
	PitchStraight PitchType = iota
	PitchFastball
	PitchChangeup
	PitchSplitter
	PitchGyroball
	PitchKnuckleball
	PitchSlider
	PitchCutter
	PitchCurveball
	PitchScrewball
	PitchVanishing
	PitchPhantom
	numPitchTypes
)

// BreakProfile shapes the horizontal displacement of a breaking pitch.
type BreakProfile uint8

const (
	BreakAuto     BreakProfile = iota // Strong or Moderate depending on |Vel.X|
	BreakSharp                        // p³, late
	BreakStrong                       // p²
	BreakModerate                     // sin(pπ), bows out and back
)

// Motion is the per-type trajectory rule. The concrete variants below are
// the only implementations; StepPitch switches over them exhaustively.
type Motion interface {
	motionKind() string
}

type LinearMotion struct{}

type DecelerateMotion struct {
	Threshold float64 // progress at which vertical speed steps down
	Fraction  float64 // of the initial vertical speed
}

type AccelerateMotion struct {
	Multiple float64 // vertical speed at p = 1, relative to the initial one
}

type OscillateMotion struct {
	Frequency float64 // full wobbles over the flight
	Amplitude float64
}

type BreakMotion struct {
	Profile  BreakProfile
	Distance float64
}

type VanishMotion struct {
	From, To float64
}

type StopMotion struct {
	From, To float64
	Ticks    int
}

func (LinearMotion) motionKind() string     { return "linear" }
func (DecelerateMotion) motionKind() string { return "decelerate" }
func (AccelerateMotion) motionKind() string { return "accelerate" }
func (OscillateMotion) motionKind() string  { return "oscillate" }
func (BreakMotion) motionKind() string      { return "break" }
func (VanishMotion) motionKind() string     { return "vanish" }
func (StopMotion) motionKind() string       { return "stop" }

// PitchInfo is one catalog row.
type PitchInfo struct {
	Type      PitchType `json:"-"`
	Name      string    `json:"name"`
	Kind      string    `json:"motion"`
	BaseSpeed float64   `json:"baseSpeed"`
	MinTier   Tier      `json:"-"`
	TierName  string    `json:"minTier"`
	MinRound  int       `json:"minRound"`
	Motion    Motion    `json:"-"`
}

var catalog = [numPitchTypes]PitchInfo{
	{Type: PitchStraight, Name: "straight", BaseSpeed: 7.8, MinTier: TierLow, MinRound: 1, Motion: LinearMotion{}},
	{Type: PitchFastball, Name: "fastball", BaseSpeed: 10.5, MinTier: TierLow, MinRound: 3, Motion: LinearMotion{}},
	{Type: PitchChangeup, Name: "changeup", BaseSpeed: 9.0, MinTier: TierLow, MinRound: 1, Motion: DecelerateMotion{Threshold: 0.25, Fraction: 0.5}},
	{Type: PitchSplitter, Name: "splitter", BaseSpeed: 9.5, MinTier: TierMid, MinRound: 1, Motion: DecelerateMotion{Threshold: 0.5, Fraction: 0.4}},
	{Type: PitchGyroball, Name: "gyroball", BaseSpeed: 4.0, MinTier: TierMid, MinRound: 1, Motion: AccelerateMotion{Multiple: 5}},
	{Type: PitchKnuckleball, Name: "knuckleball", BaseSpeed: 7.0, MinTier: TierLow, MinRound: 2, Motion: OscillateMotion{Frequency: 3, Amplitude: 14}},
	{Type: PitchSlider, Name: "slider", BaseSpeed: 8.5, MinTier: TierLow, MinRound: 2, Motion: BreakMotion{Profile: BreakSharp, Distance: 40}},
	{Type: PitchCutter, Name: "cutter", BaseSpeed: 9.5, MinTier: TierMid, MinRound: 3, Motion: BreakMotion{Profile: BreakSharp, Distance: 22}},
	{Type: PitchCurveball, Name: "curveball", BaseSpeed: 7.5, MinTier: TierLow, MinRound: 4, Motion: BreakMotion{Profile: BreakAuto, Distance: 36}},
	{Type: PitchScrewball, Name: "screwball", BaseSpeed: 8.0, MinTier: TierMid, MinRound: 2, Motion: BreakMotion{Profile: BreakAuto, Distance: 30}},
	{Type: PitchVanishing, Name: "vanishing", BaseSpeed: 8.5, MinTier: TierHigh, MinRound: 1, Motion: VanishMotion{From: 0.4, To: 0.7}},
	{Type: PitchPhantom, Name: "phantom", BaseSpeed: 9.0, MinTier: TierHigh, MinRound: 1, Motion: StopMotion{From: 0.25, To: 0.35, Ticks: 20}},
}

func (t PitchType) String() string {
	if t < numPitchTypes {
		return catalog[t].Name
	}
	return "unknown"
}

func (t PitchType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Catalog returns a copy of every pitch definition.
func Catalog() []PitchInfo {
	out := make([]PitchInfo, len(catalog))
	for i, info := range catalog {
		info.Kind = info.Motion.motionKind()
		info.TierName = info.MinTier.String()
		out[i] = info
	}
	return out
}

// EligiblePitches lists the pitch types unlocked at tier/round.
func EligiblePitches(tier Tier, round int) []PitchType {
	var out []PitchType
	for _, info := range catalog {
		if tier > info.MinTier || (tier == info.MinTier && round >= info.MinRound) {
			out = append(out, info.Type)
		}
	}
	return out
}

type PitchSpec struct {
	ID       uint64    `json:"id"`
	Type     PitchType `json:"type"`
	Start    Vec2      `json:"-"`
	Target   Vec2      `json:"-"` // aim point on the judgement plane
	Pos      Vec2      `json:"pos"`
	Vel      Vec2      `json:"-"` // initial per-tick velocity
	Progress float64   `json:"progress"`
	Visible  bool      `json:"visible"`
	Ball     bool      `json:"-"` // thrown intentionally outside the zone

	Motion    Motion `json:"-"`
	StopTimer int    `json:"-"`
	StopDone  bool   `json:"-"`
}

// NewPitch builds the next pitch for tier/round. The caller guarantees no
// pitch or batted ball is in flight.
func NewPitch(id uint64, tier Tier, round int, tun TierTuning, rng *rand.Rand) *PitchSpec {
	eligible := EligiblePitches(tier, round)
	typ := eligible[rng.Intn(len(eligible))]
	return newPitchOfType(id, typ, tun, rng)
}

func newPitchOfType(id uint64, typ PitchType, tun TierTuning, rng *rand.Rand) *PitchSpec {
	info := catalog[typ]

	intentional := rng.Float64() < tun.IntentionalBallChance
	var offset float64
	if intentional {
		offset = PlateHalfWidth + 12 + rng.Float64()*24
		if rng.Intn(2) == 0 {
			offset = -offset
		}
	} else {
		offset = (rng.Float64()*2 - 1) * StrikeBand
	}
	return aimPitch(id, typ, info.Motion, info.BaseSpeed*tun.SpeedMultiplier, offset, intentional)
}

// aimPitch solves the horizontal velocity so the straight line through the
// aim offset at the plate carries on to the judgement plane.
func aimPitch(id uint64, typ PitchType, m Motion, vy, plateOffset float64, intentional bool) *PitchSpec {
	start := Vec2{ReleaseX, ReleaseY}
	planeOffset := plateOffset * (JudgeY - ReleaseY) / (HomeY - ReleaseY)
	target := Vec2{HomeX + planeOffset, JudgeY}
	vx := (target.X - start.X) * vy / (target.Y - start.Y)

	return &PitchSpec{
		ID:      id,
		Type:    typ,
		Start:   start,
		Target:  target,
		Pos:     start,
		Vel:     Vec2{vx, vy},
		Visible: true,
		Ball:    intentional,
		Motion:  m,
	}
}

// breakSign is the side a breaking pitch moves toward.
func breakSign(vx float64) float64 {
	return math.Copysign(1, vx)
}
