package game

import "math"

// Field geometry & timing constants
const (
	PhysicsRate  = 50
	SnapshotRate = 60
	ProgressStep = 0.02 // baseline pitch: 50 ticks from release to the judgement plane

	FieldWidth  = 800.0
	FieldHeight = 600.0

	ReleaseX = 400.0
	ReleaseY = 150.0

	HomeX          = 400.0
	HomeY          = 520.0
	PlateHalfWidth = 24.0
	JudgeY         = 545.0 // judgement plane, past the plate

	// Swing window in front of the plate
	HitZoneTop    = 480.0
	HitZoneBottom = 535.0
	HitTolerance  = 30.0

	MaxContactAngle = 75.0 // degrees either side of straight-away
	ContactJitter   = 4.0
	MinHitSpeed     = 8.0
	MaxHitSpeed     = 14.0

	FenceRadius   = 360.0
	MinFenceReach = FenceRadius * 0.9
	FoulDistance  = 60.0
	FairHalfAngle = 45.0

	StrikeBand    = 16.0 // aim spread for pitches in the zone
	StrongBreakVX = 0.6

	MaxBalls   = 4
	MaxStrikes = 3
	MaxOuts    = 3
	Innings    = 9
	MaxRounds  = 5

	ResolveHoldTicks = PhysicsRate / 2
	MessageTicks     = PhysicsRate * 3 / 2
)

type Phase uint8

const (
	PhaseTitle Phase = iota
	PhasePlaying
	PhaseRoundWon
	PhaseGameOver
	PhaseVictory
)

var phaseNames = [...]string{"title", "playing", "round_won", "game_over", "victory"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// AtBatPhase is the plate-appearance sub-state while PhasePlaying.
type AtBatPhase uint8

const (
	AwaitingPitch AtBatPhase = iota
	PitchInFlight
	BallInFlight
	Resolving
)

var atBatPhaseNames = [...]string{"awaiting_pitch", "pitch_in_flight", "ball_in_flight", "resolving"}

func (p AtBatPhase) String() string {
	if int(p) < len(atBatPhaseNames) {
		return atBatPhaseNames[p]
	}
	return "unknown"
}

func (p AtBatPhase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Polar returns the angle in degrees from straight-away (negative = left
// field) and the distance of v measured from origin.
func (v Vec2) Polar(origin Vec2) (angle, dist float64) {
	dx := v.X - origin.X
	dy := origin.Y - v.Y // up-field is positive
	dist = math.Hypot(dx, dy)
	angle = math.Atan2(dx, dy) * 180 / math.Pi
	return angle, dist
}

type Count struct {
	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`
}

// Bases holds runner occupancy: first, second, third.
type Bases [3]bool

func (b Bases) Runners() int {
	n := 0
	for _, on := range b {
		if on {
			n++
		}
	}
	return n
}

// timer is a tick countdown armed in a given epoch. A timer whose epoch no
// longer matches the state's epoch was armed before a reset and is ignored.
type timer struct {
	Ticks int    `json:"ticks"`
	Epoch uint64 `json:"epoch"`
	Armed bool   `json:"armed"`
}

func (t *timer) arm(ticks int, epoch uint64) {
	t.Ticks = ticks
	t.Epoch = epoch
	t.Armed = true
}

func (t *timer) cancel() { *t = timer{} }

// fire counts the timer down and reports whether it expired this tick.
func (t *timer) fire(epoch uint64) bool {
	if !t.Armed {
		return false
	}
	if t.Epoch != epoch {
		t.cancel()
		return false
	}
	t.Ticks--
	if t.Ticks > 0 {
		return false
	}
	t.cancel()
	return true
}

// GameState is the whole session-owned simulation state. Step treats it as a
// value; Pitch and Ball are cloned before mutation.
type GameState struct {
	Tick  uint64     `json:"tick"`
	Epoch uint64     `json:"epoch"`
	Phase Phase      `json:"phase"`
	AtBat AtBat      `json:"atBat"`
	Tour  Tournament `json:"tournament"`
	Board Scoreboard `json:"scoreboard"`

	Pitch *PitchSpec  `json:"pitch,omitempty"`
	Ball  *BattedBall `json:"ball,omitempty"`

	NextID           uint64 `json:"-"`
	LastJudgedPitch  uint64 `json:"-"`
	LastResolvedBall uint64 `json:"-"`

	PitchTimer   timer `json:"-"`
	ResolveTimer timer `json:"-"`
	RoundTimer   timer `json:"-"`

	Message      string `json:"message"`
	MessageTicks int    `json:"-"`
}

func (s *GameState) newID() uint64 {
	s.NextID++
	return s.NextID
}

func (s *GameState) say(msg string) {
	s.Message = msg
	s.MessageTicks = MessageTicks
}

// clone returns a copy that shares no mutable memory with s.
func (s GameState) clone() GameState {
	if s.Pitch != nil {
		p := *s.Pitch
		s.Pitch = &p
	}
	if s.Ball != nil {
		b := *s.Ball
		s.Ball = &b
	}
	return s
}
