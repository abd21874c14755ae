package game

import (
	"math"
	"math/rand"
)

type Control uint8

const (
	ControlNone Control = iota
	ControlStart
	ControlRestart
	ControlContinue
	ControlDebugTier
)

var controlNames = [...]string{"", "start", "restart", "continue", "debug_tier"}

func (c Control) String() string {
	if int(c) < len(controlNames) {
		return controlNames[c]
	}
	return "unknown"
}

// ParseControl accepts the names returned by Control.String.
func ParseControl(s string) (Control, bool) {
	for i, n := range controlNames {
		if i > 0 && n == s {
			return Control(i), true
		}
	}
	return ControlNone, false
}

// TickInput is everything the input producer delivered since the last tick.
type TickInput struct {
	Swing   bool
	Control Control
	Tier    Tier // for ControlStart and ControlDebugTier
}

// Env carries the non-state collaborators of Step.
type Env struct {
	Tuning   Tuning
	Rng      *rand.Rand // pitches and contact
	Cosmetic *rand.Rand // scoreboard filler only; falls back to Rng
	Team     string
}

// Step applies one physics tick. st is not modified; the returned state and
// the events produced during the tick are.
//
// Order within a tick: session controls, pitch advance, swing judgement,
// judgement plane, batted ball, then timers. Every count, base, score and
// tournament consequence of a judgement is applied before the next stage.
func Step(st GameState, in TickInput, env Env) (GameState, []Event) {
	s := st.clone()
	s.Tick++
	if env.Cosmetic == nil {
		env.Cosmetic = env.Rng
	}
	sc := &scheduler{s: &s, env: env}

	sc.control(in)
	if s.Phase == PhasePlaying {
		sc.advancePitch()
		if in.Swing {
			sc.swing()
		}
		sc.judgePlane()
		sc.advanceBall()
	}
	sc.timers()

	if s.MessageTicks > 0 {
		s.MessageTicks--
		if s.MessageTicks == 0 {
			s.Message = ""
		}
	}
	return s, sc.events
}

type scheduler struct {
	s      *GameState
	env    Env
	events []Event
}

func (sc *scheduler) emit(evs ...Event) {
	for _, e := range evs {
		e.Tick = sc.s.Tick
		if b := e.banner(); b != "" {
			sc.s.say(b)
		}
		sc.events = append(sc.events, e)
	}
}

func (sc *scheduler) control(in TickInput) {
	s := sc.s
	switch in.Control {
	case ControlStart, ControlDebugTier:
		s.Tour = NewTournament(in.Tier)
		sc.resetRound()
	case ControlRestart:
		s.Tour = NewTournament(TierLow)
		sc.resetRound()
	case ControlContinue:
		if s.Phase != PhaseGameOver || !s.Tour.Lost {
			return
		}
		s.Tour.Retry()
		sc.resetRound()
	}
}

// resetRound cancels everything in flight and sets up a fresh half-inning
// for the current tier and round.
func (sc *scheduler) resetRound() {
	s := sc.s
	sc.cancelAll()
	player, opponent := s.Tour.Scores(sc.env.Tuning)
	s.AtBat = NewAtBat(player, opponent)
	s.Board = NewScoreboard(sc.env.Team, OpponentName(s.Tour.Tier, s.Tour.Round), player, opponent, sc.env.Cosmetic)
	s.Phase = PhasePlaying
	sc.armPitch()
	sc.emit(Event{Kind: EvRoundStart, Tier: s.Tour.Tier.String(), Round: s.Tour.Round})
}

func (sc *scheduler) cancelAll() {
	s := sc.s
	s.Epoch++
	s.Pitch = nil
	s.Ball = nil
	s.PitchTimer.cancel()
	s.ResolveTimer.cancel()
	s.RoundTimer.cancel()
}

func (sc *scheduler) armPitch() {
	tun := sc.env.Tuning
	lo, hi := ticks(tun.PitchDelayMin), ticks(tun.PitchDelayMax)
	sc.s.PitchTimer.arm(lo+sc.env.Rng.Intn(hi-lo+1), sc.s.Epoch)
	sc.s.AtBat.Phase = AwaitingPitch
}

func (sc *scheduler) advancePitch() {
	if sc.s.Pitch != nil {
		StepPitch(sc.s.Pitch)
	}
}

func (sc *scheduler) swing() {
	s := sc.s
	p := s.Pitch
	if p == nil || s.Ball != nil || p.ID == s.LastJudgedPitch {
		return
	}
	res := JudgeSwing(p, sc.env.Rng)
	s.LastJudgedPitch = p.ID
	s.Pitch = nil
	if res.Hit {
		s.Ball = NewBattedBall(s.newID(), res.Angle, res.Speed)
		s.AtBat.Phase = BallInFlight
		sc.emit(Event{Kind: EvContact, ID: p.ID, Pitch: p.Type.String()})
		return
	}
	sc.emit(Event{Kind: EvMiss, ID: p.ID, Pitch: p.Type.String()})
	evs, end := s.AtBat.Strike()
	sc.apply(evs, end, p.ID)
}

func (sc *scheduler) judgePlane() {
	p := sc.s.Pitch
	if p == nil || !p.Crossed() {
		return
	}
	sc.judgeLooking(p)
}

// judgeLooking calls an unswung pitch. A pitch id already judged is a no-op.
func (sc *scheduler) judgeLooking(p *PitchSpec) {
	s := sc.s
	if p.ID == s.LastJudgedPitch {
		return
	}
	s.LastJudgedPitch = p.ID
	if s.Pitch != nil && s.Pitch.ID == p.ID {
		s.Pitch = nil
	}
	var evs []Event
	var end InningEnd
	if math.Abs(p.Pos.X-HomeX) <= PlateHalfWidth {
		evs, end = s.AtBat.Strike()
	} else {
		evs, end = s.AtBat.Ball()
	}
	sc.apply(evs, end, p.ID)
}

func (sc *scheduler) advanceBall() {
	b := sc.s.Ball
	if b == nil {
		return
	}
	switch StepBattedBall(b) {
	case FlightFoul:
		sc.resolveBall(b, ResultFoul)
	case FlightLanded:
		sc.resolveBall(b, Classify(b.Pos.X, b.Pos.Y))
	}
}

// resolveBall settles a batted ball once; a ball id already resolved is a
// no-op.
func (sc *scheduler) resolveBall(b *BattedBall, r Result) {
	s := sc.s
	if b.Resolved || b.ID == s.LastResolvedBall {
		return
	}
	s.LastResolvedBall = b.ID
	b.Resolved = true
	if s.Ball != nil && s.Ball.ID == b.ID {
		s.Ball = nil
	}
	if r == ResultFoul {
		sc.apply(s.AtBat.Foul(), InningContinues, b.ID)
		return
	}
	evs, end := s.AtBat.Hit(r)
	sc.apply(evs, end, b.ID)
}

// apply publishes a judgement's events and carries out its half-inning
// consequence.
func (sc *scheduler) apply(evs []Event, end InningEnd, id uint64) {
	s := sc.s
	for i := range evs {
		evs[i].ID = id
	}
	sc.emit(evs...)
	s.Board.Mirror(s.AtBat.PlayerScore)

	switch end {
	case InningWalkOff:
		sc.cancelAll()
		sc.emit(Event{Kind: EvWalkOff, ID: id})
		s.Tour.Win()
		if s.Tour.Victory {
			s.Phase = PhaseVictory
			sc.emit(Event{Kind: EvVictory, Tier: s.Tour.Tier.String(), Round: s.Tour.Round})
			return
		}
		s.Phase = PhaseRoundWon
		s.RoundTimer.arm(ticks(sc.env.Tuning.RoundTransition), s.Epoch)
		sc.emit(Event{Kind: EvRoundWon, Tier: s.Tour.Tier.String(), Round: s.Tour.Round})
	case InningRetired:
		sc.cancelAll()
		s.Tour.Lose()
		s.Phase = PhaseGameOver
		sc.emit(Event{Kind: EvGameOver, Tier: s.Tour.Tier.String(), Round: s.Tour.Round})
	default:
		s.AtBat.Phase = Resolving
		s.ResolveTimer.arm(ResolveHoldTicks, s.Epoch)
	}
}

func (sc *scheduler) timers() {
	s := sc.s
	if s.ResolveTimer.fire(s.Epoch) && s.Phase == PhasePlaying {
		sc.armPitch()
	}
	if s.PitchTimer.fire(s.Epoch) && s.Phase == PhasePlaying && s.Pitch == nil && s.Ball == nil {
		p := NewPitch(s.newID(), s.Tour.Tier, s.Tour.Round, sc.env.Tuning.Tier(s.Tour.Tier), sc.env.Rng)
		s.Pitch = p
		s.AtBat.Phase = PitchInFlight
		sc.emit(Event{Kind: EvPitchReleased, ID: p.ID, Pitch: p.Type.String()})
	}
	if s.RoundTimer.fire(s.Epoch) && s.Phase == PhaseRoundWon {
		if s.Tour.Advance() == AdvanceTier {
			sc.emit(Event{Kind: EvTierAdvanced, Tier: s.Tour.Tier.String(), Round: s.Tour.Round})
		}
		sc.resetRound()
	}
}
