package game

import (
	"log"
	"math/rand"
)

// Session owns one game: its state, random sources and tuning. It is not
// safe for concurrent use; Room drives it from a single goroutine.
type Session struct {
	ID    string
	state GameState
	env   Env
	debug bool
}

// NewSession builds a title-screen session. debug adds per-pitch and
// per-swing log lines.
func NewSession(id, team string, tun Tuning, seed int64, debug bool) *Session {
	return &Session{
		ID:    id,
		state: GameState{Phase: PhaseTitle},
		env: Env{
			Tuning:   tun,
			Rng:      rand.New(rand.NewSource(seed)),
			Cosmetic: rand.New(rand.NewSource(seed ^ 0x5eed)),
			Team:     team,
		},
		debug: debug,
	}
}

// Tick advances the session by one physics tick.
func (s *Session) Tick(in TickInput) []Event {
	if in.Control != ControlNone {
		log.Printf("SESSION: %s control=%s tier=%s", s.ID, in.Control, in.Tier)
	}
	next, evs := Step(s.state, in, s.env)
	s.state = next
	for _, e := range evs {
		s.logEvent(e)
	}
	return evs
}

func (s *Session) logEvent(e Event) {
	st := &s.state
	switch e.Kind {
	case EvPitchReleased:
		if s.debug {
			log.Printf("PITCH: %s #%d %s", s.ID, e.ID, e.Pitch)
		}
	case EvContact, EvMiss:
		if s.debug {
			log.Printf("SWING: %s #%d %s (%s)", s.ID, e.ID, e.Kind, e.Pitch)
		}
	case EvHit, EvOut, EvStrikeout, EvWalk:
		log.Printf("RESULT: %s %s %s count=%d-%d outs=%d score=%d-%d bases=%v",
			s.ID, e.Kind, e.Result, st.AtBat.Count.Balls, st.AtBat.Count.Strikes,
			st.AtBat.Outs, st.AtBat.PlayerScore, st.AtBat.OpponentScore, st.AtBat.Bases)
	case EvRoundStart, EvRoundWon, EvTierAdvanced:
		log.Printf("ROUND: %s %s tier=%s round=%d", s.ID, e.Kind, e.Tier, e.Round)
	case EvVictory, EvGameOver:
		log.Printf("FINAL: %s %s tier=%s round=%d\n%s", s.ID, e.Kind, e.Tier, e.Round, st.Board.LineScore())
	}
}

// State returns a copy of the current state.
func (s *Session) State() GameState {
	return s.state.clone()
}

// Phase is a shortcut for State().Phase.
func (s *Session) Phase() Phase {
	return s.state.Phase
}

type PitchView struct {
	ID       uint64    `json:"id"`
	Type     PitchType `json:"type"`
	X        float32   `json:"x"`
	Y        float32   `json:"y"`
	Visible  bool      `json:"visible"`
	Progress float32   `json:"progress"`
}

type BallView struct {
	ID uint64  `json:"id"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
}

// Snapshot is the read-only view handed to the render consumer.
type Snapshot struct {
	Tick          uint64     `json:"tick"`
	Phase         Phase      `json:"phase"`
	AtBat         AtBatPhase `json:"atBat"`
	Tier          Tier       `json:"tier"`
	Round         int        `json:"round"`
	Pitch         *PitchView `json:"pitch,omitempty"`
	Ball          *BallView  `json:"ball,omitempty"`
	Count         Count      `json:"count"`
	Bases         Bases      `json:"bases"`
	Outs          int        `json:"outs"`
	PlayerScore   int        `json:"playerScore"`
	OpponentScore int        `json:"opponentScore"`
	Message       string     `json:"message"`
	Board         Scoreboard `json:"scoreboard"`
	Won           bool       `json:"won"`
	Lost          bool       `json:"lost"`
	Victory       bool       `json:"victory"`
}

func (s *Session) Snapshot() *Snapshot {
	st := &s.state
	snap := &Snapshot{
		Tick:          st.Tick,
		Phase:         st.Phase,
		AtBat:         st.AtBat.Phase,
		Tier:          st.Tour.Tier,
		Round:         st.Tour.Round,
		Count:         st.AtBat.Count,
		Bases:         st.AtBat.Bases,
		Outs:          st.AtBat.Outs,
		PlayerScore:   st.AtBat.PlayerScore,
		OpponentScore: st.AtBat.OpponentScore,
		Message:       st.Message,
		Board:         st.Board,
		Won:           st.Tour.Won,
		Lost:          st.Tour.Lost,
		Victory:       st.Tour.Victory,
	}
	if p := st.Pitch; p != nil {
		snap.Pitch = &PitchView{
			ID:       p.ID,
			Type:     p.Type,
			X:        float32(p.Pos.X),
			Y:        float32(p.Pos.Y),
			Visible:  p.Visible,
			Progress: float32(p.Progress),
		}
	}
	if b := st.Ball; b != nil {
		snap.Ball = &BallView{ID: b.ID, X: float32(b.Pos.X), Y: float32(b.Pos.Y)}
	}
	return snap
}
