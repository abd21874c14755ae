package game

import (
	"bytes"
	"log"
	"math/rand"
	"os"
	"strings"
	"testing"
)

func testEnv(seed int64) Env {
	return Env{
		Tuning: DefaultTuning(),
		Rng:    rand.New(rand.NewSource(seed)),
		Team:   "Sluggers",
	}
}

// started returns a state that has just begun tier at round 1, with a
// scheduler bound to it.
func started(t *testing.T, tier Tier) (*GameState, *scheduler) {
	t.Helper()
	st := &GameState{}
	env := testEnv(1)
	env.Cosmetic = env.Rng
	sc := &scheduler{s: st, env: env}
	sc.control(TickInput{Control: ControlStart, Tier: tier})
	if st.Phase != PhasePlaying {
		t.Fatalf("phase after start = %s", st.Phase)
	}
	sc.events = nil
	return st, sc
}

func hasKind(evs []Event, k EventKind) bool {
	for _, e := range evs {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// looking builds a pitch sitting on the judgement plane at x.
func looking(st *GameState, x float64) *PitchSpec {
	p := aimPitch(st.newID(), PitchStraight, LinearMotion{}, 8, 0, false)
	p.Pos = Vec2{x, JudgeY}
	st.Pitch = p
	return p
}

func TestStartSetsUpRound(t *testing.T) {
	st, _ := started(t, TierLow)
	if st.Tour.Round != 1 || st.Tour.Tier != TierLow {
		t.Errorf("tournament = %+v", st.Tour)
	}
	if st.AtBat.PlayerScore != 1 || st.AtBat.OpponentScore != 3 {
		t.Errorf("score = %d-%d, want 1-3", st.AtBat.PlayerScore, st.AtBat.OpponentScore)
	}
	if !st.PitchTimer.Armed || st.AtBat.Phase != AwaitingPitch {
		t.Error("no pitch scheduled")
	}
	if st.Board.Home != "Sluggers" || st.Board.Away != "Pirates" {
		t.Errorf("board teams = %s vs %s", st.Board.Home, st.Board.Away)
	}
}

func TestWalkOffAdvancesRound(t *testing.T) {
	st, sc := started(t, TierLow)
	for i := 0; i < 3; i++ {
		sc.resolveBall(&BattedBall{ID: st.newID()}, ResultHomeRun)
	}
	if !hasKind(sc.events, EvWalkOff) || !hasKind(sc.events, EvRoundWon) {
		t.Fatalf("no walk-off after three homers: %v", kinds(sc.events))
	}
	if st.Phase != PhaseRoundWon || !st.Tour.Won {
		t.Fatalf("phase=%s won=%v", st.Phase, st.Tour.Won)
	}

	env := sc.env
	state := *st
	var all []Event
	for i := 0; i < 1000 && state.Phase != PhasePlaying; i++ {
		var evs []Event
		state, evs = Step(state, TickInput{}, env)
		all = append(all, evs...)
	}
	if state.Phase != PhasePlaying {
		t.Fatal("round transition never fired")
	}
	if !hasKind(all, EvRoundStart) {
		t.Errorf("no round_start in %v", kinds(all))
	}
	if state.Tour.Round != 2 || state.Tour.Won {
		t.Errorf("tournament after transition = %+v", state.Tour)
	}
	ab := state.AtBat
	if ab.PlayerScore != 2 || ab.OpponentScore != 4 {
		t.Errorf("round 2 score = %d-%d, want 2-4", ab.PlayerScore, ab.OpponentScore)
	}
	if ab.Count != (Count{}) || ab.Outs != 0 || ab.Bases != (Bases{}) {
		t.Errorf("half-inning not reset: %+v", ab)
	}
}

func TestSwingingStrikeout(t *testing.T) {
	st, sc := started(t, TierLow)
	st.AtBat.Bases = Bases{true, false, false}

	for i := 0; i < MaxStrikes; i++ {
		// At release the pitch is nowhere near the bat.
		st.Pitch = aimPitch(st.newID(), PitchStraight, LinearMotion{}, 8, 0, false)
		sc.swing()
		if st.Pitch != nil {
			t.Fatal("missed pitch still in flight")
		}
	}
	if !hasKind(sc.events, EvStrikeout) {
		t.Fatalf("no strikeout in %v", kinds(sc.events))
	}
	ab := st.AtBat
	if ab.Outs != 1 || ab.Count != (Count{}) {
		t.Errorf("outs=%d count=%+v", ab.Outs, ab.Count)
	}
	if ab.Bases != (Bases{true, false, false}) {
		t.Errorf("bases = %v", ab.Bases)
	}
	if ab.Phase != Resolving || !st.ResolveTimer.Armed {
		t.Errorf("at-bat phase = %s", ab.Phase)
	}
}

func TestFourBallsWalk(t *testing.T) {
	st, sc := started(t, TierLow)
	for i := 0; i < MaxBalls; i++ {
		sc.judgeLooking(looking(st, HomeX+PlateHalfWidth+10))
	}
	if !hasKind(sc.events, EvWalk) {
		t.Fatalf("no walk in %v", kinds(sc.events))
	}
	if st.AtBat.Bases != (Bases{true, false, false}) || st.AtBat.Count != (Count{}) {
		t.Errorf("bases=%v count=%+v", st.AtBat.Bases, st.AtBat.Count)
	}
}

func TestCalledStrikeOnPlateEdge(t *testing.T) {
	st, sc := started(t, TierLow)
	sc.judgeLooking(looking(st, HomeX-PlateHalfWidth))
	if st.AtBat.Count != (Count{Strikes: 1}) {
		t.Errorf("count = %+v, want one strike", st.AtBat.Count)
	}
	if st.Message != "STRIKE!" {
		t.Errorf("message = %q", st.Message)
	}
}

func TestJudgementOncePerPitch(t *testing.T) {
	st, sc := started(t, TierLow)
	p := looking(st, HomeX+100)
	sc.judgeLooking(p)
	n := len(sc.events)
	sc.judgeLooking(p)
	if len(sc.events) != n || st.AtBat.Count.Balls != 1 {
		t.Errorf("pitch judged twice: count=%+v events=%v", st.AtBat.Count, kinds(sc.events))
	}

	// A swing at the same pitch after it was called is ignored too.
	st.Pitch = p
	sc.swing()
	if len(sc.events) != n {
		t.Errorf("swing at a judged pitch produced %v", kinds(sc.events[n:]))
	}
}

func TestBallResolvesOnce(t *testing.T) {
	st, sc := started(t, TierLow)
	b := &BattedBall{ID: st.newID()}
	sc.resolveBall(b, ResultSingle)
	sc.resolveBall(b, ResultSingle)
	sc.resolveBall(&BattedBall{ID: b.ID}, ResultSingle)
	if st.AtBat.Bases != (Bases{true, false, false}) {
		t.Errorf("bases after one single = %v", st.AtBat.Bases)
	}
}

func TestFoulKeepsCount(t *testing.T) {
	st, sc := started(t, TierLow)
	st.AtBat.Count = Count{Balls: 2, Strikes: 2}
	sc.resolveBall(&BattedBall{ID: st.newID()}, ResultFoul)
	if st.AtBat.Count != (Count{Balls: 2, Strikes: 2}) || st.AtBat.Outs != 0 {
		t.Errorf("after two-strike foul: count=%+v outs=%d", st.AtBat.Count, st.AtBat.Outs)
	}
}

func TestStaleTimerIgnored(t *testing.T) {
	var tm timer
	tm.arm(1, 4)
	if tm.fire(5) {
		t.Error("timer from an old epoch fired")
	}
	if tm.Armed {
		t.Error("stale timer still armed")
	}

	tm.arm(2, 5)
	if tm.fire(5) {
		t.Error("fired a tick early")
	}
	if !tm.fire(5) {
		t.Error("did not fire on time")
	}
}

func TestRestartCancelsInFlight(t *testing.T) {
	st, _ := started(t, TierMid)
	st.Pitch = aimPitch(st.newID(), PitchSlider, catalog[PitchSlider].Motion, 8, 0, false)
	st.Ball = &BattedBall{ID: st.newID()}
	st.AtBat.Outs = 2
	st.Tour.Round = 4
	epoch := st.Epoch

	next, evs := Step(*st, TickInput{Control: ControlRestart}, testEnv(2))
	if next.Pitch != nil || next.Ball != nil {
		t.Error("restart left objects in flight")
	}
	if next.Epoch <= epoch {
		t.Errorf("epoch %d not advanced past %d", next.Epoch, epoch)
	}
	if next.Tour.Tier != TierLow || next.Tour.Round != 1 || next.AtBat.Outs != 0 {
		t.Errorf("after restart: tour=%+v outs=%d", next.Tour, next.AtBat.Outs)
	}
	if !hasKind(evs, EvRoundStart) {
		t.Errorf("events = %v", kinds(evs))
	}
	// The input state is untouched.
	if st.Pitch == nil || st.AtBat.Outs != 2 {
		t.Error("Step mutated its input")
	}
}

func TestGameOverAndContinue(t *testing.T) {
	st, sc := started(t, TierMid)
	st.Tour.Round = 3
	st.AtBat.Outs = MaxOuts - 1
	sc.resolveBall(&BattedBall{ID: st.newID()}, ResultOut)
	if st.Phase != PhaseGameOver || !st.Tour.Lost {
		t.Fatalf("phase=%s lost=%v", st.Phase, st.Tour.Lost)
	}
	if !hasKind(sc.events, EvGameOver) || st.PitchTimer.Armed {
		t.Errorf("events=%v pitch timer armed=%v", kinds(sc.events), st.PitchTimer.Armed)
	}

	// Nothing moves while the game is over.
	env := sc.env
	idle, evs := Step(*st, TickInput{Swing: true}, env)
	if idle.Phase != PhaseGameOver || len(evs) != 0 {
		t.Errorf("game over state advanced: phase=%s events=%v", idle.Phase, kinds(evs))
	}

	next, _ := Step(*st, TickInput{Control: ControlContinue}, env)
	if next.Phase != PhasePlaying || next.Tour.Lost {
		t.Fatalf("continue: phase=%s lost=%v", next.Phase, next.Tour.Lost)
	}
	if next.Tour.Tier != TierMid || next.Tour.Round != 3 || next.AtBat.Outs != 0 {
		t.Errorf("continue replayed %+v outs=%d", next.Tour, next.AtBat.Outs)
	}
}

func TestContinueIgnoredWhilePlaying(t *testing.T) {
	st, _ := started(t, TierLow)
	st.AtBat.Outs = 1
	next, evs := Step(*st, TickInput{Control: ControlContinue}, testEnv(3))
	if next.AtBat.Outs != 1 || hasKind(evs, EvRoundStart) {
		t.Errorf("continue reset a live round: outs=%d events=%v", next.AtBat.Outs, kinds(evs))
	}
}

func TestFinalRoundVictory(t *testing.T) {
	st, sc := started(t, TierHigh)
	st.Tour.Round = MaxRounds
	st.AtBat.PlayerScore = st.AtBat.OpponentScore
	sc.resolveBall(&BattedBall{ID: st.newID()}, ResultHomeRun)
	if st.Phase != PhaseVictory || !st.Tour.Victory {
		t.Fatalf("phase=%s victory=%v", st.Phase, st.Tour.Victory)
	}
	if !hasKind(sc.events, EvVictory) || hasKind(sc.events, EvRoundWon) {
		t.Errorf("events = %v", kinds(sc.events))
	}
	if st.RoundTimer.Armed {
		t.Error("round transition armed after the final")
	}
}

func TestStepPitchLifecycle(t *testing.T) {
	env := testEnv(5)
	st, _ := Step(GameState{}, TickInput{Control: ControlStart, Tier: TierLow}, env)

	var released uint64
	for i := 0; i < 2000; i++ {
		var evs []Event
		st, evs = Step(st, TickInput{}, env)
		for _, e := range evs {
			switch e.Kind {
			case EvPitchReleased:
				if released != 0 {
					t.Fatalf("second pitch released before #%d was judged", released)
				}
				released = e.ID
			case EvStrike, EvBall:
				if e.ID != released {
					t.Fatalf("judged pitch #%d, released #%d", e.ID, released)
				}
				if st.Pitch != nil {
					t.Error("judged pitch still in flight")
				}
				return
			}
		}
	}
	t.Fatalf("no pitch judged (released #%d)", released)
}

func TestSessionSnapshot(t *testing.T) {
	s := NewSession("abc", "Sluggers", DefaultTuning(), 9, false)
	if s.Phase() != PhaseTitle {
		t.Fatalf("new session phase = %s", s.Phase())
	}
	evs := s.Tick(TickInput{Control: ControlStart, Tier: TierMid})
	if !hasKind(evs, EvRoundStart) {
		t.Fatalf("events = %v", kinds(evs))
	}
	snap := s.Snapshot()
	if snap.Phase != PhasePlaying || snap.Tier != TierMid || snap.Round != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.PlayerScore != 5 || snap.OpponentScore != 8 || snap.Message != "PLAY BALL!" {
		t.Errorf("snapshot score %d-%d message %q", snap.PlayerScore, snap.OpponentScore, snap.Message)
	}
	if snap.Board.Home != "Sluggers" {
		t.Errorf("board home = %q", snap.Board.Home)
	}
}

func TestSessionDebugLogs(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	tests := []struct {
		debug bool
		want  bool
	}{
		{debug: false, want: false},
		{debug: true, want: true},
	}
	for _, tt := range tests {
		buf.Reset()
		s := NewSession("dbg", "Sluggers", DefaultTuning(), 1, tt.debug)
		s.logEvent(Event{Kind: EvPitchReleased, ID: 1, Pitch: "fastball"})
		s.logEvent(Event{Kind: EvMiss, ID: 1, Pitch: "fastball"})
		got := strings.Contains(buf.String(), "PITCH: dbg #1") && strings.Contains(buf.String(), "SWING: dbg #1")
		if got != tt.want {
			t.Errorf("debug=%v: logged %q", tt.debug, buf.String())
		}
	}
}

func TestParseControl(t *testing.T) {
	for _, c := range []Control{ControlStart, ControlRestart, ControlContinue, ControlDebugTier} {
		got, ok := ParseControl(c.String())
		if !ok || got != c {
			t.Errorf("ParseControl(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseControl(""); ok {
		t.Error("empty action accepted")
	}
	if _, ok := ParseControl("pause"); ok {
		t.Error("unknown action accepted")
	}
}
