package game

// InningEnd says whether a transition finished the half-inning.
type InningEnd uint8

const (
	InningContinues InningEnd = iota
	InningWalkOff             // batting side took the lead
	InningRetired             // third out
)

// AtBat owns the count, runners, outs and score of the player's half-inning.
type AtBat struct {
	Phase         AtBatPhase `json:"phase"`
	Count         Count      `json:"count"`
	Bases         Bases      `json:"bases"`
	Outs          int        `json:"outs"`
	PlayerScore   int        `json:"playerScore"`
	OpponentScore int        `json:"opponentScore"`
}

func NewAtBat(player, opponent int) AtBat {
	return AtBat{
		Phase:         AwaitingPitch,
		PlayerScore:   player,
		OpponentScore: opponent,
	}
}

// Strike records a called or swinging strike.
func (a *AtBat) Strike() ([]Event, InningEnd) {
	a.Count.Strikes++
	if a.Count.Strikes < MaxStrikes {
		return []Event{{Kind: EvStrike}}, InningContinues
	}
	a.Count = Count{}
	return []Event{{Kind: EvStrike}, {Kind: EvStrikeout}}, a.recordOut()
}

// Ball records a called ball; the fourth forces a walk.
func (a *AtBat) Ball() ([]Event, InningEnd) {
	a.Count.Balls++
	if a.Count.Balls < MaxBalls {
		return []Event{{Kind: EvBall}}, InningContinues
	}
	a.Count = Count{}
	evs := []Event{{Kind: EvBall}, {Kind: EvWalk}}
	runs := a.Bases.walk()
	if runs > 0 {
		evs = append(evs, Event{Kind: EvRunScored, Runs: runs})
	}
	return evs, a.score(runs)
}

// Foul adds a strike unless the batter already has two. The count is kept.
func (a *AtBat) Foul() []Event {
	if a.Count.Strikes < MaxStrikes-1 {
		a.Count.Strikes++
	}
	return []Event{{Kind: EvFoul}}
}

// Hit resolves a fair ball by its classified result.
func (a *AtBat) Hit(r Result) ([]Event, InningEnd) {
	a.Count = Count{}
	if r == ResultOut {
		// Runners hold on a fielded out.
		return []Event{{Kind: EvOut, Result: r.String()}}, a.recordOut()
	}
	evs := []Event{{Kind: EvHit, Result: r.String()}}
	runs := a.Bases.advance(r)
	if runs > 0 {
		evs = append(evs, Event{Kind: EvRunScored, Runs: runs})
	}
	return evs, a.score(runs)
}

func (a *AtBat) score(runs int) InningEnd {
	a.PlayerScore += runs
	if runs > 0 && a.PlayerScore > a.OpponentScore {
		return InningWalkOff
	}
	return InningContinues
}

func (a *AtBat) recordOut() InningEnd {
	a.Outs++
	if a.Outs >= MaxOuts {
		return InningRetired
	}
	return InningContinues
}

// walk pushes runners forward only where forced and returns runs scored.
func (b *Bases) walk() int {
	switch {
	case !b[0]:
		b[0] = true
	case !b[1]:
		b[1] = true
	case !b[2]:
		b[2] = true
	default:
		return 1
	}
	return 0
}

// advance applies the runner-shift table for a hit and returns runs scored.
func (b *Bases) advance(r Result) int {
	first, second, third := b[0], b[1], b[2]
	runs := 0
	switch r {
	case ResultSingle:
		runs = boolInt(third)
		*b = Bases{true, first, second}
	case ResultDouble:
		runs = boolInt(second) + boolInt(third)
		*b = Bases{false, true, first}
	case ResultTriple:
		runs = b.Runners()
		*b = Bases{false, false, true}
	case ResultHomeRun:
		runs = b.Runners() + 1
		*b = Bases{}
	}
	return runs
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
