package game

// Tournament tracks progress through tiers and rounds.
type Tournament struct {
	Tier    Tier `json:"tier"`
	Round   int  `json:"round"`
	Won     bool `json:"won"`
	Lost    bool `json:"lost"`
	Victory bool `json:"victory"`
}

// Advance is what happened when a won round was closed out.
type Advance uint8

const (
	AdvanceRound Advance = iota
	AdvanceTier
	AdvanceVictory
)

func NewTournament(tier Tier) Tournament {
	return Tournament{Tier: tier, Round: 1}
}

// Final reports whether winning the current round wins the tournament.
func (t Tournament) Final() bool {
	return t.Tier == TierHigh && t.Round >= MaxRounds
}

// Scores returns the starting player and opponent scores for the current
// round: the opponent's target grows with tier base and round.
func (t Tournament) Scores(tun Tuning) (player, opponent int) {
	tt := tun.Tier(t.Tier)
	opponent = tt.OpponentBase + t.Round
	player = opponent - tt.Deficit
	if player < 0 {
		player = 0
	}
	return player, opponent
}

// Win marks the current round won. The final round sets Victory instead.
func (t *Tournament) Win() {
	if t.Final() {
		t.Victory = true
		return
	}
	t.Won = true
}

func (t *Tournament) Lose() {
	t.Lost = true
}

// Advance moves past a won round.
func (t *Tournament) Advance() Advance {
	t.Won = false
	if t.Final() {
		t.Victory = true
		return AdvanceVictory
	}
	if t.Round < MaxRounds {
		t.Round++
		return AdvanceRound
	}
	t.Tier++
	t.Round = 1
	return AdvanceTier
}

// Retry clears a loss so the same round can be replayed.
func (t *Tournament) Retry() {
	t.Lost = false
	t.Won = false
}
