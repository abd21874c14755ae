package game

import (
	"fmt"
	"math/rand"
	"strings"
)

var opponentNames = [3][MaxRounds]string{
	{"Pirates", "Hawks", "Comets", "Mariners", "Titans"},
	{"Ironmen", "Raptors", "Blazers", "Vipers", "Dragons"},
	{"Kaisers", "Phantoms", "Monarchs", "Samurai", "Legends"},
}

// OpponentName is the display name for the team faced at tier/round.
func OpponentName(tier Tier, round int) string {
	if int(tier) >= len(opponentNames) || round < 1 || round > MaxRounds {
		return "Visitors"
	}
	return opponentNames[tier][round-1]
}

// Scoreboard is display-only: innings, hits and errors are generated at
// every half-inning reset and never feed back into the simulation. The
// authoritative score is AtBat's.
type Scoreboard struct {
	Home     string       `json:"home"`
	Away     string       `json:"away"`
	HomeRuns [Innings]int `json:"homeRuns"`
	AwayRuns [Innings]int `json:"awayRuns"`
	Hits     [2]int       `json:"hits"`   // home, away
	Errors   [2]int       `json:"errors"` // home, away
}

// NewScoreboard spreads the away score over nine innings and the home
// score over the first eight.
func NewScoreboard(home, away string, homeScore, awayScore int, rng *rand.Rand) Scoreboard {
	b := Scoreboard{Home: home, Away: away}
	spread(b.AwayRuns[:], awayScore, rng)
	spread(b.HomeRuns[:Innings-1], homeScore, rng)
	b.Hits[0] = homeScore + rng.Intn(6)
	b.Hits[1] = awayScore + rng.Intn(6)
	b.Errors[0] = rng.Intn(3)
	b.Errors[1] = rng.Intn(3)
	return b
}

func spread(innings []int, runs int, rng *rand.Rand) {
	for ; runs > 0; runs-- {
		innings[rng.Intn(len(innings))]++
	}
}

// Mirror copies runs scored in the bottom of the ninth from the live score.
func (b *Scoreboard) Mirror(homeScore int) {
	before := 0
	for _, r := range b.HomeRuns[:Innings-1] {
		before += r
	}
	b.HomeRuns[Innings-1] = homeScore - before
}

func (b Scoreboard) total(runs [Innings]int) int {
	n := 0
	for _, r := range runs {
		n += r
	}
	return n
}

// LineScore renders the classic R/H/E box.
func (b Scoreboard) LineScore() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-10s", "")
	for i := 1; i <= Innings; i++ {
		fmt.Fprintf(&sb, "%3d", i)
	}
	sb.WriteString("    R  H  E\n")
	row := func(name string, runs [Innings]int, side int) {
		fmt.Fprintf(&sb, "%-10.10s", name)
		for _, r := range runs {
			fmt.Fprintf(&sb, "%3d", r)
		}
		fmt.Fprintf(&sb, "  %3d%3d%3d\n", b.total(runs), b.Hits[side], b.Errors[side])
	}
	row(b.Away, b.AwayRuns, 1)
	row(b.Home, b.HomeRuns, 0)
	return sb.String()
}
