package game

import (
	"math/rand"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

func TestLineScore(t *testing.T) {
	b := Scoreboard{
		Home:     "Sluggers",
		Away:     "Pirates",
		AwayRuns: [Innings]int{0, 1, 0, 0, 2, 0, 0, 0, 0},
		HomeRuns: [Innings]int{1, 0, 0, 0, 0, 0, 0, 0, 0},
		Hits:     [2]int{4, 7},
		Errors:   [2]int{0, 1},
	}
	want := "" +
		"            1  2  3  4  5  6  7  8  9    R  H  E\n" +
		"Pirates     0  1  0  0  2  0  0  0  0    3  7  1\n" +
		"Sluggers    1  0  0  0  0  0  0  0  0    1  4  0\n"

	if got := b.LineScore(); got != want {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(want),
			B:        difflib.SplitLines(got),
			FromFile: "want",
			ToFile:   "got",
			Context:  1,
		})
		t.Errorf("line score mismatch:\n%s", diff)
	}
}

func TestLineScoreTruncatesNames(t *testing.T) {
	b := Scoreboard{Home: "Constantinople Nine", Away: "X"}
	lines := difflib.SplitLines(b.LineScore())
	if len(lines) < 3 || lines[2][:10] != "Constantin" {
		t.Errorf("home row = %q", lines[2])
	}
}

func TestNewScoreboardMatchesScore(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, tc := range []struct{ home, away int }{{1, 3}, {0, 2}, {7, 11}} {
		b := NewScoreboard("Sluggers", "Legends", tc.home, tc.away, rng)
		if got := b.total(b.AwayRuns); got != tc.away {
			t.Errorf("away runs = %d, want %d", got, tc.away)
		}
		if got := b.total(b.HomeRuns); got != tc.home {
			t.Errorf("home runs = %d, want %d", got, tc.home)
		}
		if b.HomeRuns[Innings-1] != 0 {
			t.Errorf("bottom of the ninth pre-filled with %d", b.HomeRuns[Innings-1])
		}
		if b.Hits[0] < tc.home || b.Hits[1] < tc.away {
			t.Errorf("fewer hits than runs: %v", b.Hits)
		}

		b.Mirror(tc.home + 2)
		if b.HomeRuns[Innings-1] != 2 || b.total(b.HomeRuns) != tc.home+2 {
			t.Errorf("after mirror: ninth=%d total=%d", b.HomeRuns[Innings-1], b.total(b.HomeRuns))
		}
	}
}

func TestOpponentName(t *testing.T) {
	if got := OpponentName(TierLow, 1); got != "Pirates" {
		t.Errorf("low/1 = %q", got)
	}
	if got := OpponentName(TierHigh, MaxRounds); got != "Legends" {
		t.Errorf("high/final = %q", got)
	}
	if got := OpponentName(TierMid, 0); got != "Visitors" {
		t.Errorf("out of range = %q", got)
	}
}
