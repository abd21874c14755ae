package game

import "testing"

func TestTournamentScores(t *testing.T) {
	tun := DefaultTuning()
	tests := []struct {
		tier             Tier
		round            int
		player, opponent int
	}{
		{TierLow, 1, 1, 3},
		{TierLow, 5, 5, 7},
		{TierMid, 1, 5, 8},
		{TierMid, 2, 6, 9},
		{TierHigh, 1, 9, 13},
		{TierHigh, 5, 13, 17},
	}
	for _, tt := range tests {
		tour := Tournament{Tier: tt.tier, Round: tt.round}
		p, o := tour.Scores(tun)
		if p != tt.player || o != tt.opponent {
			t.Errorf("%s round %d: scores %d-%d, want %d-%d", tt.tier, tt.round, p, o, tt.player, tt.opponent)
		}
		if p >= o {
			t.Errorf("%s round %d: player starts level or ahead", tt.tier, tt.round)
		}
	}
}

func TestTierOpensAboveLastRound(t *testing.T) {
	tun := DefaultTuning()
	for _, tier := range []Tier{TierMid, TierHigh} {
		_, last := Tournament{Tier: tier - 1, Round: MaxRounds}.Scores(tun)
		_, first := Tournament{Tier: tier, Round: 1}.Scores(tun)
		if first <= last {
			t.Errorf("%s round 1 opponent %d, %s final was %d", tier, first, tier-1, last)
		}
	}

	tun.Tiers[TierMid].OpponentBase = 4
	if err := tun.Validate(); err == nil {
		t.Error("tuning with a mid tier opening below the low final accepted")
	}
}

func TestTournamentAdvance(t *testing.T) {
	tour := NewTournament(TierLow)
	var got []Advance
	for !tour.Final() {
		tour.Win()
		if !tour.Won {
			t.Fatalf("%s round %d: win not recorded", tour.Tier, tour.Round)
		}
		got = append(got, tour.Advance())
		if tour.Won {
			t.Fatal("Advance left the round marked won")
		}
	}
	if len(got) != 3*MaxRounds-1 {
		t.Fatalf("%d advances to reach the final, want %d", len(got), 3*MaxRounds-1)
	}
	for i, a := range got {
		want := AdvanceRound
		if (i+1)%MaxRounds == 0 {
			want = AdvanceTier
		}
		if a != want {
			t.Errorf("advance %d = %d, want %d", i, a, want)
		}
	}
	if tour.Tier != TierHigh || tour.Round != MaxRounds {
		t.Fatalf("final is %s round %d", tour.Tier, tour.Round)
	}

	tour.Win()
	if !tour.Victory || tour.Won {
		t.Errorf("final win: victory=%v won=%v", tour.Victory, tour.Won)
	}
}

func TestTournamentRetry(t *testing.T) {
	tour := Tournament{Tier: TierMid, Round: 3}
	tour.Lose()
	tour.Retry()
	if tour.Lost || tour.Tier != TierMid || tour.Round != 3 {
		t.Errorf("after retry: %+v", tour)
	}
}
