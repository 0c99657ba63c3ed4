package models

import "testing"

func TestClassifyRank(t *testing.T) {
	tests := []struct {
		name     string
		score    int
		maxScore int
		want     Rank
	}{
		{name: "zero score", score: 0, maxScore: 500, want: RankBeginner},
		{name: "zero score small puzzle", score: 0, maxScore: 17, want: RankBeginner},
		{name: "just above zero", score: 1, maxScore: 500, want: RankGoodStart},
		{name: "exactly 5 percent", score: 25, maxScore: 500, want: RankMovingUp},
		{name: "just under 5 percent", score: 24, maxScore: 500, want: RankGoodStart},
		{name: "exactly 10 percent", score: 50, maxScore: 500, want: RankGood},
		{name: "exactly 20 percent", score: 100, maxScore: 500, want: RankSolid},
		{name: "exactly 30 percent", score: 150, maxScore: 500, want: RankNice},
		{name: "exactly 40 percent", score: 200, maxScore: 500, want: RankGreat},
		{name: "exactly 50 percent", score: 250, maxScore: 500, want: RankAmazing},
		{name: "exactly 60 percent", score: 300, maxScore: 500, want: RankGenius},
		{name: "exactly 70 percent", score: 350, maxScore: 500, want: RankQueenBee},
		{name: "just under full score", score: 499, maxScore: 500, want: RankQueenBee},
		{name: "full score", score: 500, maxScore: 500, want: RankPerfect},
		{name: "over full score", score: 600, maxScore: 500, want: RankPerfect},
		{name: "full score tiny puzzle", score: 17, maxScore: 17, want: RankPerfect},
		{name: "non-positive max falls back to default", score: 250, maxScore: 0, want: RankAmazing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyRank(tt.score, tt.maxScore)
			if got != tt.want {
				t.Errorf("ClassifyRank(%d, %d) = %q, want %q", tt.score, tt.maxScore, got, tt.want)
			}
		})
	}
}

func TestClassifyRankMonotonic(t *testing.T) {
	maxScore := 500
	prev := RankBeginner
	for score := 0; score <= maxScore; score++ {
		rank := ClassifyRank(score, maxScore)
		if rank.Index() < 0 {
			t.Fatalf("ClassifyRank(%d, %d) = %q, not in the rank order", score, maxScore, rank)
		}
		if rank.Index() < prev.Index() {
			t.Fatalf("rank decreased from %q to %q at score %d", prev, rank, score)
		}
		prev = rank
	}
}

func TestRankBetterThan(t *testing.T) {
	tests := []struct {
		name  string
		r     Rank
		other Rank
		want  bool
	}{
		{name: "higher beats lower", r: RankGenius, other: RankSolid, want: true},
		{name: "lower does not beat higher", r: RankSolid, other: RankGenius, want: false},
		{name: "equal rank is not better", r: RankNice, other: RankNice, want: false},
		{name: "any rank beats empty", r: RankBeginner, other: Rank(""), want: true},
		{name: "perfect beats queen bee", r: RankPerfect, other: RankQueenBee, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.BetterThan(tt.other); got != tt.want {
				t.Errorf("%q.BetterThan(%q) = %v, want %v", tt.r, tt.other, got, tt.want)
			}
		})
	}
}

func TestDisplayRank(t *testing.T) {
	stored := DailyGameRecord{Score: 50, Rank: RankGenius}
	if got := stored.DisplayRank(); got != RankGenius {
		t.Errorf("stored rank should win, got %q", got)
	}

	// Legacy record with no stored rank: recompute against the default max.
	legacy := DailyGameRecord{Score: 250}
	if got := legacy.DisplayRank(); got != RankAmazing {
		t.Errorf("legacy record rank = %q, want %q", got, RankAmazing)
	}
}
