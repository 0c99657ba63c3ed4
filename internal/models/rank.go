package models

// Rank is the label awarded for a day's score, ordered from worst to best.
type Rank string

const (
	RankBeginner  Rank = "Beginner"
	RankGoodStart Rank = "Good Start"
	RankMovingUp  Rank = "Moving Up"
	RankGood      Rank = "Good"
	RankSolid     Rank = "Solid"
	RankNice      Rank = "Nice"
	RankGreat     Rank = "Great"
	RankAmazing   Rank = "Amazing"
	RankGenius    Rank = "Genius"
	RankQueenBee  Rank = "Queen Bee"
	RankPerfect   Rank = "Perfect!"
)

// DefaultMaxScore is used when computing a display rank for a stored score
// whose puzzle maximum is unknown. Save paths must pass the puzzle's real
// maximum instead.
const DefaultMaxScore = 500

// rankOrder lists every rank worst-first; the slice index is the rank's
// position in the total order.
var rankOrder = []Rank{
	RankBeginner,
	RankGoodStart,
	RankMovingUp,
	RankGood,
	RankSolid,
	RankNice,
	RankGreat,
	RankAmazing,
	RankGenius,
	RankQueenBee,
	RankPerfect,
}

// Index returns the rank's position in the total order, or -1 for an
// unknown label.
func (r Rank) Index() int {
	for i, candidate := range rankOrder {
		if candidate == r {
			return i
		}
	}
	return -1
}

// BetterThan reports whether r outranks other. Unknown labels sort below
// every real rank.
func (r Rank) BetterThan(other Rank) bool {
	return r.Index() > other.Index()
}

// ClassifyRank maps a score to its rank label based on the percentage of the
// puzzle's maximum score achieved. A zero score is always Beginner, and
// scores at or above the maximum are Perfect! with no upper clamp.
func ClassifyRank(score, maxScore int) Rank {
	if maxScore <= 0 {
		maxScore = DefaultMaxScore
	}

	pct := 100 * float64(score) / float64(maxScore)

	switch {
	case pct == 0:
		return RankBeginner
	case pct < 5:
		return RankGoodStart
	case pct < 10:
		return RankMovingUp
	case pct < 20:
		return RankGood
	case pct < 30:
		return RankSolid
	case pct < 40:
		return RankNice
	case pct < 50:
		return RankGreat
	case pct < 60:
		return RankAmazing
	case pct < 70:
		return RankGenius
	case pct < 100:
		return RankQueenBee
	default:
		return RankPerfect
	}
}
