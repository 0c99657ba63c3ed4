package models

import "time"

// DateLayout is the calendar-day format used for game dates throughout the
// store ("2024-01-05"). ISO form so that lexicographic order is date order.
const DateLayout = "2006-01-02"

// ParseGameDate parses a calendar-day string in DateLayout form.
func ParseGameDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// DailyGameRecord is one finished (or in-progress) day of play for a user.
// There is at most one per (user, date); saving the same day twice overwrites.
type DailyGameRecord struct {
	GameDate      string    `json:"game_date"`
	Score         int       `json:"score"`
	WordsFound    []string  `json:"words_found"`
	PangramsFound []string  `json:"pangrams_found"`
	Rank          Rank      `json:"rank"`
	SavedAt       time.Time `json:"saved_at"`
}

// DisplayRank returns the rank to show for this record. The rank stored at
// save time wins because it was computed against that day's real maximum
// score; only legacy records with no stored rank fall back to recomputing
// from the score with DefaultMaxScore.
func (r *DailyGameRecord) DisplayRank() Rank {
	if r.Rank != "" {
		return r.Rank
	}
	return ClassifyRank(r.Score, DefaultMaxScore)
}

// UserStatsSummary is the per-user running statistics document. BestStreak,
// BestRank and GamesPlayed never decrease across saves.
type UserStatsSummary struct {
	CurrentStreak  int    `json:"current_streak"`
	BestStreak     int    `json:"best_streak"`
	LastPlayedDate string `json:"last_played_date,omitempty"`
	BestRank       Rank   `json:"best_rank,omitempty"`
	GamesPlayed    int    `json:"games_played"`
}
