package repository

import (
	"testing"
	"time"

	"github.com/EscoLessgo/word-craft-arena/internal/docstore"
	"github.com/EscoLessgo/word-craft-arena/internal/models"
)

func TestSortHistoryNewestFirst(t *testing.T) {
	tests := []struct {
		name    string
		records []models.DailyGameRecord
		want    []string
	}{
		{
			name: "dates only, reverse chronological",
			records: []models.DailyGameRecord{
				{GameDate: "2024-01-01"},
				{GameDate: "2024-01-05"},
				{GameDate: "2024-01-03"},
			},
			want: []string{"2024-01-05", "2024-01-03", "2024-01-01"},
		},
		{
			name:    "empty history",
			records: nil,
			want:    nil,
		},
		{
			name: "timestamp outranks date for same day",
			records: []models.DailyGameRecord{
				{GameDate: "2024-01-02"},
				{GameDate: "2024-01-01", SavedAt: time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)},
			},
			// The second record sorts by its saved_at key (2024-01-03T...),
			// which is newer than the first record's date key.
			want: []string{"2024-01-01", "2024-01-02"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sortHistoryNewestFirst(tt.records)
			if len(tt.records) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(tt.records), len(tt.want))
			}
			for i, want := range tt.want {
				if tt.records[i].GameDate != want {
					t.Errorf("position %d: got %s, want %s", i, tt.records[i].GameDate, want)
				}
			}
		})
	}
}

func TestHistorySortKey(t *testing.T) {
	withTimestamp := models.DailyGameRecord{
		GameDate: "2024-01-01",
		SavedAt:  time.Date(2024, 1, 1, 22, 15, 0, 0, time.UTC),
	}
	if got := historySortKey(withTimestamp); got != "2024-01-01T22:15:00.000000000Z" {
		t.Errorf("key with timestamp = %q", got)
	}

	dateOnly := models.DailyGameRecord{GameDate: "2024-01-01"}
	if got := historySortKey(dateOnly); got != "2024-01-01" {
		t.Errorf("key without timestamp = %q", got)
	}
}

// Keys are fixed width down to the nanosecond, so saves landing inside the
// same second still compare by save time, and a short fractional part can
// never lexicographically outrank a longer one.
func TestHistorySortKeySubsecondOrder(t *testing.T) {
	base := time.Date(2024, 1, 1, 22, 15, 0, 0, time.UTC)
	earlier := models.DailyGameRecord{GameDate: "2024-01-01", SavedAt: base.Add(250 * time.Millisecond)}
	later := models.DailyGameRecord{GameDate: "2024-01-02", SavedAt: base.Add(500 * time.Millisecond)}

	if historySortKey(earlier) >= historySortKey(later) {
		t.Errorf("key %q should sort before %q", historySortKey(earlier), historySortKey(later))
	}

	records := []models.DailyGameRecord{earlier, later}
	sortHistoryNewestFirst(records)
	if records[0].GameDate != "2024-01-02" {
		t.Errorf("same-second saves out of order: got %s first", records[0].GameDate)
	}
}

func TestDecodeGameRecordTolerance(t *testing.T) {
	tests := []struct {
		name string
		doc  docstore.Document
		want models.DailyGameRecord
	}{
		{
			name: "complete document",
			doc: docstore.Document{
				"game_date":      "2024-01-05",
				"score":          float64(120),
				"words_found":    []interface{}{"cabal", "allay"},
				"pangrams_found": []interface{}{"blackball"},
				"rank":           "Solid",
				"saved_at":       "2024-01-05T20:00:00Z",
			},
			want: models.DailyGameRecord{
				GameDate:      "2024-01-05",
				Score:         120,
				WordsFound:    []string{"cabal", "allay"},
				PangramsFound: []string{"blackball"},
				Rank:          models.RankSolid,
				SavedAt:       time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "missing fields default to empty",
			doc:  docstore.Document{"game_date": "2024-01-05"},
			want: models.DailyGameRecord{GameDate: "2024-01-05"},
		},
		{
			name: "wrong field types ignored",
			doc: docstore.Document{
				"game_date":   "2024-01-05",
				"score":       "not a number",
				"words_found": "not a list",
				"saved_at":    "garbage",
			},
			want: models.DailyGameRecord{GameDate: "2024-01-05"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeGameRecord(tt.doc)
			if got.GameDate != tt.want.GameDate || got.Score != tt.want.Score || got.Rank != tt.want.Rank {
				t.Errorf("decoded %+v, want %+v", got, tt.want)
			}
			if len(got.WordsFound) != len(tt.want.WordsFound) {
				t.Errorf("WordsFound = %v, want %v", got.WordsFound, tt.want.WordsFound)
			}
			if len(got.PangramsFound) != len(tt.want.PangramsFound) {
				t.Errorf("PangramsFound = %v, want %v", got.PangramsFound, tt.want.PangramsFound)
			}
			if !got.SavedAt.Equal(tt.want.SavedAt) {
				t.Errorf("SavedAt = %v, want %v", got.SavedAt, tt.want.SavedAt)
			}
		})
	}
}

// Sub-second save times must survive the encode/decode round trip, or
// same-second history ordering is lost on read-back.
func TestEncodeGameRecordKeepsSubsecondTime(t *testing.T) {
	saved := time.Date(2024, 1, 5, 20, 0, 0, 250_000_000, time.UTC)
	record := models.DailyGameRecord{GameDate: "2024-01-05", SavedAt: saved}

	decoded := decodeGameRecord(encodeGameRecord(record))
	if !decoded.SavedAt.Equal(saved) {
		t.Errorf("SavedAt = %v, want %v", decoded.SavedAt, saved)
	}
}

func TestDecodeStatsTolerance(t *testing.T) {
	stats := decodeStats(docstore.Document{
		"current_streak": float64(3),
		"games_played":   float64(10),
		"unrelated":      "field from another subsystem",
	})

	if stats.CurrentStreak != 3 || stats.GamesPlayed != 10 {
		t.Errorf("decoded %+v", stats)
	}
	if stats.BestRank != "" || stats.LastPlayedDate != "" {
		t.Errorf("missing fields should decode to zero values, got %+v", stats)
	}
}

func TestGamePaths(t *testing.T) {
	if got := gamePath("u1", "2024-01-05"); got != "users/u1/games/2024-01-05" {
		t.Errorf("gamePath = %q", got)
	}
	if got := statsPath("u1"); got != "users/u1/stats/summary" {
		t.Errorf("statsPath = %q", got)
	}
	if got := gamesCollection("u1"); got != "users/u1/games" {
		t.Errorf("gamesCollection = %q", got)
	}
}
