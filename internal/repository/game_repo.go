package repository

import (
	"fmt"
	"sort"
	"time"

	"github.com/EscoLessgo/word-craft-arena/internal/docstore"
	"github.com/EscoLessgo/word-craft-arena/internal/models"
)

// DefaultHistoryLimit bounds history reads when the caller does not ask for
// a specific page size.
const DefaultHistoryLimit = 30

// GameRepository stores daily game records and the per-user stats summary in
// the document store, under users/<uid>/games/<date> and
// users/<uid>/stats/summary.
type GameRepository struct {
	store *docstore.Store
}

// NewGameRepository creates a new game repository
func NewGameRepository(store *docstore.Store) *GameRepository {
	return &GameRepository{store: store}
}

func gamesCollection(uid string) string {
	return fmt.Sprintf("users/%s/games", uid)
}

func gamePath(uid, date string) string {
	return fmt.Sprintf("users/%s/games/%s", uid, date)
}

func statsPath(uid string) string {
	return fmt.Sprintf("users/%s/stats/summary", uid)
}

// SaveProgress writes a day's game record and the updated stats summary in a
// single transaction, so a failure can never leave the stats stale relative
// to a saved game. The game record is replaced wholesale (repeat saves of a
// day overwrite); the stats document is merge-written so fields this
// subsystem does not own survive.
func (r *GameRepository) SaveProgress(uid string, record models.DailyGameRecord, stats models.UserStatsSummary) error {
	if record.SavedAt.IsZero() {
		record.SavedAt = time.Now().UTC()
	}

	err := r.store.RunTransaction(func(tx *docstore.Tx) error {
		if err := tx.SetDocument(gamePath(uid, record.GameDate), encodeGameRecord(record), false); err != nil {
			return err
		}
		return tx.SetDocument(statsPath(uid), encodeStats(stats), true)
	})
	if err != nil {
		return fmt.Errorf("failed to save progress for %s: %w", uid, err)
	}
	return nil
}

// GetGame fetches one day's record, or nil if the user did not play that day.
func (r *GameRepository) GetGame(uid, date string) (*models.DailyGameRecord, error) {
	doc, err := r.store.GetDocument(gamePath(uid, date))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	record := decodeGameRecord(doc)
	return &record, nil
}

// LoadHistory returns the user's game records newest first, at most limit of
// them (DefaultHistoryLimit when limit <= 0). The store has no per-field
// index over document data, so this reads the whole games collection and
// sorts client-side; acceptable at one document per day, revisit if
// histories grow unbounded.
func (r *GameRepository) LoadHistory(uid string, limit int) ([]models.DailyGameRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	docs, err := r.store.QueryCollection(gamesCollection(uid), docstore.Query{})
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", uid, err)
	}

	records := make([]models.DailyGameRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, decodeGameRecord(doc))
	}

	sortHistoryNewestFirst(records)

	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// GetStats fetches the user's stats summary. A user who never played gets
// the zero summary, not an error.
func (r *GameRepository) GetStats(uid string) (models.UserStatsSummary, error) {
	doc, err := r.store.GetDocument(statsPath(uid))
	if err != nil {
		return models.UserStatsSummary{}, err
	}
	if doc == nil {
		return models.UserStatsSummary{}, nil
	}
	return decodeStats(doc), nil
}

// sortKeyLayout is fixed width down to nanoseconds. RFC3339Nano drops
// trailing fractional zeros, which breaks lexicographic comparison between
// timestamps of different printed precision; padding keeps string order
// equal to time order, and keeps same-second saves distinguishable.
const sortKeyLayout = "2006-01-02T15:04:05.000000000Z"

// historySortKey is the ordering key for a record: the save timestamp when
// present, the calendar day otherwise. Both render to ISO strings, so
// lexicographic order is chronological order.
func historySortKey(record models.DailyGameRecord) string {
	if !record.SavedAt.IsZero() {
		return record.SavedAt.UTC().Format(sortKeyLayout)
	}
	return record.GameDate
}

// sortHistoryNewestFirst orders records by reverse lexicographic comparison
// of their sort keys.
func sortHistoryNewestFirst(records []models.DailyGameRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return historySortKey(records[i]) > historySortKey(records[j])
	})
}

func encodeGameRecord(record models.DailyGameRecord) docstore.Document {
	return docstore.Document{
		"game_date":      record.GameDate,
		"score":          record.Score,
		"words_found":    record.WordsFound,
		"pangrams_found": record.PangramsFound,
		"rank":           string(record.Rank),
		"saved_at":       record.SavedAt.UTC().Format(time.RFC3339Nano),
	}
}

// decodeGameRecord tolerates missing or oddly-typed fields: anything absent
// decodes to its zero value rather than failing the whole read.
func decodeGameRecord(doc docstore.Document) models.DailyGameRecord {
	record := models.DailyGameRecord{
		GameDate:      stringField(doc, "game_date"),
		Score:         intField(doc, "score"),
		WordsFound:    stringSliceField(doc, "words_found"),
		PangramsFound: stringSliceField(doc, "pangrams_found"),
		Rank:          models.Rank(stringField(doc, "rank")),
	}
	if raw := stringField(doc, "saved_at"); raw != "" {
		if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			record.SavedAt = t
		}
	}
	return record
}

func encodeStats(stats models.UserStatsSummary) docstore.Document {
	return docstore.Document{
		"current_streak":   stats.CurrentStreak,
		"best_streak":      stats.BestStreak,
		"last_played_date": stats.LastPlayedDate,
		"best_rank":        string(stats.BestRank),
		"games_played":     stats.GamesPlayed,
	}
}

func decodeStats(doc docstore.Document) models.UserStatsSummary {
	return models.UserStatsSummary{
		CurrentStreak:  intField(doc, "current_streak"),
		BestStreak:     intField(doc, "best_streak"),
		LastPlayedDate: stringField(doc, "last_played_date"),
		BestRank:       models.Rank(stringField(doc, "best_rank")),
		GamesPlayed:    intField(doc, "games_played"),
	}
}

func stringField(doc docstore.Document, key string) string {
	s, _ := doc[key].(string)
	return s
}

func intField(doc docstore.Document, key string) int {
	switch n := doc[key].(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	default:
		return 0
	}
}

func stringSliceField(doc docstore.Document, key string) []string {
	switch v := doc[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
