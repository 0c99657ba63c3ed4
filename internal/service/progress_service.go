package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/EscoLessgo/word-craft-arena/internal/models"
	"github.com/EscoLessgo/word-craft-arena/internal/repository"
	"github.com/EscoLessgo/word-craft-arena/internal/validation"
)

// ErrSignedOut is returned when a user-scoped operation is attempted with no
// signed-in identity.
var ErrSignedOut = errors.New("no signed-in user")

// ComputeProgress folds a day's result into the user's running statistics.
// Pure: the caller supplies "today" and the prior stats, nothing is read
// from clocks or storage. Saving the same day again overwrites the record
// without touching games_played or the streak; a save the day after
// last_played_date extends the streak; any longer gap resets it to 1.
func ComputeProgress(score int, wordsFound, pangramsFound []string, maxScore int, today time.Time, prior models.UserStatsSummary) (models.DailyGameRecord, models.UserStatsSummary) {
	rank := models.ClassifyRank(score, maxScore)
	todayStr := today.Format(models.DateLayout)
	yesterdayStr := today.AddDate(0, 0, -1).Format(models.DateLayout)

	stats := prior
	if prior.LastPlayedDate != todayStr {
		stats.GamesPlayed = prior.GamesPlayed + 1
		if prior.LastPlayedDate == yesterdayStr {
			stats.CurrentStreak = prior.CurrentStreak + 1
		} else {
			stats.CurrentStreak = 1
		}
	}

	if stats.CurrentStreak > stats.BestStreak {
		stats.BestStreak = stats.CurrentStreak
	}
	if rank.BetterThan(prior.BestRank) {
		stats.BestRank = rank
	}
	stats.LastPlayedDate = todayStr

	record := models.DailyGameRecord{
		GameDate:      todayStr,
		Score:         score,
		WordsFound:    wordsFound,
		PangramsFound: pangramsFound,
		Rank:          rank,
	}

	return record, stats
}

// ProgressService handles saving daily results and reading history and stats
type ProgressService struct {
	gameRepo *repository.GameRepository
}

// NewProgressService creates a new progress service
func NewProgressService(gameRepo *repository.GameRepository) *ProgressService {
	return &ProgressService{gameRepo: gameRepo}
}

// SaveProgress validates a day's result, folds it into the user's stats and
// persists both atomically. On a write failure the computed values are
// discarded and the error is returned for the caller to surface.
func (s *ProgressService) SaveProgress(identity *models.Identity, score int, wordsFound, pangramsFound []string, maxScore int, today time.Time) (models.DailyGameRecord, models.UserStatsSummary, error) {
	if identity == nil {
		return models.DailyGameRecord{}, models.UserStatsSummary{}, ErrSignedOut
	}

	if err := validation.ValidateProgress(score, maxScore, wordsFound, pangramsFound); err != nil {
		return models.DailyGameRecord{}, models.UserStatsSummary{}, err
	}

	prior, err := s.gameRepo.GetStats(identity.UID)
	if err != nil {
		return models.DailyGameRecord{}, models.UserStatsSummary{}, fmt.Errorf("failed to load prior stats: %w", err)
	}

	record, stats := ComputeProgress(score, wordsFound, pangramsFound, maxScore, today, prior)

	if err := s.gameRepo.SaveProgress(identity.UID, record, stats); err != nil {
		return models.DailyGameRecord{}, models.UserStatsSummary{}, err
	}

	return record, stats, nil
}

// History returns the user's game records, newest first
func (s *ProgressService) History(identity *models.Identity, limit int) ([]models.DailyGameRecord, error) {
	if identity == nil {
		return nil, ErrSignedOut
	}
	return s.gameRepo.LoadHistory(identity.UID, limit)
}

// Stats returns the user's running statistics summary
func (s *ProgressService) Stats(identity *models.Identity) (models.UserStatsSummary, error) {
	if identity == nil {
		return models.UserStatsSummary{}, ErrSignedOut
	}
	return s.gameRepo.GetStats(identity.UID)
}

// Game returns one day's record, or nil if the user did not play that day
func (s *ProgressService) Game(identity *models.Identity, date string) (*models.DailyGameRecord, error) {
	if identity == nil {
		return nil, ErrSignedOut
	}
	if err := validation.ValidateGameDate(date); err != nil {
		return nil, err
	}
	return s.gameRepo.GetGame(identity.UID, date)
}
