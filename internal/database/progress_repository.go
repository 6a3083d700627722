package database

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/example/hsktutor/internal/srs"
	"github.com/example/hsktutor/pkg/models"
)

// ProgressRepository handles database operations for learning progress
type ProgressRepository struct{}

// NewProgressRepository creates a new repository instance
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

// GetByVocabularyID returns the progress record for a vocabulary item,
// or nil if the item has never been scored.
func (r *ProgressRepository) GetByVocabularyID(vocabularyID int) (*models.Progress, error) {
	var progress models.Progress
	err := DB.Get(&progress,
		DB.Rebind("SELECT * FROM user_progress WHERE vocabulary_id = ?"), vocabularyID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %v", err)
	}
	return &progress, nil
}

// ApplyResult records one scoring event for a vocabulary item. The
// read-modify-write runs inside a transaction so concurrent updates to
// the same item cannot lose counter increments.
func (r *ProgressRepository) ApplyResult(vocabularyID int, correct bool, now time.Time) (*models.Progress, error) {
	tx, err := DB.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	query := "SELECT * FROM user_progress WHERE vocabulary_id = ?"
	if DB.DriverName() == "postgres" {
		// Serialise concurrent updates on the same row
		query += " FOR UPDATE"
	}

	var existing models.Progress
	var prev *models.Progress
	err = tx.Get(&existing, tx.Rebind(query), vocabularyID)
	switch {
	case err == sql.ErrNoRows:
		prev = nil
	case err != nil:
		return nil, fmt.Errorf("failed to read progress: %v", err)
	default:
		prev = &existing
	}

	next := srs.Apply(prev, vocabularyID, correct, now)

	if prev == nil {
		_, err = tx.Exec(tx.Rebind(`
			INSERT INTO user_progress (
				vocabulary_id, mastery_level, times_seen, times_correct,
				times_incorrect, last_reviewed, next_review
			) VALUES (?, ?, ?, ?, ?, ?, ?)
		`),
			next.VocabularyID, next.MasteryLevel, next.TimesSeen,
			next.TimesCorrect, next.TimesIncorrect, next.LastReviewed, next.NextReview)
		if err != nil {
			return nil, fmt.Errorf("failed to create progress: %v", err)
		}
	} else {
		_, err = tx.Exec(tx.Rebind(`
			UPDATE user_progress SET
				mastery_level = ?,
				times_seen = ?,
				times_correct = ?,
				times_incorrect = ?,
				last_reviewed = ?,
				next_review = ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE vocabulary_id = ?
		`),
			next.MasteryLevel, next.TimesSeen, next.TimesCorrect,
			next.TimesIncorrect, next.LastReviewed, next.NextReview, vocabularyID)
		if err != nil {
			return nil, fmt.Errorf("failed to update progress: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit progress update: %v", err)
	}
	return &next, nil
}

// LearnedVocabularyIDs returns the set of vocabulary IDs the learner
// has seen at least once
func (r *ProgressRepository) LearnedVocabularyIDs() (map[int]bool, error) {
	var ids []int
	err := DB.Select(&ids, "SELECT vocabulary_id FROM user_progress WHERE times_seen > 0")
	if err != nil {
		return nil, fmt.Errorf("failed to get learned vocabulary IDs: %v", err)
	}
	learned := make(map[int]bool, len(ids))
	for _, id := range ids {
		learned[id] = true
	}
	return learned, nil
}

// DueForReview returns vocabulary whose next review is due, soonest
// first. A level of 0 includes all levels.
func (r *ProgressRepository) DueForReview(hskLevel, limit int, now time.Time) ([]models.ReviewItem, error) {
	var items []models.ReviewItem
	query := `
		SELECT v.id, v.chinese, v.pinyin, v.english, v.hsk_level,
		       v.word_type, v.example_sentence, v.created_at,
		       up.mastery_level, up.times_seen, up.last_reviewed
		FROM vocabulary v
		INNER JOIN user_progress up ON v.id = up.vocabulary_id
		WHERE up.next_review <= ?
	`
	args := []interface{}{now}
	if hskLevel > 0 {
		query += " AND v.hsk_level = ?"
		args = append(args, hskLevel)
	}
	query += " ORDER BY up.next_review ASC LIMIT ?"
	args = append(args, limit)

	if err := DB.Select(&items, DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get due vocabulary: %v", err)
	}
	return items, nil
}

// LearnedItems returns every vocabulary item the learner has seen,
// with its progress attached. A level of 0 includes all levels.
func (r *ProgressRepository) LearnedItems(hskLevel int) ([]models.ReviewItem, error) {
	var items []models.ReviewItem
	query := `
		SELECT v.id, v.chinese, v.pinyin, v.english, v.hsk_level,
		       v.word_type, v.example_sentence, v.created_at,
		       up.mastery_level, up.times_seen, up.last_reviewed
		FROM vocabulary v
		INNER JOIN user_progress up ON v.id = up.vocabulary_id
		WHERE up.times_seen > 0
	`
	args := []interface{}{}
	if hskLevel > 0 {
		query += " AND v.hsk_level = ?"
		args = append(args, hskLevel)
	}
	query += " ORDER BY v.hsk_level ASC, v.id ASC"

	if err := DB.Select(&items, DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get learned vocabulary: %v", err)
	}
	return items, nil
}

// Stats aggregates all progress records into overall statistics
func (r *ProgressRepository) Stats() (*models.ProgressStats, error) {
	stats := &models.ProgressStats{
		MasteryBreakdown: make(map[int]int),
	}

	err := DB.Get(&stats.TotalWordsStudied,
		"SELECT COUNT(*) FROM user_progress WHERE times_seen > 0")
	if err != nil {
		return nil, fmt.Errorf("failed to count studied words: %v", err)
	}

	rows, err := DB.Query("SELECT mastery_level, COUNT(*) FROM user_progress GROUP BY mastery_level ORDER BY mastery_level")
	if err != nil {
		return nil, fmt.Errorf("failed to get mastery breakdown: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var level, count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("failed to scan mastery count: %v", err)
		}
		stats.MasteryBreakdown[level] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mastery breakdown: %v", err)
	}

	var seen, correct, incorrect sql.NullInt64
	err = DB.QueryRow(`
		SELECT SUM(times_seen), SUM(times_correct), SUM(times_incorrect)
		FROM user_progress
	`).Scan(&seen, &correct, &incorrect)
	if err != nil {
		return nil, fmt.Errorf("failed to sum review counters: %v", err)
	}
	stats.TotalReviews = int(seen.Int64)
	stats.TotalCorrect = int(correct.Int64)
	stats.TotalIncorrect = int(incorrect.Int64)

	if stats.TotalReviews > 0 {
		accuracy := float64(stats.TotalCorrect) / float64(stats.TotalReviews) * 100
		stats.Accuracy = math.Round(accuracy*100) / 100
	}

	return stats, nil
}

// ClearAll deletes every progress record and quiz result, leaving the
// vocabulary table untouched
func (r *ProgressRepository) ClearAll() error {
	tx, err := DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM user_progress"); err != nil {
		return fmt.Errorf("failed to clear progress: %v", err)
	}
	if _, err := tx.Exec("DELETE FROM quiz_results"); err != nil {
		return fmt.Errorf("failed to clear quiz results: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit progress reset: %v", err)
	}
	return nil
}
