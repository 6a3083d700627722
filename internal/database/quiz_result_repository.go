package database

import (
	"fmt"

	"github.com/example/hsktutor/pkg/models"
)

// QuizResultRepository handles database operations for quiz history
type QuizResultRepository struct{}

// NewQuizResultRepository creates a new repository instance
func NewQuizResultRepository() *QuizResultRepository {
	return &QuizResultRepository{}
}

// Create appends one quiz history entry
func (r *QuizResultRepository) Create(entry *models.QuizHistoryEntry) error {
	query := `
		INSERT INTO quiz_results (
			quiz_type, hsk_level, total_questions, correct_answers,
			score_percentage, duration_seconds
		) VALUES (?, ?, ?, ?, ?, ?)
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query) + " RETURNING id, created_at"
		return DB.QueryRow(query,
			entry.QuizType, entry.HSKLevel, entry.TotalQuestions,
			entry.CorrectAnswers, entry.ScorePercentage, entry.DurationSeconds,
		).Scan(&entry.ID, &entry.CreatedAt)
	}

	result, err := DB.Exec(query,
		entry.QuizType, entry.HSKLevel, entry.TotalQuestions,
		entry.CorrectAnswers, entry.ScorePercentage, entry.DurationSeconds)
	if err != nil {
		return fmt.Errorf("failed to create quiz result: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	entry.ID = int(id)
	return nil
}

// Recent returns the most recent quiz history entries, newest first
func (r *QuizResultRepository) Recent(limit int) ([]models.QuizHistoryEntry, error) {
	var entries []models.QuizHistoryEntry
	err := DB.Select(&entries,
		DB.Rebind("SELECT * FROM quiz_results ORDER BY id DESC LIMIT ?"), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz history: %v", err)
	}
	return entries, nil
}
