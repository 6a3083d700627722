package database

import (
	"fmt"
	"strings"

	"github.com/example/hsktutor/pkg/models"
)

// VocabularyRepository handles database operations for vocabulary
type VocabularyRepository struct{}

// NewVocabularyRepository creates a new repository instance
func NewVocabularyRepository() *VocabularyRepository {
	return &VocabularyRepository{}
}

// Create inserts a new vocabulary item. The HSK level must be between
// 1 and 6 and the (chinese, hsk_level) pair must not already exist.
func (r *VocabularyRepository) Create(item *models.VocabularyItem) error {
	if item.HSKLevel < 1 || item.HSKLevel > 6 {
		return &InvalidLevelError{Level: item.HSKLevel}
	}

	var count int
	err := DB.Get(&count,
		DB.Rebind("SELECT COUNT(*) FROM vocabulary WHERE chinese = ? AND hsk_level = ?"),
		item.Chinese, item.HSKLevel)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate vocabulary: %v", err)
	}
	if count > 0 {
		return &DuplicateVocabularyError{Chinese: item.Chinese, HSKLevel: item.HSKLevel}
	}

	query := `
		INSERT INTO vocabulary (chinese, pinyin, english, hsk_level, word_type, example_sentence)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if DB.DriverName() == "postgres" {
		query = DB.Rebind(query) + " RETURNING id"
		return DB.QueryRow(query,
			item.Chinese, item.Pinyin, item.English,
			item.HSKLevel, item.WordType, item.ExampleSentence,
		).Scan(&item.ID)
	}

	result, err := DB.Exec(query,
		item.Chinese, item.Pinyin, item.English,
		item.HSKLevel, item.WordType, item.ExampleSentence)
	if err != nil {
		return fmt.Errorf("failed to create vocabulary: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	item.ID = int(id)
	return nil
}

// GetByID returns a vocabulary item by ID
func (r *VocabularyRepository) GetByID(id int) (*models.VocabularyItem, error) {
	var item models.VocabularyItem
	err := DB.Get(&item, DB.Rebind("SELECT * FROM vocabulary WHERE id = ?"), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary by ID: %v", err)
	}
	return &item, nil
}

// GetByLevel returns vocabulary for a specific HSK level.
// A limit of 0 returns the whole level.
func (r *VocabularyRepository) GetByLevel(hskLevel, limit int) ([]models.VocabularyItem, error) {
	var items []models.VocabularyItem
	query := "SELECT * FROM vocabulary WHERE hsk_level = ?"
	args := []interface{}{hskLevel}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	if err := DB.Select(&items, DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get vocabulary by level: %v", err)
	}
	return items, nil
}

// GetAll returns the full vocabulary pool across all levels
func (r *VocabularyRepository) GetAll() ([]models.VocabularyItem, error) {
	var items []models.VocabularyItem
	err := DB.Select(&items, "SELECT * FROM vocabulary ORDER BY hsk_level, chinese")
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary: %v", err)
	}
	return items, nil
}

// Search finds vocabulary matching the term in Chinese, pinyin, or
// English, case-insensitively. A level of 0 searches all levels.
func (r *VocabularyRepository) Search(term string, hskLevel int) ([]models.VocabularyItem, error) {
	var items []models.VocabularyItem
	pattern := "%" + strings.ToLower(term) + "%"

	query := `
		SELECT * FROM vocabulary
		WHERE (LOWER(chinese) LIKE ? OR LOWER(pinyin) LIKE ? OR LOWER(english) LIKE ?)
	`
	args := []interface{}{pattern, pattern, pattern}
	if hskLevel > 0 {
		query += " AND hsk_level = ?"
		args = append(args, hskLevel)
	}
	query += " ORDER BY hsk_level, chinese"

	if err := DB.Select(&items, DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to search vocabulary: %v", err)
	}
	return items, nil
}

// GetByWordType returns vocabulary filtered by word class.
// A level of 0 searches all levels.
func (r *VocabularyRepository) GetByWordType(wordType string, hskLevel, limit int) ([]models.VocabularyItem, error) {
	var items []models.VocabularyItem
	query := "SELECT * FROM vocabulary WHERE word_type = ?"
	args := []interface{}{wordType}
	if hskLevel > 0 {
		query += " AND hsk_level = ?"
		args = append(args, hskLevel)
	}
	query += " ORDER BY hsk_level, chinese LIMIT ?"
	args = append(args, limit)

	if err := DB.Select(&items, DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get vocabulary by word type: %v", err)
	}
	return items, nil
}

// Stats returns counts describing the vocabulary database
func (r *VocabularyRepository) Stats() (*models.VocabularyStats, error) {
	stats := &models.VocabularyStats{
		HSKLevelCounts: make(map[int]int),
		WordTypeCounts: make(map[string]int),
	}

	if err := DB.Get(&stats.TotalVocabulary, "SELECT COUNT(*) FROM vocabulary"); err != nil {
		return nil, fmt.Errorf("failed to count vocabulary: %v", err)
	}

	rows, err := DB.Query("SELECT hsk_level, COUNT(*) FROM vocabulary GROUP BY hsk_level ORDER BY hsk_level")
	if err != nil {
		return nil, fmt.Errorf("failed to count vocabulary by level: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var level, count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("failed to scan level count: %v", err)
		}
		stats.HSKLevelCounts[level] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read level counts: %v", err)
	}

	typeRows, err := DB.Query("SELECT word_type, COUNT(*) FROM vocabulary WHERE word_type != '' GROUP BY word_type ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to count vocabulary by word type: %v", err)
	}
	defer typeRows.Close()
	for typeRows.Next() {
		var wordType string
		var count int
		if err := typeRows.Scan(&wordType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan word type count: %v", err)
		}
		stats.WordTypeCounts[wordType] = count
	}
	if err := typeRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word type counts: %v", err)
	}

	err = DB.Get(&stats.LearnedVocabulary,
		"SELECT COUNT(DISTINCT vocabulary_id) FROM user_progress WHERE times_seen > 0")
	if err != nil {
		return nil, fmt.Errorf("failed to count learned vocabulary: %v", err)
	}
	stats.NewVocabulary = stats.TotalVocabulary - stats.LearnedVocabulary

	return stats, nil
}
