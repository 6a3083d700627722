package models

import "time"

// Progress tracks mastery of a single vocabulary item
type Progress struct {
	ID             int       `json:"id" db:"id"`
	VocabularyID   int       `json:"vocabulary_id" db:"vocabulary_id"`
	MasteryLevel   int       `json:"mastery_level" db:"mastery_level"` // 0-5 scale
	TimesSeen      int       `json:"times_seen" db:"times_seen"`
	TimesCorrect   int       `json:"times_correct" db:"times_correct"`
	TimesIncorrect int       `json:"times_incorrect" db:"times_incorrect"`
	LastReviewed   time.Time `json:"last_reviewed" db:"last_reviewed"`
	NextReview     time.Time `json:"next_review" db:"next_review"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// ReviewItem is a vocabulary item joined with its progress record,
// returned by the review queue queries
type ReviewItem struct {
	VocabularyItem
	MasteryLevel int       `json:"mastery_level" db:"mastery_level"`
	TimesSeen    int       `json:"times_seen" db:"times_seen"`
	LastReviewed time.Time `json:"last_reviewed" db:"last_reviewed"`
}
