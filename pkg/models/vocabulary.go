package models

import "time"

// VocabularyItem represents one HSK word or phrase to be learned
type VocabularyItem struct {
	ID              int       `json:"id" db:"id"`
	Chinese         string    `json:"chinese" db:"chinese"`
	Pinyin          string    `json:"pinyin" db:"pinyin"`
	English         string    `json:"english" db:"english"`
	HSKLevel        int       `json:"hsk_level" db:"hsk_level"` // 1-6 proficiency tier
	WordType        string    `json:"word_type,omitempty" db:"word_type"`
	ExampleSentence string    `json:"example_sentence,omitempty" db:"example_sentence"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
