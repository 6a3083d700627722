package database

import "fmt"

// InvalidLevelError reports an HSK level outside the 1-6 range
type InvalidLevelError struct {
	Level int
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("HSK level must be between 1 and 6, got %d", e.Level)
}

// DuplicateVocabularyError reports a (chinese, hsk_level) pair that
// already exists in the vocabulary table
type DuplicateVocabularyError struct {
	Chinese  string
	HSKLevel int
}

func (e *DuplicateVocabularyError) Error() string {
	return fmt.Sprintf("vocabulary %q already exists at HSK level %d", e.Chinese, e.HSKLevel)
}
