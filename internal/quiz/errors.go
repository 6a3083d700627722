package quiz

import "fmt"

// InsufficientVocabularyError reports a vocabulary pool too small for
// the requested quiz shape
type InsufficientVocabularyError struct {
	HSKLevel  int
	Required  int
	Available int
}

func (e *InsufficientVocabularyError) Error() string {
	return fmt.Sprintf("not enough vocabulary for an HSK %d quiz: need at least %d items, have %d",
		e.HSKLevel, e.Required, e.Available)
}

// SessionNotFoundError reports an unknown or already-completed quiz session
type SessionNotFoundError struct {
	QuizID string
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("quiz %s not found or already completed", e.QuizID)
}

// AnswerCountMismatchError reports an answer list whose length does not
// match the question count
type AnswerCountMismatchError struct {
	Expected int
	Received int
}

func (e *AnswerCountMismatchError) Error() string {
	return fmt.Sprintf("expected %d answers, got %d", e.Expected, e.Received)
}
