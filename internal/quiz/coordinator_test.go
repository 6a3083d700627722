package quiz

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/example/hsktutor/pkg/models"
)

// MockProgressSink mocks the ProgressSink
type MockProgressSink struct {
	mock.Mock
}

func (m *MockProgressSink) ApplyResult(vocabularyID int, correct bool, now time.Time) (*models.Progress, error) {
	args := m.Called(vocabularyID, correct, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Progress), args.Error(1)
}

// MockHistorySink mocks the HistorySink
type MockHistorySink struct {
	mock.Mock
}

func (m *MockHistorySink) Create(entry *models.QuizHistoryEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func translationSession(id string, answers ...string) *models.QuizSession {
	session := &models.QuizSession{
		ID:        id,
		HSKLevel:  1,
		Type:      models.QuizTranslation,
		StartTime: time.Now(),
	}
	for i, expected := range answers {
		session.Questions = append(session.Questions, models.Question{
			VocabularyID:  i + 1,
			Text:          fmt.Sprintf("question %d", i+1),
			CorrectAnswer: expected,
			Type:          models.QuizTranslation,
		})
	}
	return session
}

func TestSubmitScoresAndPersists(t *testing.T) {
	store := NewSessionStore(0)
	store.Put(translationSession("q1", "hello", "goodbye", "thanks"))

	progress := &MockProgressSink{}
	progress.On("ApplyResult", 1, true, mock.Anything).Return(&models.Progress{}, nil)
	progress.On("ApplyResult", 2, false, mock.Anything).Return(&models.Progress{}, nil)
	progress.On("ApplyResult", 3, false, mock.Anything).Return(&models.Progress{}, nil)

	history := &MockHistorySink{}
	history.On("Create", mock.Anything).Return(nil)

	coordinator := NewCoordinator(store, progress, history, quietLogger())
	result, err := coordinator.Submit("q1", []string{"hello", "wrong", "nope"})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 2, result.IncorrectAnswers)
	// 1/3 rounds to one decimal place
	assert.Equal(t, 33.3, result.ScorePercentage)
	require.Len(t, result.Results, 3)
	assert.True(t, result.Results[0].IsCorrect)
	assert.False(t, result.Results[1].IsCorrect)
	assert.Equal(t, "wrong", result.Results[1].UserAnswer)

	progress.AssertExpectations(t)
	history.AssertExpectations(t)

	entry := history.Calls[0].Arguments.Get(0).(*models.QuizHistoryEntry)
	assert.Equal(t, "translation", entry.QuizType)
	require.NotNil(t, entry.HSKLevel)
	assert.Equal(t, 1, *entry.HSKLevel)
	assert.Equal(t, 3, entry.TotalQuestions)
	assert.Equal(t, 1, entry.CorrectAnswers)
	assert.Equal(t, 33.3, entry.ScorePercentage)

	// The session is consumed
	_, ok := store.Get("q1")
	assert.False(t, ok)
}

func TestSubmitUnknownSession(t *testing.T) {
	coordinator := NewCoordinator(NewSessionStore(0), &MockProgressSink{}, &MockHistorySink{}, quietLogger())

	_, err := coordinator.Submit("missing", []string{"a"})
	var notFound *SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSubmitTwiceFailsSecondTime(t *testing.T) {
	store := NewSessionStore(0)
	store.Put(translationSession("q1", "hello"))

	progress := &MockProgressSink{}
	progress.On("ApplyResult", mock.Anything, mock.Anything, mock.Anything).Return(&models.Progress{}, nil)
	history := &MockHistorySink{}
	history.On("Create", mock.Anything).Return(nil)

	coordinator := NewCoordinator(store, progress, history, quietLogger())

	_, err := coordinator.Submit("q1", []string{"hello"})
	require.NoError(t, err)

	_, err = coordinator.Submit("q1", []string{"hello"})
	var notFound *SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "q1", notFound.QuizID)
}

func TestSubmitAnswerCountMismatch(t *testing.T) {
	store := NewSessionStore(0)
	store.Put(translationSession("q1", "hello", "goodbye"))

	coordinator := NewCoordinator(store, &MockProgressSink{}, &MockHistorySink{}, quietLogger())

	_, err := coordinator.Submit("q1", []string{"hello"})
	var mismatch *AnswerCountMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.Expected)
	assert.Equal(t, 1, mismatch.Received)
	assert.Contains(t, err.Error(), "expected 2 answers")

	// A mismatch does not consume the session; a corrected submission works
	progress := &MockProgressSink{}
	progress.On("ApplyResult", mock.Anything, mock.Anything, mock.Anything).Return(&models.Progress{}, nil)
	history := &MockHistorySink{}
	history.On("Create", mock.Anything).Return(nil)

	coordinator = NewCoordinator(store, progress, history, quietLogger())
	_, err = coordinator.Submit("q1", []string{"hello", "goodbye"})
	assert.NoError(t, err)
}

func TestSubmitStoreFailureLeavesSession(t *testing.T) {
	store := NewSessionStore(0)
	store.Put(translationSession("q1", "hello", "goodbye"))

	progress := &MockProgressSink{}
	progress.On("ApplyResult", 1, true, mock.Anything).Return(nil, fmt.Errorf("database is locked"))
	progress.On("ApplyResult", 2, true, mock.Anything).Return(&models.Progress{}, nil)
	history := &MockHistorySink{}

	coordinator := NewCoordinator(store, progress, history, quietLogger())
	_, err := coordinator.Submit("q1", []string{"hello", "goodbye"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist progress updates")

	// Every per-question update was still attempted
	progress.AssertExpectations(t)
	// No history entry was written
	history.AssertNotCalled(t, "Create", mock.Anything)

	// The session stays available for a retry
	_, ok := store.Get("q1")
	assert.True(t, ok)
	_, err = store.Claim("q1")
	assert.NoError(t, err)
}

func TestSubmitHistoryFailureLeavesSession(t *testing.T) {
	store := NewSessionStore(0)
	store.Put(translationSession("q1", "hello"))

	progress := &MockProgressSink{}
	progress.On("ApplyResult", mock.Anything, mock.Anything, mock.Anything).Return(&models.Progress{}, nil)
	history := &MockHistorySink{}
	history.On("Create", mock.Anything).Return(fmt.Errorf("connection refused"))

	coordinator := NewCoordinator(store, progress, history, quietLogger())
	_, err := coordinator.Submit("q1", []string{"hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to record quiz result")

	_, ok := store.Get("q1")
	assert.True(t, ok)
}

func TestSubmitZeroQuestionSession(t *testing.T) {
	store := NewSessionStore(0)
	store.Put(translationSession("empty"))

	history := &MockHistorySink{}
	history.On("Create", mock.Anything).Return(nil)

	coordinator := NewCoordinator(store, &MockProgressSink{}, history, quietLogger())
	result, err := coordinator.Submit("empty", []string{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalQuestions)
	assert.Equal(t, 0.0, result.ScorePercentage)
}
