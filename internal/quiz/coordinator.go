package quiz

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/hsktutor/pkg/models"
)

// ProgressSink persists one scoring event per vocabulary item
type ProgressSink interface {
	ApplyResult(vocabularyID int, correct bool, now time.Time) (*models.Progress, error)
}

// HistorySink records one aggregate entry per completed quiz
type HistorySink interface {
	Create(entry *models.QuizHistoryEntry) error
}

// Coordinator drives quiz submission: it scores every answer, updates
// progress per item, records one history entry, and retires the session.
type Coordinator struct {
	sessions *SessionStore
	progress ProgressSink
	history  HistorySink
	log      *logrus.Logger
}

// NewCoordinator creates a submission coordinator
func NewCoordinator(sessions *SessionStore, progress ProgressSink, history HistorySink, log *logrus.Logger) *Coordinator {
	return &Coordinator{
		sessions: sessions,
		progress: progress,
		history:  history,
		log:      log,
	}
}

// Submit scores the answers for an active quiz session. On success the
// session is removed and cannot be submitted again. If persisting the
// results fails the session is released back to the store, so the
// caller can retry; only a successful submission consumes the session.
func (c *Coordinator) Submit(quizID string, answers []string) (*models.QuizResult, error) {
	session, err := c.sessions.Claim(quizID)
	if err != nil {
		return nil, err
	}

	if len(answers) != len(session.Questions) {
		c.sessions.Release(quizID)
		return nil, &AnswerCountMismatchError{
			Expected: len(session.Questions),
			Received: len(answers),
		}
	}

	now := time.Now()
	results := make([]models.QuestionResult, 0, len(session.Questions))
	correctCount := 0
	var updateErr error

	for i, question := range session.Questions {
		isCorrect, feedback := Score(question, answers[i])
		if isCorrect {
			correctCount++
		}

		results = append(results, models.QuestionResult{
			QuestionNumber: i + 1,
			Question:       question.Text,
			UserAnswer:     answers[i],
			CorrectAnswer:  question.CorrectAnswer,
			IsCorrect:      isCorrect,
			Feedback:       feedback,
		})

		// Scoring never depends on persistence; keep attempting the
		// remaining updates even after a failure.
		if _, err := c.progress.ApplyResult(question.VocabularyID, isCorrect, now); err != nil {
			c.log.WithError(err).WithFields(logrus.Fields{
				"quiz_id":  quizID,
				"vocab_id": question.VocabularyID,
			}).Error("failed to update progress")
			updateErr = err
		}
	}

	if updateErr != nil {
		c.sessions.Release(quizID)
		return nil, fmt.Errorf("failed to persist progress updates: %v", updateErr)
	}

	total := len(session.Questions)
	score := 0.0
	if total > 0 {
		score = math.Round(float64(correctCount)/float64(total)*1000) / 10
	}
	duration := int(now.Sub(session.StartTime).Seconds())

	level := session.HSKLevel
	entry := &models.QuizHistoryEntry{
		QuizType:        string(session.Type),
		HSKLevel:        &level,
		TotalQuestions:  total,
		CorrectAnswers:  correctCount,
		ScorePercentage: score,
		DurationSeconds: duration,
	}
	if err := c.history.Create(entry); err != nil {
		c.sessions.Release(quizID)
		return nil, fmt.Errorf("failed to record quiz result: %v", err)
	}

	session.Completed = true
	c.sessions.Remove(quizID)

	c.log.WithFields(logrus.Fields{
		"quiz_id":   quizID,
		"hsk_level": session.HSKLevel,
		"correct":   correctCount,
		"total":     total,
	}).Info("quiz submitted")

	return &models.QuizResult{
		QuizID:           quizID,
		TotalQuestions:   total,
		CorrectAnswers:   correctCount,
		IncorrectAnswers: total - correctCount,
		ScorePercentage:  score,
		DurationSeconds:  duration,
		Results:          results,
	}, nil
}
