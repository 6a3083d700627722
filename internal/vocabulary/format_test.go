package vocabulary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/hsktutor/pkg/models"
)

func TestFormatVocabularyList(t *testing.T) {
	items := []models.VocabularyItem{
		{ID: 1, Chinese: "你好", Pinyin: "nǐ hǎo", English: "hello", WordType: "interjection"},
		{ID: 2, Chinese: "人", Pinyin: "rén", English: "person, people", ExampleSentence: "他是好人。"},
	}

	out := FormatVocabularyList(items)
	assert.Contains(t, out, "**1. 你好** (nǐ hǎo)")
	assert.Contains(t, out, "📖 hello · interjection")
	assert.Contains(t, out, "**2. 人** (rén)")
	assert.Contains(t, out, "💬 Example: 他是好人。")

	assert.Equal(t, "No vocabulary found.", FormatVocabularyList(nil))
}

func TestFormatQuizHidesAnswers(t *testing.T) {
	session := &models.QuizSession{
		ID:       "abcdef12-3456",
		HSKLevel: 1,
		Type:     models.QuizMultipleChoice,
		Questions: []models.Question{
			{
				VocabularyID:  1,
				Text:          "What does '你好' (nǐ hǎo) mean?",
				Choices:       map[string]string{"A": "goodbye", "B": "hello", "C": "thanks", "D": "sorry"},
				CorrectAnswer: "B",
				Type:          models.QuizMultipleChoice,
			},
		},
	}

	out := FormatQuiz(session)
	assert.Contains(t, out, "📝 **Quiz #abcdef12** (HSK 1)")
	assert.Contains(t, out, "Type: Multiple Choice")
	assert.Contains(t, out, "**Question 1:**")
	// Choices come out in letter order
	assert.Contains(t, out, "  A. goodbye\n  B. hello\n  C. thanks\n  D. sorry")
	assert.Contains(t, out, "**Quiz ID:** `abcdef12-3456`")
	assert.NotContains(t, out, "correct")
}

func TestFormatQuizResultGrades(t *testing.T) {
	result := &models.QuizResult{
		QuizID:          "q1",
		TotalQuestions:  2,
		CorrectAnswers:  2,
		ScorePercentage: 100,
		DurationSeconds: 42,
		Results: []models.QuestionResult{
			{QuestionNumber: 1, Question: "What does '人' (rén) mean in English?", UserAnswer: "person", Feedback: "Correct!"},
		},
	}

	out := FormatQuizResult(result)
	assert.Contains(t, out, "**Score:** 2/2 (100%)")
	assert.Contains(t, out, "Excellent! 🌟")
	assert.Contains(t, out, "**Time:** 42 seconds")
	assert.Contains(t, out, "Your answer: person")

	result.ScorePercentage = 40
	assert.Contains(t, FormatQuizResult(result), "Keep practicing! 📚")
}

func TestFormatProgressStats(t *testing.T) {
	out := FormatProgressStats(&models.ProgressStats{
		TotalWordsStudied: 10,
		TotalReviews:      30,
		TotalCorrect:      24,
		TotalIncorrect:    6,
		Accuracy:          80,
		MasteryBreakdown:  map[int]int{0: 2, 2: 5, 5: 3},
	})

	assert.Contains(t, out, "**Words Studied:** 10")
	assert.Contains(t, out, "**Accuracy:** 80%")
	assert.Contains(t, out, "New/Struggling: 2 words")
	assert.Contains(t, out, "Familiar: 5 words")
	assert.Contains(t, out, "Mastered: 3 words")
}

func TestFormatVocabularyStats(t *testing.T) {
	out := FormatVocabularyStats(&models.VocabularyStats{
		TotalVocabulary:   150,
		LearnedVocabulary: 40,
		NewVocabulary:     110,
		HSKLevelCounts:    map[int]int{1: 150},
		WordTypeCounts:    map[string]int{"noun": 80, "verb": 50, "adjective": 20},
	})

	assert.Contains(t, out, "**Total Vocabulary:** 150 words")
	assert.Contains(t, out, "HSK 1: 150 words")
	assert.Contains(t, out, "Noun: 80")
	assert.Contains(t, out, "Verb: 50")
}

func TestFormatQuizHistory(t *testing.T) {
	level := 2
	entries := []models.QuizHistoryEntry{
		{QuizType: "translation", HSKLevel: &level, TotalQuestions: 5, CorrectAnswers: 5, ScorePercentage: 100, CreatedAt: time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)},
		{QuizType: "multiple_choice", HSKLevel: nil, TotalQuestions: 4, CorrectAnswers: 1, ScorePercentage: 25, CreatedAt: time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC)},
	}

	out := FormatQuizHistory(entries)
	assert.Contains(t, out, "🌟 **HSK 2** - 5/5 (100%)")
	assert.Contains(t, out, "📚 **Mixed** - 1/4 (25%)")
	assert.Contains(t, out, "Date: 2025-03-01 10:30")

	assert.Contains(t, FormatQuizHistory(nil), "No quiz history yet")
}
