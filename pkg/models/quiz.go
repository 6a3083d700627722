package models

import "time"

// QuizType represents the kind of quiz being taken
type QuizType string

const (
	// QuizTranslation asks for a free-text translation
	QuizTranslation QuizType = "translation"
	// QuizMultipleChoice asks to pick one of four lettered choices
	QuizMultipleChoice QuizType = "multiple_choice"
)

// Direction controls which side of a translation question is shown
type Direction string

const (
	// ChineseToEnglish shows the Chinese form and expects the English translation
	ChineseToEnglish Direction = "chinese_to_english"
	// EnglishToChinese shows the English translation and expects the Chinese form
	EnglishToChinese Direction = "english_to_chinese"
)

// Question is a single quiz question held inside a session.
// CorrectAnswer is never serialised to the caller.
type Question struct {
	VocabularyID  int               `json:"vocab_id"`
	Text          string            `json:"question"`
	Chinese       string            `json:"chinese,omitempty"`
	Pinyin        string            `json:"pinyin,omitempty"`
	English       string            `json:"english,omitempty"`
	PinyinHint    string            `json:"pinyin_hint,omitempty"`
	Choices       map[string]string `json:"choices,omitempty"` // letter -> candidate text
	CorrectAnswer string            `json:"-"`
	Type          QuizType          `json:"question_type"`
}

// QuizSession is an active, not-yet-submitted quiz. Sessions live only
// in process memory; they are never persisted.
type QuizSession struct {
	ID        string     `json:"quiz_id"`
	HSKLevel  int        `json:"hsk_level"`
	Type      QuizType   `json:"quiz_type"`
	Questions []Question `json:"questions"`
	StartTime time.Time  `json:"start_time"`
	Completed bool       `json:"-"`
}

// QuestionResult is the scored outcome of one question
type QuestionResult struct {
	QuestionNumber int    `json:"question_number"`
	Question       string `json:"question"`
	UserAnswer     string `json:"user_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
	Feedback       string `json:"feedback"`
}

// QuizResult is the aggregate outcome of a submitted quiz
type QuizResult struct {
	QuizID           string           `json:"quiz_id"`
	TotalQuestions   int              `json:"total_questions"`
	CorrectAnswers   int              `json:"correct_answers"`
	IncorrectAnswers int              `json:"incorrect_answers"`
	ScorePercentage  float64          `json:"score_percentage"`
	DurationSeconds  int              `json:"duration_seconds"`
	Results          []QuestionResult `json:"results"`
}

// QuizHistoryEntry records one completed quiz in the database.
// HSKLevel is nil for mixed-level quizzes.
type QuizHistoryEntry struct {
	ID              int       `json:"id" db:"id"`
	QuizType        string    `json:"quiz_type" db:"quiz_type"`
	HSKLevel        *int      `json:"hsk_level" db:"hsk_level"`
	TotalQuestions  int       `json:"total_questions" db:"total_questions"`
	CorrectAnswers  int       `json:"correct_answers" db:"correct_answers"`
	ScorePercentage float64   `json:"score_percentage" db:"score_percentage"`
	DurationSeconds int       `json:"duration_seconds" db:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
