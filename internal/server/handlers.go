package server

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/example/hsktutor/internal/database"
	"github.com/example/hsktutor/internal/export"
	"github.com/example/hsktutor/internal/vocabulary"
	"github.com/example/hsktutor/pkg/models"
)

func decodeArgs(raw json.RawMessage, into interface{}) error {
	if err := json.Unmarshal(raw, into); err != nil {
		return &invalidArgumentError{message: fmt.Sprintf("invalid arguments: %v", err)}
	}
	return nil
}

func requireLevel(level int) error {
	if level < 1 || level > 6 {
		return &database.InvalidLevelError{Level: level}
	}
	return nil
}

func (s *Server) learnVocabulary(raw json.RawMessage) (*toolResponse, error) {
	args := struct {
		HSKLevel int `json:"hsk_level"`
		Count    int `json:"count"`
	}{Count: 5}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if err := requireLevel(args.HSKLevel); err != nil {
		return nil, err
	}

	items, err := s.manager.NewVocabulary(args.HSKLevel, args.Count)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return &toolResponse{
			Text: fmt.Sprintf("Great! You've already seen all HSK %d vocabulary. Try a higher level or review existing words.", args.HSKLevel),
		}, nil
	}

	text := fmt.Sprintf("📖 **Learning New HSK %d Vocabulary** (%d words)\n\n", args.HSKLevel, len(items))
	text += vocabulary.FormatVocabularyList(items)
	return &toolResponse{Text: text, Data: items}, nil
}

func (s *Server) getVocabularyByLevel(raw json.RawMessage) (*toolResponse, error) {
	args := struct {
		HSKLevel int `json:"hsk_level"`
		Limit    int `json:"limit"`
	}{Limit: 20}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if err := requireLevel(args.HSKLevel); err != nil {
		return nil, err
	}

	items, err := s.vocab.GetByLevel(args.HSKLevel, args.Limit)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return &toolResponse{Text: fmt.Sprintf("No vocabulary found for HSK %d.", args.HSKLevel)}, nil
	}

	text := fmt.Sprintf("📚 **HSK %d Vocabulary** (showing %d words)\n\n", args.HSKLevel, len(items))
	text += vocabulary.FormatVocabularyList(items)
	return &toolResponse{Text: text, Data: items}, nil
}

func (s *Server) searchVocabulary(raw json.RawMessage) (*toolResponse, error) {
	args := struct {
		SearchTerm string `json:"search_term"`
		HSKLevel   int    `json:"hsk_level"`
	}{}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.SearchTerm == "" {
		return nil, &invalidArgumentError{message: "search_term is required"}
	}

	items, err := s.vocab.Search(args.SearchTerm, args.HSKLevel)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return &toolResponse{Text: fmt.Sprintf("No vocabulary found matching '%s'.", args.SearchTerm)}, nil
	}

	filter := ""
	if args.HSKLevel > 0 {
		filter = fmt.Sprintf(" (HSK %d)", args.HSKLevel)
	}
	text := fmt.Sprintf("🔍 **Search Results for '%s'%s** (%d words)\n\n", args.SearchTerm, filter, len(items))
	text += vocabulary.FormatVocabularyList(items)
	return &toolResponse{Text: text, Data: items}, nil
}

func (s *Server) getVocabularyStatistics(json.RawMessage) (*toolResponse, error) {
	stats, err := s.manager.Statistics()
	if err != nil {
		return nil, err
	}
	return &toolResponse{Text: vocabulary.FormatVocabularyStats(stats), Data: stats}, nil
}

func (s *Server) getVocabularyForReview(raw json.RawMessage) (*toolResponse, error) {
	args := struct {
		HSKLevel int `json:"hsk_level"`
		Count    int `json:"count"`
	}{Count: 10}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.HSKLevel != 0 {
		if err := requireLevel(args.HSKLevel); err != nil {
			return nil, err
		}
	}

	items, err := s.manager.ForReview(args.HSKLevel, args.Count)
	if err != nil {
		return nil, err
	}
	return &toolResponse{Text: vocabulary.FormatReviewList(items), Data: items}, nil
}

func (s *Server) addVocabulary(raw json.RawMessage) (*toolResponse, error) {
	item := models.VocabularyItem{}
	if err := decodeArgs(raw, &item); err != nil {
		return nil, err
	}
	if item.Chinese == "" || item.Pinyin == "" || item.English == "" {
		return nil, &invalidArgumentError{message: "chinese, pinyin and english are required"}
	}

	if err := s.vocab.Create(&item); err != nil {
		return nil, err
	}

	return &toolResponse{
		Text: fmt.Sprintf("✅ Added: %s (%s) - %s [HSK %d]", item.Chinese, item.Pinyin, item.English, item.HSKLevel),
		Data: item,
	}, nil
}

func (s *Server) takeQuiz(raw json.RawMessage) (*toolResponse, error) {
	args := struct {
		HSKLevel     int    `json:"hsk_level"`
		NumQuestions int    `json:"num_questions"`
		QuizType     string `json:"quiz_type"`
		Direction    string `json:"direction"`
	}{
		NumQuestions: 5,
		QuizType:     string(models.QuizTranslation),
		Direction:    string(models.ChineseToEnglish),
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if err := requireLevel(args.HSKLevel); err != nil {
		return nil, err
	}

	kind := models.QuizType(args.QuizType)
	if kind != models.QuizTranslation && kind != models.QuizMultipleChoice {
		return nil, &invalidArgumentError{message: fmt.Sprintf("unknown quiz_type %q", args.QuizType)}
	}
	direction := models.Direction(args.Direction)
	if direction != models.ChineseToEnglish && direction != models.EnglishToChinese {
		return nil, &invalidArgumentError{message: fmt.Sprintf("unknown direction %q", args.Direction)}
	}

	session, err := s.builder.Build(args.HSKLevel, args.NumQuestions, kind, direction)
	if err != nil {
		return nil, err
	}

	text := vocabulary.FormatQuiz(session)
	text += "\n\n💡 **Note:** All questions include pinyin to help with pronunciation."
	return &toolResponse{Text: text, Data: session}, nil
}

func (s *Server) submitQuizAnswers(raw json.RawMessage) (*toolResponse, error) {
	args := struct {
		QuizID  string   `json:"quiz_id"`
		Answers []string `json:"answers"`
	}{}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.QuizID == "" {
		return nil, &invalidArgumentError{message: "quiz_id is required"}
	}

	result, err := s.coordinator.Submit(args.QuizID, args.Answers)
	if err != nil {
		return nil, err
	}
	return &toolResponse{Text: vocabulary.FormatQuizResult(result), Data: result}, nil
}

func (s *Server) getQuizHistory(raw json.RawMessage) (*toolResponse, error) {
	args := struct {
		Limit int `json:"limit"`
	}{Limit: 10}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	entries, err := s.results.Recent(args.Limit)
	if err != nil {
		return nil, err
	}
	return &toolResponse{Text: vocabulary.FormatQuizHistory(entries), Data: entries}, nil
}

func (s *Server) getProgressStats(json.RawMessage) (*toolResponse, error) {
	stats, err := s.progress.Stats()
	if err != nil {
		return nil, err
	}
	return &toolResponse{Text: vocabulary.FormatProgressStats(stats), Data: stats}, nil
}

func (s *Server) exportToAnki(raw json.RawMessage) (*toolResponse, error) {
	args := struct {
		HSKLevel int `json:"hsk_level"`
	}{}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.HSKLevel != 0 {
		if err := requireLevel(args.HSKLevel); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	count, err := export.AnkiFromSource(&buf, s.progress, args.HSKLevel)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return &toolResponse{Text: "No learned vocabulary to export yet. Take some quizzes first! 📝"}, nil
	}

	return &toolResponse{
		Text: fmt.Sprintf("✅ Exported %d cards. Import the CSV below into Anki (File → Import).", count),
		Data: map[string]interface{}{"cards": count, "csv": buf.String()},
	}, nil
}

func (s *Server) clearProgress(raw json.RawMessage) (*toolResponse, error) {
	args := struct {
		Confirm bool `json:"confirm"`
	}{}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	if !args.Confirm {
		return &toolResponse{Text: "⚠️  Progress clearing cancelled. Set 'confirm' to true to proceed."}, nil
	}

	if err := s.progress.ClearAll(); err != nil {
		return nil, err
	}
	return &toolResponse{Text: "✅ All learning progress has been cleared. Vocabulary remains intact. You can start fresh!"}, nil
}
