package quiz

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/hsktutor/pkg/models"
)

// choiceLetters are the option labels for multiple-choice questions
var choiceLetters = []string{"A", "B", "C", "D"}

// minChoicePool is the smallest vocabulary pool that can supply one
// correct answer plus three distractors
const minChoicePool = 4

// VocabularySource supplies vocabulary for quiz construction
type VocabularySource interface {
	GetByLevel(hskLevel, limit int) ([]models.VocabularyItem, error)
	GetAll() ([]models.VocabularyItem, error)
}

// Builder generates quiz sessions and registers them in the session
// store. The randomness source is injectable so tests can pin the
// sampling and shuffle outcomes.
type Builder struct {
	vocab    VocabularySource
	sessions *SessionStore

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewBuilder creates a quiz builder. Passing a nil rnd seeds one from
// the current time.
func NewBuilder(vocab VocabularySource, sessions *SessionStore, rnd *rand.Rand) *Builder {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Builder{
		vocab:    vocab,
		sessions: sessions,
		rnd:      rnd,
	}
}

// Build generates a quiz of the given kind. The question count is
// silently reduced to the level's pool size; an empty pool produces a
// valid zero-question session.
func (b *Builder) Build(hskLevel, count int, kind models.QuizType, direction models.Direction) (*models.QuizSession, error) {
	switch kind {
	case models.QuizMultipleChoice:
		return b.buildMultipleChoice(hskLevel, count)
	default:
		return b.buildTranslation(hskLevel, count, direction)
	}
}

func (b *Builder) buildTranslation(hskLevel, count int, direction models.Direction) (*models.QuizSession, error) {
	pool, err := b.vocab.GetByLevel(hskLevel, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary pool: %v", err)
	}

	selected := b.sample(pool, count)

	questions := make([]models.Question, 0, len(selected))
	for _, item := range selected {
		var q models.Question
		if direction == models.EnglishToChinese {
			q = models.Question{
				VocabularyID:  item.ID,
				Text:          fmt.Sprintf("How do you say '%s' in Chinese? (Pinyin: %s)", item.English, item.Pinyin),
				English:       item.English,
				PinyinHint:    item.Pinyin,
				CorrectAnswer: item.Chinese,
				Type:          models.QuizTranslation,
			}
		} else {
			q = models.Question{
				VocabularyID:  item.ID,
				Text:          fmt.Sprintf("What does '%s' (%s) mean in English?", item.Chinese, item.Pinyin),
				Chinese:       item.Chinese,
				Pinyin:        item.Pinyin,
				CorrectAnswer: strings.ToLower(strings.TrimSpace(item.English)),
				Type:          models.QuizTranslation,
			}
		}
		questions = append(questions, q)
	}

	return b.register(hskLevel, models.QuizTranslation, questions), nil
}

func (b *Builder) buildMultipleChoice(hskLevel, count int) (*models.QuizSession, error) {
	fullPool, err := b.vocab.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary pool: %v", err)
	}
	if len(fullPool) < minChoicePool {
		return nil, &InsufficientVocabularyError{
			HSKLevel:  hskLevel,
			Required:  minChoicePool,
			Available: len(fullPool),
		}
	}

	levelPool, err := b.vocab.GetByLevel(hskLevel, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary pool: %v", err)
	}

	selected := b.sample(levelPool, count)

	questions := make([]models.Question, 0, len(selected))
	for _, item := range selected {
		// Distractors come from the full pool, not just this level
		others := make([]models.VocabularyItem, 0, len(fullPool)-1)
		for _, other := range fullPool {
			if other.ID != item.ID {
				others = append(others, other)
			}
		}
		distractors := b.sample(others, 3)

		type candidate struct {
			text    string
			correct bool
		}
		candidates := []candidate{{text: item.English, correct: true}}
		for _, d := range distractors {
			candidates = append(candidates, candidate{text: d.English})
		}

		b.mu.Lock()
		b.rnd.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		b.mu.Unlock()

		choices := make(map[string]string, len(candidates))
		correctLetter := ""
		for i, c := range candidates {
			choices[choiceLetters[i]] = c.text
			if c.correct {
				correctLetter = choiceLetters[i]
			}
		}

		questions = append(questions, models.Question{
			VocabularyID:  item.ID,
			Text:          fmt.Sprintf("What does '%s' (%s) mean?", item.Chinese, item.Pinyin),
			Chinese:       item.Chinese,
			Pinyin:        item.Pinyin,
			Choices:       choices,
			CorrectAnswer: correctLetter,
			Type:          models.QuizMultipleChoice,
		})
	}

	return b.register(hskLevel, models.QuizMultipleChoice, questions), nil
}

// sample draws up to count items without replacement, uniformly at random
func (b *Builder) sample(pool []models.VocabularyItem, count int) []models.VocabularyItem {
	if count > len(pool) {
		count = len(pool)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	shuffled := make([]models.VocabularyItem, len(pool))
	copy(shuffled, pool)
	b.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}

func (b *Builder) register(hskLevel int, kind models.QuizType, questions []models.Question) *models.QuizSession {
	session := &models.QuizSession{
		ID:        uuid.NewString(),
		HSKLevel:  hskLevel,
		Type:      kind,
		Questions: questions,
		StartTime: time.Now(),
	}
	b.sessions.Put(session)
	return session
}
