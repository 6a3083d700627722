package quiz

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hsktutor/pkg/models"
)

// fakeVocabularySource serves a fixed vocabulary pool from memory
type fakeVocabularySource struct {
	items []models.VocabularyItem
}

func (f *fakeVocabularySource) GetByLevel(hskLevel, limit int) ([]models.VocabularyItem, error) {
	var out []models.VocabularyItem
	for _, item := range f.items {
		if item.HSKLevel == hskLevel {
			out = append(out, item)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeVocabularySource) GetAll() ([]models.VocabularyItem, error) {
	return f.items, nil
}

func testPool(levelOneCount, levelTwoCount int) *fakeVocabularySource {
	src := &fakeVocabularySource{}
	id := 1
	for i := 0; i < levelOneCount; i++ {
		src.items = append(src.items, models.VocabularyItem{
			ID: id, Chinese: fmt.Sprintf("词%d", id), Pinyin: fmt.Sprintf("ci%d", id),
			English: fmt.Sprintf("word-%d", id), HSKLevel: 1,
		})
		id++
	}
	for i := 0; i < levelTwoCount; i++ {
		src.items = append(src.items, models.VocabularyItem{
			ID: id, Chinese: fmt.Sprintf("词%d", id), Pinyin: fmt.Sprintf("ci%d", id),
			English: fmt.Sprintf("word-%d", id), HSKLevel: 2,
		})
		id++
	}
	return src
}

func newTestBuilder(src VocabularySource) (*Builder, *SessionStore) {
	store := NewSessionStore(0)
	return NewBuilder(src, store, rand.New(rand.NewSource(1))), store
}

func TestBuildTranslationQuiz(t *testing.T) {
	builder, store := newTestBuilder(testPool(10, 0))

	session, err := builder.Build(1, 5, models.QuizTranslation, models.ChineseToEnglish)
	require.NoError(t, err)
	assert.Len(t, session.Questions, 5)
	assert.Equal(t, models.QuizTranslation, session.Type)
	assert.Equal(t, 1, session.HSKLevel)
	assert.NotEmpty(t, session.ID)

	// The built session is registered and resolvable
	got, ok := store.Get(session.ID)
	require.True(t, ok)
	assert.Equal(t, session, got)

	seen := make(map[int]bool)
	for _, q := range session.Questions {
		assert.Equal(t, models.QuizTranslation, q.Type)
		assert.Contains(t, q.Text, q.Chinese)
		assert.Contains(t, q.Text, q.Pinyin)
		// Expected answers are stored lower-cased and trimmed
		assert.Equal(t, q.CorrectAnswer, "word-"+fmt.Sprint(q.VocabularyID))
		// Sampling is without replacement
		assert.False(t, seen[q.VocabularyID])
		seen[q.VocabularyID] = true
	}
}

func TestBuildTranslationEnglishToChinese(t *testing.T) {
	builder, _ := newTestBuilder(testPool(4, 0))

	session, err := builder.Build(1, 2, models.QuizTranslation, models.EnglishToChinese)
	require.NoError(t, err)
	for _, q := range session.Questions {
		assert.Contains(t, q.Text, q.English)
		assert.NotEmpty(t, q.PinyinHint)
		// The exact Chinese form is expected
		assert.Contains(t, q.CorrectAnswer, "词")
	}
}

func TestBuildTranslationReducesCountToPool(t *testing.T) {
	builder, _ := newTestBuilder(testPool(3, 0))

	session, err := builder.Build(1, 10, models.QuizTranslation, models.ChineseToEnglish)
	require.NoError(t, err)
	assert.Len(t, session.Questions, 3)
}

func TestBuildTranslationEmptyPool(t *testing.T) {
	builder, store := newTestBuilder(testPool(0, 4))

	// Nothing at this level: a zero-question session, not an error
	session, err := builder.Build(1, 5, models.QuizTranslation, models.ChineseToEnglish)
	require.NoError(t, err)
	assert.Empty(t, session.Questions)
	_, ok := store.Get(session.ID)
	assert.True(t, ok)
}

func TestBuildMultipleChoiceQuiz(t *testing.T) {
	builder, _ := newTestBuilder(testPool(6, 4))

	session, err := builder.Build(1, 4, models.QuizMultipleChoice, "")
	require.NoError(t, err)
	assert.Len(t, session.Questions, 4)
	assert.Equal(t, models.QuizMultipleChoice, session.Type)

	for _, q := range session.Questions {
		require.Len(t, q.Choices, 4)
		assert.Contains(t, []string{"A", "B", "C", "D"}, q.CorrectAnswer)

		// The correct letter holds the target's translation
		correct := q.Choices[q.CorrectAnswer]
		assert.Equal(t, "word-"+fmt.Sprint(q.VocabularyID), correct)

		// All four candidates are distinct texts
		texts := make(map[string]bool)
		for _, letter := range []string{"A", "B", "C", "D"} {
			require.Contains(t, q.Choices, letter)
			texts[q.Choices[letter]] = true
		}
		assert.Len(t, texts, 4)
	}
}

func TestBuildMultipleChoiceNeedsFourItems(t *testing.T) {
	builder, _ := newTestBuilder(testPool(3, 0))

	_, err := builder.Build(1, 3, models.QuizMultipleChoice, "")
	require.Error(t, err)

	var insufficientErr *InsufficientVocabularyError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 4, insufficientErr.Required)
	assert.Equal(t, 3, insufficientErr.Available)
}

func TestBuildSessionIdentifiersAreUnique(t *testing.T) {
	builder, store := newTestBuilder(testPool(5, 0))

	ids := make(map[string]bool)
	for i := 0; i < 50; i++ {
		session, err := builder.Build(1, 2, models.QuizTranslation, models.ChineseToEnglish)
		require.NoError(t, err)
		assert.False(t, ids[session.ID])
		ids[session.ID] = true
	}
	assert.Equal(t, 50, store.Len())
}
