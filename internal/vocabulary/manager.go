package vocabulary

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/example/hsktutor/pkg/models"
)

// VocabularySource supplies vocabulary records
type VocabularySource interface {
	GetByLevel(hskLevel, limit int) ([]models.VocabularyItem, error)
	Stats() (*models.VocabularyStats, error)
}

// ProgressSource supplies learning progress records
type ProgressSource interface {
	LearnedVocabularyIDs() (map[int]bool, error)
	DueForReview(hskLevel, limit int, now time.Time) ([]models.ReviewItem, error)
}

// Manager selects vocabulary for learning sessions
type Manager struct {
	vocab    VocabularySource
	progress ProgressSource

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewManager creates a vocabulary manager. Passing a nil rnd seeds one
// from the current time.
func NewManager(vocab VocabularySource, progress ProgressSource, rnd *rand.Rand) *Manager {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Manager{
		vocab:    vocab,
		progress: progress,
		rnd:      rnd,
	}
}

// NewVocabulary returns up to count unseen items for a level, in random
// order. Items with any progress record are excluded.
func (m *Manager) NewVocabulary(hskLevel, count int) ([]models.VocabularyItem, error) {
	pool, err := m.vocab.GetByLevel(hskLevel, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary pool: %v", err)
	}

	learned, err := m.progress.LearnedVocabularyIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to load learned vocabulary: %v", err)
	}

	fresh := make([]models.VocabularyItem, 0, len(pool))
	for _, item := range pool {
		if !learned[item.ID] {
			fresh = append(fresh, item)
		}
	}

	m.mu.Lock()
	m.rnd.Shuffle(len(fresh), func(i, j int) {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	})
	m.mu.Unlock()

	if count < len(fresh) {
		fresh = fresh[:count]
	}
	return fresh, nil
}

// ForReview returns vocabulary due for spaced-repetition review,
// soonest first. A level of 0 includes all levels.
func (m *Manager) ForReview(hskLevel, count int) ([]models.ReviewItem, error) {
	return m.progress.DueForReview(hskLevel, count, time.Now())
}

// Statistics returns counts describing the vocabulary database
func (m *Manager) Statistics() (*models.VocabularyStats, error) {
	return m.vocab.Stats()
}
