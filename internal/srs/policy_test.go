package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetDaysTable(t *testing.T) {
	expected := map[int]int{0: 1, 1: 3, 2: 7, 3: 14, 4: 30, 5: 60}
	for mastery, days := range expected {
		assert.Equal(t, days, OffsetDays(mastery), "mastery %d", mastery)
	}
}

func TestApplyFirstEvent(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	p := Apply(nil, 42, true, now)
	assert.Equal(t, 42, p.VocabularyID)
	assert.Equal(t, 1, p.MasteryLevel)
	assert.Equal(t, 1, p.TimesSeen)
	assert.Equal(t, 1, p.TimesCorrect)
	assert.Equal(t, 0, p.TimesIncorrect)
	assert.Equal(t, now, p.LastReviewed)
	assert.Equal(t, now.AddDate(0, 0, 1), p.NextReview)

	p = Apply(nil, 42, false, now)
	assert.Equal(t, 0, p.MasteryLevel)
	assert.Equal(t, 1, p.TimesSeen)
	assert.Equal(t, 0, p.TimesCorrect)
	assert.Equal(t, 1, p.TimesIncorrect)
	assert.Equal(t, now.AddDate(0, 0, 1), p.NextReview)
}

func TestApplySubsequentEvents(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// First correct answer: mastery 1, next review in one day
	first := Apply(nil, 7, true, now)
	require.Equal(t, 1, first.MasteryLevel)

	// Second correct answer: mastery 2, next review in seven days
	second := Apply(&first, 7, true, now)
	assert.Equal(t, 2, second.MasteryLevel)
	assert.Equal(t, 2, second.TimesSeen)
	assert.Equal(t, now.AddDate(0, 0, 7), second.NextReview)

	// Incorrect answer drops back to mastery 1, next review in three days
	third := Apply(&second, 7, false, now)
	assert.Equal(t, 1, third.MasteryLevel)
	assert.Equal(t, 3, third.TimesSeen)
	assert.Equal(t, 2, third.TimesCorrect)
	assert.Equal(t, 1, third.TimesIncorrect)
	assert.Equal(t, now.AddDate(0, 0, 3), third.NextReview)
}

func TestApplyMasteryStaysInRange(t *testing.T) {
	now := time.Now()

	// Repeated incorrect answers never go below zero
	p := Apply(nil, 1, false, now)
	for i := 0; i < 10; i++ {
		p = Apply(&p, 1, false, now)
		assert.Equal(t, 0, p.MasteryLevel)
	}

	// Repeated correct answers never exceed five
	p = Apply(nil, 2, true, now)
	for i := 0; i < 10; i++ {
		p = Apply(&p, 2, true, now)
		assert.GreaterOrEqual(t, p.MasteryLevel, 0)
		assert.LessOrEqual(t, p.MasteryLevel, 5)
	}
	assert.Equal(t, 5, p.MasteryLevel)
	assert.Equal(t, now.AddDate(0, 0, 60), p.NextReview)
}

func TestApplyCounterInvariant(t *testing.T) {
	now := time.Now()
	outcomes := []bool{true, false, false, true, true, true, false, true}

	p := Apply(nil, 3, outcomes[0], now)
	for _, correct := range outcomes[1:] {
		p = Apply(&p, 3, correct, now)
	}
	assert.Equal(t, len(outcomes), p.TimesSeen)
	assert.Equal(t, p.TimesSeen, p.TimesCorrect+p.TimesIncorrect)
}
