package srs

import (
	"time"

	"github.com/example/hsktutor/pkg/models"
)

// Mastery level bounds
const (
	MinMastery = 0
	MaxMastery = 5
)

// reviewOffsets maps a mastery level to the number of days until the
// next review is due: 1, 3, 7, 14, 30, 60.
var reviewOffsets = map[int]int{
	0: 1,
	1: 3,
	2: 7,
	3: 14,
	4: 30,
	5: 60,
}

// OffsetDays returns the review interval in days for the given mastery
// level. Levels outside [0,5] are clamped first.
func OffsetDays(mastery int) int {
	return reviewOffsets[clamp(mastery)]
}

// Apply returns the progress record that results from one scoring
// event. It is a pure function: the caller persists the result.
//
// A missing record starts at mastery 1 (correct) or 0 (incorrect) with
// the first review due one day out. An existing record moves one
// mastery step up or down, clamped to [0,5], and the next review is
// scheduled by the interval for the new level.
func Apply(existing *models.Progress, vocabularyID int, correct bool, now time.Time) models.Progress {
	if existing == nil {
		p := models.Progress{
			VocabularyID: vocabularyID,
			TimesSeen:    1,
			LastReviewed: now,
			NextReview:   now.AddDate(0, 0, 1),
		}
		if correct {
			p.MasteryLevel = 1
			p.TimesCorrect = 1
		} else {
			p.MasteryLevel = 0
			p.TimesIncorrect = 1
		}
		return p
	}

	p := *existing
	if correct {
		p.MasteryLevel = clamp(p.MasteryLevel + 1)
		p.TimesCorrect++
	} else {
		p.MasteryLevel = clamp(p.MasteryLevel - 1)
		p.TimesIncorrect++
	}
	p.TimesSeen++
	p.LastReviewed = now
	p.NextReview = now.AddDate(0, 0, OffsetDays(p.MasteryLevel))
	return p
}

func clamp(mastery int) int {
	if mastery < MinMastery {
		return MinMastery
	}
	if mastery > MaxMastery {
		return MaxMastery
	}
	return mastery
}
