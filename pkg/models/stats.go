package models

// ProgressStats summarises the learner's progress across all vocabulary
type ProgressStats struct {
	TotalWordsStudied int         `json:"total_words_studied"`
	TotalReviews      int         `json:"total_reviews"`
	TotalCorrect      int         `json:"total_correct"`
	TotalIncorrect    int         `json:"total_incorrect"`
	Accuracy          float64     `json:"accuracy"` // percentage, two decimal places
	MasteryBreakdown  map[int]int `json:"mastery_breakdown"`
}

// VocabularyStats summarises the vocabulary database itself
type VocabularyStats struct {
	TotalVocabulary   int            `json:"total_vocabulary"`
	LearnedVocabulary int            `json:"learned_vocabulary"`
	NewVocabulary     int            `json:"new_vocabulary"`
	HSKLevelCounts    map[int]int    `json:"hsk_level_counts"`
	WordTypeCounts    map[string]int `json:"word_type_counts"`
}
