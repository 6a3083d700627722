package vocabulary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/hsktutor/pkg/models"
)

var masteryEmoji = [...]string{"🔴", "🟠", "🟡", "🟢", "🔵", "⭐"}

var masteryLabels = map[int]string{
	0: "New/Struggling",
	1: "Learning",
	2: "Familiar",
	3: "Comfortable",
	4: "Good",
	5: "Mastered",
}

// FormatVocabularyList renders a numbered vocabulary list for chat display
func FormatVocabularyList(items []models.VocabularyItem) string {
	if len(items) == 0 {
		return "No vocabulary found."
	}

	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "**%d. %s** (%s)\n   📖 %s", i+1, item.Chinese, item.Pinyin, item.English)
		if item.WordType != "" {
			fmt.Fprintf(&b, " · %s", item.WordType)
		}
		if item.ExampleSentence != "" {
			fmt.Fprintf(&b, "\n   💬 Example: %s", item.ExampleSentence)
		}
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatReviewList renders vocabulary due for review, with mastery markers
func FormatReviewList(items []models.ReviewItem) string {
	if len(items) == 0 {
		return "Nothing is due for review right now. Great job staying on top of your studies! 🎉"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 **Vocabulary Due for Review** (%d words)\n\n", len(items))
	for i, item := range items {
		fmt.Fprintf(&b, "**%d. %s** (%s)\n   📖 %s", i+1, item.Chinese, item.Pinyin, item.English)
		if item.MasteryLevel >= 0 && item.MasteryLevel < len(masteryEmoji) {
			fmt.Fprintf(&b, "\n   %s Mastery: %d/5 | Seen: %dx", masteryEmoji[item.MasteryLevel], item.MasteryLevel, item.TimesSeen)
		}
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatQuiz renders a quiz session without revealing answers
func FormatQuiz(session *models.QuizSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 **Quiz #%s**", shortID(session.ID))
	if session.HSKLevel > 0 {
		fmt.Fprintf(&b, " (HSK %d)", session.HSKLevel)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Type: %s\n", titleQuizType(session.Type))
	fmt.Fprintf(&b, "Questions: %d\n\n", len(session.Questions))

	for i, q := range session.Questions {
		fmt.Fprintf(&b, "**Question %d:**\n%s\n", i+1, q.Text)
		if q.Type == models.QuizMultipleChoice {
			b.WriteString("\nChoices:\n")
			letters := make([]string, 0, len(q.Choices))
			for letter := range q.Choices {
				letters = append(letters, letter)
			}
			sort.Strings(letters)
			for _, letter := range letters {
				fmt.Fprintf(&b, "  %s. %s\n", letter, q.Choices[letter])
			}
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "**Quiz ID:** `%s`\n\n", session.ID)
	b.WriteString("📝 **To submit:** Use the `submit_quiz_answers` tool with this quiz ID and your answers as a list.")
	return b.String()
}

// FormatQuizResult renders a scored quiz with per-question feedback
func FormatQuizResult(result *models.QuizResult) string {
	var grade string
	switch {
	case result.ScorePercentage >= 90:
		grade = "Excellent! 🌟"
	case result.ScorePercentage >= 70:
		grade = "Good job! ✅"
	case result.ScorePercentage >= 50:
		grade = "Not bad! 📝"
	default:
		grade = "Keep practicing! 📚"
	}

	var b strings.Builder
	b.WriteString("🎯 **Quiz Results**\n\n")
	fmt.Fprintf(&b, "**Score:** %d/%d (%g%%)\n", result.CorrectAnswers, result.TotalQuestions, result.ScorePercentage)
	fmt.Fprintf(&b, "**Grade:** %s\n", grade)
	fmt.Fprintf(&b, "**Time:** %d seconds\n\n", result.DurationSeconds)
	b.WriteString("**Detailed Results:**\n")

	for _, r := range result.Results {
		fmt.Fprintf(&b, "\n**Q%d:** %s\n", r.QuestionNumber, r.Question)
		fmt.Fprintf(&b, "  Your answer: %s\n", r.UserAnswer)
		fmt.Fprintf(&b, "  %s\n", r.Feedback)
	}

	b.WriteString("\n💡 **Tip:** Your progress has been updated based on these results!")
	return b.String()
}

// FormatProgressStats renders learner progress statistics
func FormatProgressStats(stats *models.ProgressStats) string {
	var b strings.Builder
	b.WriteString("📊 **Learning Progress Statistics**\n\n")
	fmt.Fprintf(&b, "📚 **Words Studied:** %d\n", stats.TotalWordsStudied)
	fmt.Fprintf(&b, "📝 **Total Reviews:** %d\n", stats.TotalReviews)
	fmt.Fprintf(&b, "✅ **Accuracy:** %g%%\n", stats.Accuracy)
	fmt.Fprintf(&b, "✓ **Correct Answers:** %d\n", stats.TotalCorrect)
	fmt.Fprintf(&b, "✗ **Incorrect Answers:** %d\n\n", stats.TotalIncorrect)
	b.WriteString("🎯 **Mastery Breakdown:**\n")

	levels := make([]int, 0, len(stats.MasteryBreakdown))
	for level := range stats.MasteryBreakdown {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	for _, level := range levels {
		label, ok := masteryLabels[level]
		if !ok {
			label = fmt.Sprintf("Level %d", level)
		}
		fmt.Fprintf(&b, "  %s: %d words\n", label, stats.MasteryBreakdown[level])
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatVocabularyStats renders vocabulary database statistics
func FormatVocabularyStats(stats *models.VocabularyStats) string {
	var b strings.Builder
	b.WriteString("📊 **Vocabulary Database Statistics**\n\n")
	fmt.Fprintf(&b, "📚 **Total Vocabulary:** %d words\n", stats.TotalVocabulary)
	fmt.Fprintf(&b, "✅ **Learned:** %d words\n", stats.LearnedVocabulary)
	fmt.Fprintf(&b, "🆕 **New/Unseen:** %d words\n\n", stats.NewVocabulary)
	b.WriteString("**HSK Level Distribution:**\n")

	for level := 1; level <= 6; level++ {
		count := stats.HSKLevelCounts[level]
		if count == 0 {
			continue
		}
		bar := strings.Repeat("█", minInt(count/10, 50))
		fmt.Fprintf(&b, "  HSK %d: %d words %s\n", level, count, bar)
	}

	b.WriteString("\n**Word Types:**\n")
	type typeCount struct {
		name  string
		count int
	}
	counts := make([]typeCount, 0, len(stats.WordTypeCounts))
	for name, count := range stats.WordTypeCounts {
		counts = append(counts, typeCount{name, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].name < counts[j].name
	})
	if len(counts) > 10 {
		counts = counts[:10]
	}
	for _, tc := range counts {
		fmt.Fprintf(&b, "  %s: %d\n", capitalize(tc.name), tc.count)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatQuizHistory renders recent quiz results, newest first
func FormatQuizHistory(entries []models.QuizHistoryEntry) string {
	if len(entries) == 0 {
		return "No quiz history yet. Take a quiz to get started! 📝"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📜 **Quiz History** (last %d quizzes)\n\n", len(entries))
	for _, entry := range entries {
		hskInfo := "Mixed"
		if entry.HSKLevel != nil {
			hskInfo = fmt.Sprintf("HSK %d", *entry.HSKLevel)
		}

		var emoji string
		switch {
		case entry.ScorePercentage >= 90:
			emoji = "🌟"
		case entry.ScorePercentage >= 70:
			emoji = "✅"
		case entry.ScorePercentage >= 50:
			emoji = "📝"
		default:
			emoji = "📚"
		}

		fmt.Fprintf(&b, "%s **%s** - %d/%d (%g%%)\n", emoji, hskInfo, entry.CorrectAnswers, entry.TotalQuestions, entry.ScorePercentage)
		fmt.Fprintf(&b, "   Type: %s | Date: %s\n\n", entry.QuizType, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func titleQuizType(t models.QuizType) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
