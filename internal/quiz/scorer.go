package quiz

import (
	"fmt"
	"strings"

	"github.com/example/hsktutor/pkg/models"
)

// Score checks a raw user answer against a question and returns whether
// it is correct together with a feedback message. Scoring is a pure
// function of its inputs.
func Score(q models.Question, rawAnswer string) (bool, string) {
	if q.Type == models.QuizMultipleChoice {
		return scoreMultipleChoice(q, rawAnswer)
	}
	return scoreTranslation(q, rawAnswer)
}

func scoreMultipleChoice(q models.Question, rawAnswer string) (bool, string) {
	answer := strings.ToUpper(strings.TrimSpace(rawAnswer))
	if answer == q.CorrectAnswer {
		return true, "Correct!"
	}
	return false, fmt.Sprintf("Incorrect. The correct answer is %s: %s",
		q.CorrectAnswer, q.Choices[q.CorrectAnswer])
}

// scoreTranslation matches the answer against the comma-separated
// acceptable variants. Matching is deliberately permissive: equality or
// containment in either direction counts, so "persons" matches the
// variant "person". Do not tighten this.
func scoreTranslation(q models.Question, rawAnswer string) (bool, string) {
	answer := strings.ToLower(strings.TrimSpace(rawAnswer))
	expected := strings.ToLower(strings.TrimSpace(q.CorrectAnswer))

	if answer == "" {
		if expected == "" {
			return true, "Correct!"
		}
		return false, fmt.Sprintf("Incorrect. The correct answer is: %s", q.CorrectAnswer)
	}

	for _, variant := range strings.Split(expected, ",") {
		variant = strings.TrimSpace(variant)
		if answer == variant ||
			strings.Contains(variant, answer) ||
			strings.Contains(answer, variant) {
			return true, "Correct!"
		}
	}
	return false, fmt.Sprintf("Incorrect. The correct answer is: %s", q.CorrectAnswer)
}
