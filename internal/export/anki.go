// Package export renders learned vocabulary as Anki-importable CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/example/hsktutor/pkg/models"
)

// LearnedSource supplies vocabulary the learner has already studied
type LearnedSource interface {
	LearnedItems(hskLevel int) ([]models.ReviewItem, error)
}

// Anki writes learned vocabulary as CSV rows Anki can import directly:
// front, back, tags. The front is the Chinese form, the back combines
// pinyin and English, and the tags carry the HSK level and word type.
func Anki(w io.Writer, items []models.ReviewItem) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"front", "back", "tags"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	for _, item := range items {
		back := fmt.Sprintf("%s - %s", item.Pinyin, item.English)
		if item.ExampleSentence != "" {
			back += fmt.Sprintf("<br>%s", item.ExampleSentence)
		}

		tags := []string{fmt.Sprintf("hsk%d", item.HSKLevel)}
		if item.WordType != "" {
			tags = append(tags, strings.ReplaceAll(item.WordType, " ", "_"))
		}

		if err := writer.Write([]string{item.Chinese, back, strings.Join(tags, " ")}); err != nil {
			return fmt.Errorf("failed to write CSV row: %v", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %v", err)
	}
	return nil
}

// AnkiFromSource loads learned vocabulary and writes it as Anki CSV,
// returning the number of exported cards.
func AnkiFromSource(w io.Writer, source LearnedSource, hskLevel int) (int, error) {
	items, err := source.LearnedItems(hskLevel)
	if err != nil {
		return 0, fmt.Errorf("failed to load learned vocabulary: %v", err)
	}
	if err := Anki(w, items); err != nil {
		return 0, err
	}
	return len(items), nil
}
