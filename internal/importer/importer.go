package importer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/hsktutor/internal/database"
	"github.com/example/hsktutor/pkg/models"
)

// VocabularyStore persists imported vocabulary items
type VocabularyStore interface {
	Create(item *models.VocabularyItem) error
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath   string // Path to the JSON, CSV or Excel file
	SheetName  string // Name of the sheet to import (Excel only)
	SkipHeader bool   // Skip the first row (CSV and Excel)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName:  "Sheet1",
		SkipHeader: true,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// jsonVocabulary is the shape of one entry in a vocabulary JSON file.
// The file maps level keys ("hsk1".."hsk6") to entry lists.
type jsonVocabulary struct {
	Chinese         string `json:"chinese"`
	Pinyin          string `json:"pinyin"`
	English         string `json:"english"`
	WordType        string `json:"word_type"`
	ExampleSentence string `json:"example_sentence"`
}

// ImportVocabulary imports vocabulary from a JSON, CSV or Excel file,
// dispatching on the file extension.
func ImportVocabulary(store VocabularyStore, config ImportConfig) (*ImportResult, error) {
	switch strings.ToLower(filepath.Ext(config.FilePath)) {
	case ".json":
		return importFromJSON(store, config)
	case ".csv":
		return importFromCSV(store, config)
	case ".xlsx":
		return importFromExcel(store, config)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(config.FilePath))
	}
}

// importFromJSON imports vocabulary from a level-keyed JSON file
func importFromJSON(store VocabularyStore, config ImportConfig) (*ImportResult, error) {
	data, err := os.ReadFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON file: %v", err)
	}

	var levels map[string][]jsonVocabulary
	if err := json.Unmarshal(data, &levels); err != nil {
		return nil, fmt.Errorf("failed to parse JSON file: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}

	for levelKey, entries := range levels {
		hskLevel, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(levelKey), "hsk"))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Level %q: not a valid HSK level key", levelKey))
			continue
		}

		for _, entry := range entries {
			result.TotalProcessed++
			item := &models.VocabularyItem{
				Chinese:         entry.Chinese,
				Pinyin:          entry.Pinyin,
				English:         entry.English,
				HSKLevel:        hskLevel,
				WordType:        entry.WordType,
				ExampleSentence: entry.ExampleSentence,
			}
			recordOutcome(result, item, store.Create(item))
		}
	}

	return result, nil
}

// importFromCSV imports vocabulary from a CSV file with columns
// chinese, pinyin, english, hsk_level, word_type, example_sentence.
func importFromCSV(store VocabularyStore, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	rowNum := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++
		if rowNum == 1 && config.SkipHeader {
			continue
		}

		result.TotalProcessed++
		if err := importRow(store, row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// importFromExcel imports vocabulary from an Excel sheet laid out like
// the CSV format.
func importFromExcel(store VocabularyStore, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}

	for i, row := range rows {
		if i == 0 && config.SkipHeader {
			continue
		}

		result.TotalProcessed++
		if err := importRow(store, row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importRow parses one tabular row and stores it
func importRow(store VocabularyStore, row []string, result *ImportResult) error {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	item := &models.VocabularyItem{
		Chinese:         cell(0),
		Pinyin:          cell(1),
		English:         cell(2),
		WordType:        cell(4),
		ExampleSentence: cell(5),
	}

	if item.Chinese == "" {
		return fmt.Errorf("chinese word cannot be empty")
	}
	if item.English == "" {
		return fmt.Errorf("english translation cannot be empty")
	}

	level, err := strconv.Atoi(cell(3))
	if err != nil {
		return fmt.Errorf("invalid HSK level %q", cell(3))
	}
	item.HSKLevel = level

	recordOutcome(result, item, store.Create(item))
	return nil
}

// recordOutcome counts a store result, treating duplicates as skips
func recordOutcome(result *ImportResult, item *models.VocabularyItem, err error) {
	if err == nil {
		result.Created++
		return
	}

	var duplicate *database.DuplicateVocabularyError
	if errors.As(err, &duplicate) {
		result.Skipped++
		return
	}

	result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.Chinese, err))
}
