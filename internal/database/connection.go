package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the shared database connection
var DB *sqlx.DB

// Connect establishes a connection using the DB_DRIVER and DB_PATH /
// DATABASE_URL environment variables. SQLite is the default.
func Connect() error {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "sqlite3"
	}

	var dsn string
	if driver == "postgres" {
		dsn = os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	} else {
		dsn = os.Getenv("DB_PATH")
		if dsn == "" {
			dataDir := "data"
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %v", err)
			}
			dsn = filepath.Join(dataDir, "hsktutor.db")
		}
	}

	return Open(driver, dsn)
}

// Open connects to the given database and initialises the schema.
// Exposed separately so tests can point at an in-memory SQLite database.
func Open(driver, dsn string) error {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if driver == "sqlite3" {
		// Enable foreign keys
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if DB.DriverName() == "postgres" {
		idColumn = "id SERIAL PRIMARY KEY"
	}

	// Vocabulary table: all HSK words and phrases
	_, err := DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS vocabulary (
			%s,
			chinese TEXT NOT NULL,
			pinyin TEXT NOT NULL,
			english TEXT NOT NULL,
			hsk_level INTEGER NOT NULL CHECK(hsk_level BETWEEN 1 AND 6),
			word_type TEXT NOT NULL DEFAULT '',
			example_sentence TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(chinese, hsk_level)
		)
	`, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create vocabulary table: %v", err)
	}

	// User progress table: one row per vocabulary item
	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS user_progress (
			%s,
			vocabulary_id INTEGER NOT NULL,
			mastery_level INTEGER DEFAULT 0 CHECK(mastery_level BETWEEN 0 AND 5),
			times_seen INTEGER DEFAULT 0,
			times_correct INTEGER DEFAULT 0,
			times_incorrect INTEGER DEFAULT 0,
			last_reviewed TIMESTAMP,
			next_review TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (vocabulary_id) REFERENCES vocabulary(id) ON DELETE CASCADE,
			UNIQUE(vocabulary_id)
		)
	`, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create user_progress table: %v", err)
	}

	// Quiz results table: append-only history of completed quizzes
	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS quiz_results (
			%s,
			quiz_type TEXT NOT NULL,
			hsk_level INTEGER CHECK(hsk_level BETWEEN 1 AND 6),
			total_questions INTEGER NOT NULL,
			correct_answers INTEGER NOT NULL,
			score_percentage REAL NOT NULL,
			duration_seconds INTEGER,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create quiz_results table: %v", err)
	}

	indices := []string{
		"CREATE INDEX IF NOT EXISTS idx_vocabulary_hsk ON vocabulary(hsk_level)",
		"CREATE INDEX IF NOT EXISTS idx_progress_mastery ON user_progress(mastery_level)",
		"CREATE INDEX IF NOT EXISTS idx_progress_next_review ON user_progress(next_review)",
	}
	for _, stmt := range indices {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create index: %v", err)
		}
	}

	return nil
}
