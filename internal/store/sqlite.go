package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/interviewer/backend/internal/logger"
)

// Timestamps are TEXT in RFC 3339 form, written by Go and by SQLite alike.
const (
	timestampFormat = "%Y-%m-%dT%H:%M:%fZ"
	timeLayout      = time.RFC3339Nano
)

var schema = strings.ReplaceAll(`
CREATE TABLE IF NOT EXISTS guides (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    guide_name TEXT NOT NULL UNIQUE,
    guide_description TEXT NOT NULL DEFAULT '',
    source_file TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT (strftime('@TS@', 'now')),
    updated_at TEXT NOT NULL DEFAULT (strftime('@TS@', 'now'))
);

CREATE TABLE IF NOT EXISTS guide_metadata (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    guide_id INTEGER NOT NULL UNIQUE,
    created_date TEXT NOT NULL DEFAULT '',
    updated_date TEXT NOT NULL DEFAULT '',
    target_audience TEXT NOT NULL DEFAULT '',
    covered_versions TEXT NOT NULL DEFAULT '',
    language TEXT NOT NULL DEFAULT '',
    difficulty_level TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    total_questions INTEGER NOT NULL DEFAULT 0,
    total_chapters INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (guide_id) REFERENCES guides(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS chapters (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    guide_id INTEGER NOT NULL,
    chapter_number INTEGER NOT NULL,
    chapter_title TEXT NOT NULL,
    chapter_description TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (guide_id) REFERENCES guides(id) ON DELETE CASCADE,
    UNIQUE (guide_id, chapter_number)
);

CREATE TABLE IF NOT EXISTS questions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chapter_id INTEGER NOT NULL,
    question_number INTEGER NOT NULL,
    question_number_in_chapter INTEGER NOT NULL,
    question_title TEXT NOT NULL,
    answer_markdown TEXT NOT NULL DEFAULT '',
    best_practices TEXT NOT NULL DEFAULT '[]',
    tags TEXT NOT NULL DEFAULT '[]',
    difficulty TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (chapter_id) REFERENCES chapters(id) ON DELETE CASCADE,
    UNIQUE (chapter_id, question_number)
);

CREATE TABLE IF NOT EXISTS question_subsections (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id INTEGER NOT NULL,
    subsection_order INTEGER NOT NULL,
    subsection_title TEXT NOT NULL,
    subsection_content_markdown TEXT NOT NULL DEFAULT '',
    subsection_type TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE,
    UNIQUE (question_id, subsection_order)
);

CREATE TABLE IF NOT EXISTS user_statistics (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    guide_id INTEGER NOT NULL UNIQUE,
    overall_score REAL NOT NULL DEFAULT 0,
    total_answered INTEGER NOT NULL DEFAULT 0,
    total_questions INTEGER NOT NULL DEFAULT 0,
    last_activity TEXT NOT NULL DEFAULT (strftime('@TS@', 'now')),
    FOREIGN KEY (guide_id) REFERENCES guides(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS chapter_statistics (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chapter_id INTEGER NOT NULL UNIQUE,
    chapter_score REAL NOT NULL DEFAULT 0,
    answered_count INTEGER NOT NULL DEFAULT 0,
    total_questions INTEGER NOT NULL DEFAULT 0,
    last_activity TEXT NOT NULL DEFAULT (strftime('@TS@', 'now')),
    FOREIGN KEY (chapter_id) REFERENCES chapters(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS question_statistics (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id INTEGER NOT NULL UNIQUE,
    answer_score INTEGER CHECK (answer_score IS NULL OR answer_score BETWEEN 0 AND 5),
    answered_at TEXT,
    attempts_count INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (question_id) REFERENCES questions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_chapters_guide ON chapters(guide_id);
CREATE INDEX IF NOT EXISTS idx_questions_chapter ON questions(chapter_id);
CREATE INDEX IF NOT EXISTS idx_subsections_question ON question_subsections(question_id);
CREATE INDEX IF NOT EXISTS idx_question_stats_score ON question_statistics(answer_score);

-- A question score change refreshes its chapter aggregates.
CREATE TRIGGER IF NOT EXISTS recompute_chapter_statistics
AFTER UPDATE OF answer_score ON question_statistics
FOR EACH ROW
BEGIN
    UPDATE chapter_statistics
    SET
        chapter_score = COALESCE((
            SELECT ROUND(AVG(qs.answer_score), 2)
            FROM question_statistics qs
            JOIN questions q ON q.id = qs.question_id
            WHERE q.chapter_id = (SELECT chapter_id FROM questions WHERE id = NEW.question_id)
              AND qs.answer_score IS NOT NULL
        ), 0),
        answered_count = (
            SELECT COUNT(*)
            FROM question_statistics qs
            JOIN questions q ON q.id = qs.question_id
            WHERE q.chapter_id = (SELECT chapter_id FROM questions WHERE id = NEW.question_id)
              AND qs.answer_score IS NOT NULL
        ),
        last_activity = strftime('@TS@', 'now')
    WHERE chapter_id = (SELECT chapter_id FROM questions WHERE id = NEW.question_id);
END;

-- A chapter aggregate change refreshes its guide aggregates.
CREATE TRIGGER IF NOT EXISTS recompute_user_statistics
AFTER UPDATE OF chapter_score, answered_count ON chapter_statistics
FOR EACH ROW
BEGIN
    UPDATE user_statistics
    SET
        overall_score = COALESCE((
            SELECT ROUND(AVG(cs.chapter_score), 2)
            FROM chapter_statistics cs
            JOIN chapters c ON c.id = cs.chapter_id
            WHERE c.guide_id = (SELECT guide_id FROM chapters WHERE id = NEW.chapter_id)
              AND cs.answered_count > 0
        ), 0),
        total_answered = COALESCE((
            SELECT SUM(cs.answered_count)
            FROM chapter_statistics cs
            JOIN chapters c ON c.id = cs.chapter_id
            WHERE c.guide_id = (SELECT guide_id FROM chapters WHERE id = NEW.chapter_id)
        ), 0),
        last_activity = strftime('@TS@', 'now')
    WHERE guide_id = (SELECT guide_id FROM chapters WHERE id = NEW.chapter_id);
END;
`, "@TS@", timestampFormat)

// Tables in dependency order, parents first.
var tables = []string{
	"guides",
	"guide_metadata",
	"chapters",
	"questions",
	"question_subsections",
	"user_statistics",
	"chapter_statistics",
	"question_statistics",
}

var triggers = []string{
	"recompute_chapter_statistics",
	"recompute_user_statistics",
}

// SQLiteStore is the relational statistics backend. Aggregates are kept
// consistent by the two triggers in the schema.
type SQLiteStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// OpenSQLite opens the database file without touching its schema; call
// Initialize before use.
func OpenSQLite(path string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	// One connection: ATTACH, savepoints and pragmas are per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, unavailable("open sqlite", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: log.With("backend", BackendSQLite),
	}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Initialize creates every schema object that does not exist yet.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return unavailable("apply schema", err)
	}
	return nil
}

// Initialized reports whether every table and trigger is present.
func (s *SQLiteStore) Initialized(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE (type = 'table' AND name IN (`+placeholders(len(tables))+`))
		   OR (type = 'trigger' AND name IN (`+placeholders(len(triggers))+`))
	`, append(toArgs(tables), toArgs(triggers)...)...).Scan(&n)
	if err != nil {
		return false, unavailable("inspect schema", err)
	}
	return n == len(tables)+len(triggers), nil
}

// Reset drops every table and trigger and recreates an empty schema, in
// one transaction.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin reset", err)
	}
	defer tx.Rollback()

	if err := dropAll(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("recreate schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return unavailable("commit reset", err)
	}
	s.logger.Warn("relational store reset")
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func dropAll(ctx context.Context, tx execer) error {
	for _, t := range triggers {
		if _, err := tx.ExecContext(ctx, "DROP TRIGGER IF EXISTS main."+t); err != nil {
			return fmt.Errorf("drop trigger %s: %w", t, err)
		}
	}
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS main."+tables[i]); err != nil {
			return fmt.Errorf("drop table %s: %w", tables[i], err)
		}
	}
	return nil
}

// Counts summarizes what the relational store holds.
type Counts struct {
	Guides    int `json:"guides"`
	Chapters  int `json:"chapters"`
	Questions int `json:"questions"`
	Answered  int `json:"answered"`
}

func (s *SQLiteStore) Counts(ctx context.Context) (Counts, error) {
	return readCounts(ctx, s.db)
}

func readCounts(ctx context.Context, q querier) (Counts, error) {
	var c Counts
	err := q.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM guides),
			(SELECT COUNT(*) FROM chapters),
			(SELECT COUNT(*) FROM questions),
			(SELECT COUNT(*) FROM question_statistics WHERE answer_score IS NOT NULL)
	`).Scan(&c.Guides, &c.Chapters, &c.Questions, &c.Answered)
	if err != nil {
		return Counts{}, unavailable("count rows", err)
	}
	return c, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func toArgs(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}

func timestamp() string {
	return time.Now().UTC().Format(timeLayout)
}

func parseTime(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, v.String)
	if err != nil {
		return nil
	}
	return &t
}
