package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/qfeat/pkg/qfeat/internalerr"
	"github.com/cognicore/qfeat/pkg/qfeat/question"
	"github.com/cognicore/qfeat/pkg/qfeat/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	corpus_path TEXT NOT NULL,
	created_at TEXT NOT NULL,
	skipped INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS questions (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	type TEXT NOT NULL,
	sub_type TEXT NOT NULL,
	raw TEXT NOT NULL,
	PRIMARY KEY(run_id, position)
);

CREATE TABLE IF NOT EXISTS question_terms (
	run_id TEXT NOT NULL,
	question_pos INTEGER NOT NULL,
	position INTEGER NOT NULL,
	term TEXT NOT NULL,
	PRIMARY KEY(run_id, question_pos, position)
);

CREATE INDEX IF NOT EXISTS idx_questions_sub_type ON questions(run_id, sub_type);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts a run, replacing any run with the same ID
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("run id is required: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteRun(ctx, tx, r.ID); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, corpus_path, created_at, skipped) VALUES (?, ?, ?, ?)`,
		r.ID, r.CorpusPath, r.CreatedAt.UTC().Format(time.RFC3339Nano), r.Skipped)
	if err != nil {
		return err
	}

	if err := insertQuestions(ctx, tx, r.ID, r.Questions); err != nil {
		return err
	}

	return tx.Commit()
}

func deleteRun(ctx context.Context, tx *sql.Tx, id string) error {
	for _, stmt := range []string{
		`DELETE FROM question_terms WHERE run_id=?`,
		`DELETE FROM questions WHERE run_id=?`,
		`DELETE FROM runs WHERE id=?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}
	return nil
}

func insertQuestions(ctx context.Context, tx *sql.Tx, runID string, qs []question.Info) error {
	if len(qs) == 0 {
		return nil
	}
	qStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (run_id, position, type, sub_type, raw) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer qStmt.Close()

	tStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO question_terms (run_id, question_pos, position, term) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer tStmt.Close()

	for i, q := range qs {
		if _, err := qStmt.ExecContext(ctx, runID, i, string(q.Type()), string(q.SubType()), q.Raw()); err != nil {
			return err
		}
		for j, term := range q.Terms() {
			if _, err := tStmt.ExecContext(ctx, runID, i, j, term.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetRun retrieves a run with its questions in load order
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	var (
		r       store.Run
		created string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, corpus_path, created_at, skipped
FROM runs
WHERE id = ?;
`, id).Scan(&r.ID, &r.CorpusPath, &created, &r.Skipped)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}
	r.CreatedAt = parseTime(created)

	r.Questions, err = s.loadQuestions(ctx, `
SELECT position, type, sub_type, raw
FROM questions
WHERE run_id = ?
ORDER BY position;
`, id)
	if err != nil {
		return store.Run{}, false, err
	}
	return r, true, nil
}

// ListRuns returns run summaries, newest first
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT r.id, r.corpus_path, r.created_at, r.skipped,
	(SELECT COUNT(*) FROM questions q WHERE q.run_id = r.id)
FROM runs r
ORDER BY r.id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.RunSummary
	for rows.Next() {
		var (
			sum     store.RunSummary
			created string
		)
		if err := rows.Scan(&sum.ID, &sum.CorpusPath, &created, &sum.Skipped, &sum.Questions); err != nil {
			return nil, err
		}
		sum.CreatedAt = parseTime(created)
		runs = append(runs, sum)
	}
	return runs, rows.Err()
}

// QuestionsBySubType returns the questions of a run labelled st
func (s *sqliteStore) QuestionsBySubType(ctx context.Context, id string, st question.SubType) ([]question.Info, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return s.loadQuestions(ctx, `
SELECT position, type, sub_type, raw
FROM questions
WHERE run_id = ? AND sub_type = ?
ORDER BY position;
`, id, string(st))
}

// loadQuestions runs query, which selects (position, type, sub_type, raw)
// with the run ID as its first argument, and attaches each question's terms.
func (s *sqliteStore) loadQuestions(ctx context.Context, query string, args ...interface{}) ([]question.Info, error) {
	type row struct {
		pos          int
		typ, sub, rw string
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var pending []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.pos, &r.typ, &r.sub, &r.rw); err != nil {
			rows.Close()
			return nil, err
		}
		pending = append(pending, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	runID := args[0]
	out := make([]question.Info, 0, len(pending))
	for _, r := range pending {
		terms, err := s.loadStringColumn(ctx,
			`SELECT term FROM question_terms WHERE run_id=? AND question_pos=? ORDER BY position`,
			runID, r.pos)
		if err != nil {
			return nil, err
		}
		info, err := question.NewInfo(question.Type(r.typ), question.SubType(r.sub), question.Terms(terms...), r.rw)
		if err != nil {
			return nil, fmt.Errorf("stored question %d: %w", r.pos, err)
		}
		out = append(out, info)
	}
	return out, nil
}

func (s *sqliteStore) loadStringColumn(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var val string
		if err := rows.Scan(&val); err != nil {
			return nil, err
		}
		result = append(result, val)
	}
	return result, rows.Err()
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return time.Time{}
}
