// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package journal records executed console lines in a SQLite database.
//
// The journal is an audit trail: every non-blank line, its outcome and
// timing. It does not feed history navigation.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/devconsole/internal/commands"
)

// MemoryPath opens a private in-memory journal.
const MemoryPath = ":memory:"

// Schema is the journal database schema.
const Schema = `
CREATE TABLE IF NOT EXISTS executions (
	id          TEXT PRIMARY KEY,
	session     TEXT NOT NULL,
	line        TEXT NOT NULL,
	command     TEXT NOT NULL,
	args        TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	started_at  INTEGER NOT NULL,
	duration_us INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_executions_started ON executions(started_at);
CREATE INDEX IF NOT EXISTS idx_executions_command ON executions(command);
`

// Entry is one journaled execution.
type Entry struct {
	ID       string
	Session  string
	Line     string
	Command  string
	Args     []string
	Outcome  string
	Error    string
	Started  time.Time
	Duration time.Duration
}

// Journal writes executions to SQLite. It implements commands.Observer.
type Journal struct {
	db      *sql.DB
	session string
	logger  *slog.Logger
	timeout time.Duration
}

// Open opens (creating if needed) the journal at path for session.
func Open(path, session string, logger *slog.Logger) (*Journal, error) {
	if path == "" {
		return nil, errors.New("journal path is empty")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// SQLite has one writer; a single connection also keeps an in-memory
	// database alive for the life of the Journal.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{"PRAGMA synchronous=NORMAL", "PRAGMA temp_store=MEMORY"}
	if path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Journal{
		db:      db,
		session: session,
		logger:  logger,
		timeout: 2 * time.Second,
	}, nil
}

// Observe records an execution. Write failures are logged, never
// surfaced to the console.
func (j *Journal) Observe(exec commands.Execution) {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.Record(ctx, exec); err != nil {
		j.logger.Warn("Journal write failed", "command", exec.Command, "error", err)
	}
}

// Record inserts an execution and returns its id.
func (j *Journal) Record(ctx context.Context, exec commands.Execution) (string, error) {
	args := exec.Args
	if args == nil {
		args = []string{}
	}
	argsJSON, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("encode args: %w", err)
	}

	errText := ""
	if exec.Err != nil {
		errText = exec.Err.Error()
	}

	id := uuid.NewString()
	_, err = j.db.ExecContext(ctx, `
		INSERT INTO executions (id, session, line, command, args, outcome, error, started_at, duration_us)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, j.session, exec.Line, exec.Command, string(argsJSON), exec.Outcome.String(), errText,
		exec.Started.UnixNano(), exec.Duration.Microseconds())
	if err != nil {
		return "", fmt.Errorf("insert execution: %w", err)
	}
	return id, nil
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, session, line, command, args, outcome, error, started_at, duration_us
		FROM executions
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("query executions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e         Entry
			argsJSON  string
			startedNs int64
			durUs     int64
		)
		if err := rows.Scan(&e.ID, &e.Session, &e.Line, &e.Command, &argsJSON, &e.Outcome, &e.Error, &startedNs, &durUs); err != nil {
			return nil, fmt.Errorf("scan execution: %w", err)
		}
		if err := json.Unmarshal([]byte(argsJSON), &e.Args); err != nil {
			return nil, fmt.Errorf("decode args: %w", err)
		}
		e.Started = time.Unix(0, startedNs)
		e.Duration = time.Duration(durUs) * time.Microsecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Counts returns the number of executions per outcome.
func (j *Journal) Counts(ctx context.Context) (map[string]int, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM executions GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}

// Session returns the session id entries are recorded under.
func (j *Journal) Session() string {
	return j.session
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
