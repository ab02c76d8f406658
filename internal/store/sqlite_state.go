package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dolist-cli/internal/model"

	_ "modernc.org/sqlite"
)

// Namespace is the fixed key the snapshot is persisted under. It doubles as
// a format marker for forensics; this core makes no cross-version
// compatibility promises.
const Namespace = "dolist.state.v1"

const stateFileName = "state.sqlite"

func (s Store) sqlitePath() string {
	return filepath.Join(filepath.Clean(s.Dir), stateFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage.
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when a CLI and TUI race.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			category_id TEXT NOT NULL,
			completed INTEGER NOT NULL,
			priority TEXT NOT NULL,
			due_unixms INTEGER,
			title TEXT NOT NULL,
			tags_json TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_category ON items(category_id);`,
		`CREATE INDEX IF NOT EXISTS idx_items_completed ON items(completed);`,
		`CREATE INDEX IF NOT EXISTS idx_items_due ON items(due_unixms);`,
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s Store) loadSQLite(ctx context.Context) (*State, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return nil, err
	}

	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM categories`).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		// Fresh workspace: nothing was ever saved.
		return NewState(), nil
	}

	out := &State{Version: 1, Filter: model.DefaultFilter()}

	readMeta := func(k string) string {
		var v string
		_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
		return strings.TrimSpace(v)
	}
	if v := readMeta("version"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			out.Version = n
		}
	}
	if v := readMeta("filter_json"); v != "" {
		var f model.FilterSpec
		// A malformed filter degrades to the default; it is display state,
		// not data.
		if err := json.Unmarshal([]byte(v), &f); err == nil && f.Status != "" {
			out.Filter = f
		}
	}

	items, err := readJSONRows[model.Item](ctx, db, `SELECT json FROM items`)
	if err != nil {
		return nil, err
	}
	cats, err := readJSONRows[model.Category](ctx, db, `SELECT json FROM categories`)
	if err != nil {
		return nil, err
	}
	out.Items = items
	out.Categories = cats

	if out.Items == nil {
		out.Items = []model.Item{}
	}
	if out.Categories == nil {
		out.Categories = []model.Category{}
	}
	EnsureDefaultCategory(out)
	return out, nil
}

func (s Store) saveSQLite(ctx context.Context, st *State) error {
	if st == nil {
		return errors.New("nil state")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	filterJSON, _ := json.Marshal(st.Filter)
	meta := [][2]string{
		{"namespace", Namespace},
		{"version", fmt.Sprintf("%d", st.Version)},
		{"filter_json", string(filterJSON)},
	}
	for _, kv := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, kv[0], kv[1]); err != nil {
			return err
		}
	}

	// Replace-all strategy: simple and safe at this scale.
	for _, t := range []string{"items", "categories"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for _, it := range st.Items {
		raw, _ := json.Marshal(it)
		tagsJSON, _ := json.Marshal(it.Tags)
		var due any
		if it.Due != nil {
			due = it.Due.UTC().UnixMilli()
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO items(
			id, category_id, completed, priority, due_unixms,
			title, tags_json, json, updated_at_unixms
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, it.CategoryID, boolToInt(it.Completed), string(it.Priority), due,
			it.Title, string(tagsJSON), string(raw), nowMs,
		); err != nil {
			return err
		}
	}
	for _, c := range st.Categories {
		raw, _ := json.Marshal(c)
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories(id, name, json, updated_at_unixms) VALUES(?, ?, ?, ?)`,
			c.ID, c.Name, string(raw), nowMs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			// Skip unreadable rows; the workspace must still open.
			continue
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
