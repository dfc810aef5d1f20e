package personal

// #region imports
import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #endregion

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS feedback_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id     TEXT NOT NULL,
	content_id  TEXT NOT NULL,
	tags        TEXT NOT NULL,
	helpful     INTEGER,
	locale      TEXT NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feedback_user ON feedback_log(user_id);

CREATE TABLE IF NOT EXISTS preferences (
	user_id  TEXT NOT NULL,
	key      TEXT NOT NULL,
	value    TEXT NOT NULL,
	PRIMARY KEY (user_id, key)
);
`

// #endregion schema

// #region store-struct
// SQLiteStore is the default Store backend: one append-only feedback table
// plus a flat preference table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// #endregion store-struct

// #region preferences
// GetPreferences reads the full preference map for a user.
func (s *SQLiteStore) GetPreferences(ctx context.Context, userID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM preferences WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	defer rows.Close()

	prefs := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		prefs[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate preferences: %w", err)
	}
	return prefs, nil
}

// SetPreference upserts one preference key.
func (s *SQLiteStore) SetPreference(ctx context.Context, userID, key, value string) error {
	if userID == "" || key == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (user_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, key) DO UPDATE SET value = excluded.value`,
		userID, key, value)
	if err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}

// #endregion preferences

// #region feedback
// RecordFeedback appends one feedback row. Append-only: identical calls
// produce distinct rows.
func (s *SQLiteStore) RecordFeedback(ctx context.Context, userID, contentID string, tags []string, helpful *bool, locale string) error {
	if userID == "" || contentID == "" {
		return nil
	}
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	var helpfulVal interface{}
	if helpful != nil {
		if *helpful {
			helpfulVal = 1
		} else {
			helpfulVal = 0
		}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO feedback_log (user_id, content_id, tags, helpful, locale, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, contentID, string(tagsJSON), helpfulVal, locale,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record feedback: %w", err)
	}
	return nil
}

// FeedbackLog returns a user's feedback entries in append order.
func (s *SQLiteStore) FeedbackLog(ctx context.Context, userID string) ([]FeedbackEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT content_id, tags, helpful, locale, created_at
		 FROM feedback_log WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("feedback log: %w", err)
	}
	defer rows.Close()

	var entries []FeedbackEntry
	for rows.Next() {
		var e FeedbackEntry
		var tagsJSON, createdStr string
		var helpful sql.NullInt64
		if err := rows.Scan(&e.ContentID, &tagsJSON, &helpful, &e.Locale, &createdStr); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
		if helpful.Valid {
			v := helpful.Int64 == 1
			e.Helpful = &v
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}
	return entries, nil
}

// #endregion feedback

// #region tags
// TagCounts aggregates tag frequencies across a user's feedback log.
func (s *SQLiteStore) TagCounts(ctx context.Context, userID string) (map[string]int, error) {
	entries, err := s.FeedbackLog(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, e := range entries {
		for _, t := range e.Tags {
			counts[t]++
		}
	}
	return counts, nil
}

// RecommendTags ranks a user's seen tags by frequency descending, ties kept
// in first-seen order.
func (s *SQLiteStore) RecommendTags(ctx context.Context, userID string, limit int) ([]string, error) {
	entries, err := s.FeedbackLog(ctx, userID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	var firstSeen []string
	for _, e := range entries {
		for _, t := range e.Tags {
			if counts[t] == 0 {
				firstSeen = append(firstSeen, t)
			}
			counts[t]++
		}
	}
	return rankTags(counts, firstSeen, limit), nil
}

// #endregion tags
