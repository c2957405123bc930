// Package store persists notification history into a single SQLite table,
// so a future history surface can page through past notifications and mark
// them read. Writes are best-effort: a failed insert logs a warning and
// the daemon carries on.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"notid/internal/notification"
)

const createTable = `CREATE TABLE IF NOT EXISTS notifications (
	id INTEGER PRIMARY KEY,
	replaces_id INTEGER,
	app_name TEXT,
	app_icon TEXT,
	summary TEXT,
	body TEXT,
	expire_timeout TEXT,
	hints TEXT,
	actions TEXT,
	is_read BOOLEAN,
	created_at INTEGER
)`

// Store wraps the history database. Safe for use from one goroutine; the
// renderer loop is its only writer.
type Store struct {
	db *sql.DB
}

// DefaultPath resolves the on-disk database location:
// $XDG_DATA_HOME/notid/noti.db, falling back to
// $HOME/.local/share/notid/noti.db.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "notid", "noti.db"), nil
	}
	home := os.Getenv("HOME")
	if home == "" {
		return "", fmt.Errorf("store: neither XDG_DATA_HOME nor HOME is set")
	}
	return filepath.Join(home, ".local", "share", "notid", "noti.db"), nil
}

// Open creates the parent directory and the notifications table if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create table: %w", err)
	}
	return &Store{db: db}, nil
}

// row is the JSON-encoded column set for one notification.
type row struct {
	body, expireTimeout, hints, actions string
}

func encode(n *notification.Notification) (row, error) {
	body, err := json.Marshal(n.Body)
	if err != nil {
		return row{}, fmt.Errorf("store: encode body: %w", err)
	}
	expire, err := json.Marshal(n.Expire)
	if err != nil {
		return row{}, fmt.Errorf("store: encode expire_timeout: %w", err)
	}
	hints, err := json.Marshal(n.Hints)
	if err != nil {
		return row{}, fmt.Errorf("store: encode hints: %w", err)
	}
	actions, err := json.Marshal(n.Actions)
	if err != nil {
		return row{}, fmt.Errorf("store: encode actions: %w", err)
	}
	return row{string(body), string(expire), string(hints), string(actions)}, nil
}

// Insert writes one notification; an existing row with the same id is
// replaced, matching the bus-level replacement semantics.
func (s *Store) Insert(n *notification.Notification) error {
	r, err := encode(n)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO notifications
		 (id, replaces_id, app_name, app_icon, summary, body, expire_timeout, hints, actions, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.ReplacesID, n.AppName, n.AppIcon, n.Summary,
		r.body, r.expireTimeout, r.hints, r.actions, n.IsRead, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("store: insert %d: %w", n.ID, err)
	}
	return nil
}

// Update rewrites every mutable column of an existing row by name.
func (s *Store) Update(n *notification.Notification) error {
	r, err := encode(n)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`UPDATE notifications
		 SET replaces_id = ?, app_name = ?, app_icon = ?, summary = ?, body = ?,
		     expire_timeout = ?, hints = ?, actions = ?, is_read = ?, created_at = ?
		 WHERE id = ?`,
		n.ReplacesID, n.AppName, n.AppIcon, n.Summary,
		r.body, r.expireTimeout, r.hints, r.actions, n.IsRead, n.CreatedAt,
		n.ID,
	)
	if err != nil {
		return fmt.Errorf("store: update %d: %w", n.ID, err)
	}
	return nil
}

// MarkRead flips is_read for one notification.
func (s *Store) MarkRead(id uint32) error {
	if _, err := s.db.Exec(`UPDATE notifications SET is_read = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: mark %d read: %w", id, err)
	}
	return nil
}

// Delete removes one notification from the history.
func (s *Store) Delete(id uint32) error {
	if _, err := s.db.Exec(`DELETE FROM notifications WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: delete %d: %w", id, err)
	}
	return nil
}

// FindByID loads one notification, reporting false when the row is absent.
func (s *Store) FindByID(id uint32) (notification.Notification, bool, error) {
	r := s.db.QueryRow(
		`SELECT id, replaces_id, app_name, app_icon, summary, body, expire_timeout, hints, actions, is_read, created_at
		 FROM notifications WHERE id = ?`, id)
	n, err := scan(r)
	if err == sql.ErrNoRows {
		return notification.Notification{}, false, nil
	}
	if err != nil {
		return notification.Notification{}, false, fmt.Errorf("store: find %d: %w", id, err)
	}
	return n, true, nil
}

// FindAll loads the full history, oldest first.
func (s *Store) FindAll() ([]notification.Notification, error) {
	rows, err := s.db.Query(
		`SELECT id, replaces_id, app_name, app_icon, summary, body, expire_timeout, hints, actions, is_read, created_at
		 FROM notifications ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("store: find all: %w", err)
	}
	defer rows.Close()

	var all []notification.Notification
	for rows.Next() {
		n, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("store: find all: %w", err)
		}
		all = append(all, n)
	}
	return all, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(src scanner) (notification.Notification, error) {
	var n notification.Notification
	var body, expire, hints, actions string
	err := src.Scan(
		&n.ID, &n.ReplacesID, &n.AppName, &n.AppIcon, &n.Summary,
		&body, &expire, &hints, &actions, &n.IsRead, &n.CreatedAt,
	)
	if err != nil {
		return notification.Notification{}, err
	}
	if err := json.Unmarshal([]byte(body), &n.Body); err != nil {
		return notification.Notification{}, err
	}
	if err := json.Unmarshal([]byte(expire), &n.Expire); err != nil {
		return notification.Notification{}, err
	}
	if err := json.Unmarshal([]byte(hints), &n.Hints); err != nil {
		return notification.Notification{}, err
	}
	if err := json.Unmarshal([]byte(actions), &n.Actions); err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
