package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sgoyal/zindagi/internal/models"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id              TEXT NOT NULL,
	name                 TEXT NOT NULL,
	custom_items         TEXT NOT NULL DEFAULT '[]',
	notification_enabled INTEGER NOT NULL DEFAULT 0,
	notification_time    TEXT NOT NULL DEFAULT '20:00',
	last_active_date     TEXT,
	created_at           TEXT NOT NULL,
	PRIMARY KEY (user_id, name)
);

CREATE TABLE IF NOT EXISTS entry_values (
	user_id TEXT NOT NULL,
	profile TEXT NOT NULL,
	date    TEXT NOT NULL,
	item    TEXT NOT NULL,
	value   INTEGER NOT NULL,
	PRIMARY KEY (user_id, profile, date, item)
);
`

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'zindagi init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) CreateProfile(userID string, p models.Profile) error {
	itemsJSON, err := json.Marshal(p.CustomItems)
	if err != nil {
		return fmt.Errorf("failed to marshal custom items: %w", err)
	}

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	notificationTime := p.NotificationTime
	if notificationTime == "" {
		notificationTime = "20:00"
	}

	var lastActive sql.NullString
	if p.LastActiveDate != "" {
		lastActive = sql.NullString{String: p.LastActiveDate, Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO profiles (user_id, name, custom_items, notification_enabled, notification_time, last_active_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, p.Name, string(itemsJSON), p.NotificationEnabled, notificationTime, lastActive, createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to create profile %q: %w", p.Name, err)
	}
	return nil
}

func (s *SQLiteStore) GetProfile(userID, name string) (models.Profile, error) {
	row := s.db.QueryRow(`
		SELECT name, custom_items, notification_enabled, notification_time, last_active_date, created_at
		FROM profiles WHERE user_id = ? AND name = ?`, userID, name)

	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return models.Profile{}, fmt.Errorf("profile %q: %w", name, ErrNotFound)
	}
	return p, err
}

func (s *SQLiteStore) ListProfiles(userID string) ([]models.Profile, error) {
	rows, err := s.db.Query(`
		SELECT name, custom_items, notification_enabled, notification_time, last_active_date, created_at
		FROM profiles WHERE user_id = ? ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	var itemsJSON, createdAt string
	var lastActive sql.NullString

	err := row.Scan(&p.Name, &itemsJSON, &p.NotificationEnabled, &p.NotificationTime, &lastActive, &createdAt)
	if err != nil {
		return models.Profile{}, err
	}

	if err := json.Unmarshal([]byte(itemsJSON), &p.CustomItems); err != nil {
		return models.Profile{}, fmt.Errorf("failed to parse custom items for %q: %w", p.Name, err)
	}
	if lastActive.Valid {
		p.LastActiveDate = lastActive.String
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		p.CreatedAt = t
	}

	return p, nil
}

func (s *SQLiteStore) UpdateCustomItems(userID, name string, items []string) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal custom items: %w", err)
	}

	res, err := s.db.Exec("UPDATE profiles SET custom_items = ? WHERE user_id = ? AND name = ?",
		string(itemsJSON), userID, name)
	if err != nil {
		return err
	}
	return requireRow(res, name)
}

func (s *SQLiteStore) UpdateNotificationSettings(userID, name string, enabled bool, timeHHMM string) error {
	res, err := s.db.Exec("UPDATE profiles SET notification_enabled = ?, notification_time = ? WHERE user_id = ? AND name = ?",
		enabled, timeHHMM, userID, name)
	if err != nil {
		return err
	}
	return requireRow(res, name)
}

// TouchLastActive merge-writes only the last_active_date field, creating
// the profile record on first write if it does not exist yet.
func (s *SQLiteStore) TouchLastActive(userID, name, date string) error {
	_, err := s.db.Exec(`
		INSERT INTO profiles (user_id, name, last_active_date, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, name) DO UPDATE SET last_active_date = excluded.last_active_date`,
		userID, name, date, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// DeleteProfile removes every daily-entry row under the profile before
// removing the profile record itself.
func (s *SQLiteStore) DeleteProfile(userID, name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entry_values WHERE user_id = ? AND profile = ?", userID, name); err != nil {
		return fmt.Errorf("failed to delete entries for %q: %w", name, err)
	}

	res, err := tx.Exec("DELETE FROM profiles WHERE user_id = ? AND name = ?", userID, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %q: %w", name, ErrNotFound)
	}

	return tx.Commit()
}

// MergeDailyEntry upserts one row per supplied item. Rows for items not in
// the update are left untouched; the record is never replaced wholesale.
func (s *SQLiteStore) MergeDailyEntry(userID, profile, date string, values map[string]bool) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO entry_values (user_id, profile, date, item, value) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for item, value := range values {
		if _, err := stmt.Exec(userID, profile, date, item, value); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetDailyEntry(userID, profile, date string) (models.DailyEntry, error) {
	entry := models.DailyEntry{Date: date, Values: make(map[string]bool)}

	rows, err := s.db.Query("SELECT item, value FROM entry_values WHERE user_id = ? AND profile = ? AND date = ?",
		userID, profile, date)
	if err != nil {
		return entry, err
	}
	defer rows.Close()

	for rows.Next() {
		var item string
		var value bool
		if err := rows.Scan(&item, &value); err != nil {
			return entry, err
		}
		entry.Values[item] = value
	}

	return entry, rows.Err()
}

func (s *SQLiteStore) HasDailyEntry(userID, profile, date string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM entry_values WHERE user_id = ? AND profile = ? AND date = ?",
		userID, profile, date).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListDailyEntries returns entries most recent first. The date key is a
// zero-padded ISO string, so ordering by it descending is chronological.
func (s *SQLiteStore) ListDailyEntries(userID, profile string) ([]models.DailyEntry, error) {
	rows, err := s.db.Query(`
		SELECT date, item, value FROM entry_values
		WHERE user_id = ? AND profile = ?
		ORDER BY date DESC, item`, userID, profile)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.DailyEntry
	var current *models.DailyEntry
	for rows.Next() {
		var date, item string
		var value bool
		if err := rows.Scan(&date, &item, &value); err != nil {
			return nil, err
		}
		if current == nil || current.Date != date {
			entries = append(entries, models.DailyEntry{Date: date, Values: make(map[string]bool)})
			current = &entries[len(entries)-1]
		}
		current.Values[item] = value
	}

	return entries, rows.Err()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func requireRow(res sql.Result, name string) error {
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %q: %w", name, ErrNotFound)
	}
	return nil
}
