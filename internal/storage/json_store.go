package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sgoyal/zindagi/internal/models"
)

type userData struct {
	Profiles map[string]models.Profile             `json:"profiles"`
	Entries  map[string]map[string]map[string]bool `json:"entries"` // profile -> date -> item -> value
}

type Store struct {
	Version int                  `json:"version"`
	Users   map[string]*userData `json:"users"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Users:   make(map[string]*userData),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'zindagi init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Users == nil {
		s.store.Users = make(map[string]*userData)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) user(userID string) (*userData, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	u, ok := s.store.Users[userID]
	if !ok {
		u = &userData{
			Profiles: make(map[string]models.Profile),
			Entries:  make(map[string]map[string]map[string]bool),
		}
		s.store.Users[userID] = u
	}
	if u.Profiles == nil {
		u.Profiles = make(map[string]models.Profile)
	}
	if u.Entries == nil {
		u.Entries = make(map[string]map[string]map[string]bool)
	}
	return u, nil
}

func (s *JSONStore) CreateProfile(userID string, p models.Profile) error {
	u, err := s.user(userID)
	if err != nil {
		return err
	}

	if _, exists := u.Profiles[p.Name]; exists {
		return fmt.Errorf("profile %q already exists", p.Name)
	}

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.NotificationTime == "" {
		p.NotificationTime = "20:00"
	}

	u.Profiles[p.Name] = p
	return s.save()
}

func (s *JSONStore) GetProfile(userID, name string) (models.Profile, error) {
	u, err := s.user(userID)
	if err != nil {
		return models.Profile{}, err
	}

	p, ok := u.Profiles[name]
	if !ok {
		return models.Profile{}, fmt.Errorf("profile %q: %w", name, ErrNotFound)
	}
	return p, nil
}

func (s *JSONStore) ListProfiles(userID string) ([]models.Profile, error) {
	u, err := s.user(userID)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.Profile, 0, len(u.Profiles))
	for _, p := range u.Profiles {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })

	return profiles, nil
}

func (s *JSONStore) UpdateCustomItems(userID, name string, items []string) error {
	u, err := s.user(userID)
	if err != nil {
		return err
	}

	p, ok := u.Profiles[name]
	if !ok {
		return fmt.Errorf("profile %q: %w", name, ErrNotFound)
	}
	p.CustomItems = items
	u.Profiles[name] = p
	return s.save()
}

func (s *JSONStore) UpdateNotificationSettings(userID, name string, enabled bool, timeHHMM string) error {
	u, err := s.user(userID)
	if err != nil {
		return err
	}

	p, ok := u.Profiles[name]
	if !ok {
		return fmt.Errorf("profile %q: %w", name, ErrNotFound)
	}
	p.NotificationEnabled = enabled
	p.NotificationTime = timeHHMM
	u.Profiles[name] = p
	return s.save()
}

func (s *JSONStore) TouchLastActive(userID, name, date string) error {
	u, err := s.user(userID)
	if err != nil {
		return err
	}

	p, ok := u.Profiles[name]
	if !ok {
		// First write creates the profile record implicitly.
		p = models.Profile{Name: name, CreatedAt: time.Now().UTC(), NotificationTime: "20:00"}
	}
	p.LastActiveDate = date
	u.Profiles[name] = p
	return s.save()
}

func (s *JSONStore) DeleteProfile(userID, name string) error {
	u, err := s.user(userID)
	if err != nil {
		return err
	}

	if _, ok := u.Profiles[name]; !ok {
		return fmt.Errorf("profile %q: %w", name, ErrNotFound)
	}

	// Entries go first so a failed save never leaves orphaned entries
	// behind a missing profile.
	delete(u.Entries, name)
	delete(u.Profiles, name)
	return s.save()
}

func (s *JSONStore) MergeDailyEntry(userID, profile, date string, values map[string]bool) error {
	if len(values) == 0 {
		return nil
	}

	u, err := s.user(userID)
	if err != nil {
		return err
	}

	dates, ok := u.Entries[profile]
	if !ok {
		dates = make(map[string]map[string]bool)
		u.Entries[profile] = dates
	}
	entry, ok := dates[date]
	if !ok {
		entry = make(map[string]bool)
		dates[date] = entry
	}
	for item, value := range values {
		entry[item] = value
	}

	return s.save()
}

func (s *JSONStore) GetDailyEntry(userID, profile, date string) (models.DailyEntry, error) {
	entry := models.DailyEntry{Date: date, Values: make(map[string]bool)}

	u, err := s.user(userID)
	if err != nil {
		return entry, err
	}

	for item, value := range u.Entries[profile][date] {
		entry.Values[item] = value
	}
	return entry, nil
}

func (s *JSONStore) HasDailyEntry(userID, profile, date string) (bool, error) {
	u, err := s.user(userID)
	if err != nil {
		return false, err
	}
	return len(u.Entries[profile][date]) > 0, nil
}

func (s *JSONStore) ListDailyEntries(userID, profile string) ([]models.DailyEntry, error) {
	u, err := s.user(userID)
	if err != nil {
		return nil, err
	}

	var entries []models.DailyEntry
	for date, values := range u.Entries[profile] {
		if len(values) == 0 {
			continue
		}
		e := models.DailyEntry{Date: date, Values: make(map[string]bool, len(values))}
		for item, value := range values {
			e.Values[item] = value
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })

	return entries, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
