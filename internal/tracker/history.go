package tracker

import (
	"fmt"

	"github.com/sgoyal/zindagi/internal/models"
	"github.com/sgoyal/zindagi/internal/storage"
)

// HistoryRow is one date's entry projected onto the current column set.
type HistoryRow struct {
	Date  string
	Cells []models.TriState
}

// History is the read model for a profile's past entries: rows ordered
// most recent first, columns from the profile's current item list. Rows
// holding keys the profile no longer tracks show unset for those columns,
// as do rows predating an item's creation.
type History struct {
	Profile string
	Columns []string
	Rows    []HistoryRow
}

// LoadHistory recomputes the whole table from the store. No diffing, no
// pagination; the dataset is personal-scale.
func LoadHistory(store storage.Provider, userID, profileName string) (History, error) {
	profile, err := store.GetProfile(userID, profileName)
	if err != nil {
		return History{}, fmt.Errorf("failed to load profile: %w", err)
	}

	h := History{Profile: profileName, Columns: profile.CustomItems}

	entries, err := store.ListDailyEntries(userID, profileName)
	if err != nil {
		return h, fmt.Errorf("failed to load entries: %w", err)
	}

	for _, entry := range entries {
		row := HistoryRow{Date: entry.Date, Cells: make([]models.TriState, len(h.Columns))}
		for i, item := range h.Columns {
			if value, ok := entry.Values[item]; ok {
				row.Cells[i] = models.FromBool(value)
			}
		}
		h.Rows = append(h.Rows, row)
	}

	return h, nil
}
