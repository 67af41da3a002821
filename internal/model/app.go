package model

import (
	"slices"
	"strings"
)

// AppEntry is a single row of the installed-apps enumeration
type AppEntry struct {
	DisplayName string `json:"display_name"`
	Identifier  string `json:"identifier"`
}

// SortKey returns the case-insensitive key used to order entries
func (e AppEntry) SortKey() string {
	return strings.ToLower(e.DisplayName)
}

// SortApps returns a copy of apps ordered by display name, ignoring case.
// Entries are never deduplicated: two apps sharing a display name are both kept.
// Entries with equal sort keys stay in the order the provider returned them.
func SortApps(apps []AppEntry) []AppEntry {
	sorted := slices.Clone(apps)
	slices.SortStableFunc(sorted, func(a, b AppEntry) int {
		return strings.Compare(a.SortKey(), b.SortKey())
	})
	return sorted
}

// FindApp returns the entry with the given identifier
func FindApp(apps []AppEntry, id string) (AppEntry, bool) {
	for _, app := range apps {
		if app.Identifier == id {
			return app, true
		}
	}
	return AppEntry{}, false
}
