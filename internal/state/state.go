package state

import (
	"strings"

	"muserc/internal/config"
	"muserc/internal/domain"
	"muserc/internal/settings"
)

type Preferences struct {
	Theme            string
	ConfirmDelete    bool
	ShowDescriptions bool
}

// Entry is one row of the editor: a key with its resolved value.
type Entry struct {
	Info     domain.KeyInfo
	Value    string
	Explicit bool
}

type State struct {
	Store         *settings.Store
	Cursor        int
	Prefs         Preferences
	SearchQuery   string
	LastBackupDir string
	entries       []Entry
}

func NewState(cfg config.Config, store *settings.Store) *State {
	appState := &State{
		Store: store,
		Prefs: Preferences{
			Theme:            cfg.Theme,
			ConfirmDelete:    cfg.ConfirmDelete,
			ShowDescriptions: cfg.ShowDescriptions,
		},
		LastBackupDir: cfg.LastBackupDir,
	}
	appState.Refresh()
	return appState
}

// Refresh rebuilds the entry rows from the store.
func (appState *State) Refresh() {
	values := appState.Store.Snapshot()
	keys := domain.Keys()
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		info, _ := domain.Lookup(key)
		entries = append(entries, Entry{
			Info:     info,
			Value:    values.Value(key),
			Explicit: values.Explicit(key),
		})
	}
	appState.entries = entries
	appState.clampCursor()
}

// VisibleEntries returns the rows matching the search filter.
func (appState *State) VisibleEntries() []Entry {
	if appState.SearchQuery == "" {
		return appState.entries
	}
	query := strings.ToLower(appState.SearchQuery)
	visible := make([]Entry, 0, len(appState.entries))
	for _, entry := range appState.entries {
		if strings.Contains(strings.ToLower(string(entry.Info.Key)), query) ||
			strings.Contains(strings.ToLower(entry.Info.Description), query) {
			visible = append(visible, entry)
		}
	}
	return visible
}

func (appState *State) CurrentEntry() *Entry {
	visible := appState.VisibleEntries()
	if len(visible) == 0 || appState.Cursor < 0 || appState.Cursor >= len(visible) {
		return nil
	}
	entry := visible[appState.Cursor]
	return &entry
}

func (appState *State) ExplicitCount() int {
	count := 0
	for _, entry := range appState.entries {
		if entry.Explicit {
			count++
		}
	}
	return count
}

func (appState *State) ClearFilter() {
	appState.SearchQuery = ""
	appState.clampCursor()
}

func (appState *State) clampCursor() {
	visible := appState.VisibleEntries()
	if len(visible) == 0 {
		appState.Cursor = 0
		return
	}
	if appState.Cursor >= len(visible) {
		appState.Cursor = len(visible) - 1
	}
	if appState.Cursor < 0 {
		appState.Cursor = 0
	}
}
