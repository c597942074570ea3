package ui

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"muserc/internal/config"
	"muserc/internal/domain"
	"muserc/internal/services"
	"muserc/internal/settings"
	"muserc/internal/state"
)

func newTestModel(t *testing.T) (Model, *settings.Store) {
	t.Helper()
	store, err := settings.Open(filepath.Join(t.TempDir(), ".muserc"))
	require.NoError(t, err)
	appState := state.NewState(config.DefaultConfig(), store)
	model := NewModel(config.DefaultConfig(), appState, services.NewMockDetector(), services.NewMockActions())
	return model, store
}

func keyRune(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func asModel(t *testing.T, m tea.Model) Model {
	t.Helper()
	typed, ok := m.(Model)
	require.True(t, ok)
	return typed
}

func cursorTo(t *testing.T, model Model, key domain.Key) Model {
	t.Helper()
	for index, candidate := range domain.Keys() {
		if candidate == key {
			model.state.Cursor = index
			return model
		}
	}
	t.Fatalf("key %s not in table", key)
	return model
}

func TestCycleEnumValue(t *testing.T) {
	model, store := newTestModel(t)
	model = cursorTo(t, model, domain.KeyAutoDownload)

	updated, _ := model.cycleValue()
	_ = asModel(t, updated)

	value, err := store.Get(domain.KeyAutoDownload)
	require.NoError(t, err)
	assert.Equal(t, "allow", value, "ask cycles to the first allowed value")
}

func TestCycleBoolValue(t *testing.T) {
	model, store := newTestModel(t)
	model = cursorTo(t, model, domain.KeyDebug)

	updated, _ := model.cycleValue()
	_ = asModel(t, updated)

	value, _ := store.Get(domain.KeyDebug)
	assert.Equal(t, "true", value)
}

func TestCyclePathKeyRefusesAndHints(t *testing.T) {
	model, store := newTestModel(t)
	model = cursorTo(t, model, domain.KeyMidiPath)

	updated, _ := model.cycleValue()
	next := asModel(t, updated)
	assert.Contains(t, next.status, "enter to edit")
	assert.False(t, store.Snapshot().Explicit(domain.KeyMidiPath))
}

func TestUnsetKey(t *testing.T) {
	model, store := newTestModel(t)
	require.NoError(t, store.Set(domain.KeyAutoDownload, "deny"))
	model.state.Refresh()
	model = cursorTo(t, model, domain.KeyAutoDownload)

	updated, _ := model.handleKey(keyRune("u"))
	_ = asModel(t, updated)

	value, _ := store.Get(domain.KeyAutoDownload)
	assert.Equal(t, "ask", value)
}

func TestEditCommitPersists(t *testing.T) {
	model, store := newTestModel(t)
	model = cursorTo(t, model, domain.KeyMusicxmlPath)

	updated, _ := model.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	editing := asModel(t, updated)
	require.Equal(t, inputEdit, editing.mode)

	editing.input.SetValue("/usr/bin/mscore")
	committed, _ := editing.handleInput(tea.KeyMsg{Type: tea.KeyEnter})
	final := asModel(t, committed)
	assert.Equal(t, inputNone, final.mode)

	value, _ := store.Get(domain.KeyMusicxmlPath)
	assert.Equal(t, "/usr/bin/mscore", value)
}

func TestEditInvalidValueReportsError(t *testing.T) {
	model, store := newTestModel(t)
	model = cursorTo(t, model, domain.KeyAutoDownload)

	updated, _ := model.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	editing := asModel(t, updated)
	editing.input.SetValue("whenever")
	committed, _ := editing.handleInput(tea.KeyMsg{Type: tea.KeyEnter})
	final := asModel(t, committed)

	assert.Contains(t, final.status, "Set error")
	assert.False(t, store.Snapshot().Explicit(domain.KeyAutoDownload))
}

func TestEditEscCancels(t *testing.T) {
	model, _ := newTestModel(t)
	updated, _ := model.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	editing := asModel(t, updated)
	cancelled, _ := editing.handleInput(tea.KeyMsg{Type: tea.KeyEsc})
	final := asModel(t, cancelled)
	assert.Equal(t, inputNone, final.mode)
}

func TestDetectReviewApply(t *testing.T) {
	model, store := newTestModel(t)
	model = cursorTo(t, model, domain.KeyAutoDownload) // non-path key probes everything

	updated, cmd := model.handleKey(keyRune("t"))
	detecting := asModel(t, updated)
	require.True(t, detecting.detecting)
	require.NotNil(t, cmd)

	next, _ := detecting.Update(cmd())
	reviewing := asModel(t, next)
	require.True(t, reviewing.reviewing)
	require.Len(t, reviewing.candidates, 2)

	applied, _ := reviewing.handleReview(keyRune("y"))
	_ = asModel(t, applied)
	value, _ := store.Get(domain.KeyMusicxmlPath)
	assert.Equal(t, "/usr/bin/mscore", value)
}

func TestDetectReviewApplyAllSkipsExplicit(t *testing.T) {
	model, store := newTestModel(t)
	require.NoError(t, store.Set(domain.KeyMusicxmlPath, "/opt/custom/mscore"))
	model.state.Refresh()

	updated, cmd := model.handleKey(keyRune("t"))
	next, _ := asModel(t, updated).Update(cmd())
	reviewing := asModel(t, next)
	require.True(t, reviewing.reviewing)

	applied, _ := reviewing.handleReview(keyRune("a"))
	final := asModel(t, applied)
	assert.False(t, final.reviewing)

	// explicit key untouched, unset key filled in
	musicxml, _ := store.Get(domain.KeyMusicxmlPath)
	assert.Equal(t, "/opt/custom/mscore", musicxml)
	lilypond, _ := store.Get(domain.KeyLilypondPath)
	assert.Equal(t, "/usr/bin/lilypond", lilypond)
}

func TestDeleteRequiresDoubleConfirm(t *testing.T) {
	model, store := newTestModel(t)
	require.NoError(t, store.Set(domain.KeyDebug, "true"))
	model.state.Refresh()

	updated, _ := model.handleKey(keyRune("d"))
	first := asModel(t, updated)
	require.True(t, first.confirming)
	require.Equal(t, 1, first.confirmStep)

	updated, _ = first.handleKey(keyRune("y"))
	second := asModel(t, updated)
	require.Equal(t, 2, second.confirmStep)

	updated, cmd := second.handleKey(keyRune("y"))
	final := asModel(t, updated)
	assert.False(t, final.confirming)
	require.NotNil(t, cmd)

	next, _ := final.Update(cmd())
	done := asModel(t, next)
	assert.Contains(t, done.status, "delete completed")
}

func TestDeleteCancelled(t *testing.T) {
	model, store := newTestModel(t)
	require.NoError(t, store.Set(domain.KeyDebug, "true"))
	model.state.Refresh()

	updated, _ := model.handleKey(keyRune("d"))
	confirming := asModel(t, updated)
	updated, _ = confirming.handleKey(keyRune("n"))
	final := asModel(t, updated)
	assert.False(t, final.confirming)
	assert.True(t, store.Exists())
}

func TestSearchCommit(t *testing.T) {
	model, _ := newTestModel(t)
	updated, _ := model.handleKey(keyRune("/"))
	searching := asModel(t, updated)
	require.Equal(t, inputSearch, searching.mode)

	searching.input.SetValue("lilypond")
	committed, _ := searching.handleInput(tea.KeyMsg{Type: tea.KeyEnter})
	final := asModel(t, committed)
	assert.Equal(t, "lilypond", final.state.SearchQuery)
	assert.NotEmpty(t, final.state.VisibleEntries())
}

func TestTabCompletesPathInput(t *testing.T) {
	model, _ := newTestModel(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "backups"), 0o755))
	model = cursorTo(t, model, domain.KeyMusicxmlPath)

	updated, _ := model.handleKey(keyRune("b"))
	editing := asModel(t, updated)
	require.Equal(t, inputBackup, editing.mode)

	editing.input.SetValue(filepath.Join(dir, "back"))
	completed, _ := editing.handleInput(tea.KeyMsg{Type: tea.KeyTab})
	final := asModel(t, completed)
	assert.Equal(t, filepath.Join(dir, "backups")+string(filepath.Separator), final.input.Value())
}

func TestTabIgnoredForEnumInput(t *testing.T) {
	model, _ := newTestModel(t)
	model = cursorTo(t, model, domain.KeyAutoDownload)
	updated, _ := model.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	editing := asModel(t, updated)

	editing.input.SetValue("as")
	completed, _ := editing.handleInput(tea.KeyMsg{Type: tea.KeyTab})
	final := asModel(t, completed)
	assert.Equal(t, "as", final.input.Value())
}

func TestWatchEventReloads(t *testing.T) {
	model, store := newTestModel(t)
	other, err := settings.Open(store.Path())
	require.NoError(t, err)
	require.NoError(t, other.Set(domain.KeyMidiPath, "/usr/bin/timidity"))

	updated, _ := model.Update(watchMsg{event: services.WatchEvent{}, ok: true})
	final := asModel(t, updated)
	assert.Contains(t, final.status, "reloaded")
	value, _ := store.Get(domain.KeyMidiPath)
	assert.Equal(t, "/usr/bin/timidity", value)
}

func TestConfirmSwallowsOtherKeys(t *testing.T) {
	model, store := newTestModel(t)
	require.NoError(t, store.Set(domain.KeyDebug, "true"))
	model.state.Refresh()
	model.state.Cursor = 3

	updated, _ := model.handleKey(keyRune("d"))
	confirming := asModel(t, updated)
	require.True(t, confirming.confirming)

	for _, stray := range []string{"j", "k", "d", "t"} {
		updated, cmd := confirming.handleKey(keyRune(stray))
		confirming = asModel(t, updated)
		assert.Nil(t, cmd)
		assert.True(t, confirming.confirming, "key %q broke the confirmation", stray)
		assert.Equal(t, 1, confirming.confirmStep, "key %q advanced the confirmation", stray)
		assert.Equal(t, 3, confirming.state.Cursor, "key %q moved the cursor", stray)
	}
}

func TestWatchRemovedEventResetsToDefaults(t *testing.T) {
	model, store := newTestModel(t)
	require.NoError(t, store.Set(domain.KeyMidiPath, "/usr/bin/timidity"))
	model.state.Refresh()
	require.NoError(t, os.Remove(store.Path()))

	updated, _ := model.Update(watchMsg{event: services.WatchEvent{Removed: true}, ok: true})
	final := asModel(t, updated)
	assert.Contains(t, final.status, "removed externally")

	value, _ := store.Get(domain.KeyMidiPath)
	assert.Equal(t, "", value)
	assert.Equal(t, 0, final.state.ExplicitCount())
}

func TestTrimStatusKeepsRunesIntact(t *testing.T) {
	status := "Editing /Noten/Übungsstücke/Frühlingslied.xml"
	trimmed := trimStatus(status, 20)
	assert.True(t, utf8.ValidString(trimmed))
	assert.Equal(t, string([]rune(status)[:16])+"...", trimmed)

	assert.Equal(t, status, trimStatus(status, 0))
	assert.Equal(t, "ok", trimStatus("ok", 10))
}

func TestConfigSnapshotRoundTrip(t *testing.T) {
	model, _ := newTestModel(t)
	model.state.Prefs.Theme = "light"
	model.state.LastBackupDir = "/tmp/backups"

	snapshot := model.ConfigSnapshot()
	assert.Equal(t, "light", snapshot.Theme)
	assert.Equal(t, "/tmp/backups", snapshot.LastBackupDir)
	assert.True(t, snapshot.ConfirmDelete)
}
