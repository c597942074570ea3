package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"muserc/internal/config"
	"muserc/internal/domain"
	"muserc/internal/services"
	"muserc/internal/state"
)

type inputMode int

const (
	inputNone inputMode = iota
	inputEdit
	inputBackup
	inputRestore
	inputSearch
)

type Model struct {
	state    *state.State
	detector services.Detector
	actions  services.Actions
	watch    <-chan services.WatchEvent
	keys     KeyMap
	cfg      config.Config

	input   textinput.Model
	mode    inputMode
	editKey domain.Key

	confirming  bool
	confirmStep int

	detecting    bool
	reviewing    bool
	candidates   []services.Candidate
	reviewCursor int

	showHelp bool
	status   string
	width    int
	height   int
	viewTop  int
}

type ConfigProvider interface {
	ConfigSnapshot() config.Config
}

func NewModel(cfg config.Config, appState *state.State, detector services.Detector, actions services.Actions) Model {
	input := textinput.New()
	input.CharLimit = 512
	return Model{
		state:    appState,
		detector: detector,
		actions:  actions,
		keys:     DefaultKeyMap(),
		cfg:      cfg,
		input:    input,
		status:   "Ready - enter edits, t detects tools, ? for help",
		width:    100,
		height:   30,
	}
}

// WithWatch wires external-change notifications into the model.
func (model Model) WithWatch(events <-chan services.WatchEvent) Model {
	model.watch = events
	return model
}

func (model Model) WithStatus(message string) Model {
	if message != "" {
		model.status = message
	}
	return model
}

func (model Model) ConfigSnapshot() config.Config {
	cfg := model.cfg
	cfg.Theme = model.state.Prefs.Theme
	cfg.ConfirmDelete = model.state.Prefs.ConfirmDelete
	cfg.ShowDescriptions = model.state.Prefs.ShowDescriptions
	cfg.LastBackupDir = model.state.LastBackupDir
	return cfg
}

func (model Model) Init() tea.Cmd {
	return model.waitWatchCmd()
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return model.handleKey(typed)
	case tea.WindowSizeMsg:
		model.width = typed.Width
		model.height = typed.Height
		model.ensureCursorVisible()
		return model, nil
	case detectResultMsg:
		model.detecting = false
		if typed.err != nil {
			model.status = fmt.Sprintf("Detect error: %v", typed.err)
			return model, nil
		}
		if len(typed.result.Candidates) == 0 {
			model.status = "No helper applications found"
			return model, nil
		}
		model.reviewing = true
		model.candidates = typed.result.Candidates
		model.reviewCursor = 0
		source := ""
		if typed.result.FromCache {
			source = ", cached"
		}
		model.status = fmt.Sprintf("Found %d candidates (%s%s) - y apply, a apply unset, esc close",
			len(typed.result.Candidates), typed.result.Duration.Round(1e6), source)
		return model, nil
	case actionResultMsg:
		if typed.err != nil {
			model.status = fmt.Sprintf("Action error: %v", typed.err)
			return model, nil
		}
		if typed.result.Type == services.ActionDelete || typed.result.Type == services.ActionRestore {
			model = model.reloadStore()
		}
		model.status = typed.result.Message
		return model, nil
	case watchMsg:
		if !typed.ok {
			return model, nil
		}
		model = model.reloadStore()
		if typed.event.Removed {
			model.status = "Settings file removed externally - using defaults"
		} else {
			model.status = "Settings file changed externally - reloaded"
		}
		return model, model.waitWatchCmd()
	default:
		return model, nil
	}
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Quit) && model.mode == inputNone:
		return model, tea.Quit
	case model.confirming && key.Matches(msg, model.keys.Confirm):
		return model.confirmDelete()
	case model.confirming && key.Matches(msg, model.keys.Cancel):
		model.confirming = false
		model.confirmStep = 0
		model.status = "Delete cancelled"
		return model, nil
	case model.confirming:
		return model, nil
	case model.mode != inputNone:
		return model.handleInput(msg)
	case model.reviewing:
		return model.handleReview(msg)
	case key.Matches(msg, model.keys.Help):
		model.showHelp = !model.showHelp
		return model, nil
	case key.Matches(msg, model.keys.Up):
		if model.state.Cursor > 0 {
			model.state.Cursor--
			model.ensureCursorVisible()
		}
		return model, nil
	case key.Matches(msg, model.keys.Down):
		visible := model.state.VisibleEntries()
		if model.state.Cursor < len(visible)-1 {
			model.state.Cursor++
			model.ensureCursorVisible()
		}
		return model, nil
	case key.Matches(msg, model.keys.Edit):
		entry := model.state.CurrentEntry()
		if entry == nil {
			return model, nil
		}
		model.mode = inputEdit
		model.editKey = entry.Info.Key
		model.input.SetValue(entry.Value)
		model.input.Placeholder = entry.Info.Kind.String()
		model.input.Focus()
		model.status = fmt.Sprintf("Editing %s - enter saves, esc cancels", entry.Info.Key)
		return model, nil
	case key.Matches(msg, model.keys.Cycle):
		return model.cycleValue()
	case key.Matches(msg, model.keys.Unset):
		entry := model.state.CurrentEntry()
		if entry == nil {
			return model, nil
		}
		if err := model.state.Store.Unset(entry.Info.Key); err != nil {
			model.status = fmt.Sprintf("Unset error: %v", err)
			return model, nil
		}
		model.state.Refresh()
		model.status = fmt.Sprintf("%s reverted to default", entry.Info.Key)
		return model, nil
	case key.Matches(msg, model.keys.Detect):
		if model.detecting {
			model.status = "Detection already running"
			return model, nil
		}
		var keys []domain.Key
		if entry := model.state.CurrentEntry(); entry != nil && entry.Info.Kind == domain.KindPath {
			keys = []domain.Key{entry.Info.Key}
		}
		model.detecting = true
		model.status = "Detecting helper applications..."
		return model, model.detectCmd(keys)
	case key.Matches(msg, model.keys.Backup):
		model.mode = inputBackup
		model.input.SetValue(model.state.LastBackupDir)
		model.input.Placeholder = "destination path"
		model.input.Focus()
		model.status = "Backup destination - enter confirms, esc cancels"
		return model, nil
	case key.Matches(msg, model.keys.Restore):
		model.mode = inputRestore
		model.input.SetValue("")
		model.input.Placeholder = "backup file"
		model.input.Focus()
		model.status = "Restore from - enter confirms, esc cancels"
		return model, nil
	case key.Matches(msg, model.keys.DeleteFile):
		if !model.state.Store.Exists() {
			model.status = "No settings file on disk"
			return model, nil
		}
		if !model.state.Prefs.ConfirmDelete {
			return model, model.actionCmd(services.ActionRequest{
				Type:         services.ActionDelete,
				SettingsPath: model.state.Store.Path(),
				ConfirmToken: "confirm",
			})
		}
		model.confirming = true
		model.confirmStep = 1
		model.status = fmt.Sprintf("Delete %s? (y/n)", model.state.Store.Path())
		return model, nil
	case key.Matches(msg, model.keys.Search):
		model.mode = inputSearch
		model.input.SetValue(model.state.SearchQuery)
		model.input.Placeholder = "key or description"
		model.input.Focus()
		model.status = "Search keys - enter applies, esc cancels"
		return model, nil
	case key.Matches(msg, model.keys.ClearFilter):
		model.state.ClearFilter()
		model.status = "Search cleared"
		model.ensureCursorVisible()
		return model, nil
	default:
		return model, nil
	}
}

func (model Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab:
		if model.pathInput() {
			return model.completePath(), nil
		}
		return model, nil
	case tea.KeyEsc:
		mode := model.mode
		model = model.closeInput()
		if mode == inputSearch {
			model.status = "Search cancelled"
		} else {
			model.status = "Input cancelled"
		}
		return model, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(model.input.Value())
		mode := model.mode
		editKey := model.editKey
		model = model.closeInput()
		switch mode {
		case inputEdit:
			if err := model.state.Store.Set(editKey, value); err != nil {
				model.status = fmt.Sprintf("Set error: %v", err)
				return model, nil
			}
			model.state.Refresh()
			model.status = fmt.Sprintf("%s saved", editKey)
			return model, nil
		case inputBackup:
			if value == "" {
				model.status = "Backup destination required"
				return model, nil
			}
			model.state.LastBackupDir = value
			return model, model.actionCmd(services.ActionRequest{
				Type:         services.ActionBackup,
				SettingsPath: model.state.Store.Path(),
				Destination:  value,
			})
		case inputRestore:
			if value == "" {
				model.status = "Restore source required"
				return model, nil
			}
			return model, model.actionCmd(services.ActionRequest{
				Type:         services.ActionRestore,
				SettingsPath: model.state.Store.Path(),
				Destination:  value,
			})
		case inputSearch:
			model.state.SearchQuery = value
			model.state.Cursor = 0
			model.ensureCursorVisible()
			model.status = "Search applied"
			return model, nil
		}
		return model, nil
	default:
		var cmd tea.Cmd
		model.input, cmd = model.input.Update(msg)
		return model, cmd
	}
}

func (model Model) handleReview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Cancel):
		model.reviewing = false
		model.candidates = nil
		model.status = "Detection review closed"
		return model, nil
	case key.Matches(msg, model.keys.Up):
		if model.reviewCursor > 0 {
			model.reviewCursor--
		}
		return model, nil
	case key.Matches(msg, model.keys.Down):
		if model.reviewCursor < len(model.candidates)-1 {
			model.reviewCursor++
		}
		return model, nil
	case key.Matches(msg, model.keys.Confirm), key.Matches(msg, model.keys.Edit):
		if model.reviewCursor >= len(model.candidates) {
			return model, nil
		}
		candidate := model.candidates[model.reviewCursor]
		if err := model.state.Store.Set(candidate.Key, candidate.Path); err != nil {
			model.status = fmt.Sprintf("Set error: %v", err)
			return model, nil
		}
		model.state.Refresh()
		model.status = fmt.Sprintf("%s = %s", candidate.Key, candidate.Path)
		return model, nil
	case key.Matches(msg, model.keys.ApplyAll):
		values := model.state.Store.Snapshot()
		applied := 0
		for _, candidate := range model.candidates {
			if values.Explicit(candidate.Key) {
				continue
			}
			if err := model.state.Store.Set(candidate.Key, candidate.Path); err != nil {
				model.status = fmt.Sprintf("Set error: %v", err)
				return model, nil
			}
			values = model.state.Store.Snapshot()
			applied++
		}
		model.state.Refresh()
		model.reviewing = false
		model.candidates = nil
		model.status = fmt.Sprintf("Applied %d detected paths", applied)
		return model, nil
	default:
		return model, nil
	}
}

func (model Model) cycleValue() (tea.Model, tea.Cmd) {
	entry := model.state.CurrentEntry()
	if entry == nil {
		return model, nil
	}
	info := entry.Info
	var next string
	switch info.Kind {
	case domain.KindBool:
		if entry.Value == "true" {
			next = "false"
		} else {
			next = "true"
		}
	case domain.KindEnum:
		next = info.Values[0]
		for index, allowed := range info.Values {
			if allowed == entry.Value {
				next = info.Values[(index+1)%len(info.Values)]
				break
			}
		}
	default:
		model.status = fmt.Sprintf("%s is a %s - press enter to edit", info.Key, info.Kind)
		return model, nil
	}
	if err := model.state.Store.Set(info.Key, next); err != nil {
		model.status = fmt.Sprintf("Set error: %v", err)
		return model, nil
	}
	model.state.Refresh()
	model.status = fmt.Sprintf("%s = %s", info.Key, next)
	return model, nil
}

func (model Model) confirmDelete() (tea.Model, tea.Cmd) {
	if model.confirmStep == 1 {
		model.confirmStep = 2
		model.status = "This cannot be undone - confirm again (y/n)"
		return model, nil
	}
	model.confirming = false
	model.confirmStep = 0
	return model, model.actionCmd(services.ActionRequest{
		Type:         services.ActionDelete,
		SettingsPath: model.state.Store.Path(),
		ConfirmToken: "confirm",
	})
}

// pathInput reports whether the active input holds a filesystem path.
func (model Model) pathInput() bool {
	switch model.mode {
	case inputBackup, inputRestore:
		return true
	case inputEdit:
		info, ok := domain.Lookup(model.editKey)
		return ok && info.Kind == domain.KindPath
	default:
		return false
	}
}

// completePath expands the typed value against matching filesystem entries:
// a single match replaces the value, several extend it to the shared prefix.
func (model Model) completePath() Model {
	value := model.input.Value()
	if value == "" {
		return model
	}
	matches, err := filepath.Glob(value + "*")
	if err != nil || len(matches) == 0 {
		model.status = "No completion"
		return model
	}
	if len(matches) == 1 {
		completed := matches[0]
		if info, err := os.Stat(completed); err == nil && info.IsDir() {
			completed += string(filepath.Separator)
		}
		model.input.SetValue(completed)
		model.input.CursorEnd()
		return model
	}
	prefix := matches[0]
	for _, match := range matches[1:] {
		for !strings.HasPrefix(match, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	if len(prefix) > len(value) {
		model.input.SetValue(prefix)
		model.input.CursorEnd()
	}
	model.status = fmt.Sprintf("%d matches", len(matches))
	return model
}

func (model Model) closeInput() Model {
	model.mode = inputNone
	model.editKey = ""
	model.input.Blur()
	model.input.SetValue("")
	return model
}

func (model Model) reloadStore() Model {
	if err := model.state.Store.Reload(); err != nil {
		model.status = fmt.Sprintf("Reload error: %v", err)
		return model
	}
	model.state.Refresh()
	model.ensureCursorVisible()
	return model
}

func (model Model) detectCmd(keys []domain.Key) tea.Cmd {
	return func() tea.Msg {
		result, err := model.detector.Detect(context.Background(), services.DetectRequest{Keys: keys})
		return detectResultMsg{result: result, err: err}
	}
}

func (model Model) actionCmd(request services.ActionRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := model.actions.Execute(context.Background(), request)
		return actionResultMsg{result: result, err: err}
	}
}

func (model Model) waitWatchCmd() tea.Cmd {
	if model.watch == nil {
		return nil
	}
	events := model.watch
	return func() tea.Msg {
		event, ok := <-events
		return watchMsg{event: event, ok: ok}
	}
}

func (model *Model) ensureCursorVisible() {
	visible := model.state.VisibleEntries()
	if len(visible) == 0 {
		model.state.Cursor = 0
		model.viewTop = 0
		return
	}
	if model.state.Cursor >= len(visible) {
		model.state.Cursor = len(visible) - 1
	}
	if model.state.Cursor < 0 {
		model.state.Cursor = 0
	}
	listHeight := model.listHeight()
	if listHeight <= 0 {
		return
	}
	if model.state.Cursor < model.viewTop {
		model.viewTop = model.state.Cursor
	}
	if model.state.Cursor >= model.viewTop+listHeight {
		model.viewTop = model.state.Cursor - listHeight + 1
	}
	maxTop := len(visible) - listHeight
	if maxTop < 0 {
		maxTop = 0
	}
	if model.viewTop > maxTop {
		model.viewTop = maxTop
	}
}

func (model *Model) listHeight() int {
	return model.height - 6
}
