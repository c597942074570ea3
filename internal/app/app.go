package app

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"muserc/internal/config"
	xlog "muserc/internal/log"
	"muserc/internal/services"
	"muserc/internal/settings"
	"muserc/internal/state"
	"muserc/internal/ui"
)

func Run() error {
	base := config.DefaultConfig()
	loaded, loadErr := config.LoadConfig()
	if loadErr == nil {
		base = loaded
	}
	cfg, ops := config.ParseFlags(base)

	if ops.HasCommand() {
		xlog.Configure(xlog.Config{Level: cfg.LogLevel})
		store, err := settings.Open(ops.File)
		if err != nil {
			return err
		}
		return runCommand(os.Stdout, os.Stdin, store, ops)
	}

	// The TUI owns stdout; logs go to the configured file or nowhere.
	var sink io.Writer = io.Discard
	if cfg.LogFile != "" {
		if file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
			defer file.Close()
			sink = file
		}
	}
	xlog.Configure(xlog.Config{Level: cfg.LogLevel, Output: sink})

	store, err := settings.Open(ops.File)
	if err != nil {
		return err
	}

	appState := state.NewState(cfg, store)
	detector := services.NewToolDetector()
	actions := services.NewFileActions()

	model := ui.NewModel(cfg, appState, detector, actions)
	if loadErr != nil {
		model = model.WithStatus("Config warning: using defaults")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if watcher, watchErr := services.NewFileWatcher(store.Path()); watchErr == nil {
		watcher.Start(ctx)
		model = model.WithWatch(watcher.Events())
		defer func() { _ = watcher.Close() }()
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		return err
	}
	if provider, ok := finalModel.(ui.ConfigProvider); ok {
		if err := config.SaveConfig(provider.ConfigSnapshot()); err != nil {
			fmt.Fprintln(os.Stderr, "muserc config save error:", err)
		}
	}
	return nil
}
