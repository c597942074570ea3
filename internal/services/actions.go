package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"

	xlog "muserc/internal/log"
	"muserc/internal/settings"
)

// FileActions performs lifecycle operations on the settings file itself:
// delete, backup to a destination, restore from a backup.
type FileActions struct {
	logger zerolog.Logger
}

func NewFileActions() *FileActions {
	return &FileActions{logger: xlog.WithComponent("actions")}
}

func (actions *FileActions) Execute(ctx context.Context, req ActionRequest) (ActionResult, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return ActionResult{Type: req.Type}, err
	}
	if req.SettingsPath == "" {
		return ActionResult{Type: req.Type}, fmt.Errorf("settings path required")
	}

	var result ActionResult
	var err error
	switch req.Type {
	case ActionDelete:
		result, err = actions.deleteFile(req)
	case ActionBackup:
		result, err = actions.backupFile(req)
	case ActionRestore:
		result, err = actions.restoreFile(req)
	default:
		return ActionResult{Type: req.Type}, fmt.Errorf("unsupported action")
	}
	if err != nil {
		return ActionResult{Type: req.Type}, err
	}
	result.Duration = time.Since(start)
	return result, nil
}

func (actions *FileActions) deleteFile(req ActionRequest) (ActionResult, error) {
	if req.ConfirmToken != "confirm" {
		return ActionResult{}, fmt.Errorf("delete requires confirmation")
	}
	if err := os.Remove(req.SettingsPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ActionResult{Type: ActionDelete, Message: "settings file already absent"}, nil
		}
		return ActionResult{}, fmt.Errorf("delete settings file: %w", err)
	}
	actions.logger.Info().Str("path", req.SettingsPath).Msg("settings file deleted")
	return ActionResult{Type: ActionDelete, Message: "settings file deleted"}, nil
}

func (actions *FileActions) backupFile(req ActionRequest) (ActionResult, error) {
	if req.Destination == "" {
		return ActionResult{}, fmt.Errorf("backup destination required")
	}
	data, err := os.ReadFile(req.SettingsPath)
	if err != nil {
		return ActionResult{}, fmt.Errorf("read settings file: %w", err)
	}

	target := req.Destination
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, filepath.Base(req.SettingsPath))
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return ActionResult{}, fmt.Errorf("write backup: %w", err)
	}
	return ActionResult{Type: ActionBackup, Message: fmt.Sprintf("backup written to %s", target)}, nil
}

// restoreFile replaces the settings file from a backup. The backup is parsed
// first so an unreadable document never clobbers the current file.
func (actions *FileActions) restoreFile(req ActionRequest) (ActionResult, error) {
	if req.Destination == "" {
		return ActionResult{}, fmt.Errorf("restore source required")
	}
	data, err := os.ReadFile(req.Destination)
	if err != nil {
		return ActionResult{}, fmt.Errorf("read backup: %w", err)
	}
	if _, err := settings.Parse(data); err != nil {
		return ActionResult{}, fmt.Errorf("invalid backup: %w", err)
	}
	if dir := filepath.Dir(req.SettingsPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ActionResult{}, fmt.Errorf("create settings directory: %w", err)
		}
	}
	if err := renameio.WriteFile(req.SettingsPath, data, 0o600); err != nil {
		return ActionResult{}, fmt.Errorf("restore settings file: %w", err)
	}
	actions.logger.Info().Str("from", req.Destination).Msg("settings file restored")
	return ActionResult{Type: ActionRestore, Message: fmt.Sprintf("restored from %s", req.Destination)}, nil
}
