package services

import "muserc/internal/domain"

type DetectRequest struct {
	Keys      []domain.Key // empty means all path keys
	SkipCache bool
}

type ActionType string

const (
	ActionDelete  ActionType = "delete"
	ActionBackup  ActionType = "backup"
	ActionRestore ActionType = "restore"
)

type ActionRequest struct {
	Type         ActionType
	SettingsPath string
	Destination  string // backup target or restore source
	ConfirmToken string
}
