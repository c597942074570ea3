package ui

import "muserc/internal/services"

type detectResultMsg struct {
	result services.DetectResult
	err    error
}

type actionResultMsg struct {
	result services.ActionResult
	err    error
}

type watchMsg struct {
	event services.WatchEvent
	ok    bool
}
