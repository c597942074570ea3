package services

import (
	"time"

	"muserc/internal/domain"
)

type Candidate struct {
	Key    domain.Key
	Path   string
	Source string
}

type DetectResult struct {
	Candidates []Candidate
	Duration   time.Duration
	FromCache  bool
}

type ActionResult struct {
	Type     ActionType
	Message  string
	Duration time.Duration
}
