package services

import (
	"context"
	"fmt"
	"time"

	"muserc/internal/domain"
)

type MockDetector struct {
	Result DetectResult
}

func NewMockDetector() *MockDetector {
	return &MockDetector{
		Result: DetectResult{
			Candidates: []Candidate{
				{Key: domain.KeyMusicxmlPath, Path: "/usr/bin/mscore", Source: "PATH"},
				{Key: domain.KeyLilypondPath, Path: "/usr/bin/lilypond", Source: "PATH"},
			},
		},
	}
}

func (detector *MockDetector) Detect(ctx context.Context, req DetectRequest) (DetectResult, error) {
	start := time.Now()
	select {
	case <-ctx.Done():
		return DetectResult{}, ctx.Err()
	case <-time.After(50 * time.Millisecond):
	}
	result := detector.Result
	result.Duration = time.Since(start)
	return result, nil
}

type MockActions struct{}

func NewMockActions() *MockActions {
	return &MockActions{}
}

func (actions *MockActions) Execute(ctx context.Context, req ActionRequest) (ActionResult, error) {
	start := time.Now()
	select {
	case <-ctx.Done():
		return ActionResult{}, ctx.Err()
	case <-time.After(50 * time.Millisecond):
	}
	return ActionResult{
		Type:     req.Type,
		Message:  fmt.Sprintf("%s completed", req.Type),
		Duration: time.Since(start),
	}, nil
}
