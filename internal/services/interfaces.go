package services

import "context"

type Detector interface {
	Detect(ctx context.Context, req DetectRequest) (DetectResult, error)
}

type Actions interface {
	Execute(ctx context.Context, req ActionRequest) (ActionResult, error)
}
